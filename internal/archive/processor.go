package archive

import (
	"encoding/json"
	"fmt"

	"github.com/blues/cfl/internal/ledger"
	"github.com/blues/cfl/internal/model"
	"github.com/google/uuid"
)

// toEventModel 把领域事件转换为归档行
func toEventModel(event ledger.Event) (model.EventModel, error) {
	data := ""
	if len(event.Data) > 0 {
		raw, err := json.Marshal(event.Data)
		if err != nil {
			return model.EventModel{}, fmt.Errorf("marshal event data: %w", err)
		}
		data = string(raw)
	}

	return model.EventModel{
		EventId:    uuid.NewString(),
		CampaignId: event.CampaignId,
		EventType:  string(event.Type),
		Actor:      event.Actor,
		Amount:     event.Amount,
		OccurredAt: event.CreatedAt,
		Data:       data,
	}, nil
}

// toContributeRecord 出资事件转出资记录
func toContributeRecord(event ledger.Event, eventId string) *model.ContributeRecordModel {
	message := ""
	if m, ok := event.Data["message"].(string); ok {
		message = m
	}
	return &model.ContributeRecordModel{
		CampaignId: event.CampaignId,
		Address:    event.Actor,
		Amount:     event.Amount,
		Message:    message,
		EventId:    eventId,
	}
}

// toRefundRecord 退款事件转退款记录
func toRefundRecord(event ledger.Event, eventId string) *model.RefundRecordModel {
	return &model.RefundRecordModel{
		CampaignId: event.CampaignId,
		Address:    event.Actor,
		Amount:     event.Amount,
		EventId:    eventId,
	}
}

// toSettlementRecord 提取事件转结算记录
func toSettlementRecord(event ledger.Event, eventId string) *model.SettlementRecordModel {
	var fee int64
	if f, ok := event.Data["platform_fee"].(int64); ok {
		fee = f
	}
	recipient := ""
	if r, ok := event.Data["fee_recipient"].(string); ok {
		recipient = r
	}
	return &model.SettlementRecordModel{
		CampaignId:      event.CampaignId,
		OrganizerAmount: event.Amount,
		PlatformFee:     fee,
		FeeRecipient:    recipient,
		Address:         event.Actor,
		EventId:         eventId,
	}
}
