package archive

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/blues/cfl/internal/ledger"
)

func TestToEventModel(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	event := ledger.Event{
		Type:       ledger.EventContributionMade,
		CampaignId: 7,
		Actor:      "0xabc",
		Amount:     500,
		CreatedAt:  at,
		Data:       map[string]interface{}{"message": "hello"},
	}

	row, err := toEventModel(event)
	if err != nil {
		t.Fatalf("to event model: %v", err)
	}
	if row.EventId == "" {
		t.Fatalf("expected generated event id")
	}
	if row.CampaignId != 7 || row.Actor != "0xabc" || row.Amount != 500 {
		t.Fatalf("unexpected row: %+v", row)
	}
	if row.EventType != "ContributionMade" {
		t.Fatalf("expected event type preserved, got %s", row.EventType)
	}
	if !row.OccurredAt.Equal(at) {
		t.Fatalf("expected occurredAt %v, got %v", at, row.OccurredAt)
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(row.Data), &data); err != nil {
		t.Fatalf("data must be valid JSON: %v", err)
	}
	if data["message"] != "hello" {
		t.Fatalf("unexpected payload: %v", data)
	}

	// 事件ID唯一
	row2, _ := toEventModel(event)
	if row.EventId == row2.EventId {
		t.Fatalf("event ids must be unique")
	}
}

func TestToEventModelEmptyData(t *testing.T) {
	row, err := toEventModel(ledger.Event{Type: ledger.EventCampaignCancelled, CampaignId: 1})
	if err != nil {
		t.Fatalf("to event model: %v", err)
	}
	if row.Data != "" {
		t.Fatalf("expected empty data column, got %q", row.Data)
	}
}

func TestToContributeRecord(t *testing.T) {
	record := toContributeRecord(ledger.Event{
		Type:       ledger.EventContributionMade,
		CampaignId: 3,
		Actor:      "0xabc",
		Amount:     120,
		Data:       map[string]interface{}{"message": "keep going"},
	}, "evt-1")

	if record.CampaignId != 3 || record.Address != "0xabc" || record.Amount != 120 {
		t.Fatalf("unexpected record: %+v", record)
	}
	if record.Message != "keep going" {
		t.Fatalf("expected message extracted, got %q", record.Message)
	}
	if record.EventId != "evt-1" {
		t.Fatalf("expected event id carried, got %q", record.EventId)
	}
}

func TestToSettlementRecord(t *testing.T) {
	record := toSettlementRecord(ledger.Event{
		Type:       ledger.EventFundsWithdrawn,
		CampaignId: 3,
		Actor:      "0xorganizer",
		Amount:     975000,
		Data: map[string]interface{}{
			"platform_fee":  int64(25000),
			"fee_recipient": "0xfee",
		},
	}, "evt-2")

	if record.OrganizerAmount != 975000 || record.PlatformFee != 25000 {
		t.Fatalf("unexpected settlement amounts: %+v", record)
	}
	if record.FeeRecipient != "0xfee" || record.Address != "0xorganizer" {
		t.Fatalf("unexpected settlement parties: %+v", record)
	}
}

func TestToRefundRecord(t *testing.T) {
	record := toRefundRecord(ledger.Event{
		Type:       ledger.EventRefundClaimed,
		CampaignId: 9,
		Actor:      "0xbacker",
		Amount:     200,
	}, "evt-3")

	if record.CampaignId != 9 || record.Address != "0xbacker" || record.Amount != 200 {
		t.Fatalf("unexpected refund record: %+v", record)
	}
}
