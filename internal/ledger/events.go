package ledger

import "time"

// EventType 领域事件类型
type EventType string

const (
	EventCampaignCreated    EventType = "CampaignCreated"
	EventContributionMade   EventType = "ContributionMade"
	EventCampaignSuccessful EventType = "CampaignSuccessful"
	EventFundsWithdrawn     EventType = "FundsWithdrawn"
	EventRefundClaimed      EventType = "RefundClaimed"
	EventCampaignCancelled  EventType = "CampaignCancelled"
	EventPlatformFeeUpdated EventType = "PlatformFeeUpdated"
)

// Event 领域事件，在命令提交后按提交顺序追加到 EventSink。
type Event struct {
	Type       EventType              `json:"type"`
	CampaignId int64                  `json:"campaign_id"`
	Actor      string                 `json:"actor"`
	Amount     int64                  `json:"amount"`
	CreatedAt  time.Time              `json:"created_at"`
	Data       map[string]interface{} `json:"data,omitempty"`
}

// EventSink 事件接收器。实现方负责下游投递（至少一次，按提交顺序）。
type EventSink interface {
	Append(event Event)
}

// NopSink 丢弃所有事件
type NopSink struct{}

func (NopSink) Append(Event) {}
