package model

import (
	"time"
)

// EventModel 领域事件归档记录
type EventModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	EventId    string    `json:"event_id" gorm:"uniqueIndex;not null"`
	CampaignId int64     `json:"campaign_id" gorm:"index"`
	EventType  string    `json:"event_type" gorm:"not null"`
	Actor      string    `json:"actor"`
	Amount     int64     `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       string    `json:"data" gorm:"type:text"`
}

// TableName 自定义表名
func (EventModel) TableName() string {
	return "event"
}
