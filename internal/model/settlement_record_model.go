package model

import (
	"time"
)

// SettlementRecordModel 提取结算记录
type SettlementRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignId      int64  `json:"campaign_id" gorm:"not null;index"`
	OrganizerAmount int64  `json:"organizer_amount" gorm:"not null"`
	PlatformFee     int64  `json:"platform_fee" gorm:"not null"`
	FeeRecipient    string `json:"fee_recipient"`
	Address         string `json:"address" gorm:"not null"` // 发起人地址
	EventId         string `json:"event_id" gorm:"uniqueIndex"`
}

// TableName 自定义表名
func (SettlementRecordModel) TableName() string {
	return "settlement_record"
}
