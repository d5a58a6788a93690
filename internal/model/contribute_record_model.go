package model

import (
	"time"
)

// ContributeRecordModel 出资记录
type ContributeRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignId int64  `json:"campaign_id" gorm:"not null;index"`
	Address    string `json:"address" gorm:"not null"`
	Amount     int64  `json:"amount" gorm:"not null"`
	Message    string `json:"message" gorm:"type:text"`
	EventId    string `json:"event_id" gorm:"uniqueIndex"`
}

// TableName 自定义表名
func (ContributeRecordModel) TableName() string {
	return "contribute_record"
}
