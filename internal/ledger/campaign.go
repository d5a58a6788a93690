package ledger

import (
	"strings"
	"time"
)

// CampaignStatus 活动状态
type CampaignStatus string

const (
	CampaignStatusActive     CampaignStatus = "active"     // 进行中
	CampaignStatusSuccessful CampaignStatus = "successful" // 已达成目标
	CampaignStatusFailed     CampaignStatus = "failed"     // 失败（已开始退款）
	CampaignStatusWithdrawn  CampaignStatus = "withdrawn"  // 截止后未达标提取
	CampaignStatusCancelled  CampaignStatus = "cancelled"  // 已取消
)

// 活动时长与费率边界
const (
	MinDurationDays = 7
	MaxDurationDays = 365
	MaxFeeBps       = 1000 // 10%
	FeeDenominator  = 10000
)

// Campaign 众筹活动。金额一律为最小货币单位的整数。
type Campaign struct {
	Id               int64          `json:"id"`
	Organizer        string         `json:"organizer"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	ImageURL         string         `json:"image_url"`
	GoalAmount       int64          `json:"goal_amount"`
	RaisedAmount     int64          `json:"raised_amount"`
	Deadline         time.Time      `json:"deadline"`
	CreatedAt        time.Time      `json:"created_at"`
	Status           CampaignStatus `json:"status"`
	FundsWithdrawn   bool           `json:"funds_withdrawn"`
	RefundsStarted   bool           `json:"refunds_started"`
	ContributorCount int64          `json:"contributor_count"`
}

// Contribution 出资记录，只追加，不修改。同一出资人多次出资各记一条。
type Contribution struct {
	Contributor string    `json:"contributor"`
	Amount      int64     `json:"amount"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateCampaignInput 创建活动所需的元数据
type CreateCampaignInput struct {
	Title        string
	Description  string
	ImageURL     string
	GoalAmount   int64
	DurationDays int64
}

// normalizeCreateCampaignInput 校验并整理创建活动的输入
func normalizeCreateCampaignInput(input CreateCampaignInput, minGoal int64) (CreateCampaignInput, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	if input.Title == "" {
		return CreateCampaignInput{}, ErrEmptyTitle
	}
	if input.Description == "" {
		return CreateCampaignInput{}, ErrEmptyDescription
	}
	if input.GoalAmount <= 0 || input.GoalAmount < minGoal {
		return CreateCampaignInput{}, ErrGoalTooLow
	}
	if input.DurationDays < MinDurationDays || input.DurationDays > MaxDurationDays {
		return CreateCampaignInput{}, ErrInvalidDuration
	}
	return input, nil
}
