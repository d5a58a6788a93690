package handler

import (
	"github.com/blues/cfl/internal/ledger"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 分页信息结构
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

// CreateCampaignRequest 创建活动请求
type CreateCampaignRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description" binding:"required"`
	ImageURL     string `json:"imageUrl"`
	GoalAmount   int64  `json:"goalAmount" binding:"required"`
	DurationDays int64  `json:"durationDays" binding:"required"`
}

// ContributeRequest 出资请求
type ContributeRequest struct {
	Amount  int64  `json:"amount" binding:"required"`
	Message string `json:"message"`
}

// SetPlatformFeeRequest 调整平台费率请求
type SetPlatformFeeRequest struct {
	FeeBps int64 `json:"feeBps"`
}

// SetFeeRecipientRequest 调整平台费接收地址请求
type SetFeeRecipientRequest struct {
	Recipient string `json:"recipient" binding:"required"`
}

// CreateCampaignResponse 创建活动响应
type CreateCampaignResponse struct {
	CampaignId int64 `json:"campaignId"`
}

// GetCampaignResponse 获取活动详情响应
type GetCampaignResponse struct {
	Campaign ledger.Campaign `json:"campaign"`
}

// GetCampaignsResponse 获取活动列表响应
type GetCampaignsResponse struct {
	Campaigns []ledger.Campaign `json:"campaigns"`
	Total     int64             `json:"total"`
}

// GetCampaignIdsResponse 按参与方过滤的活动ID列表响应
type GetCampaignIdsResponse struct {
	CampaignIds []int64 `json:"campaignIds"`
}

// GetContributionsResponse 获取出资记录响应
type GetContributionsResponse struct {
	Contributions []ledger.Contribution `json:"contributions"`
	Pagination    Pagination            `json:"pagination"`
}

// WithdrawResponse 提取资金响应
type WithdrawResponse struct {
	OrganizerAmount int64 `json:"organizerAmount"`
	PlatformFee     int64 `json:"platformFee"`
}

// RefundResponse 退款响应
type RefundResponse struct {
	Amount int64 `json:"amount"`
}

// EmergencyWithdrawResponse 应急提取响应
type EmergencyWithdrawResponse struct {
	Amount int64 `json:"amount"`
}

// StatsResponse 统计信息响应
type StatsResponse struct {
	Stats map[string]interface{} `json:"stats"`
}
