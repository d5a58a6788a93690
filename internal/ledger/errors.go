package ledger

import (
	"errors"
	"fmt"
)

// 账本命令错误，按类别分组。handler 层通过 errors.Is 映射为 HTTP 状态码。
var (
	// NotFound
	ErrCampaignNotFound = errors.New("活动不存在")

	// Unauthorized
	ErrUnauthorized = errors.New("无权执行此操作")

	// InvalidInput
	ErrEmptyTitle       = errors.New("活动标题不能为空")
	ErrEmptyDescription = errors.New("活动描述不能为空")
	ErrGoalTooLow       = errors.New("目标金额低于最小值")
	ErrInvalidDuration  = errors.New("活动时长必须在7到365天之间")
	ErrZeroAmount       = errors.New("金额必须大于0")
	ErrInvalidAddress   = errors.New("无效的地址")
	ErrFeeTooHigh       = errors.New("平台费率超过上限")

	// InvalidState
	ErrCampaignNotActive = errors.New("活动不是进行中状态")
	ErrDeadlinePassed    = errors.New("活动已过截止时间")
	ErrSelfContribution  = errors.New("发起人不能为自己的活动出资")
	ErrNotWithdrawable   = errors.New("活动当前不可提取资金")
	ErrStillActive       = errors.New("活动尚未到截止时间")
	ErrCampaignSucceeded = errors.New("活动已达成目标，不可退款")
	ErrNoContribution    = errors.New("没有可退款的出资余额")
	ErrHasContributions  = errors.New("活动已有出资，不能取消")
	ErrNoBalance         = errors.New("没有可提取的余额")

	// AlreadySettled
	ErrAlreadyWithdrawn = errors.New("资金已被提取")
	ErrRefundsStarted   = errors.New("活动已开始退款，不可提取资金")
)

// TransferError 外部转账失败。记账状态已提交且不会回滚，
// 出现该错误意味着存在待人工处理的滞留资金。
type TransferError struct {
	CampaignId int64
	To         string
	Amount     int64
	Err        error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("转账失败: campaign=%d to=%s amount=%d: %v", e.CampaignId, e.To, e.Amount, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}
