package handler

import (
	"errors"
	"net/http"

	"github.com/blues/cfl/internal/ledger"
	"github.com/gin-gonic/gin"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// LedgerErrorResponse 按账本错误类别映射HTTP状态码
func LedgerErrorResponse(c *gin.Context, err error) {
	c.JSON(statusFromError(err), Response{
		Success: false,
		Message: err.Error(),
		Data:    nil,
	})
}

// statusFromError 账本错误到HTTP状态码的映射
func statusFromError(err error) int {
	var transferErr *ledger.TransferError
	if errors.As(err, &transferErr) {
		// 记账已提交但出账失败，存在滞留资金
		return http.StatusBadGateway
	}

	switch {
	case errors.Is(err, ledger.ErrCampaignNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ledger.ErrEmptyTitle),
		errors.Is(err, ledger.ErrEmptyDescription),
		errors.Is(err, ledger.ErrGoalTooLow),
		errors.Is(err, ledger.ErrInvalidDuration),
		errors.Is(err, ledger.ErrZeroAmount),
		errors.Is(err, ledger.ErrInvalidAddress),
		errors.Is(err, ledger.ErrFeeTooHigh):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrCampaignNotActive),
		errors.Is(err, ledger.ErrDeadlinePassed),
		errors.Is(err, ledger.ErrSelfContribution),
		errors.Is(err, ledger.ErrNotWithdrawable),
		errors.Is(err, ledger.ErrStillActive),
		errors.Is(err, ledger.ErrCampaignSucceeded),
		errors.Is(err, ledger.ErrNoContribution),
		errors.Is(err, ledger.ErrHasContributions),
		errors.Is(err, ledger.ErrNoBalance),
		errors.Is(err, ledger.ErrAlreadyWithdrawn),
		errors.Is(err, ledger.ErrRefundsStarted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// callerAddress 从请求头取调用方地址。身份的认证由边界层保证。
func callerAddress(c *gin.Context) (string, bool) {
	caller := c.GetHeader("X-Caller-Address")
	if caller == "" {
		ErrorResponse(c, http.StatusBadRequest, "缺少 X-Caller-Address 请求头")
		return "", false
	}
	return caller, true
}
