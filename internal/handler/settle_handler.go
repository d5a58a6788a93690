package handler

import (
	"errors"
	"net/http"

	"github.com/blues/cfl/internal/ledger"
	"github.com/blues/cfl/internal/logger"
	"github.com/gin-gonic/gin"
)

// SettleHandler 资金处置处理器：提取与退款
type SettleHandler struct {
	machine *ledger.Machine
}

// NewSettleHandler 创建资金处置处理器
func NewSettleHandler(machine *ledger.Machine) *SettleHandler {
	return &SettleHandler{machine: machine}
}

// WithdrawFunds 发起人提取资金
func (h *SettleHandler) WithdrawFunds(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}
	id, ok := campaignId(c)
	if !ok {
		return
	}

	organizerAmount, platformFee, err := h.machine.WithdrawFunds(id, caller)
	if err != nil {
		logTransferStuck(err)
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "提取资金成功", WithdrawResponse{
		OrganizerAmount: organizerAmount,
		PlatformFee:     platformFee,
	})
}

// ClaimRefund 出资人认领退款
func (h *SettleHandler) ClaimRefund(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}
	id, ok := campaignId(c)
	if !ok {
		return
	}

	amount, err := h.machine.ClaimRefund(id, caller)
	if err != nil {
		logTransferStuck(err)
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "退款成功", RefundResponse{Amount: amount})
}

// logTransferStuck 出账失败意味着记账已提交但资金滞留，必须高调记录
func logTransferStuck(err error) {
	var transferErr *ledger.TransferError
	if errors.As(err, &transferErr) {
		logger.Error("STUCK FUNDS: bookkeeping committed but transfer failed: campaign=%d to=%s amount=%d: %v",
			transferErr.CampaignId, transferErr.To, transferErr.Amount, transferErr.Err)
	}
}
