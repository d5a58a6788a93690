package handler

import (
	"net/http"

	"github.com/blues/cfl/internal/ledger"
	"github.com/blues/cfl/internal/logger"
	"github.com/gin-gonic/gin"
)

// AdminHandler 平台管理处理器
type AdminHandler struct {
	machine *ledger.Machine
}

// NewAdminHandler 创建平台管理处理器
func NewAdminHandler(machine *ledger.Machine) *AdminHandler {
	return &AdminHandler{machine: machine}
}

// SetPlatformFee 调整平台费率
func (h *AdminHandler) SetPlatformFee(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}

	var req SetPlatformFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求参数: "+err.Error())
		return
	}

	if err := h.machine.SetPlatformFee(caller, req.FeeBps); err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "调整平台费率成功", nil)
}

// SetFeeRecipient 调整平台费接收地址
func (h *AdminHandler) SetFeeRecipient(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}

	var req SetFeeRecipientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求参数: "+err.Error())
		return
	}

	if err := h.machine.SetFeeRecipient(caller, req.Recipient); err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "调整平台费接收地址成功", nil)
}

// EmergencyWithdraw 应急提取账本全部余额。绕过单活动记账，仅限运维处置。
func (h *AdminHandler) EmergencyWithdraw(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}

	amount, err := h.machine.EmergencyWithdraw(caller)
	if err != nil {
		logTransferStuck(err)
		LedgerErrorResponse(c, err)
		return
	}

	logger.Warn("Emergency withdraw executed: owner=%s amount=%d", caller, amount)
	SuccessResponse(c, http.StatusOK, "应急提取成功", EmergencyWithdrawResponse{Amount: amount})
}
