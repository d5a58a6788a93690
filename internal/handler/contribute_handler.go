package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/cfl/internal/ledger"
	"github.com/gin-gonic/gin"
)

// ContributeHandler 出资处理器
type ContributeHandler struct {
	machine *ledger.Machine
}

// NewContributeHandler 创建出资处理器
func NewContributeHandler(machine *ledger.Machine) *ContributeHandler {
	return &ContributeHandler{machine: machine}
}

// Contribute 向活动出资
func (h *ContributeHandler) Contribute(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}
	id, ok := campaignId(c)
	if !ok {
		return
	}

	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求参数: "+err.Error())
		return
	}

	if err := h.machine.Contribute(id, caller, req.Amount, req.Message); err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "出资成功", nil)
}

// GetContributions 分页获取活动出资记录
func (h *ContributeHandler) GetContributions(c *gin.Context) {
	id, ok := campaignId(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	records, total, err := h.machine.Contributions(id, page, pageSize)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	pagination := Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}

	SuccessResponse(c, http.StatusOK, "获取出资记录成功", GetContributionsResponse{
		Contributions: records,
		Pagination:    pagination,
	})
}
