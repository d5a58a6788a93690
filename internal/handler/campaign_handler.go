package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/cfl/internal/ledger"
	"github.com/gin-gonic/gin"
)

// CampaignHandler 活动处理器
type CampaignHandler struct {
	machine *ledger.Machine
}

// NewCampaignHandler 创建活动处理器
func NewCampaignHandler(machine *ledger.Machine) *CampaignHandler {
	return &CampaignHandler{machine: machine}
}

// CreateCampaign 创建活动
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}

	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求参数: "+err.Error())
		return
	}

	id, err := h.machine.CreateCampaign(caller, ledger.CreateCampaignInput{
		Title:        req.Title,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		GoalAmount:   req.GoalAmount,
		DurationDays: req.DurationDays,
	})
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "创建活动成功", CreateCampaignResponse{CampaignId: id})
}

// GetCampaign 获取活动详情
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	id, ok := campaignId(c)
	if !ok {
		return
	}

	campaign, err := h.machine.GetCampaign(id)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取活动详情成功", GetCampaignResponse{Campaign: campaign})
}

// GetCampaigns 获取活动列表，支持按发起人/出资人过滤
func (h *CampaignHandler) GetCampaigns(c *gin.Context) {
	if organizer := c.Query("organizer"); organizer != "" {
		ids := h.machine.CampaignsByOrganizer(organizer)
		SuccessResponse(c, http.StatusOK, "获取活动列表成功", GetCampaignIdsResponse{CampaignIds: ids})
		return
	}
	if contributor := c.Query("contributor"); contributor != "" {
		ids := h.machine.CampaignsByContributor(contributor)
		SuccessResponse(c, http.StatusOK, "获取活动列表成功", GetCampaignIdsResponse{CampaignIds: ids})
		return
	}

	campaigns := h.machine.Campaigns()
	SuccessResponse(c, http.StatusOK, "获取活动列表成功", GetCampaignsResponse{
		Campaigns: campaigns,
		Total:     h.machine.CampaignCount(),
	})
}

// CancelCampaign 取消活动
func (h *CampaignHandler) CancelCampaign(c *gin.Context) {
	caller, ok := callerAddress(c)
	if !ok {
		return
	}
	id, ok := campaignId(c)
	if !ok {
		return
	}

	if err := h.machine.CancelCampaign(id, caller); err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "取消活动成功", nil)
}

// GetCampaignStats 获取活动统计信息
func (h *CampaignHandler) GetCampaignStats(c *gin.Context) {
	id, ok := campaignId(c)
	if !ok {
		return
	}

	stats, err := h.machine.CampaignStats(id)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取活动统计信息成功", StatsResponse{Stats: stats})
}

// GetPlatformStats 获取平台统计信息
func (h *CampaignHandler) GetPlatformStats(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "获取平台统计信息成功", StatsResponse{Stats: h.machine.PlatformStats()})
}

// campaignId 从路径参数解析活动ID
func campaignId(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return 0, false
	}
	return id, true
}
