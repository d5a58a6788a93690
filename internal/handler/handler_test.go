package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blues/cfl/internal/ledger"
	"github.com/gin-gonic/gin"
)

const (
	testOwner     = "0xaaaa000000000000000000000000000000000001"
	testOrganizer = "0xbbbb000000000000000000000000000000000001"
	testBacker    = "0xcccc000000000000000000000000000000000001"
)

type nopPort struct{}

func (nopPort) Transfer(string, int64) error { return nil }

func newTestRouter() (*gin.Engine, *ledger.Machine) {
	gin.SetMode(gin.TestMode)

	store := ledger.NewStore(testOwner, 250, testOwner)
	machine := ledger.NewMachine(store, nopPort{}, nil, 100, nil)

	r := gin.New()
	campaignHandler := NewCampaignHandler(machine)
	contributeHandler := NewContributeHandler(machine)
	settleHandler := NewSettleHandler(machine)
	adminHandler := NewAdminHandler(machine)

	v1 := r.Group("/api/v1")
	campaigns := v1.Group("/campaigns")
	campaigns.POST("", campaignHandler.CreateCampaign)
	campaigns.GET("", campaignHandler.GetCampaigns)
	campaigns.GET("/:id", campaignHandler.GetCampaign)
	campaigns.DELETE("/:id", campaignHandler.CancelCampaign)
	campaigns.GET("/:id/stats", campaignHandler.GetCampaignStats)
	campaigns.GET("/:id/contributions", contributeHandler.GetContributions)
	campaigns.POST("/:id/contributions", contributeHandler.Contribute)
	campaigns.POST("/:id/withdraw", settleHandler.WithdrawFunds)
	campaigns.POST("/:id/refund", settleHandler.ClaimRefund)
	v1.GET("/stats", campaignHandler.GetPlatformStats)
	v1.PUT("/admin/fee", adminHandler.SetPlatformFee)

	return r, machine
}

func doRequest(t *testing.T, r *gin.Engine, method, path, caller string, body interface{}) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if caller != "" {
		req.Header.Set("X-Caller-Address", caller)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return w, resp
}

func createCampaign(t *testing.T, r *gin.Engine) int64 {
	t.Helper()
	w, resp := doRequest(t, r, http.MethodPost, "/api/v1/campaigns", testOrganizer, CreateCampaignRequest{
		Title:        "Community garden",
		Description:  "Raised beds for the neighborhood",
		GoalAmount:   1000,
		DurationDays: 7,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create campaign: status %d body %s", w.Code, w.Body.String())
	}
	data := resp.Data.(map[string]interface{})
	return int64(data["campaignId"].(float64))
}

func TestCreateCampaignEndpoint(t *testing.T) {
	r, machine := newTestRouter()

	id := createCampaign(t, r)
	if id != 1 {
		t.Fatalf("expected campaign id 1, got %d", id)
	}
	if machine.CampaignCount() != 1 {
		t.Fatalf("expected one campaign in the ledger")
	}

	// 缺少调用方地址
	w, _ := doRequest(t, r, http.MethodPost, "/api/v1/campaigns", "", CreateCampaignRequest{
		Title: "t", Description: "d", GoalAmount: 1000, DurationDays: 7,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without caller header, got %d", w.Code)
	}

	// 参数校验错误
	w, _ = doRequest(t, r, http.MethodPost, "/api/v1/campaigns", testOrganizer, CreateCampaignRequest{
		Title: "t", Description: "d", GoalAmount: 1000, DurationDays: 3,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid duration, got %d", w.Code)
	}
}

func TestContributeAndWithdrawFlow(t *testing.T) {
	r, _ := newTestRouter()
	id := createCampaign(t, r)

	w, _ := doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/v1/campaigns/%d/contributions", id), testBacker,
		ContributeRequest{Amount: 1000, Message: "take my money"})
	if w.Code != http.StatusOK {
		t.Fatalf("contribute: status %d body %s", w.Code, w.Body.String())
	}

	w, resp := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/v1/campaigns/%d", id), "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get campaign: status %d", w.Code)
	}
	campaign := resp.Data.(map[string]interface{})["campaign"].(map[string]interface{})
	if campaign["status"] != string(ledger.CampaignStatusSuccessful) {
		t.Fatalf("expected successful campaign, got %v", campaign["status"])
	}

	w, resp = doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/v1/campaigns/%d/withdraw", id), testOrganizer, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("withdraw: status %d body %s", w.Code, w.Body.String())
	}
	payout := resp.Data.(map[string]interface{})
	if payout["organizerAmount"].(float64) != 975 || payout["platformFee"].(float64) != 25 {
		t.Fatalf("unexpected payout: %v", payout)
	}

	// 二次提取映射为409
	w, _ = doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/v1/campaigns/%d/withdraw", id), testOrganizer, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for double withdraw, got %d", w.Code)
	}
}

func TestErrorStatusMapping(t *testing.T) {
	r, _ := newTestRouter()
	id := createCampaign(t, r)

	// 未知活动
	w, _ := doRequest(t, r, http.MethodGet, "/api/v1/campaigns/42", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown campaign, got %d", w.Code)
	}

	// 非发起人取消
	w, _ = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/campaigns/%d", id), testBacker, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for unauthorized cancel, got %d", w.Code)
	}

	// 发起人自投
	w, _ = doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/v1/campaigns/%d/contributions", id), testOrganizer,
		ContributeRequest{Amount: 10})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for self contribution, got %d", w.Code)
	}

	// 截止前退款
	w, _ = doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/v1/campaigns/%d/refund", id), testBacker, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for early refund, got %d", w.Code)
	}

	// 无效活动ID
	w, _ = doRequest(t, r, http.MethodGet, "/api/v1/campaigns/abc", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", w.Code)
	}
}

func TestAdminFeeEndpoint(t *testing.T) {
	r, machine := newTestRouter()

	w, _ := doRequest(t, r, http.MethodPut, "/api/v1/admin/fee", testOwner, SetPlatformFeeRequest{FeeBps: 500})
	if w.Code != http.StatusOK {
		t.Fatalf("set fee: status %d body %s", w.Code, w.Body.String())
	}
	if machine.FeeBps() != 500 {
		t.Fatalf("expected fee updated to 500, got %d", machine.FeeBps())
	}

	w, _ = doRequest(t, r, http.MethodPut, "/api/v1/admin/fee", testBacker, SetPlatformFeeRequest{FeeBps: 100})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner, got %d", w.Code)
	}

	w, _ = doRequest(t, r, http.MethodPut, "/api/v1/admin/fee", testOwner, SetPlatformFeeRequest{FeeBps: 2000})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for fee above cap, got %d", w.Code)
	}
}

func TestStatsEndpoints(t *testing.T) {
	r, _ := newTestRouter()
	id := createCampaign(t, r)

	doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/v1/campaigns/%d/contributions", id), testBacker,
		ContributeRequest{Amount: 250})

	w, resp := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/v1/campaigns/%d/stats", id), "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("campaign stats: status %d", w.Code)
	}
	stats := resp.Data.(map[string]interface{})["stats"].(map[string]interface{})
	if stats["raised_amount"].(float64) != 250 || stats["goal_reached"].(bool) {
		t.Fatalf("unexpected campaign stats: %v", stats)
	}

	w, resp = doRequest(t, r, http.MethodGet, "/api/v1/stats", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("platform stats: status %d", w.Code)
	}
	stats = resp.Data.(map[string]interface{})["stats"].(map[string]interface{})
	if stats["total_campaigns"].(float64) != 1 || stats["total_raised"].(float64) != 250 {
		t.Fatalf("unexpected platform stats: %v", stats)
	}
}
