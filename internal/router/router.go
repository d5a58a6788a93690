package router

import (
	"github.com/blues/cfl/internal/handler"
	"github.com/blues/cfl/internal/ledger"
	"github.com/gin-gonic/gin"
)

func Setup(machine *ledger.Machine) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "crowdfunding-ledger",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		campaignHandler := handler.NewCampaignHandler(machine)
		contributeHandler := handler.NewContributeHandler(machine)
		settleHandler := handler.NewSettleHandler(machine)

		campaigns := v1.Group("/campaigns")
		{
			campaigns.POST("", campaignHandler.CreateCampaign)
			campaigns.GET("", campaignHandler.GetCampaigns)
			campaigns.GET("/:id", campaignHandler.GetCampaign)
			campaigns.DELETE("/:id", campaignHandler.CancelCampaign)
			campaigns.GET("/:id/stats", campaignHandler.GetCampaignStats)
			campaigns.GET("/:id/contributions", contributeHandler.GetContributions)
			campaigns.POST("/:id/contributions", contributeHandler.Contribute)
			campaigns.POST("/:id/withdraw", settleHandler.WithdrawFunds)
			campaigns.POST("/:id/refund", settleHandler.ClaimRefund)
		}

		v1.GET("/stats", campaignHandler.GetPlatformStats)

		adminHandler := handler.NewAdminHandler(machine)
		admin := v1.Group("/admin")
		{
			admin.PUT("/fee", adminHandler.SetPlatformFee)
			admin.PUT("/fee-recipient", adminHandler.SetFeeRecipient)
			admin.POST("/emergency-withdraw", adminHandler.EmergencyWithdraw)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-Caller-Address")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
