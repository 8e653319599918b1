package routes

import (
	"github.com/gin-gonic/gin"

	"parkirku/handlers"
)

// Path 掛載所有 API 路由
func Path(router *gin.RouterGroup, h *handlers.Handler) {
	// 版本控制
	v1 := router.Group("/v1")
	{
		// 測試路由
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(200, gin.H{"message": "pong"})
		})

		// 樓層與車位路由
		floors := v1.Group("/floors")
		{
			floors.POST("", h.CreateFloor)           // 新增樓層
			floors.GET("", h.ListFloors)             // 查詢所有樓層
			floors.POST("/:id/slots", h.ExpandFloor) // 擴充車位
		}

		slots := v1.Group("/slots")
		{
			slots.GET("/empty", h.EmptySlots)         // 查詢空位（可依車種篩選）
			slots.GET("/occupied", h.OccupiedSlots)   // 查詢使用中車位
			slots.GET("/:id", h.GetSlot)              // 查詢單一車位
			slots.GET("/:id/bill", h.PreviewBill)     // 離場前試算
			slots.POST("/:id/checkout", h.Checkout)   // 離場結帳
		}

		// 進場路由
		v1.POST("/vehicles", h.CheckIn)

		// 交易路由
		transactions := v1.Group("/transactions")
		{
			transactions.GET("", h.ListTransactions)              // 依日期區間查詢
			transactions.GET("/vehicle/:plate", h.VehicleHistory) // 依車牌查詢歷史
		}

		// 報表路由
		reports := v1.Group("/reports")
		{
			reports.GET("/stats", h.GetStats)          // 佔用統計
			reports.GET("/daily", h.DailySeries)       // 近 N 日序列
			reports.GET("/revenue/today", h.TodayRevenue)
			reports.GET("/warnings", h.GetWarnings)    // 巡檢警示
			reports.POST("/reset", h.ResetDaily)       // 每日重置（需確認）
		}

		// 設定路由
		settings := v1.Group("/settings")
		{
			settings.GET("", h.GetSettings)
			settings.PUT("", h.UpdateSettings)
		}

		// 帳號查驗（不發 token）
		v1.POST("/users/verify", h.VerifyUser)
	}
}
