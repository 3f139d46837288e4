package router

import (
	"github.com/gin-gonic/gin"

	"github.com/nexbot/intent-admin/internal/handler"
	"github.com/nexbot/intent-admin/internal/middleware"
	"github.com/nexbot/intent-admin/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(h *handler.Handlers, svc *service.Services) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1
	v1 := r.Group("/api/v1")

	// Auth 认证（登录不需要令牌）
	v1.POST("/auth/login", h.Auth.Login)

	authed := v1.Group("")
	authed.Use(middleware.RequireAuth(svc))
	{
		authed.POST("/auth/logout", h.Auth.Logout)
		authed.GET("/auth/me", h.Auth.Me)

		// Intent 意图
		intents := authed.Group("/intents")
		{
			intents.GET("", h.Intent.ListIntents)
			intents.POST("", h.Intent.CreateIntent)
			intents.GET("/:id", h.Intent.GetIntent)
			intents.PUT("/:id", h.Intent.UpdateIntent)
			intents.DELETE("/:id", h.Intent.DeleteIntent)
			intents.POST("/bulk-delete", h.Intent.BulkDeleteIntents)
			intents.POST("/publish", h.Intent.PublishIntents)
			intents.POST("/publish-drafts", h.Intent.PublishAllDrafts)
		}

		// Duplicate 查重
		duplicates := authed.Group("/duplicates")
		{
			duplicates.GET("", h.Duplicate.ListDuplicates)
			duplicates.POST("/scan", h.Duplicate.ScanDuplicates)
			duplicates.POST("/:id/resolve", h.Duplicate.ResolveDuplicate)
		}

		// Import 导入
		authed.POST("/import", h.Import.Import)

		// Stats 仪表盘统计
		authed.GET("/stats", h.Stats.GetStats)
	}

	return r
}
