package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/nexbot/intent-admin/internal/service"
)

// StatsHandler 仪表盘统计处理器
type StatsHandler struct {
	svc *service.Services
}

// NewStatsHandler 创建统计处理器
func NewStatsHandler(svc *service.Services) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// GetStats 仪表盘计数
func (h *StatsHandler) GetStats(c *gin.Context) {
	overview, err := h.svc.Stats.Fetch(c.Request.Context())
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, overview)
}
