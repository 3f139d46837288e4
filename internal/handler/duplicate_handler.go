package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/nexbot/intent-admin/internal/service"
)

// DuplicateHandler 查重处理器
type DuplicateHandler struct {
	svc *service.Services
}

// NewDuplicateHandler 创建查重处理器
func NewDuplicateHandler(svc *service.Services) *DuplicateHandler {
	return &DuplicateHandler{svc: svc}
}

// ListDuplicates 列出未处理的重复标记
func (h *DuplicateHandler) ListDuplicates(c *gin.Context) {
	flags, err := h.svc.Duplicate.ListUnresolved(c.Request.Context())
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, flags)
}

// ScanDuplicates 触发查重扫描
func (h *DuplicateHandler) ScanDuplicates(c *gin.Context) {
	report, err := h.svc.Duplicate.Scan(c.Request.Context())
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, report)
}

// resolveRequest 标记处理请求体
type resolveRequest struct {
	Resolution string `json:"resolution" binding:"required"`
}

// ResolveDuplicate 处理重复标记
func (h *DuplicateHandler) ResolveDuplicate(c *gin.Context) {
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.svc.Duplicate.Resolve(c.Request.Context(), c.Param("id"), req.Resolution); err != nil {
		errorResponse(c, err)
		return
	}

	success(c, gin.H{"resolved": true})
}
