package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexbot/intent-admin/internal/middleware"
	"github.com/nexbot/intent-admin/internal/service"
	"github.com/nexbot/intent-admin/internal/service/intent"
)

// IntentHandler 意图处理器
type IntentHandler struct {
	svc *service.Services
}

// NewIntentHandler 创建意图处理器
func NewIntentHandler(svc *service.Services) *IntentHandler {
	return &IntentHandler{svc: svc}
}

// ListIntents 列出意图
func (h *IntentHandler) ListIntents(c *gin.Context) {
	items, err := h.svc.Intent.List(c.Request.Context(), &intent.ListRequest{
		Status: c.DefaultQuery("status", "all"),
		Search: c.Query("search"),
	})
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, items)
}

// GetIntent 获取意图详情（编辑器加载）
func (h *IntentHandler) GetIntent(c *gin.Context) {
	detail, err := h.svc.Intent.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, detail)
}

// CreateIntent 编辑器整单保存（新建）
func (h *IntentHandler) CreateIntent(c *gin.Context) {
	var req intent.SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	req.ID = ""

	session, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, Response{Code: -1, Message: "no session"})
		return
	}

	saved, err := h.svc.Intent.Save(c.Request.Context(), session, &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	created(c, saved)
}

// UpdateIntent 编辑器整单保存（已有意图）
func (h *IntentHandler) UpdateIntent(c *gin.Context) {
	var req intent.SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	req.ID = c.Param("id")

	session, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, Response{Code: -1, Message: "no session"})
		return
	}

	saved, err := h.svc.Intent.Save(c.Request.Context(), session, &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, saved)
}

// DeleteIntent 删除意图
func (h *IntentHandler) DeleteIntent(c *gin.Context) {
	if err := h.svc.Intent.Delete(c.Request.Context(), c.Param("id")); err != nil {
		errorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// idsRequest 批量操作请求体
type idsRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// BulkDeleteIntents 批量删除意图
func (h *IntentHandler) BulkDeleteIntents(c *gin.Context) {
	var req idsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.svc.Intent.DeleteBatch(c.Request.Context(), req.IDs); err != nil {
		errorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// PublishIntents 批量发布指定意图
func (h *IntentHandler) PublishIntents(c *gin.Context) {
	var req idsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	report, err := h.svc.Publish.Publish(c.Request.Context(), req.IDs)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, report)
}

// PublishAllDrafts 发布全部草稿
func (h *IntentHandler) PublishAllDrafts(c *gin.Context) {
	report, err := h.svc.Publish.PublishAllDrafts(c.Request.Context())
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, report)
}
