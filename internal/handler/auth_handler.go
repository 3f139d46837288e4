package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexbot/intent-admin/internal/middleware"
	"github.com/nexbot/intent-admin/internal/service"
	"github.com/nexbot/intent-admin/internal/service/auth"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	svc *service.Services
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(svc *service.Services) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login 登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	resp, err := h.svc.Auth.SignInWithPassword(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}

	if !resp.Success {
		c.JSON(http.StatusUnauthorized, Response{Code: -1, Message: resp.Message})
		return
	}

	success(c, resp)
}

// Logout 登出，吊销当前令牌
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.BearerToken(c)
	if err := h.svc.Auth.SignOut(c.Request.Context(), token); err != nil {
		errorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Me 当前会话的用户信息
func (h *AuthHandler) Me(c *gin.Context) {
	session, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, Response{Code: -1, Message: "no session"})
		return
	}

	user, err := h.svc.Auth.GetUser(c.Request.Context(), session)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, user)
}
