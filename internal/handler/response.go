package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexbot/intent-admin/internal/service/auth"
	"github.com/nexbot/intent-admin/internal/service/types"
)

// Response 统一响应格式
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// success 成功响应 (200)
func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "success", Data: data})
}

// created 创建成功响应 (201)
func created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Code: 0, Message: "success", Data: data})
}

// badRequest 参数错误响应 (400)
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Code: -1, Message: msg})
}

// errorResponse 按错误分类映射状态码
// 校验 400，不存在 404，slug 冲突 409，外部服务不可达 502，其余 500
func errorResponse(c *gin.Context, err error) {
	switch {
	case types.IsValidation(err):
		c.JSON(http.StatusBadRequest, Response{Code: -1, Message: err.Error()})
	case errors.Is(err, types.ErrNotFound):
		c.JSON(http.StatusNotFound, Response{Code: -1, Message: err.Error()})
	case types.IsConflict(err):
		c.JSON(http.StatusConflict, Response{Code: -1, Message: err.Error()})
	case types.IsConnection(err):
		c.JSON(http.StatusBadGateway, Response{Code: -1, Message: err.Error()})
	case errors.Is(err, auth.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, Response{Code: -1, Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, Response{Code: -1, Message: err.Error()})
	}
}
