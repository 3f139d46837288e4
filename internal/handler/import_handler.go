package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexbot/intent-admin/internal/middleware"
	"github.com/nexbot/intent-admin/internal/service"
	"github.com/nexbot/intent-admin/internal/service/importer"
)

// ImportHandler 导入处理器
type ImportHandler struct {
	svc *service.Services
}

// NewImportHandler 创建导入处理器
func NewImportHandler(svc *service.Services) *ImportHandler {
	return &ImportHandler{svc: svc}
}

// Import 上传 JSON 文档并串行导入
// 请求体就是上传的原始 JSON 文件内容
func (h *ImportHandler) Import(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		badRequest(c, "failed to read request body")
		return
	}

	records, err := importer.Parse(raw)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	session, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, Response{Code: -1, Message: "no session"})
		return
	}

	report, err := h.svc.Importer.Run(c.Request.Context(), session, records)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, report)
}
