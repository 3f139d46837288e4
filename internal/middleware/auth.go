package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nexbot/intent-admin/internal/model"
	"github.com/nexbot/intent-admin/internal/service"
)

const sessionKey = "session"

// RequireAuth 要求有效会话的中间件
// 必须携带有效且未吊销的 Bearer token，否则返回 401
func RequireAuth(svc *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			c.JSON(401, gin.H{
				"code":    -1,
				"message": "Missing Authorization header",
			})
			c.Abort()
			return
		}

		session, err := svc.Auth.GetSession(c.Request.Context(), token)
		if err != nil {
			c.JSON(401, gin.H{
				"code":    -1,
				"message": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		// 会话显式注入上下文，不走进程级全局状态
		c.Set(sessionKey, session)
		c.Next()
	}
}

// BearerToken 从 Authorization 头取出令牌
func BearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// GetSession 从上下文获取当前会话
func GetSession(c *gin.Context) (*model.Session, bool) {
	value, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	session, ok := value.(*model.Session)
	return session, ok
}
