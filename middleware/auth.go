package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-tycoon/utils"
)

const ContextUserID = "user_id"

// JWTAuth 从 Authorization: Bearer 或 token 查询参数里取访问令牌
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "未授权"})
			c.Abort()
			return
		}
		claims, err := utils.ParseAccessToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "令牌无效或已过期"})
			c.Abort()
			return
		}
		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

// UserID 取鉴权中间件放进去的用户 id
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
