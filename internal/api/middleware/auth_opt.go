package middleware

import (
	"Inkpost/internal/pkg/consts"
	"Inkpost/internal/pkg/redis"
	"Inkpost/internal/pkg/security"

	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权：解析成功注入 UID，失败、缺失或已登出则 UID 为 0
func AuthOptionalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(consts.UserIDKey, uint64(0))

		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := security.ValidateToken(token)
		if err != nil {
			c.Next()
			return
		}
		if signature, err := security.ExtractSignature(token); err == nil {
			if revoked, _ := redis.Exists(c.Request.Context(), consts.AccessBlacklistKey+signature); revoked {
				c.Next()
				return
			}
		}

		setUser(c, claims.UserID)
		c.Next()
	}
}
