package middleware

import (
	"Inkpost/internal/pkg/consts"
	"Inkpost/internal/pkg/redis"
	"Inkpost/internal/pkg/response"
	"Inkpost/internal/pkg/security"
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

// AccessTokenKey 原始 Access Token，登出时用于加入黑名单
const AccessTokenKey = "access_token"

// AuthMiddleware 负责验证 JWT 并将用户身份信息注入 Context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			response.Abort(c, response.Unauthorized, "Token 缺失或格式错误")
			return
		}

		signature, err := security.ExtractSignature(tokenString)
		if err != nil {
			response.Abort(c, response.Unauthorized, "Token 缺失或格式错误")
			return
		}

		revoked, err := redis.Exists(c.Request.Context(), consts.AccessBlacklistKey+signature)
		if err != nil {
			response.Abort(c, response.InternalServerError, "未知错误")
			return
		}
		if revoked {
			response.Abort(c, response.Unauthorized, "Token 无效或已过期")
			return
		}

		claims, err := security.ValidateToken(tokenString)
		if err != nil {
			response.Abort(c, response.Unauthorized, "Token 无效或已过期")
			return
		}

		setUser(c, claims.UserID)
		c.Set(AccessTokenKey, tokenString)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}

func setUser(c *gin.Context, userID uint64) {
	c.Set(consts.UserIDKey, userID)
	newCtx := context.WithValue(c.Request.Context(), consts.UserIDKey, userID)
	c.Request = c.Request.WithContext(newCtx)
}
