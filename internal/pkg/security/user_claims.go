package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	jwtSecret       = []byte("inkpost-dev-secret")
	jwtIssuer       = "Inkpost"
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// Init 用配置覆盖默认的签名密钥与有效期
func Init(secret, issuer string, accessTTL, refreshTTL time.Duration) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
	if issuer != "" {
		jwtIssuer = issuer
	}
	if accessTTL > 0 {
		AccessTokenTTL = accessTTL
	}
	if refreshTTL > 0 {
		RefreshTokenTTL = refreshTTL
	}
}

// UserClaims Access Token 中携带的业务信息
type UserClaims struct {
	UserID uint64 `json:"user_id"`
	jwt.RegisteredClaims
}
