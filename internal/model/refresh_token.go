package model

import (
	"time"
)

// RefreshToken 只保存令牌哈希，明文仅在签发时返回给客户端
type RefreshToken struct {
	ID        uint64     `gorm:"primaryKey"`
	UserID    uint64     `gorm:"not null;index:idx_user_id"`
	TokenHash string     `gorm:"type:char(64);not null;uniqueIndex:idx_token_hash"`
	UserAgent string     `gorm:"type:varchar(255)"`
	ExpiresAt time.Time  `gorm:"not null;index:idx_expires_at"`
	RevokedAt *time.Time `gorm:"index:idx_revoked_at"`
	CreatedAt time.Time
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (t *RefreshToken) Usable(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}
