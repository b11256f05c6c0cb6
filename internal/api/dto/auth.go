package dto

import "time"

// RegisterDTO 注册
type RegisterDTO struct {
	Username string `json:"username" binding:"required" validate:"min=3,max=50"`
	Email    string `json:"email" binding:"required" validate:"email,max=255"`
	Password string `json:"password" binding:"required" validate:"min=6,max=72"`
}

// LoginDTO 邮箱密码登录
type LoginDTO struct {
	Email    string `json:"email" binding:"required" validate:"email"`
	Password string `json:"password" binding:"required"`
}

// RefreshDTO 刷新与登出都携带 Refresh Token
type RefreshDTO struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenDTO 签发结果
type TokenDTO struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	TokenType    string    `json:"tokenType"`
	ExpiresAt    time.Time `json:"expiresAt"`
	User         *UserDTO  `json:"user,omitempty"`
}

type UserDTO struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}
