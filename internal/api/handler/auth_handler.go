package handler

import (
	"Inkpost/internal/api/dto"
	"Inkpost/internal/api/middleware"
	"Inkpost/internal/pkg/response"
	"Inkpost/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

func (s *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterDTO
	if !bindJSON(c, &req) {
		return
	}
	out, err := s.authSvc.Register(c.Request.Context(), &req, c.Request.UserAgent())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessCreated(c, out)
}

func (s *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginDTO
	if !bindJSON(c, &req) {
		return
	}
	out, err := s.authSvc.Login(c.Request.Context(), &req, c.Request.UserAgent())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}

func (s *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshDTO
	if !bindJSON(c, &req) {
		return
	}
	out, err := s.authSvc.Refresh(c.Request.Context(), req.RefreshToken, c.Request.UserAgent())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}

// Logout 请求体中的 Refresh Token 可选
func (s *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshDTO
	_ = c.ShouldBindJSON(&req)

	err := s.authSvc.Logout(c.Request.Context(), currentUser(c), c.GetString(middleware.AccessTokenKey), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AuthHandler) LogoutAll(c *gin.Context) {
	err := s.authSvc.LogoutAll(c.Request.Context(), currentUser(c), c.GetString(middleware.AccessTokenKey))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AuthHandler) Me(c *gin.Context) {
	out, err := s.authSvc.Me(c.Request.Context(), currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}
