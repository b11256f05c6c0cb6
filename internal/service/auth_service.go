package service

import (
	"Inkpost/internal/api/dto"
	"Inkpost/internal/model"
	"Inkpost/internal/pkg/consts"
	"Inkpost/internal/pkg/redis"
	"Inkpost/internal/pkg/security"
	"Inkpost/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/copier"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterDTO, userAgent string) (*dto.TokenDTO, error)
	Login(ctx context.Context, req *dto.LoginDTO, userAgent string) (*dto.TokenDTO, error)
	Refresh(ctx context.Context, refreshToken, userAgent string) (*dto.TokenDTO, error)
	Logout(ctx context.Context, userID uint64, accessToken, refreshToken string) error
	LogoutAll(ctx context.Context, userID uint64, accessToken string) error
	Me(ctx context.Context, userID uint64) (*dto.UserDTO, error)
	PurgeExpiredTokens(ctx context.Context) (int64, error)
}

type authServiceImpl struct {
	userRepo  repository.UserRepo
	tokenRepo repository.RefreshTokenRepo
}

func NewAuthService(userRepo repository.UserRepo, tokenRepo repository.RefreshTokenRepo) AuthService {
	return &authServiceImpl{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

// Register 注册并同时创建根目录，成功后直接登录
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterDTO, userAgent string) (*dto.TokenDTO, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" || email == "" || req.Password == "" {
		return nil, ErrParamInvalid
	}

	exist, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrEmailExist
	}
	exist, err = s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrUsernameExist
	}

	hashed, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{Username: username, Email: email, Password: hashed}
	if err = s.userRepo.CreateUserWithRootFolder(ctx, user, consts.DefaultFolderName); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrEmailExist
		}
		return nil, err
	}

	log.InfoContext(ctx, "user registered", "userID", user.ID)
	return s.issueTokens(ctx, user, userAgent)
}

func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginDTO, userAgent string) (*dto.TokenDTO, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrPasswordIncorrect
	}
	if err = security.CheckPasswordHash(req.Password, user.Password); err != nil {
		if errors.Is(err, security.ErrInvalidCredentials) {
			return nil, ErrPasswordIncorrect
		}
		return nil, err
	}
	return s.issueTokens(ctx, user, userAgent)
}

// Refresh 轮换：旧令牌必须同时存在于缓存与数据库且未过期，吊销成功后才签发新令牌
func (s *authServiceImpl) Refresh(ctx context.Context, refreshToken, userAgent string) (*dto.TokenDTO, error) {
	if refreshToken == "" {
		return nil, ErrTokenInvalid
	}
	hash := security.HashRefreshToken(refreshToken)

	cached, err := redis.GetValue(ctx, consts.RefreshTokenKey+hash)
	if err != nil {
		return nil, err
	}
	if cached == "" {
		return nil, ErrTokenInvalid
	}

	stored, err := s.tokenRepo.GetByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if stored == nil || !stored.Usable(time.Now()) {
		return nil, ErrTokenInvalid
	}

	revoked, err := s.tokenRepo.Revoke(ctx, hash)
	if err != nil {
		return nil, err
	}
	// 并发轮换时只有一个请求能吊销成功
	if !revoked {
		return nil, ErrTokenInvalid
	}
	s.forgetRefreshTokens(ctx, stored.UserID, hash)

	user, err := s.userRepo.GetUserById(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrTokenInvalid
	}
	return s.issueTokens(ctx, user, userAgent)
}

func (s *authServiceImpl) Logout(ctx context.Context, userID uint64, accessToken, refreshToken string) error {
	if refreshToken != "" {
		hash := security.HashRefreshToken(refreshToken)
		stored, err := s.tokenRepo.GetByHash(ctx, hash)
		if err != nil {
			return err
		}
		if stored != nil && stored.UserID == userID {
			if _, err = s.tokenRepo.Revoke(ctx, hash); err != nil {
				return err
			}
			s.forgetRefreshTokens(ctx, userID, hash)
		}
	}
	return s.blacklistAccessToken(ctx, accessToken)
}

func (s *authServiceImpl) LogoutAll(ctx context.Context, userID uint64, accessToken string) error {
	hashes, err := s.tokenRepo.RevokeAllForUser(ctx, userID)
	if err != nil {
		return err
	}
	s.forgetRefreshTokens(ctx, userID, hashes...)
	if err = redis.DeleteKey(ctx, consts.UserRefreshSetKey+strconv.FormatUint(userID, 10)); err != nil {
		log.WarnContext(ctx, "failed to drop refresh token set", "err", err)
	}
	log.InfoContext(ctx, "all sessions revoked", "userID", userID, "count", len(hashes))
	return s.blacklistAccessToken(ctx, accessToken)
}

func (s *authServiceImpl) Me(ctx context.Context, userID uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	out := &dto.UserDTO{}
	if err = copier.Copy(out, user); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *authServiceImpl) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	return s.tokenRepo.PurgeExpired(ctx, time.Now())
}

func (s *authServiceImpl) issueTokens(ctx context.Context, user *model.User, userAgent string) (*dto.TokenDTO, error) {
	accessToken, expiresAt, err := security.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}
	raw, hash, err := security.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	ttl := security.RefreshTokenTTL
	record := &model.RefreshToken{
		UserID:    user.ID,
		TokenHash: hash,
		UserAgent: truncate(userAgent, 255),
		ExpiresAt: time.Now().Add(ttl),
	}
	if err = s.tokenRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	uid := strconv.FormatUint(user.ID, 10)
	if err = redis.SetWithExpiration(ctx, consts.RefreshTokenKey+hash, uid, ttl); err != nil {
		return nil, err
	}
	if err = redis.SAddWithExpiration(ctx, consts.UserRefreshSetKey+uid, hash, ttl); err != nil {
		log.WarnContext(ctx, "failed to index refresh token", "err", err)
	}

	userDTO := &dto.UserDTO{}
	_ = copier.Copy(userDTO, user)
	return &dto.TokenDTO{
		AccessToken:  accessToken,
		RefreshToken: raw,
		TokenType:    "Bearer",
		ExpiresAt:    expiresAt,
		User:         userDTO,
	}, nil
}

func (s *authServiceImpl) forgetRefreshTokens(ctx context.Context, userID uint64, hashes ...string) {
	if len(hashes) == 0 {
		return
	}
	keys := make([]string, 0, len(hashes))
	for _, h := range hashes {
		keys = append(keys, consts.RefreshTokenKey+h)
	}
	if err := redis.DeleteKey(ctx, keys...); err != nil {
		log.WarnContext(ctx, "failed to drop cached refresh tokens", "err", err)
	}
	if err := redis.SRem(ctx, consts.UserRefreshSetKey+strconv.FormatUint(userID, 10), hashes...); err != nil {
		log.WarnContext(ctx, "failed to unindex refresh tokens", "err", err)
	}
}

// blacklistAccessToken 签名在剩余有效期内拒绝访问
func (s *authServiceImpl) blacklistAccessToken(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}
	claims, err := security.ValidateToken(accessToken)
	if err != nil {
		return nil
	}
	signature, err := security.ExtractSignature(accessToken)
	if err != nil {
		return nil
	}
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}
	return redis.SetWithExpiration(ctx, consts.AccessBlacklistKey+signature, "1", remaining)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
