package job

import (
	"Inkpost/internal/pkg/logger"
	"Inkpost/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// TokenPurgeJob 删除已过期的 refresh token 行
type TokenPurgeJob struct {
	authSvc service.AuthService
}

func NewTokenPurgeJob(authSvc service.AuthService) *TokenPurgeJob {
	return &TokenPurgeJob{authSvc: authSvc}
}

func (s *TokenPurgeJob) Run() {
	ctx := logger.WithTraceID(context.Background(), "job-token-"+uuid.NewString())

	n, err := s.authSvc.PurgeExpiredTokens(ctx)
	if err != nil {
		log.ErrorContext(ctx, "purge expired refresh tokens error", "err", err)
		return
	}
	log.InfoContext(ctx, "purge expired refresh tokens success", "deleted", n)
}
