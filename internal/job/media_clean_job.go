package job

import (
	"Inkpost/internal/pkg/consts"
	"Inkpost/internal/pkg/logger"
	"Inkpost/internal/pkg/redis"
	"Inkpost/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	mediaMaxAge   = 24 * time.Hour
	mediaLockTTL  = 10 * time.Minute
	mediaLockOnce = 1
)

// MediaCleanupJob 清理超过一天仍未被发布引用的临时图片，多实例下由 redis 锁互斥
type MediaCleanupJob struct {
	mediaSvc service.MediaService
}

func NewMediaCleanupJob(mediaSvc service.MediaService) *MediaCleanupJob {
	return &MediaCleanupJob{mediaSvc: mediaSvc}
}

func (s *MediaCleanupJob) Run() {
	traceID := "job-media-" + uuid.NewString()
	ctx := logger.WithTraceID(context.Background(), traceID)

	locked, err := redis.TryLock(ctx, consts.MediaCleanLock, traceID, mediaLockTTL, mediaLockOnce)
	if err != nil {
		log.ErrorContext(ctx, "acquire media clean lock error", "err", err)
		return
	}
	if !locked {
		log.InfoContext(ctx, "media cleanup running elsewhere, skipped")
		return
	}
	defer redis.UnLock(ctx, consts.MediaCleanLock, traceID)

	count, err := s.mediaSvc.CleanTemp(ctx, mediaMaxAge)
	if err != nil {
		log.ErrorContext(ctx, "media cleanup error", "err", err)
		return
	}
	if count > 0 {
		log.InfoContext(ctx, "media cleanup job finished", "cleaned_count", count)
	}
}
