package job

import (
	"Inkpost/internal/pkg/logger"
	"Inkpost/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// AnalyticsWarmJob 预热热门作者的看板缓存
type AnalyticsWarmJob struct {
	analyticsSvc service.AnalyticsService
}

func NewAnalyticsWarmJob(analyticsSvc service.AnalyticsService) *AnalyticsWarmJob {
	return &AnalyticsWarmJob{analyticsSvc: analyticsSvc}
}

func (s *AnalyticsWarmJob) Run() {
	ctx := logger.WithTraceID(context.Background(), "job-analytics-"+uuid.NewString())

	n, err := s.analyticsSvc.WarmTopDashboards(ctx)
	if err != nil {
		log.ErrorContext(ctx, "warm dashboards error", "err", err)
		return
	}
	log.DebugContext(ctx, "warm dashboards success", "authors", n)
}
