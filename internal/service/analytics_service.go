package service

import (
	"Inkpost/internal/api/config"
	"Inkpost/internal/api/dto"
	"Inkpost/internal/model"
	"Inkpost/internal/pkg/consts"
	"Inkpost/internal/pkg/redis"
	"Inkpost/internal/pkg/util"
	"Inkpost/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
	"golang.org/x/sync/errgroup"
)

const (
	defaultAnalyticsDays = 30
	maxAnalyticsDays     = 365
	dashboardListSize    = 5
	warmCandidateSize    = 50
	dateLayout           = "2006-01-02"
)

type AnalyticsService interface {
	BlogAnalytics(ctx context.Context, userID, blogID uint64, days int) (*dto.BlogAnalyticsDTO, error)
	Dashboard(ctx context.Context, userID uint64, days int) (*dto.DashboardDTO, error)
	WarmTopDashboards(ctx context.Context) (int, error)
}

type analyticsServiceImpl struct {
	blogRepo      repository.BlogRepo
	analyticsRepo repository.AnalyticsRepo
	cacheTTL      time.Duration
}

func NewAnalyticsService(blogRepo repository.BlogRepo, analyticsRepo repository.AnalyticsRepo, cfg config.AnalyticsConfig) AnalyticsService {
	ttl := time.Duration(cfg.CacheTTL) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &analyticsServiceImpl{
		blogRepo:      blogRepo,
		analyticsRepo: analyticsRepo,
		cacheTTL:      ttl,
	}
}

// BlogAnalytics 仅作者可见，窗口内按日期升序
func (s *analyticsServiceImpl) BlogAnalytics(ctx context.Context, userID, blogID uint64, days int) (*dto.BlogAnalyticsDTO, error) {
	post, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if post == nil || post.UserID != userID {
		return nil, ErrBlogNotFound
	}

	period, from, to := window(days, nowFunc())
	rows, err := s.analyticsRepo.ListDaily(ctx, blogID, from, to)
	if err != nil {
		return nil, err
	}

	out := &dto.BlogAnalyticsDTO{
		BlogID: post.ID,
		Title:  post.Title,
		Period: period,
		Daily:  make([]*dto.DailyAnalyticsDTO, 0, len(rows)),
	}
	var timeOnPage float64
	for _, row := range rows {
		out.Totals.Views += row.Views
		out.Totals.UniqueViews += row.UniqueViews
		out.Totals.Likes += row.Likes
		out.Totals.Shares += row.Shares
		timeOnPage += row.AvgTimeOnPage
		out.Daily = append(out.Daily, toDailyDTO(row))
	}
	if len(rows) > 0 {
		out.Totals.AvgTimeOnPage = timeOnPage / float64(len(rows))
	}
	return out, nil
}

// Dashboard 结果缓存在 analytics:dashboard:<uid>:<days>
func (s *analyticsServiceImpl) Dashboard(ctx context.Context, userID uint64, days int) (*dto.DashboardDTO, error) {
	days = clampDays(days)
	key := fmt.Sprintf("%s%d:%d", consts.AnalyticsDashboardKey, userID, days)

	cached, err := redis.GetValue(ctx, key)
	if err != nil {
		log.WarnContext(ctx, "failed to read dashboard cache", "key", key, "err", err)
	}
	if cached != "" {
		out := &dto.DashboardDTO{}
		if err = json.Unmarshal([]byte(cached), out); err == nil {
			return out, nil
		}
		log.WarnContext(ctx, "corrupt dashboard cache entry", "key", key, "err", err)
	}

	out, err := s.buildDashboard(ctx, userID, days)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, out)
	return out, nil
}

func (s *analyticsServiceImpl) buildDashboard(ctx context.Context, userID uint64, days int) (*dto.DashboardDTO, error) {
	period, from, to := window(days, nowFunc())
	owned := repository.And(repository.OwnedBy{UserID: userID})
	out := &dto.DashboardDTO{Period: period}

	ids, err := s.blogRepo.PluckIDs(ctx, owned)
	if err != nil {
		return nil, err
	}
	out.BlogCount = int64(len(ids))

	var top, recent []*model.BlogPost
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		totals, err := s.analyticsRepo.SumDaily(gCtx, ids, from, to)
		if err != nil {
			return err
		}
		return copier.Copy(&out.Totals, totals)
	})
	g.Go(func() error {
		var err error
		out.PublishedCount, err = s.blogRepo.Count(gCtx, owned.With(repository.StatusIs{Status: consts.BlogStatusPublished}))
		return err
	})
	g.Go(func() error {
		var err error
		top, _, err = s.blogRepo.List(gCtx, owned, "views DESC, id DESC", dashboardListSize, 0)
		return err
	})
	g.Go(func() error {
		var err error
		recent, _, err = s.blogRepo.List(gCtx, owned, "updated_at DESC, id DESC", dashboardListSize, 0)
		return err
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}

	out.TopPosts = toSummaries(top)
	out.RecentPosts = toSummaries(recent)
	return out, nil
}

// WarmTopDashboards 预热浏览量最高的博客作者的默认仪表盘
func (s *analyticsServiceImpl) WarmTopDashboards(ctx context.Context) (int, error) {
	posts, _, err := s.blogRepo.List(ctx,
		repository.And(repository.StatusIs{Status: consts.BlogStatusPublished}),
		"views DESC, id DESC", warmCandidateSize, 0)
	if err != nil {
		return 0, err
	}

	seen := make(map[uint64]struct{})
	for _, p := range posts {
		if _, ok := seen[p.UserID]; ok {
			continue
		}
		seen[p.UserID] = struct{}{}

		out, err := s.buildDashboard(ctx, p.UserID, defaultAnalyticsDays)
		if err != nil {
			log.WarnContext(ctx, "dashboard warm failed", "userID", p.UserID, "err", err)
			continue
		}
		s.store(ctx, fmt.Sprintf("%s%d:%d", consts.AnalyticsDashboardKey, p.UserID, defaultAnalyticsDays), out)
	}
	return len(seen), nil
}

func (s *analyticsServiceImpl) store(ctx context.Context, key string, out *dto.DashboardDTO) {
	payload, err := json.Marshal(out)
	if err != nil {
		return
	}
	if err = redis.SetWithExpiration(ctx, key, payload, s.cacheTTL); err != nil {
		log.WarnContext(ctx, "failed to write dashboard cache", "key", key, "err", err)
	}
}

func clampDays(days int) int {
	if days == 0 {
		return defaultAnalyticsDays
	}
	return util.ClampInt(days, 1, maxAnalyticsDays)
}

// window 以今天零点为终点的 days 天闭区间
func window(days int, now time.Time) (dto.PeriodDTO, time.Time, time.Time) {
	days = clampDays(days)
	to := util.GetMidnight(now)
	from := to.AddDate(0, 0, -(days - 1))
	return dto.PeriodDTO{
		Start: from.Format(dateLayout),
		End:   to.Format(dateLayout),
		Days:  days,
	}, from, to
}

func toDailyDTO(row *model.DailyAnalytics) *dto.DailyAnalyticsDTO {
	out := &dto.DailyAnalyticsDTO{
		Date:          row.Date.Format(dateLayout),
		Views:         row.Views,
		UniqueViews:   row.UniqueViews,
		Likes:         row.Likes,
		Shares:        row.Shares,
		AvgTimeOnPage: row.AvgTimeOnPage,
		BounceRate:    row.BounceRate,
		Referrers:     toBuckets(row.Referrers),
		Countries:     toBuckets(row.Countries),
		Devices:       toBuckets(row.Devices),
	}
	return out
}

func toBuckets(in []model.AnalyticsBucket) []dto.BucketDTO {
	out := make([]dto.BucketDTO, 0, len(in))
	for _, b := range in {
		out = append(out, dto.BucketDTO{Key: b.Key, Count: b.Count})
	}
	return out
}

func toSummaries(posts []*model.BlogPost) []*dto.BlogSummaryDTO {
	out := make([]*dto.BlogSummaryDTO, 0, len(posts))
	for _, p := range posts {
		d := &dto.BlogSummaryDTO{}
		_ = copier.Copy(d, p)
		out = append(out, d)
	}
	return out
}
