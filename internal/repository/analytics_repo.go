package repository

import (
	"Inkpost/internal/model"
	"context"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// AnalyticsTotals 窗口内日统计的汇总
type AnalyticsTotals struct {
	Views         int64   `json:"views"`
	UniqueViews   int64   `json:"uniqueViews"`
	Likes         int64   `json:"likes"`
	Shares        int64   `json:"shares"`
	AvgTimeOnPage float64 `json:"avgTimeOnPage"`
}

type AnalyticsRepo interface {
	ListDaily(ctx context.Context, blogID uint64, from, to time.Time) ([]*model.DailyAnalytics, error)
	SumDaily(ctx context.Context, blogIDs []uint64, from, to time.Time) (*AnalyticsTotals, error)
}

type AnalyticsRepoImpl struct {
	db *gorm.DB
}

func NewAnalyticsRepo(db *gorm.DB) AnalyticsRepo {
	return &AnalyticsRepoImpl{db: db}
}

// ListDaily 闭区间 [from, to]，按日期升序
func (s *AnalyticsRepoImpl) ListDaily(ctx context.Context, blogID uint64, from, to time.Time) ([]*model.DailyAnalytics, error) {
	rows := make([]*model.DailyAnalytics, 0)
	err := s.db.WithContext(ctx).
		Where("blog_id = ? AND date >= ? AND date <= ?", blogID, from, to).
		Order("date ASC").
		Find(&rows).Error
	return rows, pkgerrors.Wrap(err, "list daily analytics")
}

func (s *AnalyticsRepoImpl) SumDaily(ctx context.Context, blogIDs []uint64, from, to time.Time) (*AnalyticsTotals, error) {
	totals := &AnalyticsTotals{}
	if len(blogIDs) == 0 {
		return totals, nil
	}
	err := s.db.WithContext(ctx).Model(&model.DailyAnalytics{}).
		Select("COALESCE(SUM(views), 0) AS views, "+
			"COALESCE(SUM(unique_views), 0) AS unique_views, "+
			"COALESCE(SUM(likes), 0) AS likes, "+
			"COALESCE(SUM(shares), 0) AS shares, "+
			"COALESCE(AVG(avg_time_on_page), 0) AS avg_time_on_page").
		Where("blog_id IN ? AND date >= ? AND date <= ?", blogIDs, from, to).
		Scan(totals).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "sum daily analytics")
	}
	return totals, nil
}
