package service

import (
	"Inkpost/internal/api/config"
	"Inkpost/internal/model"
	"Inkpost/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlogAnalytics(t *testing.T) {
	now := time.Date(2024, 6, 30, 15, 0, 0, 0, time.Local)
	fixedNow(t, now)

	blogs := newFakeBlogRepo()
	post := blogs.add(&model.BlogPost{UserID: 1, Title: "Stats"})
	analytics := &fakeAnalyticsRepo{rows: []*model.DailyAnalytics{
		{BlogID: post.ID, Date: time.Date(2024, 6, 28, 0, 0, 0, 0, time.Local), Views: 3, UniqueViews: 2, Likes: 1, AvgTimeOnPage: 30},
		{BlogID: post.ID, Date: time.Date(2024, 6, 29, 0, 0, 0, 0, time.Local), Views: 5, Shares: 2, AvgTimeOnPage: 60,
			Referrers: []model.AnalyticsBucket{{Key: "google", Count: 4}}},
	}}
	svc := NewAnalyticsService(blogs, analytics, config.AnalyticsConfig{CacheTTL: 300})
	ctx := context.Background()

	out, err := svc.BlogAnalytics(ctx, 1, post.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 30, out.Period.Days)
	assert.Equal(t, "2024-06-01", out.Period.Start)
	assert.Equal(t, "2024-06-30", out.Period.End)
	assert.Equal(t, int64(8), out.Totals.Views)
	assert.Equal(t, int64(2), out.Totals.UniqueViews)
	assert.Equal(t, int64(1), out.Totals.Likes)
	assert.Equal(t, int64(2), out.Totals.Shares)
	assert.InDelta(t, 45.0, out.Totals.AvgTimeOnPage, 1e-9)
	require.Len(t, out.Daily, 2)
	assert.Equal(t, "2024-06-28", out.Daily[0].Date)
	assert.Empty(t, out.Daily[0].Referrers)
	assert.Equal(t, "google", out.Daily[1].Referrers[0].Key)

	out, err = svc.BlogAnalytics(ctx, 1, post.ID, 1000)
	require.NoError(t, err)
	assert.Equal(t, 365, out.Period.Days)

	_, err = svc.BlogAnalytics(ctx, 2, post.ID, 7)
	assert.ErrorIs(t, err, ErrBlogNotFound)
}

func TestDashboardIsCached(t *testing.T) {
	testRedis.FlushAll()
	blogs := newFakeBlogRepo()
	for i := 0; i < 7; i++ {
		blogs.add(&model.BlogPost{UserID: 4, FileID: uint64(i), Views: int64(i)})
	}
	blogs.count = 3
	analytics := &fakeAnalyticsRepo{totals: &repository.AnalyticsTotals{Views: 42, Likes: 7}}
	svc := NewAnalyticsService(blogs, analytics, config.AnalyticsConfig{CacheTTL: 300})
	ctx := context.Background()

	out, err := svc.Dashboard(ctx, 4, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(7), out.BlogCount)
	assert.Equal(t, int64(3), out.PublishedCount)
	assert.Equal(t, int64(42), out.Totals.Views)
	assert.Len(t, out.TopPosts, 5)
	assert.Len(t, out.RecentPosts, 5)
	assert.True(t, testRedis.Exists("analytics:dashboard:4:30"))

	cached, err := svc.Dashboard(ctx, 4, 30)
	require.NoError(t, err)
	assert.Equal(t, 1, analytics.sumCalls, "second call is served from redis")
	assert.Equal(t, out.Totals, cached.Totals)

	testRedis.FastForward(6 * time.Minute)
	_, err = svc.Dashboard(ctx, 4, 30)
	require.NoError(t, err)
	assert.Equal(t, 2, analytics.sumCalls)
}

func TestWarmTopDashboards(t *testing.T) {
	testRedis.FlushAll()
	blogs := newFakeBlogRepo()
	blogs.add(&model.BlogPost{UserID: 1, FileID: 1, Status: "published"})
	blogs.add(&model.BlogPost{UserID: 1, FileID: 2, Status: "published"})
	blogs.add(&model.BlogPost{UserID: 2, FileID: 3, Status: "published"})
	svc := NewAnalyticsService(blogs, &fakeAnalyticsRepo{}, config.AnalyticsConfig{})

	n, err := svc.WarmTopDashboards(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, testRedis.Exists("analytics:dashboard:1:30"))
	assert.True(t, testRedis.Exists("analytics:dashboard:2:30"))
}
