package dto

import "time"

type PeriodDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Days  int    `json:"days"`
}

type AnalyticsTotalsDTO struct {
	Views         int64   `json:"views"`
	UniqueViews   int64   `json:"uniqueViews"`
	Likes         int64   `json:"likes"`
	Shares        int64   `json:"shares"`
	AvgTimeOnPage float64 `json:"avgTimeOnPage"`
}

type BucketDTO struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

type DailyAnalyticsDTO struct {
	Date          string      `json:"date"`
	Views         int64       `json:"views"`
	UniqueViews   int64       `json:"uniqueViews"`
	Likes         int64       `json:"likes"`
	Shares        int64       `json:"shares"`
	AvgTimeOnPage float64     `json:"avgTimeOnPage"`
	BounceRate    float64     `json:"bounceRate"`
	Referrers     []BucketDTO `json:"referrers"`
	Countries     []BucketDTO `json:"countries"`
	Devices       []BucketDTO `json:"devices"`
}

type BlogAnalyticsDTO struct {
	BlogID uint64               `json:"blogId"`
	Title  string               `json:"title"`
	Period PeriodDTO            `json:"period"`
	Totals AnalyticsTotalsDTO   `json:"totals"`
	Daily  []*DailyAnalyticsDTO `json:"daily"`
}

type BlogSummaryDTO struct {
	ID          uint64     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Status      string     `json:"status"`
	Views       int64      `json:"views"`
	Likes       int64      `json:"likes"`
	Shares      int64      `json:"shares"`
	PublishedAt *time.Time `json:"publishedAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type DashboardDTO struct {
	Period         PeriodDTO          `json:"period"`
	Totals         AnalyticsTotalsDTO `json:"totals"`
	BlogCount      int64              `json:"blogCount"`
	PublishedCount int64              `json:"publishedCount"`
	TopPosts       []*BlogSummaryDTO  `json:"topPosts"`
	RecentPosts    []*BlogSummaryDTO  `json:"recentPosts"`
}
