package model

import (
	"time"
)

// AnalyticsBucket 来源、地区、设备等维度的计数
type AnalyticsBucket struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

type DailyAnalytics struct {
	ID            uint64            `gorm:"primaryKey" json:"id"`
	BlogID        uint64            `gorm:"not null;uniqueIndex:idx_blog_date" json:"blogId"`
	Date          time.Time         `gorm:"type:date;not null;uniqueIndex:idx_blog_date" json:"date"`
	Views         int64             `gorm:"not null;default:0" json:"views"`
	UniqueViews   int64             `gorm:"not null;default:0" json:"uniqueViews"`
	Likes         int64             `gorm:"not null;default:0" json:"likes"`
	Shares        int64             `gorm:"not null;default:0" json:"shares"`
	AvgTimeOnPage float64           `gorm:"not null;default:0" json:"avgTimeOnPage"`
	BounceRate    float64           `gorm:"not null;default:0" json:"bounceRate"`
	Referrers     []AnalyticsBucket `gorm:"type:json;serializer:json" json:"referrers"`
	Countries     []AnalyticsBucket `gorm:"type:json;serializer:json" json:"countries"`
	Devices       []AnalyticsBucket `gorm:"type:json;serializer:json" json:"devices"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

func (DailyAnalytics) TableName() string {
	return "blog_daily_analytics"
}
