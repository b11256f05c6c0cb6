package model

import (
	"time"
)

type BlogPost struct {
	ID             uint64     `gorm:"primaryKey" json:"id"`
	UserID         uint64     `gorm:"not null;uniqueIndex:idx_user_file;index:idx_user_status" json:"userId"`
	FileID         uint64     `gorm:"not null;uniqueIndex:idx_user_file" json:"fileId"`
	FileName       string     `gorm:"type:varchar(255)" json:"fileName"` // 发布时源文档名快照
	Title          string     `gorm:"type:varchar(255);not null" json:"title"`
	Slug           string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_slug" json:"slug"`
	Content        string     `gorm:"type:longtext" json:"content"`
	Excerpt        string     `gorm:"type:varchar(300)" json:"excerpt"`
	Tags           []string   `gorm:"type:json;serializer:json" json:"tags"` // 有序、已小写
	Status         string     `gorm:"type:varchar(16);not null;default:draft;index:idx_user_status;index:idx_status_published" json:"status"`
	PublishedAt    *time.Time `gorm:"index:idx_status_published" json:"publishedAt"`
	Views          int64      `gorm:"not null;default:0" json:"views"`
	Likes          int64      `gorm:"not null;default:0" json:"likes"`
	Shares         int64      `gorm:"not null;default:0" json:"shares"`
	ReadTime       int        `gorm:"not null;default:1" json:"readTime"`
	SEOTitle       string     `gorm:"column:seo_title;type:varchar(255)" json:"seoTitle"`
	SEODescription string     `gorm:"column:seo_description;type:varchar(500)" json:"seoDescription"`
	SEOImage       string     `gorm:"column:seo_image;type:varchar(500)" json:"seoImage"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func (BlogPost) TableName() string {
	return "blog_posts"
}

func (b *BlogPost) IsPublished() bool {
	return b.Status == "published"
}
