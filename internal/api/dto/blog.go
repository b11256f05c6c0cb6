package dto

import "time"

// PublishDTO 发布文档为博客
type PublishDTO struct {
	FileID         uint64   `json:"fileId" binding:"required"`
	Title          string   `json:"title" validate:"max=255"`
	Excerpt        string   `json:"excerpt" validate:"max=300"`
	Tags           []string `json:"tags" validate:"max=20,dive,max=64"`
	SEOTitle       *string  `json:"seoTitle" validate:"omitempty,max=255"`
	SEODescription *string  `json:"seoDescription" validate:"omitempty,max=500"`
	SEOImage       *string  `json:"seoImage" validate:"omitempty,max=500"`
}

// UpdateBlogDTO 直接编辑，nil 字段保持不变
type UpdateBlogDTO struct {
	Title          *string   `json:"title" validate:"omitempty,max=255"`
	Excerpt        *string   `json:"excerpt" validate:"omitempty,max=300"`
	Tags           *[]string `json:"tags" validate:"omitempty,max=20,dive,max=64"`
	Status         *string   `json:"status" validate:"omitempty,oneof=draft published archived"`
	SEOTitle       *string   `json:"seoTitle" validate:"omitempty,max=255"`
	SEODescription *string   `json:"seoDescription" validate:"omitempty,max=500"`
	SEOImage       *string   `json:"seoImage" validate:"omitempty,max=500"`
}

type BlogDTO struct {
	ID             uint64     `json:"id"`
	UserID         uint64     `json:"userId"`
	FileID         uint64     `json:"fileId"`
	FileName       string     `json:"fileName"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	Content        string     `json:"content,omitempty"`
	Excerpt        string     `json:"excerpt"`
	Tags           []string   `json:"tags"`
	Status         string     `json:"status"`
	PublishedAt    *time.Time `json:"publishedAt"`
	Views          int64      `json:"views"`
	Likes          int64      `json:"likes"`
	Shares         int64      `json:"shares"`
	ReadTime       int        `json:"readTime"`
	SEOTitle       string     `json:"seoTitle"`
	SEODescription string     `json:"seoDescription"`
	SEOImage       string     `json:"seoImage"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// BlogListQuery 我的博客与公开列表共用
type BlogListQuery struct {
	Status   string `form:"status" validate:"omitempty,oneof=draft published archived"`
	FileID   uint64 `form:"fileId"`
	Search   string `form:"search"`
	Tags     string `form:"tags"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

type BlogListDTO struct {
	Blogs    []*BlogDTO `json:"blogs"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
	HasMore  bool       `json:"hasMore"`
}
