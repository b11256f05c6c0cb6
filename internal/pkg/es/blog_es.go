package es

import "time"

// BlogES 已发布博客的检索文档，正文为纯文本
type BlogES struct {
	ID          uint64     `json:"id"`
	UserID      uint64     `json:"user_id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	Tags        []string   `json:"tags"`
	Views       int64      `json:"views"`
	Likes       int64      `json:"likes"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
