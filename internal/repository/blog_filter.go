package repository

import (
	"Inkpost/internal/pkg/consts"
	"strings"

	"gorm.io/gorm"
)

// BlogPredicate 可组合的查询条件，BlogFilter 以 AND 连接
type BlogPredicate interface {
	Apply(db *gorm.DB) *gorm.DB
}

type BlogFilter struct {
	preds []BlogPredicate
}

func And(preds ...BlogPredicate) BlogFilter {
	out := make([]BlogPredicate, 0, len(preds))
	for _, p := range preds {
		if p != nil {
			out = append(out, p)
		}
	}
	return BlogFilter{preds: out}
}

func (f BlogFilter) With(p BlogPredicate) BlogFilter {
	if p == nil {
		return f
	}
	preds := make([]BlogPredicate, len(f.preds), len(f.preds)+1)
	copy(preds, f.preds)
	return BlogFilter{preds: append(preds, p)}
}

// Predicates 返回已组合的条件副本
func (f BlogFilter) Predicates() []BlogPredicate {
	return append([]BlogPredicate(nil), f.preds...)
}

func (f BlogFilter) Apply(db *gorm.DB) *gorm.DB {
	for _, p := range f.preds {
		db = p.Apply(db)
	}
	return db
}

// StatusIs 限定状态
type StatusIs struct {
	Status string
}

func (p StatusIs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", p.Status)
}

// OwnedBy 限定作者
type OwnedBy struct {
	UserID uint64
}

func (p OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", p.UserID)
}

// VisibleTo 匿名或未要求包含自己时仅已发布；否则为 自己的全部 ∪ 已发布
type VisibleTo struct {
	UserID     uint64
	IncludeOwn bool
}

func (p VisibleTo) Apply(db *gorm.DB) *gorm.DB {
	if p.UserID == 0 || !p.IncludeOwn {
		return db.Where("status = ?", consts.BlogStatusPublished)
	}
	return db.Where("(user_id = ? OR status = ?)", p.UserID, consts.BlogStatusPublished)
}

// HasAnyTag 标签集合与给定标签有交集（大小写不敏感）
type HasAnyTag struct {
	Tags []string
}

func (p HasAnyTag) Apply(db *gorm.DB) *gorm.DB {
	tags := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 {
		return db
	}
	return db.Where("id IN (SELECT blog_id FROM blog_post_tags WHERE tag IN ?)", tags)
}

// FromFile 限定源文档
type FromFile struct {
	FileID uint64
}

func (p FromFile) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("file_id = ?", p.FileID)
}

// TextContains 公开列表的简单模糊匹配
type TextContains struct {
	Keyword string
}

func (p TextContains) Apply(db *gorm.DB) *gorm.DB {
	kw := strings.TrimSpace(p.Keyword)
	if kw == "" {
		return db
	}
	like := "%" + escapeLike(kw) + "%"
	return db.Where("(title LIKE ? OR excerpt LIKE ? OR content LIKE ?)", like, like, like)
}

// IDIn 限定 ID 集合，空集合不匹配任何记录
type IDIn struct {
	IDs []uint64
}

func (p IDIn) Apply(db *gorm.DB) *gorm.DB {
	if len(p.IDs) == 0 {
		return db.Where("1 = 0")
	}
	return db.Where("id IN ?", p.IDs)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
