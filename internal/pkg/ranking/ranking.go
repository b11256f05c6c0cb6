// Package ranking 对博客候选集做加权子串打分、排序、分页与标签建议。
// 全部计算在完整候选集上完成，不做近似 top-k。
package ranking

import (
	"Inkpost/internal/model"
	"sort"
	"strings"
	"time"
)

// 匹配字段名，用于返回命中解释
const (
	FieldTitle          = "title"
	FieldSEOTitle       = "seoTitle"
	FieldExcerpt        = "excerpt"
	FieldTags           = "tags"
	FieldFileName       = "fileName"
	FieldContent        = "content"
	FieldSEODescription = "seoDescription"
)

// Weights 每个字段命中即贡献固定权重，与命中次数无关
type Weights struct {
	Title          int
	SEOTitle       int
	Excerpt        int
	Tag            int
	FileName       int
	Body           int
	SEODescription int
}

var DefaultWeights = Weights{
	Title:          10,
	SEOTitle:       8,
	Excerpt:        6,
	Tag:            5,
	FileName:       5,
	Body:           3,
	SEODescription: 2,
}

type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortDate      SortKey = "date"
	SortViews     SortKey = "views"
	SortLikes     SortKey = "likes"
)

type Scored struct {
	Post    *model.BlogPost
	Score   int
	Matched []string
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Scorer 无状态，可并发使用
type Scorer struct {
	weights Weights
}

func NewScorer(w Weights) *Scorer {
	return &Scorer{weights: w}
}

// Score 大小写不敏感的子串匹配，返回总分与命中字段
func (s *Scorer) Score(post *model.BlogPost, query string) (int, []string) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || post == nil {
		return 0, nil
	}

	score := 0
	var matched []string
	hit := func(field string, weight int, ok bool) {
		if ok {
			score += weight
			matched = append(matched, field)
		}
	}

	hit(FieldTitle, s.weights.Title, contains(post.Title, q))
	hit(FieldSEOTitle, s.weights.SEOTitle, contains(post.SEOTitle, q))
	hit(FieldExcerpt, s.weights.Excerpt, contains(post.Excerpt, q))
	hit(FieldTags, s.weights.Tag, anyContains(post.Tags, q))
	hit(FieldFileName, s.weights.FileName, contains(post.FileName, q))
	hit(FieldContent, s.weights.Body, contains(post.Content, q))
	hit(FieldSEODescription, s.weights.SEODescription, contains(post.SEODescription, q))

	return score, matched
}

// Rank 打分并剔除 0 分候选，再按 sortBy/desc 完整排序
func (s *Scorer) Rank(posts []*model.BlogPost, query string, sortBy SortKey, desc bool) []Scored {
	scored := make([]Scored, 0, len(posts))
	for _, p := range posts {
		score, matched := s.Score(p, query)
		if score == 0 {
			continue
		}
		scored = append(scored, Scored{Post: p, Score: score, Matched: matched})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return less(scored[i], scored[j], sortBy, desc)
	})
	return scored
}

// Paginate page 从 1 开始；越界返回空切片
func Paginate(scored []Scored, page, pageSize int) []Scored {
	if page < 1 || pageSize < 1 || page-1 >= (len(scored)+pageSize-1)/pageSize {
		return []Scored{}
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(scored) {
		end = len(scored)
	}
	return scored[start:end]
}

// SuggestTags 统计候选集中的标签频次，按次数降序、标签升序取前 limit 个
func SuggestTags(scored []Scored, limit int) []TagCount {
	counts := make(map[string]int)
	for _, sc := range scored {
		for _, tag := range sc.Post.Tags {
			counts[strings.ToLower(tag)]++
		}
	}

	out := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})

	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func less(a, b Scored, sortBy SortKey, desc bool) bool {
	switch sortBy {
	case SortDate:
		if c := compareTime(a.Post.PublishedAt, b.Post.PublishedAt); c != 0 {
			return directed(c, desc)
		}
	case SortViews:
		if c := compareInt(a.Post.Views, b.Post.Views); c != 0 {
			return directed(c, desc)
		}
	case SortLikes:
		if c := compareInt(a.Post.Likes, b.Post.Likes); c != 0 {
			return directed(c, desc)
		}
	default:
		if c := compareInt(int64(a.Score), int64(b.Score)); c != 0 {
			return directed(c, desc)
		}
		if c := compareTime(a.Post.PublishedAt, b.Post.PublishedAt); c != 0 {
			return c > 0
		}
	}
	return a.Post.ID > b.Post.ID
}

func directed(c int, desc bool) bool {
	if desc {
		return c > 0
	}
	return c < 0
}

func compareInt(a, b int64) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	}
	return 0
}

// compareTime 未发布（nil）视为最早
func compareTime(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case a.After(*b):
		return 1
	case a.Before(*b):
		return -1
	}
	return 0
}

func contains(field, lowerQuery string) bool {
	return field != "" && strings.Contains(strings.ToLower(field), lowerQuery)
}

func anyContains(fields []string, lowerQuery string) bool {
	for _, f := range fields {
		if contains(f, lowerQuery) {
			return true
		}
	}
	return false
}
