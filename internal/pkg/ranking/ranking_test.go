package ranking

import (
	"Inkpost/internal/model"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day int) *time.Time {
	t := time.Date(2024, 1, day, 12, 0, 0, 0, time.UTC)
	return &t
}

func ids(scored []Scored) []uint64 {
	out := make([]uint64, len(scored))
	for i, s := range scored {
		out[i] = s.Post.ID
	}
	return out
}

func TestScoreWeights(t *testing.T) {
	s := NewScorer(DefaultWeights)

	tests := []struct {
		name    string
		post    model.BlogPost
		want    int
		matched []string
	}{
		{"body only", model.BlogPost{Content: "I like react hooks"}, 3, []string{FieldContent}},
		{"title and tag", model.BlogPost{Title: "React tips", Tags: []string{"react"}}, 15, []string{FieldTitle, FieldTags}},
		{"seo title", model.BlogPost{SEOTitle: "REACT"}, 8, []string{FieldSEOTitle}},
		{"excerpt", model.BlogPost{Excerpt: "about reactivity"}, 6, []string{FieldExcerpt}},
		{"file name", model.BlogPost{FileName: "react-notes.md"}, 5, []string{FieldFileName}},
		{"seo description", model.BlogPost{SEODescription: "learn React"}, 2, []string{FieldSEODescription}},
		{"multiple tags count once", model.BlogPost{Tags: []string{"react", "react-native"}}, 5, []string{FieldTags}},
		{"repeated matches count once", model.BlogPost{Content: "react react react"}, 3, []string{FieldContent}},
		{
			"every field",
			model.BlogPost{Title: "react", SEOTitle: "react", Excerpt: "react", Tags: []string{"react"}, FileName: "react.md", Content: "react", SEODescription: "react"},
			39,
			[]string{FieldTitle, FieldSEOTitle, FieldExcerpt, FieldTags, FieldFileName, FieldContent, FieldSEODescription},
		},
		{"no match", model.BlogPost{Title: "Vue", Content: "angular"}, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, matched := s.Score(&tt.post, "react")
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.matched, matched)
		})
	}
}

func TestScoreEmptyQuery(t *testing.T) {
	got, _ := NewScorer(DefaultWeights).Score(&model.BlogPost{Title: "x"}, "   ")
	assert.Zero(t, got)
}

func TestRankRelevanceOrdersTitleBeforeBody(t *testing.T) {
	a := &model.BlogPost{ID: 1, Title: "React", PublishedAt: at(1)}
	b := &model.BlogPost{ID: 2, Content: "react", PublishedAt: at(5)}
	c := &model.BlogPost{ID: 3, Title: "Go"}

	got := NewScorer(DefaultWeights).Rank([]*model.BlogPost{b, c, a}, "react", SortRelevance, true)
	require.Len(t, got, 2)
	assert.Equal(t, []uint64{1, 2}, ids(got))
	assert.Equal(t, 10, got[0].Score)
	assert.Equal(t, 3, got[1].Score)
}

func TestRankRelevanceTieBreaksOnPublishedAt(t *testing.T) {
	posts := []*model.BlogPost{
		{ID: 1, Title: "go", PublishedAt: at(1)},
		{ID: 2, Title: "go", PublishedAt: at(3)},
		{ID: 3, Title: "go", PublishedAt: nil},
		{ID: 4, Title: "go", PublishedAt: at(2)},
	}
	got := NewScorer(DefaultWeights).Rank(posts, "go", SortRelevance, true)
	assert.Equal(t, []uint64{2, 4, 1, 3}, ids(got))
}

func TestRankBySortKeys(t *testing.T) {
	posts := []*model.BlogPost{
		{ID: 1, Title: "go", PublishedAt: at(2), Views: 10, Likes: 3},
		{ID: 2, Title: "go", PublishedAt: at(3), Views: 5, Likes: 9},
		{ID: 3, Title: "go", PublishedAt: at(1), Views: 20, Likes: 1},
	}
	s := NewScorer(DefaultWeights)

	tests := []struct {
		sortBy SortKey
		desc   bool
		want   []uint64
	}{
		{SortDate, true, []uint64{2, 1, 3}},
		{SortDate, false, []uint64{3, 1, 2}},
		{SortViews, true, []uint64{3, 1, 2}},
		{SortViews, false, []uint64{2, 1, 3}},
		{SortLikes, true, []uint64{2, 1, 3}},
		{SortLikes, false, []uint64{3, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s desc=%v", tt.sortBy, tt.desc), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(s.Rank(posts, "go", tt.sortBy, tt.desc)))
		})
	}
}

func TestRankEqualKeysFallBackToID(t *testing.T) {
	posts := []*model.BlogPost{
		{ID: 5, Title: "go", Views: 1},
		{ID: 9, Title: "go", Views: 1},
		{ID: 7, Title: "go", Views: 1},
	}
	got := NewScorer(DefaultWeights).Rank(posts, "go", SortViews, false)
	assert.Equal(t, []uint64{9, 7, 5}, ids(got))
}

func TestPaginateIsIndependentOfTotal(t *testing.T) {
	var posts []*model.BlogPost
	for i := 1; i <= 23; i++ {
		posts = append(posts, &model.BlogPost{ID: uint64(i), Title: "go", Views: int64(i)})
	}
	ranked := NewScorer(DefaultWeights).Rank(posts, "go", SortViews, true)

	var seen []uint64
	for page := 1; page <= 3; page++ {
		seen = append(seen, ids(Paginate(ranked, page, 10))...)
	}
	assert.Len(t, seen, 23)
	assert.Equal(t, uint64(23), seen[0])
	assert.Equal(t, uint64(1), seen[22])
	assert.Empty(t, Paginate(ranked, 4, 10))
	assert.Empty(t, Paginate(ranked, math.MaxInt/2, 10))
	assert.Empty(t, Paginate(ranked, 0, 10))
}

func TestSuggestTags(t *testing.T) {
	mk := func(tags ...string) Scored { return Scored{Post: &model.BlogPost{Tags: tags}} }
	scored := []Scored{
		mk("go", "web"),
		mk("go", "db"),
		mk("Web", "api"),
		mk("go"),
	}

	got := SuggestTags(scored, 10)
	assert.Equal(t, []TagCount{
		{Tag: "go", Count: 3},
		{Tag: "web", Count: 2},
		{Tag: "api", Count: 1},
		{Tag: "db", Count: 1},
	}, got)

	assert.Len(t, SuggestTags(scored, 2), 2)
	assert.Empty(t, SuggestTags(nil, 10))
}

func TestSuggestTagsCapsAtLimit(t *testing.T) {
	var scored []Scored
	for i := 0; i < 15; i++ {
		scored = append(scored, Scored{Post: &model.BlogPost{Tags: []string{fmt.Sprintf("t%02d", i)}}})
	}
	got := SuggestTags(scored, 10)
	require.Len(t, got, 10)
	assert.Equal(t, "t00", got[0].Tag)
	assert.Equal(t, "t09", got[9].Tag)
}
