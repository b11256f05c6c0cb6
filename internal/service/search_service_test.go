package service

import (
	"Inkpost/internal/api/config"
	"Inkpost/internal/api/dto"
	"Inkpost/internal/model"
	"Inkpost/internal/pkg/ranking"
	"Inkpost/internal/repository"
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchCorpus() []*model.BlogPost {
	day := func(d int) *time.Time {
		t := time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
		return &t
	}
	return []*model.BlogPost{
		{ID: 1, Title: "Go concurrency", Tags: []string{"go", "concurrency"}, Views: 5, PublishedAt: day(1)},
		{ID: 2, Title: "Rust ownership", Content: "compared with go", Tags: []string{"rust"}, Views: 50, PublishedAt: day(2)},
		{ID: 3, Title: "Cooking", Excerpt: "nothing relevant", Tags: []string{"food"}, PublishedAt: day(3)},
		{ID: 4, Title: "Why Go", Excerpt: "go go go", Tags: []string{"go"}, Views: 1, PublishedAt: day(4)},
	}
}

func newSearchFixture(posts []*model.BlogPost) (SearchService, *fakeBlogRepo) {
	blogs := newFakeBlogRepo()
	blogs.findResult = posts
	return NewSearchService(blogs, config.SearchConfig{}), blogs
}

func resultIDs(res *dto.SearchResponseDTO) []uint64 {
	ids := make([]uint64, 0, len(res.Results))
	for _, r := range res.Results {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestSearchRejectsBadInput(t *testing.T) {
	svc, _ := newSearchFixture(searchCorpus())
	ctx := context.Background()

	tests := []struct {
		name  string
		query dto.SearchQuery
	}{
		{"blank query", dto.SearchQuery{Q: "   "}},
		{"unknown sort", dto.SearchQuery{Q: "go", SortBy: "random"}},
		{"unknown order", dto.SearchQuery{Q: "go", SortOrder: "sideways"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Search(ctx, 0, &tt.query)
			assert.ErrorIs(t, err, ErrParamInvalid)
		})
	}
}

func TestSearchRelevanceOrdering(t *testing.T) {
	svc, blogs := newSearchFixture(searchCorpus())

	res, err := svc.Search(context.Background(), 7, &dto.SearchQuery{Q: "GO", IncludeOwn: true})
	require.NoError(t, err)

	// 4: title+excerpt+tag = 21, 1: title+tag = 15, 2: body = 3
	assert.Equal(t, []uint64{4, 1, 2}, resultIDs(res))
	assert.Equal(t, 21, res.Results[0].Score)
	assert.Equal(t, []string{"title", "excerpt", "tags"}, res.Results[0].MatchedFields)
	assert.Equal(t, 3, res.TotalCount)
	assert.False(t, res.HasMore)
	assert.Equal(t, []string{"go", "concurrency", "rust"}, res.Suggestions)
	assert.Empty(t, res.Results[0].Content)

	require.Len(t, blogs.lastFilter.Predicates(), 2)
	assert.Equal(t, repository.VisibleTo{UserID: 7, IncludeOwn: true}, blogs.lastFilter.Predicates()[0])
}

func TestSearchSortModes(t *testing.T) {
	svc, _ := newSearchFixture(searchCorpus())
	ctx := context.Background()

	tests := []struct {
		sortBy, order string
		want          []uint64
	}{
		{"views", "desc", []uint64{2, 1, 4}},
		{"views", "asc", []uint64{4, 1, 2}},
		{"date", "", []uint64{4, 2, 1}},
		{"date", "asc", []uint64{1, 2, 4}},
		{"likes", "desc", []uint64{4, 2, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.sortBy+"/"+tt.order, func(t *testing.T) {
			res, err := svc.Search(ctx, 0, &dto.SearchQuery{Q: "go", SortBy: tt.sortBy, SortOrder: tt.order})
			require.NoError(t, err)
			assert.Equal(t, tt.want, resultIDs(res))
		})
	}
}

func TestSearchPaging(t *testing.T) {
	posts := make([]*model.BlogPost, 0, 60)
	for i := 1; i <= 60; i++ {
		posts = append(posts, &model.BlogPost{ID: uint64(i), Title: fmt.Sprintf("post %d", i)})
	}
	svc, _ := newSearchFixture(posts)
	ctx := context.Background()

	res, err := svc.Search(ctx, 0, &dto.SearchQuery{Q: "post", Page: 2, PageSize: 25})
	require.NoError(t, err)
	assert.Equal(t, 60, res.TotalCount)
	assert.Len(t, res.Results, 25)
	assert.Equal(t, uint64(35), res.Results[0].ID, "equal scores fall back to id desc")
	assert.True(t, res.HasMore)

	res, err = svc.Search(ctx, 0, &dto.SearchQuery{Q: "post", Page: -3, PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 50, res.PageSize)
	assert.True(t, res.HasMore)

	res, err = svc.Search(ctx, 0, &dto.SearchQuery{Q: "post"})
	require.NoError(t, err)
	assert.Equal(t, 10, res.PageSize)

	res, err = svc.Search(ctx, 0, &dto.SearchQuery{Q: "post", Page: 9, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, res.Results)
	assert.False(t, res.HasMore)

	res, err = svc.Search(ctx, 0, &dto.SearchQuery{Q: "post", Page: 1<<60 + 1, PageSize: 16})
	require.NoError(t, err)
	assert.Empty(t, res.Results, "huge page must not wrap to an in-range offset")
	assert.False(t, res.HasMore)
	assert.Equal(t, 60, res.TotalCount)
	assert.Equal(t, math.MaxInt/16, res.Page)
}

func TestSearchSuggestionFailureDegrades(t *testing.T) {
	svc, _ := newSearchFixture(searchCorpus())
	svc.(*searchServiceImpl).suggest = func([]ranking.Scored, int) []ranking.TagCount {
		panic("tag index unavailable")
	}

	res, err := svc.Search(context.Background(), 0, &dto.SearchQuery{Q: "go"})
	require.NoError(t, err)
	assert.NotNil(t, res.Suggestions)
	assert.Empty(t, res.Suggestions)
	assert.Equal(t, 3, res.TotalCount)
	assert.Equal(t, []uint64{4, 1, 2}, resultIDs(res))
}

func TestSearchNoHits(t *testing.T) {
	svc, _ := newSearchFixture(searchCorpus())
	res, err := svc.Search(context.Background(), 0, &dto.SearchQuery{Q: "haskell"})
	require.NoError(t, err)
	assert.Empty(t, res.Results)
	assert.Empty(t, res.Suggestions)
	assert.Equal(t, 0, res.TotalCount)
}
