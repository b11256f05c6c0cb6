package service

import (
	"Inkpost/internal/api/dto"
	"Inkpost/internal/model"
	"Inkpost/internal/pkg/es"
	"Inkpost/internal/repository"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBlogES struct {
	ids   []uint64
	total int64
	err   error
	calls int
}

func (f *fakeBlogES) SearchBlogs(_ context.Context, _ string, _ []string, _, _ int) ([]uint64, int64, error) {
	f.calls++
	return f.ids, f.total, f.err
}

func (f *fakeBlogES) IndexBlog(context.Context, *es.BlogES, int64) error { return nil }

func (f *fakeBlogES) DeleteBlog(context.Context, uint64) error { return nil }

func newBlogFixture(search es.BlogRepo) (BlogService, *fakeBlogRepo) {
	blogs := newFakeBlogRepo()
	interactions := NewInteractionService(newFakeInteractionRepo(blogs), blogs)
	return NewBlogService(blogs, search, interactions, 100), blogs
}

func strPtr(s string) *string { return &s }

func TestBlogOwnership(t *testing.T) {
	svc, blogs := newBlogFixture(nil)
	post := blogs.add(&model.BlogPost{UserID: 1, FileID: 1, Slug: "mine", Status: "draft"})
	ctx := context.Background()

	_, err := svc.Get(ctx, 2, post.ID)
	assert.ErrorIs(t, err, ErrBlogNotFound)
	_, err = svc.Update(ctx, 2, post.ID, &dto.UpdateBlogDTO{Title: strPtr("x")})
	assert.ErrorIs(t, err, ErrBlogNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 2, post.ID), ErrBlogNotFound)

	got, err := svc.Get(ctx, 1, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Slug)
}

func TestBlogUpdateStatusTransitions(t *testing.T) {
	first := time.Date(2024, 2, 1, 9, 0, 0, 0, time.Local)
	fixedNow(t, first)
	svc, blogs := newBlogFixture(nil)
	post := blogs.add(&model.BlogPost{UserID: 1, FileID: 1, Title: "T", Slug: "t", Status: "draft"})
	ctx := context.Background()

	out, err := svc.Update(ctx, 1, post.ID, &dto.UpdateBlogDTO{Status: strPtr("published")})
	require.NoError(t, err)
	require.NotNil(t, out.PublishedAt)
	assert.True(t, out.PublishedAt.Equal(first))

	fixedNow(t, first.Add(time.Hour))
	out, err = svc.Update(ctx, 1, post.ID, &dto.UpdateBlogDTO{Status: strPtr("archived")})
	require.NoError(t, err)
	assert.Equal(t, "archived", out.Status)
	assert.True(t, out.PublishedAt.Equal(first), "archiving keeps publishedAt")

	out, err = svc.Update(ctx, 1, post.ID, &dto.UpdateBlogDTO{Status: strPtr("published")})
	require.NoError(t, err)
	assert.True(t, out.PublishedAt.Equal(first), "republishing keeps publishedAt")
}

func TestBlogUpdateTitleRegeneratesSlug(t *testing.T) {
	svc, blogs := newBlogFixture(nil)
	blogs.add(&model.BlogPost{UserID: 2, FileID: 5, Slug: "fresh-name"})
	post := blogs.add(&model.BlogPost{UserID: 1, FileID: 1, Title: "Old", Slug: "old", Status: "published"})
	ctx := context.Background()

	out, err := svc.Update(ctx, 1, post.ID, &dto.UpdateBlogDTO{Title: strPtr("Fresh Name"), Tags: &[]string{"A", "a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, "fresh-name-1", out.Slug)
	assert.Equal(t, []string{"a", "b"}, out.Tags)

	out, err = svc.Update(ctx, 1, post.ID, &dto.UpdateBlogDTO{Excerpt: strPtr("summary")})
	require.NoError(t, err)
	assert.Equal(t, "fresh-name-1", out.Slug, "slug only changes with the title")

	_, err = svc.Update(ctx, 1, post.ID, &dto.UpdateBlogDTO{Title: strPtr("  ")})
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestBlogByFileAndDelete(t *testing.T) {
	svc, blogs := newBlogFixture(nil)
	post := blogs.add(&model.BlogPost{UserID: 1, FileID: 7, Slug: "s"})
	ctx := context.Background()

	got, err := svc.ByFile(ctx, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)

	got, err = svc.ByFile(ctx, 1, 8)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, svc.Delete(ctx, 1, post.ID))
	assert.Empty(t, blogs.posts)
}

func TestBlogBySlugCountsView(t *testing.T) {
	svc, blogs := newBlogFixture(nil)
	blogs.add(&model.BlogPost{Slug: "hello", Status: "published", Views: 4, Content: "body"})
	blogs.add(&model.BlogPost{Slug: "secret", Status: "draft"})
	ctx := context.Background()

	out, err := svc.BySlug(ctx, 0, "hello")
	require.NoError(t, err)
	assert.Equal(t, int64(5), out.Views)
	assert.Equal(t, "body", out.Content)

	_, err = svc.BySlug(ctx, 0, "secret")
	assert.ErrorIs(t, err, ErrBlogNotFound)
}

func TestBlogLists(t *testing.T) {
	t.Run("mine orders by update time", func(t *testing.T) {
		svc, blogs := newBlogFixture(nil)
		for i := 0; i < 3; i++ {
			blogs.add(&model.BlogPost{UserID: 1, FileID: uint64(i), Content: "long body"})
		}
		out, err := svc.Mine(context.Background(), 1, &dto.BlogListQuery{Status: "draft", PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, "updated_at DESC, id DESC", blogs.lastOrder)
		assert.Len(t, blogs.lastFilter.Predicates(), 2)
		assert.Len(t, out.Blogs, 2)
		assert.Equal(t, int64(3), out.Total)
		assert.True(t, out.HasMore)
		assert.Empty(t, out.Blogs[0].Content)
	})

	t.Run("public list without search uses database", func(t *testing.T) {
		search := &fakeBlogES{}
		svc, blogs := newBlogFixture(search)
		blogs.add(&model.BlogPost{Status: "published"})
		_, err := svc.PublicList(context.Background(), &dto.BlogListQuery{Tags: "Go,web"})
		require.NoError(t, err)
		assert.Equal(t, 0, search.calls)
		assert.Equal(t, "published_at DESC, id DESC", blogs.lastOrder)
		preds := blogs.lastFilter.Predicates()
		require.Len(t, preds, 2)
		assert.Equal(t, repository.HasAnyTag{Tags: []string{"go", "web"}}, preds[1])
	})

	t.Run("huge page stays past the end", func(t *testing.T) {
		svc, blogs := newBlogFixture(nil)
		blogs.add(&model.BlogPost{Status: "published"})
		out, err := svc.PublicList(context.Background(), &dto.BlogListQuery{Page: 1<<60 + 1})
		require.NoError(t, err)
		assert.Empty(t, out.Blogs)
		assert.False(t, out.HasMore)
		assert.Equal(t, int64(1), out.Total)
	})

	t.Run("public search keeps es order", func(t *testing.T) {
		search := &fakeBlogES{ids: []uint64{2, 1}, total: 2}
		svc, blogs := newBlogFixture(search)
		one := blogs.add(&model.BlogPost{Status: "published"})
		two := blogs.add(&model.BlogPost{Status: "published"})
		blogs.findResult = []*model.BlogPost{one, two}

		out, err := svc.PublicList(context.Background(), &dto.BlogListQuery{Search: "go"})
		require.NoError(t, err)
		require.Len(t, out.Blogs, 2)
		assert.Equal(t, two.ID, out.Blogs[0].ID)
		assert.Equal(t, int64(2), out.Total)
		assert.Equal(t, 0, blogs.listCalls)
	})

	t.Run("public search falls back when es fails", func(t *testing.T) {
		search := &fakeBlogES{err: errors.New("es down")}
		svc, blogs := newBlogFixture(search)
		blogs.add(&model.BlogPost{Status: "published"})

		out, err := svc.PublicList(context.Background(), &dto.BlogListQuery{Search: "go"})
		require.NoError(t, err)
		assert.Equal(t, 1, search.calls)
		assert.Equal(t, 1, blogs.listCalls)
		assert.Len(t, blogs.lastFilter.Predicates(), 3)
		assert.Len(t, out.Blogs, 1)
	})
}
