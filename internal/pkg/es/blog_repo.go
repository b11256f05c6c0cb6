package es

import (
	"context"
	"errors"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/versiontype"
	"github.com/goccy/go-json"
)

// MaxSearchDepth from+size 上限，超出返回空页
const MaxSearchDepth = 10000

type BlogRepo interface {
	// SearchBlogs 返回按相关度排序的博客 ID 与命中总数
	SearchBlogs(ctx context.Context, keyword string, tags []string, from, size int) ([]uint64, int64, error)
	IndexBlog(ctx context.Context, blog *BlogES, version int64) error
	DeleteBlog(ctx context.Context, id uint64) error
}

type BlogRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewBlogRepo(client *elasticsearch.TypedClient) BlogRepo {
	return &BlogRepoImpl{client: client}
}

func (s *BlogRepoImpl) SearchBlogs(ctx context.Context, keyword string, tags []string, from, size int) ([]uint64, int64, error) {
	if from+size > MaxSearchDepth {
		return []uint64{}, 0, nil
	}

	boolQuery := &types.BoolQuery{
		Must: []types.Query{{
			MultiMatch: &types.MultiMatchQuery{
				Query:  keyword,
				Fields: []string{"title^3", "excerpt^2", "content", "tags^2"},
			},
		}},
	}
	if len(tags) > 0 {
		values := make([]types.FieldValue, len(tags))
		for i, t := range tags {
			values[i] = t
		}
		boolQuery.Filter = append(boolQuery.Filter, types.Query{
			Terms: &types.TermsQuery{TermsQuery: map[string]types.TermsQueryField{"tags": values}},
		})
	}

	res, err := s.client.Search().
		Index(BlogIndex).
		Query(&types.Query{Bool: boolQuery}).
		Source_(&types.SourceFilter{Includes: []string{"id"}}).
		Sort(
			types.SortOptions{Score_: &types.ScoreSort{Order: &sortorder.Desc}},
			types.SortOptions{SortOptions: map[string]types.FieldSort{"published_at": {Order: &sortorder.Desc}}},
		).
		From(from).
		Size(size).
		Do(ctx)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uint64, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var doc struct {
			ID uint64 `json:"id"`
		}
		if err = json.Unmarshal(hit.Source_, &doc); err != nil {
			return nil, 0, err
		}
		ids = append(ids, doc.ID)
	}

	var total int64
	if res.Hits.Total != nil {
		total = res.Hits.Total.Value
	}
	return ids, total, nil
}

// IndexBlog 使用外部版本号，旧消息写入时冲突被忽略
func (s *BlogRepoImpl) IndexBlog(ctx context.Context, blog *BlogES, version int64) error {
	docID := strconv.FormatUint(blog.ID, 10)

	_, err := s.client.Index(BlogIndex).
		Id(docID).
		Document(blog).
		Version(strconv.FormatInt(version, 10)).
		VersionType(versiontype.External).
		Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) && e.Status == ConflictCode {
			return nil
		}
		return err
	}
	return nil
}

func (s *BlogRepoImpl) DeleteBlog(ctx context.Context, id uint64) error {
	docID := strconv.FormatUint(id, 10)

	_, err := s.client.Delete(BlogIndex, docID).Do(ctx)
	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) && e.Status == NotFoundCode {
			return nil
		}
		return err
	}
	return nil
}
