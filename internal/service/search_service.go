package service

import (
	"Inkpost/internal/api/config"
	"Inkpost/internal/api/dto"
	"Inkpost/internal/pkg/consts"
	"Inkpost/internal/pkg/metrics"
	"Inkpost/internal/pkg/ranking"
	"Inkpost/internal/pkg/util"
	"Inkpost/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"strings"
	"time"
)

type SearchService interface {
	Search(ctx context.Context, userID uint64, query *dto.SearchQuery) (*dto.SearchResponseDTO, error)
}

type searchServiceImpl struct {
	blogRepo repository.BlogRepo
	scorer   *ranking.Scorer
	suggest  func(scored []ranking.Scored, limit int) []ranking.TagCount
	cfg      config.SearchConfig
}

func NewSearchService(blogRepo repository.BlogRepo, cfg config.SearchConfig) SearchService {
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = defaultPageSize
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = maxPageSize
	}
	if cfg.SuggestionLimit <= 0 {
		cfg.SuggestionLimit = 10
	}
	return &searchServiceImpl{
		blogRepo: blogRepo,
		scorer:   ranking.NewScorer(ranking.DefaultWeights),
		suggest:  ranking.SuggestTags,
		cfg:      cfg,
	}
}

// Search 在全部可见候选上打分排序后再分页，totalCount 为命中总数
func (s *searchServiceImpl) Search(ctx context.Context, userID uint64, query *dto.SearchQuery) (*dto.SearchResponseDTO, error) {
	start := time.Now()
	defer func() { metrics.RecordSearch(time.Since(start)) }()

	q := strings.TrimSpace(query.Q)
	if q == "" {
		return nil, ErrParamInvalid
	}
	sortBy, desc, err := parseSort(query.SortBy, query.SortOrder)
	if err != nil {
		return nil, err
	}

	pageSize := query.PageSize
	if pageSize == 0 {
		pageSize = s.cfg.DefaultPageSize
	}
	pageSize = util.ClampInt(pageSize, 1, s.cfg.MaxPageSize)
	page := util.ClampPage(query.Page, pageSize)

	filter := repository.And(
		repository.VisibleTo{UserID: userID, IncludeOwn: query.IncludeOwn},
		repository.HasAnyTag{Tags: util.SplitCSV(query.Tags)},
	)
	candidates, err := s.blogRepo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	scored := s.scorer.Rank(candidates, q, sortBy, desc)
	pageItems := ranking.Paginate(scored, page, pageSize)

	results := make([]*dto.SearchResultDTO, 0, len(pageItems))
	for _, sc := range pageItems {
		item := &dto.SearchResultDTO{
			BlogDTO:       *toBlogDTO(sc.Post),
			Score:         sc.Score,
			MatchedFields: sc.Matched,
		}
		item.Content = ""
		results = append(results, item)
	}

	total := len(scored)
	return &dto.SearchResponseDTO{
		Results:     results,
		TotalCount:  total,
		Page:        page,
		PageSize:    pageSize,
		Suggestions: s.suggestions(ctx, scored),
		HasMore:     page*pageSize < total,
	}, nil
}

// suggestions 任何失败都降级为空列表
func (s *searchServiceImpl) suggestions(ctx context.Context, scored []ranking.Scored) (tags []string) {
	defer func() {
		if r := recover(); r != nil {
			log.ErrorContext(ctx, "tag suggestion failed", "panic", fmt.Sprint(r))
			tags = []string{}
		}
	}()

	counts := s.suggest(scored, s.cfg.SuggestionLimit)
	tags = make([]string, 0, len(counts))
	for _, tc := range counts {
		tags = append(tags, tc.Tag)
	}
	return tags
}

func parseSort(sortBy, sortOrder string) (ranking.SortKey, bool, error) {
	key := ranking.SortRelevance
	switch strings.ToLower(strings.TrimSpace(sortBy)) {
	case "", consts.SortByRelevance:
	case consts.SortByDate:
		key = ranking.SortDate
	case consts.SortByViews:
		key = ranking.SortViews
	case consts.SortByLikes:
		key = ranking.SortLikes
	default:
		return "", false, ErrParamInvalid
	}

	switch strings.ToLower(strings.TrimSpace(sortOrder)) {
	case "", consts.SortOrderDesc:
		return key, true, nil
	case consts.SortOrderAsc:
		return key, false, nil
	}
	return "", false, ErrParamInvalid
}
