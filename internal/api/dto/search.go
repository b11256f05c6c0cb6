package dto

// SearchQuery Tags 为逗号分隔
type SearchQuery struct {
	Q          string `form:"q"`
	Tags       string `form:"tags"`
	Page       int    `form:"page"`
	PageSize   int    `form:"pageSize"`
	SortBy     string `form:"sortBy"`
	SortOrder  string `form:"sortOrder"`
	IncludeOwn bool   `form:"includeOwn"`
}

type SearchResultDTO struct {
	BlogDTO
	Score         int      `json:"score"`
	MatchedFields []string `json:"matchedFields"`
}

type SearchResponseDTO struct {
	Results     []*SearchResultDTO `json:"results"`
	TotalCount  int                `json:"totalCount"`
	Page        int                `json:"page"`
	PageSize    int                `json:"pageSize"`
	Suggestions []string           `json:"suggestions"`
	HasMore     bool               `json:"hasMore"`
}
