package consts

const (
	MimePrefixImage = "image"
)

// 博客状态
const (
	BlogStatusDraft     = "draft"
	BlogStatusPublished = "published"
	BlogStatusArchived  = "archived"
)

// 互动类型
const (
	InteractionLike  = "like"
	InteractionShare = "share"
	InteractionView  = "view"
)

// 排序字段
const (
	SortByRelevance = "relevance"
	SortByDate      = "date"
	SortByViews     = "views"
	SortByLikes     = "likes"
	SortOrderAsc    = "asc"
	SortOrderDesc   = "desc"
)

// 通知类型
const (
	NotifyBlogLike int8 = 1
)

const (
	DefaultFolderName  = "My Documents"
	DefaultFileContent = "# New Document\n\nStart writing here..."
	DefaultFileExt     = ".md"
	MaxExcerptLength   = 300
)

// Context Key
const (
	UserIDKey = "user_id"
)
