package service

import (
	"Inkpost/internal/api/dto"
	"Inkpost/internal/model"
	"Inkpost/internal/pkg/consts"
	"Inkpost/internal/pkg/es"
	"Inkpost/internal/pkg/util"
	"Inkpost/internal/repository"
	"context"
	log "log/slog"
	"strings"
	"time"

	"github.com/jinzhu/copier"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// nowFunc 测试中替换
var nowFunc = time.Now

type BlogService interface {
	Mine(ctx context.Context, userID uint64, query *dto.BlogListQuery) (*dto.BlogListDTO, error)
	Get(ctx context.Context, userID, blogID uint64) (*dto.BlogDTO, error)
	ByFile(ctx context.Context, userID, fileID uint64) (*dto.BlogDTO, error)
	Update(ctx context.Context, userID, blogID uint64, req *dto.UpdateBlogDTO) (*dto.BlogDTO, error)
	Delete(ctx context.Context, userID, blogID uint64) error
	PublicList(ctx context.Context, query *dto.BlogListQuery) (*dto.BlogListDTO, error)
	BySlug(ctx context.Context, userID uint64, slug string) (*dto.BlogDTO, error)
}

type blogServiceImpl struct {
	blogRepo        repository.BlogRepo
	blogESRepo      es.BlogRepo
	interactionSvc  InteractionService
	maxSlugAttempts int
}

// NewBlogService blogESRepo 为 nil 时公开列表的关键词搜索走数据库 LIKE
func NewBlogService(blogRepo repository.BlogRepo, blogESRepo es.BlogRepo, interactionSvc InteractionService, maxSlugAttempts int) BlogService {
	if maxSlugAttempts <= 0 {
		maxSlugAttempts = 100
	}
	return &blogServiceImpl{
		blogRepo:        blogRepo,
		blogESRepo:      blogESRepo,
		interactionSvc:  interactionSvc,
		maxSlugAttempts: maxSlugAttempts,
	}
}

// Mine 按更新时间倒序
func (s *blogServiceImpl) Mine(ctx context.Context, userID uint64, query *dto.BlogListQuery) (*dto.BlogListDTO, error) {
	page, pageSize := pageParams(query.Page, query.PageSize)

	filter := repository.And(repository.OwnedBy{UserID: userID})
	if query.Status != "" {
		filter = filter.With(repository.StatusIs{Status: query.Status})
	}
	if query.FileID != 0 {
		filter = filter.With(repository.FromFile{FileID: query.FileID})
	}

	posts, total, err := s.blogRepo.List(ctx, filter, "updated_at DESC, id DESC", pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return toBlogList(posts, total, page, pageSize), nil
}

func (s *blogServiceImpl) Get(ctx context.Context, userID, blogID uint64) (*dto.BlogDTO, error) {
	post, err := s.ownedBlog(ctx, userID, blogID)
	if err != nil {
		return nil, err
	}
	return toBlogDTO(post), nil
}

// ByFile 文件尚未发布时返回 nil
func (s *blogServiceImpl) ByFile(ctx context.Context, userID, fileID uint64) (*dto.BlogDTO, error) {
	post, err := s.blogRepo.GetByUserFile(ctx, userID, fileID)
	if err != nil || post == nil {
		return nil, err
	}
	return toBlogDTO(post), nil
}

func (s *blogServiceImpl) Update(ctx context.Context, userID, blogID uint64, req *dto.UpdateBlogDTO) (*dto.BlogDTO, error) {
	post, err := s.ownedBlog(ctx, userID, blogID)
	if err != nil {
		return nil, err
	}

	renamed := false
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrParamInvalid
		}
		renamed = title != post.Title
		post.Title = title
	}
	if req.Excerpt != nil {
		post.Excerpt = util.TruncateRunes(strings.TrimSpace(*req.Excerpt), consts.MaxExcerptLength)
	}
	if req.Tags != nil {
		post.Tags = util.NormalizeTags(*req.Tags)
	}
	if req.SEOTitle != nil {
		post.SEOTitle = *req.SEOTitle
	}
	if req.SEODescription != nil {
		post.SEODescription = *req.SEODescription
	}
	if req.SEOImage != nil {
		post.SEOImage = resolveSEOImage(ctx, *req.SEOImage)
	}
	if req.Status != nil {
		switch *req.Status {
		case consts.BlogStatusPublished:
			markPublished(post, nowFunc())
		case consts.BlogStatusDraft, consts.BlogStatusArchived:
			post.Status = *req.Status
		default:
			return nil, ErrParamInvalid
		}
	}

	if renamed {
		base := util.BaseSlug(post.Title, post.FileName, nowFunc())
		err = claimSlug(ctx, s.blogRepo, post, base, false, s.maxSlugAttempts)
	} else {
		err = s.blogRepo.Save(ctx, post)
	}
	if err != nil {
		return nil, err
	}

	invalidateDashboard(ctx, userID)
	return toBlogDTO(post), nil
}

// Delete 级联删除点赞、标签与每日统计
func (s *blogServiceImpl) Delete(ctx context.Context, userID, blogID uint64) error {
	if _, err := s.ownedBlog(ctx, userID, blogID); err != nil {
		return err
	}
	if err := s.blogRepo.Delete(ctx, blogID); err != nil {
		return err
	}
	invalidateDashboard(ctx, userID)
	log.InfoContext(ctx, "blog deleted", "blogID", blogID)
	return nil
}

// PublicList 只含已发布博客，按发布时间倒序
func (s *blogServiceImpl) PublicList(ctx context.Context, query *dto.BlogListQuery) (*dto.BlogListDTO, error) {
	page, pageSize := pageParams(query.Page, query.PageSize)
	keyword := strings.TrimSpace(query.Search)
	tags := util.NormalizeTags(util.SplitCSV(query.Tags))

	if keyword != "" && s.blogESRepo != nil {
		list, err := s.searchES(ctx, keyword, tags, page, pageSize)
		if err == nil {
			return list, nil
		}
		log.WarnContext(ctx, "es search failed, falling back to database", "err", err)
	}

	filter := repository.And(
		repository.StatusIs{Status: consts.BlogStatusPublished},
		repository.HasAnyTag{Tags: tags},
	)
	if keyword != "" {
		filter = filter.With(repository.TextContains{Keyword: keyword})
	}

	posts, total, err := s.blogRepo.List(ctx, filter, "published_at DESC, id DESC", pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return toBlogList(posts, total, page, pageSize), nil
}

// searchES 以 ES 命中顺序为准，数据库回查保证只返回仍处于发布状态的博客
func (s *blogServiceImpl) searchES(ctx context.Context, keyword string, tags []string, page, pageSize int) (*dto.BlogListDTO, error) {
	from := (page - 1) * pageSize
	if from+pageSize > es.MaxSearchDepth {
		return toBlogList(nil, 0, page, pageSize), nil
	}

	ids, total, err := s.blogESRepo.SearchBlogs(ctx, keyword, tags, from, pageSize)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return toBlogList(nil, total, page, pageSize), nil
	}

	posts, err := s.blogRepo.Find(ctx, repository.And(
		repository.IDIn{IDs: ids},
		repository.StatusIs{Status: consts.BlogStatusPublished},
	))
	if err != nil {
		return nil, err
	}

	byID := make(map[uint64]*model.BlogPost, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	ordered := make([]*model.BlogPost, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return toBlogList(ordered, total, page, pageSize), nil
}

// BySlug 读取公开博客并计一次浏览
func (s *blogServiceImpl) BySlug(ctx context.Context, userID uint64, slug string) (*dto.BlogDTO, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrBlogNotFound
	}
	post, err := s.blogRepo.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrBlogNotFound
	}

	res, err := s.interactionSvc.Track(ctx, userID, post.ID, consts.InteractionView)
	if err != nil {
		return nil, err
	}
	if res.Views != nil {
		post.Views = *res.Views
	}
	return toBlogDTO(post), nil
}

// ownedBlog 非本人博客与不存在同样返回 NotFound
func (s *blogServiceImpl) ownedBlog(ctx context.Context, userID, blogID uint64) (*model.BlogPost, error) {
	post, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if post == nil || post.UserID != userID {
		return nil, ErrBlogNotFound
	}
	return post, nil
}

func pageParams(page, pageSize int) (int, int) {
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	pageSize = util.ClampInt(pageSize, 1, maxPageSize)
	return util.ClampPage(page, pageSize), pageSize
}

func toBlogDTO(post *model.BlogPost) *dto.BlogDTO {
	out := &dto.BlogDTO{}
	_ = copier.Copy(out, post)
	if out.Tags == nil {
		out.Tags = []string{}
	}
	return out
}

// toBlogList 列表不返回正文
func toBlogList(posts []*model.BlogPost, total int64, page, pageSize int) *dto.BlogListDTO {
	blogs := make([]*dto.BlogDTO, 0, len(posts))
	for _, p := range posts {
		d := toBlogDTO(p)
		d.Content = ""
		blogs = append(blogs, d)
	}
	return &dto.BlogListDTO{
		Blogs:    blogs,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		HasMore:  int64(page*pageSize) < total,
	}
}
