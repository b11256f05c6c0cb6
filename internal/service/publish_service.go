package service

import (
	"Inkpost/internal/api/config"
	"Inkpost/internal/api/dto"
	"Inkpost/internal/model"
	"Inkpost/internal/pkg/consts"
	"Inkpost/internal/pkg/metrics"
	"Inkpost/internal/pkg/minio"
	"Inkpost/internal/pkg/redis"
	"Inkpost/internal/pkg/util"
	"Inkpost/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"strings"
	"time"
)

type PublishService interface {
	Publish(ctx context.Context, userID uint64, req *dto.PublishDTO) (*dto.BlogDTO, error)
}

type publishServiceImpl struct {
	fileRepo repository.FileRepo
	blogRepo repository.BlogRepo
	cfg      config.PublishConfig
	now      func() time.Time
}

func NewPublishService(fileRepo repository.FileRepo, blogRepo repository.BlogRepo, cfg config.PublishConfig) PublishService {
	if cfg.MaxSlugAttempts <= 0 {
		cfg.MaxSlugAttempts = 100
	}
	if cfg.WordsPerMinute <= 0 {
		cfg.WordsPerMinute = 200
	}
	return &publishServiceImpl{
		fileRepo: fileRepo,
		blogRepo: blogRepo,
		cfg:      cfg,
		now:      nowFunc,
	}
}

// Publish 同一文件重复发布时原地更新已有博客，状态强制为 published
func (s *publishServiceImpl) Publish(ctx context.Context, userID uint64, req *dto.PublishDTO) (*dto.BlogDTO, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrParamInvalid
	}

	file, err := s.fileRepo.GetFile(ctx, userID, req.FileID)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, ErrFileNotFound
	}

	existing, err := s.blogRepo.GetByUserFile(ctx, userID, file.ID)
	if err != nil {
		return nil, err
	}

	post := &model.BlogPost{UserID: userID, FileID: file.ID}
	if existing != nil {
		post = existing
	}
	renamed := existing == nil || existing.Title != title

	post.FileName = file.Name
	post.Title = title
	post.Content = file.Content
	post.Excerpt = s.excerpt(req.Excerpt, file.Content)
	post.Tags = util.NormalizeTags(req.Tags)
	post.SEOTitle = deref(req.SEOTitle)
	post.SEODescription = deref(req.SEODescription)
	post.SEOImage = resolveSEOImage(ctx, deref(req.SEOImage))
	post.ReadTime = util.ReadTime(post.Content, s.cfg.WordsPerMinute)
	markPublished(post, s.now())

	switch {
	case existing == nil:
		err = s.claimSlug(ctx, post, util.BaseSlug(title, file.Name, s.now()), true)
	case renamed:
		err = s.claimSlug(ctx, post, util.BaseSlug(title, file.Name, s.now()), false)
	default:
		err = s.blogRepo.Save(ctx, post)
	}
	if err != nil {
		return nil, err
	}

	invalidateDashboard(ctx, userID)
	log.InfoContext(ctx, "blog published", "blogID", post.ID, "slug", post.Slug, "created", existing == nil)
	return toBlogDTO(post), nil
}

func (s *publishServiceImpl) excerpt(given, content string) string {
	if given = strings.TrimSpace(given); given != "" {
		return util.TruncateRunes(given, consts.MaxExcerptLength)
	}
	return util.Excerpt(util.PlainText(content), consts.MaxExcerptLength)
}

// claimSlug 依次尝试 base, base-1 ... 直到唯一索引接受；create 时 (user_id, file_id) 冲突说明并发发布，转为更新
func (s *publishServiceImpl) claimSlug(ctx context.Context, post *model.BlogPost, base string, create bool) error {
	return claimSlug(ctx, s.blogRepo, post, base, create, s.cfg.MaxSlugAttempts)
}

func claimSlug(ctx context.Context, repo repository.BlogRepo, post *model.BlogPost, base string, create bool, maxAttempts int) error {
	for n := 0; n < maxAttempts; {
		post.Slug = util.SlugCandidate(base, n)

		var err error
		if create {
			err = repo.Create(ctx, post)
		} else {
			err = repo.Save(ctx, post)
		}
		if err == nil {
			metrics.RecordSlugClaim(n + 1)
			return nil
		}
		if !errors.Is(err, repository.ErrDuplicateKey) {
			return err
		}

		if create {
			winner, err := repo.GetByUserFile(ctx, post.UserID, post.FileID)
			if err != nil {
				return err
			}
			if winner != nil {
				log.WarnContext(ctx, "concurrent publish detected, updating existing blog", "blogID", winner.ID)
				post.ID = winner.ID
				post.CreatedAt = winner.CreatedAt
				if winner.PublishedAt != nil {
					post.PublishedAt = winner.PublishedAt
				}
				create = false
				continue
			}
		}
		n++
	}

	metrics.RecordSlugClaim(maxAttempts)
	log.WarnContext(ctx, "slug candidates exhausted", "base", base, "attempts", maxAttempts)
	return ErrSlugConflict
}

// resolveSEOImage 临时桶中的对象在发布时转存到主桶，其余值原样保留
func resolveSEOImage(ctx context.Context, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || minio.Client == nil {
		return ref
	}
	isTemp, err := redis.HExists(ctx, consts.MediaTempKey, ref)
	if err != nil {
		log.WarnContext(ctx, "failed to check temp media", "key", ref, "err", err)
		return ref
	}
	if !isTemp {
		return ref
	}
	if err = minio.Promote(ctx, ref); err != nil {
		log.ErrorContext(ctx, "failed to promote seo image", "key", ref, "err", err)
		return ref
	}
	if err = redis.HDel(ctx, consts.MediaTempKey, ref); err != nil {
		log.WarnContext(ctx, "failed to clear temp media entry", "key", ref, "err", err)
	}
	return minio.GetPublicURL(ref)
}

// markPublished publishedAt 只在首次进入 published 时写入
func markPublished(post *model.BlogPost, now time.Time) {
	post.Status = consts.BlogStatusPublished
	if post.PublishedAt == nil {
		post.PublishedAt = &now
	}
}

func invalidateDashboard(ctx context.Context, userID uint64) {
	pattern := consts.AnalyticsDashboardKey + strconv.FormatUint(userID, 10) + ":*"
	if err := redis.DeleteByPattern(ctx, pattern); err != nil {
		log.WarnContext(ctx, "failed to invalidate dashboard cache", "userID", userID, "err", err)
	}
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
