package service

import (
	"Inkpost/internal/api/dto"
	"Inkpost/internal/pkg/consts"
	"Inkpost/internal/pkg/metrics"
	"Inkpost/internal/pkg/redis"
	"Inkpost/internal/pkg/util"
	"Inkpost/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

type InteractionService interface {
	Track(ctx context.Context, userID, blogID uint64, kind string) (*dto.InteractionResultDTO, error)
	LikeStatus(ctx context.Context, userID, blogID uint64) (*dto.LikeStatusDTO, error)
}

type interactionServiceImpl struct {
	interactionRepo repository.InteractionRepo
	blogRepo        repository.BlogRepo
	now             func() time.Time
}

func NewInteractionService(interactionRepo repository.InteractionRepo, blogRepo repository.BlogRepo) InteractionService {
	return &interactionServiceImpl{
		interactionRepo: interactionRepo,
		blogRepo:        blogRepo,
		now:             nowFunc,
	}
}

// Track 点赞需要登录，再次点赞视为取消；浏览与分享允许匿名
func (s *interactionServiceImpl) Track(ctx context.Context, userID, blogID uint64, kind string) (*dto.InteractionResultDTO, error) {
	switch kind {
	case consts.InteractionLike:
		if userID == 0 {
			return nil, ErrUnauthorized
		}
	case consts.InteractionView, consts.InteractionShare:
	default:
		return nil, ErrParamInvalid
	}

	res, err := s.interactionRepo.Apply(ctx, userID, blogID, kind, util.GetMidnight(s.now()))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBlogNotVisible):
			return nil, ErrBlogNotFound
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, ErrInteractionConflict
		}
		return nil, err
	}
	metrics.RecordInteraction(kind)
	s.broadcast(ctx, blogID, kind, res)

	out := &dto.InteractionResultDTO{Success: true}
	switch kind {
	case consts.InteractionLike:
		out.Likes = &res.Likes
		out.IsLiked = &res.IsLiked
		if res.IsLiked {
			out.Message = "点赞成功"
		} else {
			out.Message = "已取消点赞"
		}
	case consts.InteractionView:
		out.Views = &res.Views
	case consts.InteractionShare:
		out.Shares = &res.Shares
	}
	return out, nil
}

func (s *interactionServiceImpl) LikeStatus(ctx context.Context, userID, blogID uint64) (*dto.LikeStatusDTO, error) {
	post, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if post == nil || !post.IsPublished() {
		return nil, ErrBlogNotFound
	}

	status := &dto.LikeStatusDTO{TotalLikes: post.Likes}
	if userID == 0 {
		return status, nil
	}
	status.IsLiked, err = s.interactionRepo.IsLiked(ctx, userID, blogID)
	if err != nil {
		return nil, err
	}
	return status, nil
}

// broadcast 推送失败不影响已提交的计数
func (s *interactionServiceImpl) broadcast(ctx context.Context, blogID uint64, kind string, res *repository.InteractionResult) {
	payload, err := json.Marshal(&dto.LiveCounterDTO{
		BlogID: blogID,
		Type:   kind,
		Views:  res.Views,
		Likes:  res.Likes,
		Shares: res.Shares,
	})
	if err != nil {
		return
	}
	if err = redis.Publish(ctx, LiveChannel(blogID), payload); err != nil {
		log.WarnContext(ctx, "failed to publish live counter", "blogID", blogID, "err", err)
	}
}

// LiveChannel 博客实时计数频道
func LiveChannel(blogID uint64) string {
	return consts.BlogLiveChannel + strconv.FormatUint(blogID, 10)
}
