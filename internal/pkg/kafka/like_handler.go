package kafka

import (
	"Inkpost/internal/pkg/consts"
	"Inkpost/internal/pkg/mongo"
	"Inkpost/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
)

// LikesHandler 新增点赞时给博客作者发送通知
type LikesHandler struct {
	blogRepo   repository.BlogRepo
	userRepo   repository.UserRepo
	sysBoxRepo mongo.SysBoxRepo
}

func NewLikesHandler(blogRepo repository.BlogRepo, userRepo repository.UserRepo, sysBox mongo.SysBoxRepo) *LikesHandler {
	return &LikesHandler{
		blogRepo:   blogRepo,
		userRepo:   userRepo,
		sysBoxRepo: sysBox,
	}
}

func (s *LikesHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("blog like consumer setup")
	return nil
}

func (s *LikesHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("blog like consumer cleanup")
	return nil
}

func (s *LikesHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-like consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-like process batch error", "err", err)
		return err
	}
	return nil
}

func (s *LikesHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "blog_likes")
	if err != nil {
		return err
	}

	// 取消点赞不撤回通知
	if canalMsg.Type != INSERT {
		return nil
	}

	for _, row := range canalMsg.Data {
		userID, blogID := StrToUint64(row["user_id"]), StrToUint64(row["blog_id"])
		if err = s.sendLikeNotification(ctx, userID, blogID, StrToDateTime(row["created_at"])); err != nil {
			return err
		}
	}
	return nil
}

func (s *LikesHandler) sendLikeNotification(ctx context.Context, senderID, blogID uint64, likedAt time.Time) error {
	blog, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return err
	}
	if blog == nil {
		log.WarnContext(ctx, "liked blog no longer exists", "blogID", blogID)
		return nil
	}
	if blog.UserID == senderID {
		return nil
	}

	senderName := ""
	sender, err := s.userRepo.GetUserById(ctx, senderID)
	if err != nil {
		return err
	}
	if sender != nil {
		senderName = sender.Username
	}

	if likedAt.IsZero() {
		likedAt = time.Now()
	}
	notification := &mongo.SysBoxModel{
		ReceiverID: blog.UserID,
		SenderID:   senderID,
		SenderName: senderName,
		Type:       consts.NotifyBlogLike,
		TargetID:   blogID,
		Content:    blog.Title,
		Payload: map[string]any{
			"slug": blog.Slug,
		},
		CreatedAt: likedAt,
	}

	if err = s.sysBoxRepo.UpsertNotification(ctx, notification); err != nil {
		return err
	}
	log.InfoContext(ctx, "like notification sent", "blogID", blogID, "receiverID", blog.UserID)
	return nil
}
