package kafka

import (
	"Inkpost/internal/pkg/consts"
	"Inkpost/internal/pkg/es"
	"Inkpost/internal/pkg/util"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// BlogsHandler 将 blog_posts 的变更同步到 ES，仅已发布博客保留在索引中
type BlogsHandler struct {
	blogESRepo es.BlogRepo
}

func NewBlogsHandler(blogESRepo es.BlogRepo) *BlogsHandler {
	return &BlogsHandler{blogESRepo: blogESRepo}
}

func (s *BlogsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("blog consumer setup")
	return nil
}

func (s *BlogsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("blog consumer cleanup")
	return nil
}

func (s *BlogsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-blog consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-blog process batch error", "err", err)
		return err
	}
	return nil
}

func (s *BlogsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "blog_posts")
	if err != nil {
		return err
	}

	for _, row := range canalMsg.Data {
		doc := toBlogES(canalMsg.Type, row)
		if doc == nil {
			id := StrToUint64(row["id"])
			if err = s.blogESRepo.DeleteBlog(ctx, id); err != nil {
				return err
			}
			log.InfoContext(ctx, "blog removed from index", "blogID", id)
			continue
		}
		if err = s.blogESRepo.IndexBlog(ctx, doc, canalMsg.TS); err != nil {
			return err
		}
		log.InfoContext(ctx, "blog indexed", "blogID", doc.ID)
	}
	return nil
}

// toBlogES 删除事件或非发布状态返回 nil
func toBlogES(eventType string, row map[string]any) *es.BlogES {
	if eventType == DELETE || StrToString(row["status"]) != consts.BlogStatusPublished {
		return nil
	}
	return &es.BlogES{
		ID:          StrToUint64(row["id"]),
		UserID:      StrToUint64(row["user_id"]),
		Title:       StrToString(row["title"]),
		Slug:        StrToString(row["slug"]),
		Excerpt:     StrToString(row["excerpt"]),
		Content:     util.PlainText(StrToString(row["content"])),
		Tags:        StrToStrings(row["tags"]),
		Views:       StrToInt64(row["views"]),
		Likes:       StrToInt64(row["likes"]),
		PublishedAt: StrToTimePtr(row["published_at"]),
		UpdatedAt:   StrToDateTime(row["updated_at"]),
	}
}
