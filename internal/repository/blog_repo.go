package repository

import (
	"Inkpost/internal/model"
	"Inkpost/internal/pkg/consts"
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// 发布与编辑会改写的列，计数器由互动事务单独维护
var blogMutableColumns = []string{
	"file_name", "title", "slug", "content", "excerpt", "tags", "status",
	"published_at", "read_time", "seo_title", "seo_description", "seo_image",
}

type BlogRepo interface {
	// Create 插入博客并写入标签表；slug 或 (user_id, file_id) 冲突返回 ErrDuplicateKey
	Create(ctx context.Context, post *model.BlogPost) error
	// Save 覆盖可编辑列并重建标签表；slug 冲突返回 ErrDuplicateKey
	Save(ctx context.Context, post *model.BlogPost) error
	GetByID(ctx context.Context, id uint64) (*model.BlogPost, error)
	GetByUserFile(ctx context.Context, userID, fileID uint64) (*model.BlogPost, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
	Find(ctx context.Context, filter BlogFilter) ([]*model.BlogPost, error)
	List(ctx context.Context, filter BlogFilter, order string, limit, offset int) ([]*model.BlogPost, int64, error)
	Count(ctx context.Context, filter BlogFilter) (int64, error)
	PluckIDs(ctx context.Context, filter BlogFilter) ([]uint64, error)
	Delete(ctx context.Context, id uint64) error
}

type BlogRepoImpl struct {
	db *gorm.DB
}

func NewBlogRepo(db *gorm.DB) BlogRepo {
	return &BlogRepoImpl{db: db}
}

func (s *BlogRepoImpl) Create(ctx context.Context, post *model.BlogPost) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		return replaceTags(tx, post.ID, post.Tags)
	})
	if err != nil {
		post.ID = 0
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return pkgerrors.Wrap(err, "create blog")
	}
	return nil
}

func (s *BlogRepoImpl) Save(ctx context.Context, post *model.BlogPost) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(post).Select(blogMutableColumns).Updates(post).Error; err != nil {
			return err
		}
		return replaceTags(tx, post.ID, post.Tags)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return pkgerrors.Wrap(err, "save blog")
	}
	return nil
}

func replaceTags(tx *gorm.DB, blogID uint64, tags []string) error {
	if err := tx.Where("blog_id = ?", blogID).Delete(&model.BlogPostTag{}).Error; err != nil {
		return err
	}
	if len(tags) == 0 {
		return nil
	}
	rows := make([]*model.BlogPostTag, 0, len(tags))
	for _, tag := range tags {
		rows = append(rows, &model.BlogPostTag{BlogID: blogID, Tag: tag})
	}
	return tx.Create(&rows).Error
}

func (s *BlogRepoImpl) GetByID(ctx context.Context, id uint64) (*model.BlogPost, error) {
	return s.first(ctx, And(IDIn{IDs: []uint64{id}}))
}

func (s *BlogRepoImpl) GetByUserFile(ctx context.Context, userID, fileID uint64) (*model.BlogPost, error) {
	return s.first(ctx, And(OwnedBy{UserID: userID}, FromFile{FileID: fileID}))
}

func (s *BlogRepoImpl) GetPublishedBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	post := &model.BlogPost{}
	err := s.db.WithContext(ctx).
		Where("slug = ? AND status = ?", slug, consts.BlogStatusPublished).
		First(post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(err, "query blog by slug")
	}
	return post, nil
}

func (s *BlogRepoImpl) first(ctx context.Context, filter BlogFilter) (*model.BlogPost, error) {
	post := &model.BlogPost{}
	err := s.db.WithContext(ctx).Scopes(filter.Apply).First(post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(err, "query blog")
	}
	return post, nil
}

// Find 返回满足条件的全部候选，用于内存中的打分排序
func (s *BlogRepoImpl) Find(ctx context.Context, filter BlogFilter) ([]*model.BlogPost, error) {
	posts := make([]*model.BlogPost, 0)
	err := s.db.WithContext(ctx).Scopes(filter.Apply).Find(&posts).Error
	return posts, pkgerrors.Wrap(err, "find blogs")
}

func (s *BlogRepoImpl) List(ctx context.Context, filter BlogFilter, order string, limit, offset int) ([]*model.BlogPost, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.BlogPost{}).
		Scopes(filter.Apply).
		Count(&total).Error; err != nil {
		return nil, 0, pkgerrors.Wrap(err, "count blogs")
	}

	posts := make([]*model.BlogPost, 0)
	if total == 0 {
		return posts, 0, nil
	}
	err := s.db.WithContext(ctx).
		Scopes(filter.Apply).
		Order(order).
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, pkgerrors.Wrap(err, "list blogs")
	}
	return posts, total, nil
}

func (s *BlogRepoImpl) Count(ctx context.Context, filter BlogFilter) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.BlogPost{}).Scopes(filter.Apply).Count(&total).Error
	return total, pkgerrors.Wrap(err, "count blogs")
}

func (s *BlogRepoImpl) PluckIDs(ctx context.Context, filter BlogFilter) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.BlogPost{}).Scopes(filter.Apply).Pluck("id", &ids).Error
	return ids, pkgerrors.Wrap(err, "pluck blog ids")
}

// Delete 级联删除标签、点赞与日统计
func (s *BlogRepoImpl) Delete(ctx context.Context, id uint64) error {
	return pkgerrors.Wrap(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_id = ?", id).Delete(&model.BlogPostTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", id).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", id).Delete(&model.DailyAnalytics{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.BlogPost{}, id).Error
	}), "delete blog")
}
