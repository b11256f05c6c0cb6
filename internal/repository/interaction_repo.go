package repository

import (
	"Inkpost/internal/model"
	"Inkpost/internal/pkg/consts"
	"context"
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InteractionResult 事务提交后的计数快照
type InteractionResult struct {
	Views   int64
	Likes   int64
	Shares  int64
	IsLiked bool
}

type InteractionRepo interface {
	// Apply 在单个事务中更新博客计数与当日统计，目标须为已发布博客
	Apply(ctx context.Context, userID, blogID uint64, action string, day time.Time) (*InteractionResult, error)
	IsLiked(ctx context.Context, userID, blogID uint64) (bool, error)
}

type InteractionRepoImpl struct {
	db *gorm.DB
}

func NewInteractionRepo(db *gorm.DB) InteractionRepo {
	return &InteractionRepoImpl{db: db}
}

func decrementFloor(column string) clause.Expr {
	return gorm.Expr(fmt.Sprintf("CASE WHEN %[1]s > 0 THEN %[1]s - 1 ELSE 0 END", column))
}

func (s *InteractionRepoImpl) Apply(ctx context.Context, userID, blogID uint64, action string, day time.Time) (*InteractionResult, error) {
	res := &InteractionResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post := &model.BlogPost{}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "views", "likes", "shares").
			Where("id = ? AND status = ?", blogID, consts.BlogStatusPublished).
			First(post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBlogNotVisible
			}
			return err
		}

		var column string
		var delta clause.Expr
		switch action {
		case consts.InteractionLike:
			column = "likes"
			liked, err := toggleLike(tx, userID, blogID)
			if err != nil {
				return err
			}
			res.IsLiked = liked
			if liked {
				delta = gorm.Expr("likes + 1")
			} else {
				delta = decrementFloor("likes")
			}
		case consts.InteractionView:
			column, delta = "views", gorm.Expr("views + 1")
		case consts.InteractionShare:
			column, delta = "shares", gorm.Expr("shares + 1")
		default:
			return fmt.Errorf("unknown interaction %q", action)
		}

		if err := tx.Model(&model.BlogPost{}).Where("id = ?", blogID).
			UpdateColumn(column, delta).Error; err != nil {
			return err
		}
		if err := upsertDaily(tx, blogID, day, column, res.IsLiked || action != consts.InteractionLike); err != nil {
			return err
		}

		return tx.Model(&model.BlogPost{}).
			Select("views", "likes", "shares").
			Where("id = ?", blogID).
			Row().Scan(&res.Views, &res.Likes, &res.Shares)
	})
	if err != nil {
		if errors.Is(err, ErrBlogNotVisible) {
			return nil, err
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, pkgerrors.Wrap(err, "apply interaction")
	}
	return res, nil
}

// toggleLike 行锁已在博客上持有，唯一主键兜底重复插入
func toggleLike(tx *gorm.DB, userID, blogID uint64) (bool, error) {
	result := tx.Where("user_id = ? AND blog_id = ?", userID, blogID).Delete(&model.Like{})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return false, nil
	}
	if err := tx.Create(&model.Like{UserID: userID, BlogID: blogID}).Error; err != nil {
		return false, err
	}
	return true, nil
}

// upsertDaily 当日行不存在时插入，否则按列增减；减量不低于 0
func upsertDaily(tx *gorm.DB, blogID uint64, day time.Time, column string, increment bool) error {
	row := &model.DailyAnalytics{BlogID: blogID, Date: day}
	expr := decrementFloor(column)
	if increment {
		expr = gorm.Expr(column + " + 1")
		switch column {
		case "views":
			row.Views = 1
		case "likes":
			row.Likes = 1
		case "shares":
			row.Shares = 1
		}
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "blog_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]any{column: expr, "updated_at": time.Now()}),
	}).Create(row).Error
}

func (s *InteractionRepoImpl) IsLiked(ctx context.Context, userID, blogID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND blog_id = ?", userID, blogID).
		Count(&count).Error
	return count > 0, pkgerrors.Wrap(err, "check like")
}
