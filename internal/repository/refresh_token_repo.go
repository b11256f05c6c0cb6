package repository

import (
	"Inkpost/internal/model"
	"context"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

type RefreshTokenRepo interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	GetByHash(ctx context.Context, hash string) (*model.RefreshToken, error)
	Revoke(ctx context.Context, hash string) (bool, error)
	RevokeAllForUser(ctx context.Context, userID uint64) ([]string, error)
	PurgeExpired(ctx context.Context, before time.Time) (int64, error)
}

type RefreshTokenRepoImpl struct {
	db *gorm.DB
}

func NewRefreshTokenRepo(db *gorm.DB) RefreshTokenRepo {
	return &RefreshTokenRepoImpl{db: db}
}

func (s *RefreshTokenRepoImpl) Create(ctx context.Context, token *model.RefreshToken) error {
	return translate(s.db.WithContext(ctx).Create(token).Error)
}

func (s *RefreshTokenRepoImpl) GetByHash(ctx context.Context, hash string) (*model.RefreshToken, error) {
	token := &model.RefreshToken{}
	err := s.db.WithContext(ctx).Where("token_hash = ?", hash).First(token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(err, "query refresh token")
	}
	return token, nil
}

// Revoke 仅对未吊销的令牌生效，返回值表示本次是否实际吊销
func (s *RefreshTokenRepoImpl) Revoke(ctx context.Context, hash string) (bool, error) {
	result := s.db.WithContext(ctx).Model(&model.RefreshToken{}).
		Where("token_hash = ? AND revoked_at IS NULL", hash).
		Update("revoked_at", time.Now())
	if result.Error != nil {
		return false, pkgerrors.Wrap(result.Error, "revoke refresh token")
	}
	return result.RowsAffected > 0, nil
}

// RevokeAllForUser 吊销用户全部有效令牌，返回被吊销的哈希以便清理缓存
func (s *RefreshTokenRepoImpl) RevokeAllForUser(ctx context.Context, userID uint64) ([]string, error) {
	var hashes []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.RefreshToken{}).
			Where("user_id = ? AND revoked_at IS NULL", userID).
			Pluck("token_hash", &hashes).Error; err != nil {
			return err
		}
		if len(hashes) == 0 {
			return nil
		}
		return tx.Model(&model.RefreshToken{}).
			Where("token_hash IN ?", hashes).
			Update("revoked_at", time.Now()).Error
	})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "revoke user refresh tokens")
	}
	return hashes, nil
}

// PurgeExpired 物理删除过期或已吊销的令牌
func (s *RefreshTokenRepoImpl) PurgeExpired(ctx context.Context, before time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at < ? OR revoked_at < ?", before, before).
		Delete(&model.RefreshToken{})
	if result.Error != nil {
		return 0, pkgerrors.Wrap(result.Error, "purge refresh tokens")
	}
	return result.RowsAffected, nil
}
