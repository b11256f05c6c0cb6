package repository

import (
	"Inkpost/internal/model"
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

type UserRepo interface {
	GetUserById(ctx context.Context, id uint64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	CreateUserWithRootFolder(ctx context.Context, user *model.User, rootName string) error
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

func (s *UserRepoImpl) GetUserById(ctx context.Context, id uint64) (*model.User, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *UserRepoImpl) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.first(ctx, "email = ?", email)
}

func (s *UserRepoImpl) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.first(ctx, "username = ?", username)
}

func (s *UserRepoImpl) first(ctx context.Context, query string, arg any) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).Where(query, arg).First(user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(result.Error, "query user")
	}
	return user, nil
}

// CreateUserWithRootFolder 用户与根目录在同一事务内创建
func (s *UserRepoImpl) CreateUserWithRootFolder(ctx context.Context, user *model.User, rootName string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return translate(err)
		}
		folder := &model.Folder{UserID: user.ID, Name: rootName}
		if err := tx.Create(folder).Error; err != nil {
			return pkgerrors.Wrap(err, "create root folder")
		}
		return nil
	})
}
