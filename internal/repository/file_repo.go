package repository

import (
	"Inkpost/internal/model"
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

type FileRepo interface {
	GetFile(ctx context.Context, userID, id uint64) (*model.File, error)
	ListFiles(ctx context.Context, userID uint64) ([]*model.File, error)
	CreateFile(ctx context.Context, file *model.File) error
	UpdateFile(ctx context.Context, file *model.File) error
	DeleteFile(ctx context.Context, userID, id uint64) error
}

type FileRepoImpl struct {
	db *gorm.DB
}

func NewFileRepo(db *gorm.DB) FileRepo {
	return &FileRepoImpl{db: db}
}

func (s *FileRepoImpl) GetFile(ctx context.Context, userID, id uint64) (*model.File, error) {
	file := &model.File{}
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(err, "query file")
	}
	return file, nil
}

// ListFiles 目录树只需要元信息，不加载正文
func (s *FileRepoImpl) ListFiles(ctx context.Context, userID uint64) ([]*model.File, error) {
	files := make([]*model.File, 0)
	err := s.db.WithContext(ctx).
		Select("id", "user_id", "folder_id", "name", "created_at", "updated_at").
		Where("user_id = ?", userID).
		Order("name ASC, id ASC").
		Find(&files).Error
	return files, pkgerrors.Wrap(err, "list files")
}

func (s *FileRepoImpl) CreateFile(ctx context.Context, file *model.File) error {
	return pkgerrors.Wrap(s.db.WithContext(ctx).Create(file).Error, "create file")
}

func (s *FileRepoImpl) UpdateFile(ctx context.Context, file *model.File) error {
	return pkgerrors.Wrap(s.db.WithContext(ctx).Model(file).
		Select("folder_id", "name", "content").
		Where("user_id = ?", file.UserID).
		Updates(file).Error, "update file")
}

func (s *FileRepoImpl) DeleteFile(ctx context.Context, userID, id uint64) error {
	return pkgerrors.Wrap(s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.File{}).Error, "delete file")
}
