package repository

import (
	"Inkpost/internal/model"
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

type FolderRepo interface {
	GetFolder(ctx context.Context, userID, id uint64) (*model.Folder, error)
	ListFolders(ctx context.Context, userID uint64) ([]*model.Folder, error)
	CreateFolder(ctx context.Context, folder *model.Folder) error
	RenameFolder(ctx context.Context, userID, id uint64, name string) error
	DeleteFolderTree(ctx context.Context, userID, id uint64) (int, error)
}

type FolderRepoImpl struct {
	db *gorm.DB
}

func NewFolderRepo(db *gorm.DB) FolderRepo {
	return &FolderRepoImpl{db: db}
}

func (s *FolderRepoImpl) GetFolder(ctx context.Context, userID, id uint64) (*model.Folder, error) {
	folder := &model.Folder{}
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(folder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(err, "query folder")
	}
	return folder, nil
}

func (s *FolderRepoImpl) ListFolders(ctx context.Context, userID uint64) ([]*model.Folder, error) {
	folders := make([]*model.Folder, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC, id ASC").
		Find(&folders).Error
	return folders, pkgerrors.Wrap(err, "list folders")
}

func (s *FolderRepoImpl) CreateFolder(ctx context.Context, folder *model.Folder) error {
	return pkgerrors.Wrap(s.db.WithContext(ctx).Create(folder).Error, "create folder")
}

func (s *FolderRepoImpl) RenameFolder(ctx context.Context, userID, id uint64, name string) error {
	return pkgerrors.Wrap(s.db.WithContext(ctx).Model(&model.Folder{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("name", name).Error, "rename folder")
}

// DeleteFolderTree 广度优先收集子目录，再批量删除文件与目录，整体一个事务
// 返回被删除的目录数
func (s *FolderRepoImpl) DeleteFolderTree(ctx context.Context, userID, id uint64) (int, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids = []uint64{id}
		queue := []uint64{id}
		for len(queue) > 0 {
			var children []uint64
			if err := tx.Model(&model.Folder{}).
				Where("user_id = ? AND parent_id IN ?", userID, queue).
				Pluck("id", &children).Error; err != nil {
				return err
			}
			ids = append(ids, children...)
			queue = children
		}

		if err := tx.Where("user_id = ? AND folder_id IN ?", userID, ids).
			Delete(&model.File{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? AND id IN ?", userID, ids).
			Delete(&model.Folder{}).Error
	})
	if err != nil {
		return 0, pkgerrors.Wrap(err, "delete folder tree")
	}
	return len(ids), nil
}
