package dto

import "time"

type FolderDTO struct {
	ID        uint64    `json:"id"`
	ParentID  *uint64   `json:"parentId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FileDTO 目录树中 Content 为空
type FileDTO struct {
	ID        uint64    `json:"id"`
	FolderID  *uint64   `json:"folderId"`
	Name      string    `json:"name"`
	Content   string    `json:"content,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TreeDTO 扁平的目录与文件列表，由前端组装为树
type TreeDTO struct {
	Folders []*FolderDTO `json:"folders"`
	Files   []*FileDTO   `json:"files"`
}

type CreateFolderDTO struct {
	Name     string  `json:"name" binding:"required" validate:"min=1,max=255"`
	ParentID *uint64 `json:"parentId"`
}

type RenameFolderDTO struct {
	Name string `json:"name" binding:"required" validate:"min=1,max=255"`
}

type CreateFileDTO struct {
	Name     string  `json:"name" binding:"required" validate:"min=1,max=255"`
	FolderID *uint64 `json:"folderId"`
	Content  *string `json:"content"`
}

// UpdateFileDTO FolderID 为 0 表示移动到根目录
type UpdateFileDTO struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=255"`
	Content  *string `json:"content"`
	FolderID *uint64 `json:"folderId"`
}

type ImportURLDTO struct {
	URL      string  `json:"url" binding:"required" validate:"url"`
	FolderID *uint64 `json:"folderId"`
}
