package model

import (
	"time"
)

type File struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;index:idx_user_folder" json:"userId"`
	FolderID  *uint64   `gorm:"index:idx_user_folder" json:"folderId"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Content   string    `gorm:"type:longtext" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (File) TableName() string {
	return "files"
}
