package model

import (
	"time"
)

type Folder struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;index:idx_user_parent" json:"userId"`
	ParentID  *uint64   `gorm:"index:idx_user_parent" json:"parentId"` // nil 为根目录
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Folder) TableName() string {
	return "folders"
}
