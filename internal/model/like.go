package model

import "time"

// Like 复合主键 (user_id, blog_id) 保证同一用户对同一博客至多一条点赞
type Like struct {
	UserID    uint64    `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	BlogID    uint64    `gorm:"primaryKey;autoIncrement:false;index:idx_like_blog" json:"blogId"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (Like) TableName() string { return "blog_likes" }
