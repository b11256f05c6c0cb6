package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrDuplicateKey 唯一约束冲突（slug、点赞、用户名等）
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrBlogNotVisible 互动目标不存在或未发布
	ErrBlogNotVisible = errors.New("blog not visible")
)

// translate 将 gorm 的冲突错误统一为仓储层错误
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	return err
}
