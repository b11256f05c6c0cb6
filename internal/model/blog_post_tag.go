package model

// BlogPostTag 标签倒排表，供标签过滤使用；展示顺序以 BlogPost.Tags 为准
type BlogPostTag struct {
	BlogID uint64 `gorm:"primaryKey"`
	Tag    string `gorm:"primaryKey;type:varchar(64);index:idx_tag"`
}

func (BlogPostTag) TableName() string {
	return "blog_post_tags"
}
