package dto

// SysBoxDTO 系统通知返回对象
type SysBoxDTO struct {
	ID         string         `json:"id"`
	SenderID   uint64         `json:"senderId"`
	SenderName string         `json:"senderName"`
	Type       int8           `json:"type"`     // 1-博客点赞
	TargetID   uint64         `json:"targetId"` // 关联的博客ID
	Content    string         `json:"content"`  // 博客标题
	Payload    map[string]any `json:"payload"`
	IsRead     bool           `json:"isRead"`
	CreatedAt  string         `json:"createdAt"`
}

// SysBoxUnreadDTO 未读数返回
type SysBoxUnreadDTO struct {
	UnreadCount int64 `json:"unreadCount"`
}

type MarkReadDTO struct {
	ID string `json:"id" binding:"required"`
}

type NotificationQuery struct {
	Page     int `form:"page" validate:"gte=0"`
	PageSize int `form:"pageSize" validate:"gte=0,lte=50"`
}
