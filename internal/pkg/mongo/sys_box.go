package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const SysBoxCollection = "sys_box"

// SysBoxModel 系统通知模型
type SysBoxModel struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReceiverID uint64             `bson:"receiver_id" json:"receiverId"` // 博客作者
	SenderID   uint64             `bson:"sender_id" json:"senderId"`     // 点赞者
	SenderName string             `bson:"sender_name" json:"senderName"`
	Type       int8               `bson:"type" json:"type"`           // 1-博客点赞
	TargetID   uint64             `bson:"target_id" json:"targetId"`  // 博客ID
	Content    string             `bson:"content" json:"content"`     // 博客标题快照
	Payload    map[string]any     `bson:"payload" json:"payload"`     // 如 slug
	IsRead     bool               `bson:"is_read" json:"isRead"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}
