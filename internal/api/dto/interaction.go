package dto

type InteractionDTO struct {
	Type string `json:"type" binding:"required" validate:"oneof=like share view"`
}

// InteractionResultDTO like 返回 likes/isLiked，view/share 返回对应计数
type InteractionResultDTO struct {
	Success bool   `json:"success"`
	Likes   *int64 `json:"likes,omitempty"`
	IsLiked *bool  `json:"isLiked,omitempty"`
	Views   *int64 `json:"views,omitempty"`
	Shares  *int64 `json:"shares,omitempty"`
	Message string `json:"message,omitempty"`
}

type LikeStatusDTO struct {
	IsLiked    bool  `json:"isLiked"`
	TotalLikes int64 `json:"totalLikes"`
}

// LiveCounterDTO 通过 redis 频道推送给 websocket 订阅者
type LiveCounterDTO struct {
	BlogID uint64 `json:"blogId"`
	Type   string `json:"type"`
	Views  int64  `json:"views"`
	Likes  int64  `json:"likes"`
	Shares int64  `json:"shares"`
}
