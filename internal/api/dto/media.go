package dto

// MediaUploadDTO Key 作为发布时的 seoImage 引用
type MediaUploadDTO struct {
	Key    string `json:"key"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// MediaTempMetadata 存于 redis 哈希 media:temp，CreatedAt 为 unix 秒
type MediaTempMetadata struct {
	MimeType  string `json:"mimeType"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	CreatedAt int64  `json:"createdAt"`
}
