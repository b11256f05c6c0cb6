package handler

import (
	"Inkpost/internal/pkg/response"
	"Inkpost/internal/service"
	log "log/slog"

	"github.com/gin-gonic/gin"
)

// maxUploadSize SEO 图片上限 10MB
const maxUploadSize = 10 << 20

type MediaHandler struct {
	mediaSvc service.MediaService
}

func NewMediaHandler(mediaSvc service.MediaService) *MediaHandler {
	return &MediaHandler{mediaSvc: mediaSvc}
}

// UploadSEOImage 上传至临时桶，返回的 key 在发布时作为 seoImage 提交
func (s *MediaHandler) UploadSEOImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil || file.Size <= 0 || file.Size > maxUploadSize {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	out, err := s.mediaSvc.UploadSEOImage(c.Request.Context(), reader)
	if err != nil {
		response.Error(c, err)
		return
	}

	log.InfoContext(c.Request.Context(), "seo image uploaded", "key", out.Key, "original", file.Filename)
	response.SuccessCreated(c, out)
}
