package service

import (
	"Inkpost/internal/api/dto"
	"Inkpost/internal/pkg/consts"
	"Inkpost/internal/pkg/redis"
	"Inkpost/internal/pkg/util"
	"context"
	"io"
	log "log/slog"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// ObjectStore 临时桶读写
type ObjectStore interface {
	UploadTemp(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	DeleteTemp(ctx context.Context, objectName string) error
	TempURL(objectName string) string
}

type MediaService interface {
	UploadSEOImage(ctx context.Context, r io.ReadSeeker) (*dto.MediaUploadDTO, error)
	CleanTemp(ctx context.Context, maxAge time.Duration) (int, error)
}

type mediaServiceImpl struct {
	store ObjectStore
}

// NewMediaService store 为 nil 时上传返回 ErrFeatureDisabled
func NewMediaService(store ObjectStore) MediaService {
	return &mediaServiceImpl{store: store}
}

// UploadSEOImage 缩放后上传到临时桶，发布引用该 key 时再转存
func (s *mediaServiceImpl) UploadSEOImage(ctx context.Context, r io.ReadSeeker) (*dto.MediaUploadDTO, error) {
	if s.store == nil {
		return nil, ErrFeatureDisabled
	}

	contentType, err := util.GetSafeContentType(r)
	if err != nil {
		return nil, ErrParamInvalid
	}
	if !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		return nil, ErrFileNotSupported
	}

	buf, width, height, err := util.ResizeImage(r, util.MaxImageWidth)
	if err != nil {
		log.WarnContext(ctx, "seo image decode failed", "contentType", contentType, "err", err)
		return nil, ErrFileNotSupported
	}

	objectName := "seo/" + nowFunc().Format("2006/01/02/") + uuid.NewString() + ".jpg"
	key, err := s.store.UploadTemp(ctx, objectName, buf, int64(buf.Len()), "image/jpeg")
	if err != nil {
		log.ErrorContext(ctx, "minio upload failed", "err", err)
		return nil, UnExpectedError
	}

	meta, _ := json.Marshal(&dto.MediaTempMetadata{
		MimeType:  "image/jpeg",
		Width:     width,
		Height:    height,
		CreatedAt: nowFunc().Unix(),
	})
	if err = redis.HSet(ctx, consts.MediaTempKey, key, string(meta)); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "seo image uploaded", "key", key, "width", width, "height", height)
	return &dto.MediaUploadDTO{
		Key:    key,
		URL:    s.store.TempURL(key),
		Width:  width,
		Height: height,
	}, nil
}

// CleanTemp 删除超过 maxAge 仍未被发布引用的临时对象
func (s *mediaServiceImpl) CleanTemp(ctx context.Context, maxAge time.Duration) (int, error) {
	if s.store == nil {
		return 0, nil
	}
	all, err := redis.HGetAll(ctx, consts.MediaTempKey)
	if err != nil {
		return 0, err
	}

	cutoff := nowFunc().Add(-maxAge).Unix()
	count := 0
	for key, val := range all {
		var meta dto.MediaTempMetadata
		if err = json.Unmarshal([]byte(val), &meta); err != nil {
			log.WarnContext(ctx, "invalid media meta format", "key", key)
			continue
		}
		if meta.CreatedAt > cutoff {
			continue
		}
		if err = s.store.DeleteTemp(ctx, key); err != nil {
			log.ErrorContext(ctx, "failed to delete expired temp media", "key", key, "err", err)
			continue
		}
		if err = redis.HDel(ctx, consts.MediaTempKey, key); err != nil {
			log.ErrorContext(ctx, "failed to remove temp media entry", "key", key, "err", err)
			continue
		}
		count++
	}
	return count, nil
}
