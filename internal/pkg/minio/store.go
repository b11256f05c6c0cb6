package minio

import (
	"context"
	"io"
)

// Store 将包级函数包装为可注入的对象存储
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) UploadTemp(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	return UploadTemp(ctx, objectName, reader, size, contentType)
}

func (s *Store) DeleteTemp(ctx context.Context, objectName string) error {
	return DeleteTemp(ctx, objectName)
}

func (s *Store) TempURL(objectName string) string {
	return GetTempURL(objectName)
}
