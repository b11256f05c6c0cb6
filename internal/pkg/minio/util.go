package minio

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// UploadTemp 上传到临时桶，发布时再转存
func UploadTemp(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if Client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}

	uploadInfo, err := Client.PutObject(ctx, TempBucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return uploadInfo.Key, nil
}

// Promote 将临时对象复制到主桶并删除临时副本
func Promote(ctx context.Context, objectName string) error {
	if Client == nil {
		return fmt.Errorf("minio client is not initialized")
	}

	_, err := Client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: MainBucket, Object: objectName},
		minio.CopySrcOptions{Bucket: TempBucket, Object: objectName},
	)
	if err != nil {
		return fmt.Errorf("failed to promote file: %w", err)
	}

	return DeleteTemp(ctx, objectName)
}

// DeleteTemp 删除临时桶中的对象
func DeleteTemp(ctx context.Context, objectName string) error {
	if Client == nil {
		return fmt.Errorf("minio client is not initialized")
	}

	err := Client.RemoveObject(ctx, TempBucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// GetPublicURL 获取主桶对象的公共访问URL
func GetPublicURL(objectName string) string {
	return buildURL(MainBucket, objectName)
}

// GetTempURL 预览用的临时桶地址
func GetTempURL(objectName string) string {
	return buildURL(TempBucket, objectName)
}

func buildURL(bucket, objectName string) string {
	return fmt.Sprintf("%s/%s/%s", publicBase, bucket, objectName)
}
