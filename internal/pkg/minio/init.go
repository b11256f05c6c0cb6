package minio

import (
	"Inkpost/internal/api/config"
	"context"
	"fmt"
	log "log/slog"
	"slices"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/lifecycle"
)

var (
	// Client 为 nil 表示对象存储未启用
	Client     *minio.Client
	MainBucket string
	TempBucket string
	// publicBase 对外访问前缀，如 https://cdn.example.com
	publicBase string
)

// 临时桶兜底过期规则，cron 清理之外的第二道保障
const (
	tempRuleID   = "inkpost-temp-expire"
	tempRuleDays = 2
)

// Init 连接 MinIO，创建主桶与临时桶
func Init(cfg config.MinIOConfig) error {
	endpoint, useSSL := cfg.InternalEndpoint, cfg.InternalUseSSL
	if endpoint == "" {
		endpoint, useSSL = cfg.ExternalEndpoint, cfg.ExternalUseSSL
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return fmt.Errorf("create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	for _, bucket := range []string{cfg.MainBucket, cfg.TempBucket} {
		if err = ensureBucket(ctx, client, bucket); err != nil {
			return err
		}
	}
	if err = ensureTempExpiry(ctx, client, cfg.TempBucket); err != nil {
		return err
	}

	scheme := "http"
	if cfg.ExternalUseSSL {
		scheme = "https"
	}
	Client = client
	MainBucket, TempBucket = cfg.MainBucket, cfg.TempBucket
	publicBase = scheme + "://" + cfg.ExternalEndpoint
	log.Info("MinIO initialized", "endpoint", endpoint, "main", MainBucket, "temp", TempBucket)
	return nil
}

func ensureBucket(ctx context.Context, client *minio.Client, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if err = client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", bucket, err)
	}
	log.Info("minio bucket created", "bucket", bucket)
	return nil
}

func ensureTempExpiry(ctx context.Context, client *minio.Client, bucket string) error {
	lc, err := client.GetBucketLifecycle(ctx, bucket)
	if err != nil || lc == nil {
		lc = lifecycle.NewConfiguration()
	}
	if slices.ContainsFunc(lc.Rules, func(r lifecycle.Rule) bool { return r.ID == tempRuleID }) {
		return nil
	}

	lc.Rules = append(lc.Rules, lifecycle.Rule{
		ID:         tempRuleID,
		Status:     "Enabled",
		Expiration: lifecycle.Expiration{Days: tempRuleDays},
	})
	if err = client.SetBucketLifecycle(ctx, bucket, lc); err != nil {
		return fmt.Errorf("set lifecycle on %s: %w", bucket, err)
	}
	log.Info("temp bucket lifecycle rule installed", "bucket", bucket, "days", tempRuleDays)
	return nil
}
