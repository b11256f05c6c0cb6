package es

import (
	"Inkpost/internal/api/config"
	"Inkpost/internal/pkg/logger"
	"context"
	"fmt"
	log "log/slog"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

var Client *elasticsearch.TypedClient

var BlogIndex string

const (
	NotFoundCode = 404
	ConflictCode = 409
)

// InitClient 连接 Elasticsearch 并确保博客索引存在
func InitClient() error {
	elasticCfg := config.Cfg.Elastic
	BlogIndex = elasticCfg.Indices.BlogIndex

	client, err := elasticsearch.NewTypedClient(elasticsearch.Config{
		Addresses: []string{elasticCfg.Address},
		Username:  elasticCfg.Username,
		Password:  elasticCfg.Password,
		Transport: &logger.ESTransport{
			Transport: http.DefaultTransport,
		},
	})
	if err != nil {
		return fmt.Errorf("create elasticsearch client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	info, err := client.Info().Do(ctx)
	if err != nil {
		return fmt.Errorf("ping elasticsearch: %w", err)
	}
	if err = ensureBlogIndex(ctx, client); err != nil {
		return err
	}

	Client = client
	log.Info("Connected to Elasticsearch", "version", info.Version.Int, "index", BlogIndex)
	return nil
}

func ensureBlogIndex(ctx context.Context, client *elasticsearch.TypedClient) error {
	exists, err := client.Indices.Exists(BlogIndex).Do(ctx)
	if err != nil {
		return fmt.Errorf("check index %s: %w", BlogIndex, err)
	}
	if exists {
		return nil
	}

	_, err = client.Indices.Create(BlogIndex).Mappings(blogMapping()).Do(ctx)
	if err != nil {
		return fmt.Errorf("create index %s: %w", BlogIndex, err)
	}
	log.Info("elasticsearch index created", "index", BlogIndex)
	return nil
}

// blogMapping tags 与 slug 精确匹配，其余文本字段分词
func blogMapping() *types.TypeMapping {
	return &types.TypeMapping{
		Properties: map[string]types.Property{
			"id":           types.NewLongNumberProperty(),
			"user_id":      types.NewLongNumberProperty(),
			"title":        types.NewTextProperty(),
			"slug":         types.NewKeywordProperty(),
			"excerpt":      types.NewTextProperty(),
			"content":      types.NewTextProperty(),
			"tags":         types.NewKeywordProperty(),
			"views":        types.NewLongNumberProperty(),
			"likes":        types.NewLongNumberProperty(),
			"published_at": types.NewDateProperty(),
			"updated_at":   types.NewDateProperty(),
		},
	}
}
