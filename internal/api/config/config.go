package config

import (
	"errors"
	"fmt"
	log "log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg，环境变量优先于文件
func LoadConfig() error {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file loaded", "err", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		log.Warn("config file not found, using defaults and environment", "err", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 5)
	v.SetDefault("database.max_idle", 10)
	v.SetDefault("database.max_open", 50)
	v.SetDefault("database.max_lifetime", 60)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.pool_size", 20)
	v.SetDefault("jwt.issuer", "Inkpost")
	v.SetDefault("jwt.access_ttl", 15)
	v.SetDefault("jwt.refresh_ttl", 168)
	v.SetDefault("publish.max_slug_attempts", 100)
	v.SetDefault("publish.words_per_minute", 200)
	v.SetDefault("search.default_page_size", 10)
	v.SetDefault("search.max_page_size", 50)
	v.SetDefault("search.suggestion_limit", 10)
	v.SetDefault("analytics.cache_ttl", 300)
	v.SetDefault("elastic.indices.blog_index", "inkpost_blogs")
	v.SetDefault("mongo.database", "inkpost")
	v.SetDefault("chrome.timeout", 30)
	v.SetDefault("importer.timeout", 20)
	v.SetDefault("rate_limit.rps", 5)
	v.SetDefault("rate_limit.burst", 10)
	v.SetDefault("cron.token_purge", "0 0 * * * *")
	v.SetDefault("cron.media_clean", "0 30 3 * * *")
	v.SetDefault("cron.analytics_warm", "0 */5 * * * *")
}
