package config

// Config 配置主体
type Config struct {
	Server            ServerConfig      `mapstructure:"server"`
	DB                DBConfig          `mapstructure:"database"`
	Redis             RedisConfig       `mapstructure:"redis"`
	JWT               JWTConfig         `mapstructure:"jwt"`
	Publish           PublishConfig     `mapstructure:"publish"`
	Search            SearchConfig      `mapstructure:"search"`
	Analytics         AnalyticsConfig   `mapstructure:"analytics"`
	MinIO             MinIOConfig       `mapstructure:"minio"`
	Elastic           ElasticConfig     `mapstructure:"elastic"`
	Mongo             MongoConfig       `mapstructure:"mongo"`
	Kafka             KafkaConfig       `mapstructure:"kafka"`
	KafkaBlogConsumer KafkaConsumerSpec `mapstructure:"kafka_blog_consumer"`
	KafkaLikeConsumer KafkaConsumerSpec `mapstructure:"kafka_like_consumer"`
	Logstash          LogstashConfig    `mapstructure:"logstash"`
	Chrome            ChromeConfig      `mapstructure:"chrome"`
	Importer          ImporterConfig    `mapstructure:"importer"`
	RateLimit         RateLimitConfig   `mapstructure:"rate_limit"`
	Cron              CronConfig        `mapstructure:"cron"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port            int      `mapstructure:"port"`
	ShutdownTimeout int      `mapstructure:"shutdown_timeout"`
	TrustedProxies  []string `mapstructure:"trusted_proxies"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// JWTConfig TTL 单位：access 为分钟，refresh 为小时
type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	Issuer     string `mapstructure:"issuer"`
	AccessTTL  int    `mapstructure:"access_ttl"`
	RefreshTTL int    `mapstructure:"refresh_ttl"`
}

type PublishConfig struct {
	MaxSlugAttempts int `mapstructure:"max_slug_attempts"`
	WordsPerMinute  int `mapstructure:"words_per_minute"`
}

type SearchConfig struct {
	DefaultPageSize int `mapstructure:"default_page_size"`
	MaxPageSize     int `mapstructure:"max_page_size"`
	SuggestionLimit int `mapstructure:"suggestion_limit"`
}

// AnalyticsConfig CacheTTL 单位秒
type AnalyticsConfig struct {
	CacheTTL int `mapstructure:"cache_ttl"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Enable           bool   `mapstructure:"enable"`
	InternalEndpoint string `mapstructure:"internal_endpoint"`
	ExternalEndpoint string `mapstructure:"external_endpoint"`
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	MainBucket       string `mapstructure:"main_bucket"`
	TempBucket       string `mapstructure:"temp_bucket"`
	InternalUseSSL   bool   `mapstructure:"internal_use_ssl"`
	ExternalUseSSL   bool   `mapstructure:"external_use_ssl"`
}

// ElasticConfig Elastic配置
type ElasticConfig struct {
	Enable   bool           `mapstructure:"enable"`
	Address  string         `mapstructure:"address"`
	Username string         `mapstructure:"username"`
	Password string         `mapstructure:"password"`
	Indices  ElasticIndices `mapstructure:"indices"`
}

// ElasticIndices Elastic索引
type ElasticIndices struct {
	BlogIndex string `mapstructure:"blog_index"`
}

type MongoConfig struct {
	Enable   bool   `mapstructure:"enable"`
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

type KafkaConfig struct {
	Enable   bool           `mapstructure:"enable"`
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaConsumerSpec struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// ChromeConfig 无头浏览器，Timeout 单位秒
type ChromeConfig struct {
	Enable   bool   `mapstructure:"enable"`
	ExecPath string `mapstructure:"exec_path"`
	Timeout  int    `mapstructure:"timeout"`
}

// ImporterConfig Timeout 单位秒
type ImporterConfig struct {
	Timeout   int    `mapstructure:"timeout"`
	UserAgent string `mapstructure:"user_agent"`
	Proxy     string `mapstructure:"proxy"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type CronConfig struct {
	TokenPurge    string `mapstructure:"token_purge"`
	MediaClean    string `mapstructure:"media_clean"`
	AnalyticsWarm string `mapstructure:"analytics_warm"`
}
