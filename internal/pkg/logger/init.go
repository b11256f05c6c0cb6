package logger

import (
	"Inkpost/internal/api/config"
	"io"
	log "log/slog"
	"net"
	"os"
	"time"
)

var LogWriter io.Writer = os.Stdout

// InitLogger 初始化全局 slog，配置了 Logstash 时同时上报远端
func InitLogger() {
	hStdout := log.NewJSONHandler(os.Stdout, &log.HandlerOptions{Level: log.LevelInfo})
	log.SetDefault(log.New(NewHandler(hStdout, config.Cfg.Logstash)))
}

// NewHandler 组装最终的 Handler，远端不可达时退化为仅本地输出
func NewHandler(local log.Handler, cfg config.LogstashConfig) log.Handler {
	var finalHandler log.Handler = local

	if cfg.Address != "" {
		conn, err := net.DialTimeout("tcp", cfg.Address, 3*time.Second)
		if err == nil {
			hRemote := log.NewJSONHandler(conn, &log.HandlerOptions{Level: log.LevelInfo}).
				WithAttrs([]log.Attr{
					log.String("target_index", cfg.Index),
					log.String("log_token", cfg.Token),
				})

			finalHandler = &TeeHandler{
				handlers: []log.Handler{local, &RemoteFilterHandler{next: hRemote}},
			}
			LogWriter = io.MultiWriter(os.Stdout, conn)
		} else {
			log.Warn("Failed to connect to Logstash, logging to stdout only", "err", err)
		}
	}

	return &ContextHandler{finalHandler}
}
