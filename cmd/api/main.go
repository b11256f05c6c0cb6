package main

import (
	"Inkpost/internal/api/config"
	"Inkpost/internal/pkg/browser"
	"Inkpost/internal/pkg/database"
	"Inkpost/internal/pkg/es"
	"Inkpost/internal/pkg/logger"
	"Inkpost/internal/pkg/minio"
	"Inkpost/internal/pkg/mongo"
	"Inkpost/internal/pkg/redis"
	"Inkpost/internal/pkg/security"
	"Inkpost/internal/wire"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

func main() {
	// 加载配置
	if err := config.LoadConfig(); err != nil {
		log.Error("Fatal error: failed to load configuration", "err", err)
		panic(err)
	}
	cfg := config.Cfg

	// 初始化日志
	logger.InitLogger()

	if cfg.JWT.Secret == "" {
		log.Error("Fatal error: jwt.secret is empty")
		panic("jwt.secret is required")
	}
	security.Init(cfg.JWT.Secret, cfg.JWT.Issuer,
		time.Duration(cfg.JWT.AccessTTL)*time.Minute,
		time.Duration(cfg.JWT.RefreshTTL)*time.Hour,
	)

	// 数据库连接
	dbCfg := cfg.DB
	db, err := database.NewGormDB(&dbCfg)
	if err != nil {
		log.Error("Fatal error: failed to create database connection", "err", err)
		panic(err)
	}

	// Redis 连接
	if err = redis.InitRedis(cfg.Redis); err != nil {
		log.Error("Fatal error: failed to create redis connection", "err", err)
		panic(err)
	}

	// 可选集成，连接失败时关闭对应功能
	var ext wire.Integrations

	if cfg.Mongo.Enable {
		ext.Mongo, err = mongo.InitMongo(cfg.Mongo)
		if err != nil {
			log.Warn("mongo unavailable, notifications disabled", "err", err)
		}
	}

	if cfg.MinIO.Enable {
		if err = minio.Init(cfg.MinIO); err != nil {
			log.Warn("minio unavailable, media upload disabled", "err", err)
			minio.Client = nil
		}
	}

	if cfg.Elastic.Enable {
		if err = es.InitClient(); err != nil {
			log.Warn("elasticsearch unavailable, falling back to sql search", "err", err)
			es.Client = nil
		}
	}

	if cfg.Chrome.Enable {
		ext.Browser, err = browser.New(cfg.Chrome)
		if err != nil {
			log.Warn("headless chrome unavailable, pdf export disabled", "err", err)
		} else {
			defer ext.Browser.Close()
		}
	}

	// 依赖注入
	app, err := wire.BuildApplication(db, ext, cfg)
	if err != nil {
		log.Error("Fatal error: failed to create application", "err", err)
		panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	// 定时任务
	if err = app.CronMgr.Run(); err != nil {
		log.Error("Fatal error: failed to start cron jobs", "err", err)
		panic(err)
	}
	g.Go(func() error {
		<-ctx.Done()
		app.CronMgr.Stop()
		return nil
	})

	// Kafka 消费者
	if app.KafkaManager != nil {
		g.Go(func() error {
			log.Info("Kafka Consumers starting...")
			return app.KafkaManager.Start(ctx)
		})
	}

	// HTTP 服务器
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		log.Info("HTTP Server starting...", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// 优雅退出
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-ctx.Done():
		case sig := <-quit:
			log.Info("Received signal, shutting down...", "signal", sig)
			cancel()
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP Server shutdown failed", "err", err)
		}
		return nil
	})

	if err = g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("App exited with error", "err", err)
	}
	log.Info("App exited successfully.")
}
