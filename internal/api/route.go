package api

import (
	"Inkpost/internal/api/config"
	"Inkpost/internal/api/middleware"
	"Inkpost/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter(group *HandlersGroup, cfg *config.Config) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies(cfg.Server.TrustedProxies)

	// TraceId & Logger & CORS & Metrics
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.MetricsMiddleware())
	logger.SetupGin(r, cfg.Logstash.Index)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := middleware.AuthMiddleware()
	authOpt := middleware.AuthOptionalMiddleware()

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		authGroup := apiGroup.Group("/auth")
		authGroup.Use(middleware.RateLimitMiddleware(middleware.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)))
		{
			authGroup.POST("/register", group.AuthHandler.Register)
			authGroup.POST("/login", group.AuthHandler.Login)
			authGroup.POST("/refresh", group.AuthHandler.Refresh)
			authGroup.POST("/logout", auth, group.AuthHandler.Logout)
			authGroup.POST("/logout-all", auth, group.AuthHandler.LogoutAll)
			authGroup.GET("/me", auth, group.AuthHandler.Me)
		}

		docGroup := apiGroup.Group("/documents")
		docGroup.Use(auth)
		{
			docGroup.GET("/tree", group.DocumentHandler.Tree)
			docGroup.POST("/folders", group.DocumentHandler.CreateFolder)
			docGroup.PUT("/folders/:id", group.DocumentHandler.RenameFolder)
			docGroup.DELETE("/folders/:id", group.DocumentHandler.DeleteFolder)
			docGroup.POST("/files", group.DocumentHandler.CreateFile)
			docGroup.POST("/files/import", group.DocumentHandler.ImportURL)
			docGroup.GET("/files/:id", group.DocumentHandler.GetFile)
			docGroup.PUT("/files/:id", group.DocumentHandler.UpdateFile)
			docGroup.DELETE("/files/:id", group.DocumentHandler.DeleteFile)
			docGroup.GET("/files/:id/pdf", group.DocumentHandler.ExportPDF)
		}

		blogGroup := apiGroup.Group("/blogs")
		{
			// 公开接口
			blogGroup.GET("/public", group.BlogHandler.PublicList)
			blogGroup.GET("/slug/:slug", group.BlogHandler.BySlug)
			blogGroup.GET("/:id/live", group.WsHandler.Live)

			authOptGroup := blogGroup.Group("")
			authOptGroup.Use(authOpt)
			{
				authOptGroup.GET("/search", group.BlogHandler.Search)
				authOptGroup.POST("/:id/interaction", group.InteractionHandler.Track)
				authOptGroup.GET("/:id/like-status", group.InteractionHandler.LikeStatus)
			}

			ownerGroup := blogGroup.Group("")
			ownerGroup.Use(auth)
			{
				ownerGroup.POST("/publish", group.BlogHandler.Publish)
				ownerGroup.GET("/mine", group.BlogHandler.Mine)
				ownerGroup.GET("/by-file/:fileId", group.BlogHandler.ByFile)
				ownerGroup.GET("/analytics/dashboard", group.AnalyticsHandler.Dashboard)
				ownerGroup.GET("/:id", group.BlogHandler.Get)
				ownerGroup.PUT("/:id", group.BlogHandler.Update)
				ownerGroup.DELETE("/:id", group.BlogHandler.Delete)
				ownerGroup.GET("/:id/analytics", group.AnalyticsHandler.Blog)
			}
		}

		notifyGroup := apiGroup.Group("/notifications")
		notifyGroup.Use(auth)
		{
			notifyGroup.GET("", group.SysBoxHandler.List)
			notifyGroup.GET("/unread", group.SysBoxHandler.Unread)
			notifyGroup.POST("/read", group.SysBoxHandler.MarkRead)
			notifyGroup.POST("/read/all", group.SysBoxHandler.MarkAllRead)
		}

		mediaGroup := apiGroup.Group("/media")
		mediaGroup.Use(auth)
		{
			mediaGroup.POST("/seo-image", group.MediaHandler.UploadSEOImage)
		}
	}

	return r
}
