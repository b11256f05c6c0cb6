package wire

import (
	"Inkpost/internal/api"
	"Inkpost/internal/api/config"
	"Inkpost/internal/api/handler"
	"Inkpost/internal/job"
	"Inkpost/internal/pkg/browser"
	"Inkpost/internal/pkg/cron"
	"Inkpost/internal/pkg/es"
	"Inkpost/internal/pkg/importer"
	"Inkpost/internal/pkg/kafka"
	"Inkpost/internal/pkg/minio"
	"Inkpost/internal/pkg/mongo"
	"Inkpost/internal/repository"
	"Inkpost/internal/service"

	"github.com/gin-gonic/gin"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	CronMgr      *cron.Manager
	KafkaManager *kafka.ConsumerManager
}

// Integrations 可选外部依赖，未启用的字段为 nil
type Integrations struct {
	Mongo   *mongoDB.Database
	Browser *browser.Browser
}

func BuildApplication(db *gorm.DB, ext Integrations, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewRefreshTokenRepo(db)
	folderRepo := repository.NewFolderRepo(db)
	fileRepo := repository.NewFileRepo(db)
	blogRepo := repository.NewBlogRepo(db)
	interactionRepo := repository.NewInteractionRepo(db)
	analyticsRepo := repository.NewAnalyticsRepo(db)

	// 未启用的集成以无类型 nil 注入，服务据此降级
	var blogESRepo es.BlogRepo
	if cfg.Elastic.Enable && es.Client != nil {
		blogESRepo = es.NewBlogRepo(es.Client)
	}
	var sysBoxRepo mongo.SysBoxRepo
	if ext.Mongo != nil {
		sysBoxRepo = mongo.NewSysBoxRepo(ext.Mongo)
	}
	var printer service.PDFPrinter
	var renderer importer.Renderer
	if ext.Browser != nil {
		printer = ext.Browser
		renderer = ext.Browser
	}
	var store service.ObjectStore
	if minio.Client != nil {
		store = minio.NewStore()
	}

	authSvc := service.NewAuthService(userRepo, tokenRepo)
	docSvc := service.NewDocumentService(folderRepo, fileRepo, printer, importer.New(cfg.Importer, renderer))
	publishSvc := service.NewPublishService(fileRepo, blogRepo, cfg.Publish)
	interactionSvc := service.NewInteractionService(interactionRepo, blogRepo)
	blogSvc := service.NewBlogService(blogRepo, blogESRepo, interactionSvc, cfg.Publish.MaxSlugAttempts)
	searchSvc := service.NewSearchService(blogRepo, cfg.Search)
	analyticsSvc := service.NewAnalyticsService(blogRepo, analyticsRepo, cfg.Analytics)
	sysBoxSvc := service.NewSysBoxService(sysBoxRepo)
	mediaSvc := service.NewMediaService(store)

	handlers := &api.HandlersGroup{
		AuthHandler:        handler.NewAuthHandler(authSvc),
		DocumentHandler:    handler.NewDocumentHandler(docSvc),
		BlogHandler:        handler.NewBlogHandler(publishSvc, blogSvc, searchSvc),
		InteractionHandler: handler.NewInteractionHandler(interactionSvc),
		AnalyticsHandler:   handler.NewAnalyticsHandler(analyticsSvc),
		SysBoxHandler:      handler.NewSysBoxHandler(sysBoxSvc),
		MediaHandler:       handler.NewMediaHandler(mediaSvc),
		WsHandler:          handler.NewWsHandler(),
	}

	router := api.SetupRouter(handlers, cfg)

	cronMgr := cron.NewCronManager(
		cfg.Cron,
		job.NewTokenPurgeJob(authSvc),
		job.NewMediaCleanupJob(mediaSvc),
		job.NewAnalyticsWarmJob(analyticsSvc),
	)

	container := &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}

	if cfg.Kafka.Enable {
		var blogs *kafka.BlogsHandler
		if blogESRepo != nil {
			blogs = kafka.NewBlogsHandler(blogESRepo)
		}
		var likes *kafka.LikesHandler
		if sysBoxRepo != nil {
			likes = kafka.NewLikesHandler(blogRepo, userRepo, sysBoxRepo)
		}
		kafkaMgr, err := kafka.NewConsumerManager(cfg, blogs, likes)
		if err != nil {
			return nil, err
		}
		container.KafkaManager = kafkaMgr
	}

	return container, nil
}
