package bootstrap

import (
	"context"
	"log"
	"time"

	"blog-publishing-be/internal/config"
	"blog-publishing-be/internal/controller"
	"blog-publishing-be/internal/pkg/logger"
	"blog-publishing-be/internal/pkg/serverutils"
	"blog-publishing-be/internal/repository/cache"
	"blog-publishing-be/internal/repository/memory"
	"blog-publishing-be/internal/repository/unitofwork"
	"blog-publishing-be/internal/service"
	"blog-publishing-be/pkg/asset"
	"blog-publishing-be/pkg/asset/local"
	"blog-publishing-be/pkg/asset/remote"
	"blog-publishing-be/pkg/render"

	pktNats "blog-publishing-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	PostController       controller.IPostController
	DraftController      controller.IDraftController
	PublicPostController controller.IPublicPostController
	UploadController     controller.IUploadController

	AboutController       controller.IAboutController
	PublicAboutController controller.IPublicAboutController

	// Background Services (Exposed for main.go to run)
	ConsumerService   service.IConsumerService
	PublicPostService service.IPublicPostService
	EventSubscriber   *pktNats.Subscriber

	// UploadDir is served statically when assets are stored on local disk.
	UploadDir string
	Logger    logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	uploadLogger := logger.NewIsolatedLogger("logs/upload.log")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Asset Store
	var (
		assetStore asset.Store
		objects    *local.Store
		uploadDir  string
	)
	switch cfg.Assets.Store {
	case "http":
		if cfg.Assets.RemoteAPI == "" {
			log.Fatalf("[FATAL] ASSET_REMOTE_API is required when ASSET_STORE=http")
		}
		assetStore = remote.NewStore(cfg.Assets.RemoteAPI, time.Duration(cfg.Assets.RequestTimeoutSeconds)*time.Second)
		log.Printf("[INFO] Using Asset Store: HTTP (%s)", cfg.Assets.RemoteAPI)
	default:
		store, err := local.NewStore(cfg.Assets.UploadDir, cfg.App.BaseURL, cfg.Assets.PublicBaseURL)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize local asset store: %v", err)
		}
		assetStore, objects, uploadDir = store, store, store.Dir()
		log.Printf("[INFO] Using Asset Store: LOCAL (%s)", store.Dir())
	}
	resolver := asset.NewResolver(assetStore, asset.WithConcurrency(cfg.Assets.UploadConcurrency))

	renderer := render.New()
	excerpter := render.NewExcerpter()

	// 4. Infrastructure
	// NATS
	var eventPublisher service.EventPublisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		eventPublisher = natsPub
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Render cache
	renderTTL := time.Duration(cfg.Cache.RenderTTLMinutes) * time.Minute
	var renderCache cache.RenderCache = cache.NewMemoryRenderCache(renderTTL)
	if cfg.Cache.Render == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v. Render cache stays in memory", err)
		} else {
			renderCache = cache.NewRedisRenderCache(rdb, renderTTL)
		}
	}

	drafts := memory.NewDraftRepository(time.Duration(cfg.Cache.DraftTTLMinutes) * time.Minute)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Keys.SummaryTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.SummaryTopic,
		uowFactory,
		renderer,
		excerpter,
		sysLogger,
	)

	postService := service.NewPostService(uowFactory, assetStore, renderCache, eventPublisher, sysLogger)
	draftService := service.NewDraftService(
		uowFactory,
		drafts,
		resolver,
		renderCache,
		publisherService,
		eventPublisher,
		sysLogger,
	)
	publicPostService := service.NewPublicPostService(uowFactory, renderer, renderCache, sysLogger)
	aboutService := service.NewAboutService(
		uowFactory,
		drafts,
		resolver,
		renderer,
		renderCache,
		eventPublisher,
		sysLogger,
	)
	uploadService := service.NewUploadService(assetStore, objects, uploadLogger)

	// 6. Controllers
	auth := serverutils.NewJwtMiddleware(cfg.App.JwtSecret)

	return &Container{
		PostController:       controller.NewPostController(postService, auth),
		DraftController:      controller.NewDraftController(draftService, auth),
		PublicPostController: controller.NewPublicPostController(publicPostService),
		UploadController:     controller.NewUploadController(uploadService, auth),

		AboutController:       controller.NewAboutController(aboutService, auth),
		PublicAboutController: controller.NewPublicAboutController(aboutService),

		ConsumerService:   consumerService,
		PublicPostService: publicPostService,
		EventSubscriber:   natsSub,

		UploadDir: uploadDir,
		Logger:    sysLogger,
	}
}
