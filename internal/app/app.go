package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/artpromedia/aivo-v5-sub004/internal/config"
	"github.com/artpromedia/aivo-v5-sub004/internal/controller"
	"github.com/artpromedia/aivo-v5-sub004/internal/repository"
	"github.com/artpromedia/aivo-v5-sub004/internal/service"
	"github.com/artpromedia/aivo-v5-sub004/internal/util"
	"github.com/artpromedia/aivo-v5-sub004/pkg/database"
	"github.com/artpromedia/aivo-v5-sub004/pkg/logger"
	"github.com/artpromedia/aivo-v5-sub004/pkg/monitoring"
	"github.com/artpromedia/aivo-v5-sub004/pkg/security"
	"github.com/artpromedia/aivo-v5-sub004/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user               *repository.UserRepository
	homeworkSession    *repository.HomeworkSessionRepository
	homeworkFile       *repository.HomeworkFileRepository
	workProduct        *repository.HomeworkWorkProductRepository
	hint               *repository.HomeworkHintRepository
	regulationSession  *repository.RegulationSessionRepository
	regulationActivity *repository.RegulationActivityRepository
	emotionHistory     *repository.EmotionHistoryRepository
}

type services struct {
	auth       *service.AuthService
	storage    *service.StorageService
	homework   *service.HomeworkService
	regulation *service.RegulationService
	emotion    *service.EmotionService
	analytics  *service.AnalyticsService
}

type controllers struct {
	auth       *controller.AuthController
	homework   *controller.HomeworkController
	regulation *controller.RegulationController
	emotion    *controller.EmotionController
	analytics  *controller.AnalyticsController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:               repository.NewUserRepository(db),
		homeworkSession:    repository.NewHomeworkSessionRepository(db),
		homeworkFile:       repository.NewHomeworkFileRepository(db),
		workProduct:        repository.NewHomeworkWorkProductRepository(db),
		hint:               repository.NewHomeworkHintRepository(db),
		regulationSession:  repository.NewRegulationSessionRepository(db),
		regulationActivity: repository.NewRegulationActivityRepository(db),
		emotionHistory:     repository.NewEmotionHistoryRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.homework = service.NewHomeworkService(repos.homeworkSession, repos.homeworkFile, repos.workProduct, repos.hint)
	s.regulation = service.NewRegulationService(repos.regulationSession, repos.regulationActivity)
	s.emotion = service.NewEmotionService(repos.emotionHistory, rdb)
	s.analytics = service.NewAnalyticsService(repos.regulationSession, repos.emotionHistory)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		homework:   controller.NewHomeworkController(s.homework, s.storage),
		regulation: controller.NewRegulationController(s.regulation),
		emotion:    controller.NewEmotionController(s.emotion),
		analytics:  controller.NewAnalyticsController(s.analytics),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	svcs := app.initServices(repos, cfg, rdb)
	ctrls := app.initControllers(svcs, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("learner-support", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, ctrls, repos, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
