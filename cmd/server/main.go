package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/talent-match/internal/config"
	"github.com/fadilmartias/talent-match/internal/database"
	"github.com/fadilmartias/talent-match/internal/domain/fiber/handler"
	"github.com/fadilmartias/talent-match/internal/logger"
	"github.com/fadilmartias/talent-match/internal/matching"
	"github.com/fadilmartias/talent-match/internal/metrics"
	"github.com/fadilmartias/talent-match/internal/middleware"
	"github.com/fadilmartias/talent-match/internal/repository"
	"github.com/fadilmartias/talent-match/internal/usecase"
	"github.com/fadilmartias/talent-match/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()

	zl, err := logger.NewLogger(appConfig.Env, appConfig.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	if err := appConfig.Validate(); err != nil {
		zl.Fatal("invalid app config", zap.Error(err))
	}
	if appConfig.AdminAuthDisabled() {
		zl.Warn("ADMIN_API_KEYS not set, admin routes are unauthenticated", zap.String("env", appConfig.Env))
	}

	matchingConfig, err := config.LoadMatchingConfig()
	if err != nil {
		zl.Fatal("load matching config", zap.Error(err))
	}

	db, dialect, err := database.Open(config.LoadDBConfig(), appConfig.Env)
	if err != nil {
		zl.Fatal("connect database", zap.Error(err))
	}
	if err := database.Migrate(db, dialect); err != nil {
		zl.Fatal("migration failed", zap.Error(err))
	}

	metrics.Register()

	app := newApp(appConfig, zl, db, dialect, matchingConfig.Weights)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Monitor goroutine count
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				zl.Debug("runtime", zap.Int("goroutines", runtime.NumGoroutine()))
			}
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			zl.Error("shutdown", zap.Error(err))
		}
	}()

	zl.Info("server starting",
		zap.String("port", appConfig.Port),
		zap.String("env", appConfig.Env),
		zap.String("db", dialect.Name()),
		zap.String("weights_file", matchingConfig.WeightsFile),
	)
	if err := app.Listen(appConfig.Port); err != nil {
		zl.Fatal("listen", zap.Error(err))
	}
	zl.Info("server stopped")
}

func newApp(appConfig *config.AppConfig, zl *zap.Logger, db *gorm.DB, dialect database.Dialect, weights matching.Weights) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}
			return util.ErrorResponse(c, util.ErrorResponseFormat{Code: code, Message: message})
		},
	})

	app.Use(middleware.RequestLogger(zl))
	app.Use(metrics.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env == "production"
		},
	}))
	app.Use(healthcheck.New(healthcheck.Config{
		ReadinessProbe: func(c *fiber.Ctx) bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.PingContext(c.UserContext()) == nil
		},
	}))
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	timeout := time.Duration(appConfig.RequestTimeout) * time.Second

	memberRepo := repository.NewMemberRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	indexRepo := repository.NewSearchIndexRepository(db, dialect)
	engine := matching.NewEngine(weights, repository.NewRankingRepository(db, dialect))

	recommendations := usecase.NewRecommendationUsecase(memberRepo, projectRepo, indexRepo, engine)
	searchIndex := usecase.NewSearchIndexUsecase(indexRepo)

	api := app.Group("/api", middleware.Principal(), middleware.RateLimiter(50, 1*time.Minute))
	handler.NewRecommendationHandler(recommendations, timeout).RegisterRoutes(api)

	admin := app.Group("/admin", middleware.AdminAuth(appConfig.AdminAPIKeys))
	handler.NewSearchIndexHandler(searchIndex, timeout).RegisterRoutes(admin)

	return app
}
