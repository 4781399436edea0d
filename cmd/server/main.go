package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/bewithdhanu/medicine-tracker/internal/config"
	"github.com/bewithdhanu/medicine-tracker/internal/database"
	"github.com/bewithdhanu/medicine-tracker/internal/handlers"
	"github.com/bewithdhanu/medicine-tracker/internal/logging"
	"github.com/bewithdhanu/medicine-tracker/internal/middleware"
	"github.com/bewithdhanu/medicine-tracker/internal/ratelimit"
	"github.com/bewithdhanu/medicine-tracker/internal/routes"
	"github.com/bewithdhanu/medicine-tracker/internal/services"
	"github.com/bewithdhanu/medicine-tracker/internal/storage"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// .env is optional
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env file")
	}

	cfg := config.Load()

	// Structured logging (JSON to stdout)
	stdout := logging.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	authConfig, err := services.AuthConfigFrom(cfg)
	if err != nil {
		slog.Error("auth setup failed", "error", err)
		os.Exit(1)
	}
	authService, err := services.NewAuthService(authConfig)
	if err != nil {
		slog.Error("auth setup failed", "error", err)
		os.Exit(1)
	}
	if cfg.APIKey == "" {
		slog.Warn("API_KEY is not set, only bearer tokens will be accepted")
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// ERROR+ records also go to system_logs
	slog.SetDefault(slog.New(logging.NewMultiHandler(stdout, logging.NewDBHandler(database.DB))))

	if pruned, err := logging.Prune(database.DB, cfg.LogRetentionDays, time.Now()); err != nil {
		slog.Warn("system log prune failed", "error", err)
	} else if pruned > 0 {
		slog.Info("pruned system logs", "rows", pruned, "retention_days", cfg.LogRetentionDays)
	}

	// Rate limiting
	var (
		limitStore  ratelimit.Store
		redisClient *redis.Client
	)
	switch cfg.RateLimitStore {
	case "redis":
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(ctx).Err()
		cancel()
		if err != nil {
			slog.Error("redis connection failed", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		limitStore = ratelimit.NewRedisStore(redisClient, "medicine-tracker:ratelimit")
		slog.Info("rate limiter using redis", "addr", cfg.RedisAddr)
	default:
		limitStore = ratelimit.NewMemoryStore()
	}
	limiters, err := newLimiters(cfg, limitStore)
	if err != nil {
		slog.Error("rate limiter setup failed", "error", err)
		os.Exit(1)
	}

	// Uploads
	var (
		uploadStore storage.Storage
		gcsClient   *gcs.Client
	)
	switch cfg.UploadBackend {
	case "gcs":
		gcsClient, err = gcs.NewClient(context.Background())
		if err != nil {
			slog.Error("gcs client failed", "error", err)
			os.Exit(1)
		}
		uploadStore = storage.NewGCSStorage(gcsClient, cfg.GCSBucket)
	default:
		uploadStore = storage.NewLocalStorage(cfg.UploadDir)
	}
	uploads := handlers.NewUploader(uploadStore)

	// Services
	userService := services.NewUserService(database.DB)
	medicineService := services.NewMedicineService(database.DB)
	reminderService := services.NewReminderService(database.DB)
	medicineLogService := services.NewMedicineLogService(database.DB)
	insulinService := services.NewInsulinService(database.DB)
	bookmarkService := services.NewBookmarkService(database.DB)

	// Handlers
	h := routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService),
		Health:   handlers.NewHealthHandler(database.Ping),
		User:     handlers.NewUserHandler(userService, uploads),
		Medicine: handlers.NewMedicineHandler(medicineService, uploads),
		Reminder: handlers.NewReminderHandler(reminderService, medicineLogService),
		Insulin:  handlers.NewInsulinHandler(insulinService),
		Bookmark: handlers.NewBookmarkHandler(bookmarkService),
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
			Release:          "medicine-tracker@" + handlers.Version,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Medicine Tracker API",
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: handlers.RespondError,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	// Routes
	routes.Setup(app, cfg, authService, h, limiters)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", cfg.Addr(), "env", cfg.Environment)
		if err := app.Listen(cfg.Addr()); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	sentry.Flush(2 * time.Second)

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}
	if gcsClient != nil {
		if err := gcsClient.Close(); err != nil {
			slog.Error("gcs close error", "error", err)
		}
	}
	if err := database.Close(); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}

func newLimiters(cfg *config.Config, store ratelimit.Store) (routes.Limiters, error) {
	def, err := ratelimit.New("default", cfg.DefaultRate.Limit, cfg.DefaultRate.Window, store)
	if err != nil {
		return routes.Limiters{}, err
	}
	info, err := ratelimit.New("info", cfg.InfoRate.Limit, cfg.InfoRate.Window, store)
	if err != nil {
		return routes.Limiters{}, err
	}
	health, err := ratelimit.New("health", cfg.HealthRate.Limit, cfg.HealthRate.Window, store)
	if err != nil {
		return routes.Limiters{}, err
	}
	for _, l := range []*ratelimit.Limiter{def, info, health} {
		slog.Info("rate limit configured", "limiter", l.Name(), "limit", l.Limit(), "window", l.Window().String())
	}
	return routes.Limiters{Default: def, Info: info, Health: health}, nil
}
