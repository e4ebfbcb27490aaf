package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/api/option"

	"recyclemart/internal/adapter/api"
	"recyclemart/internal/adapter/api/handler"
	apimiddleware "recyclemart/internal/adapter/api/middleware"
	"recyclemart/internal/adapter/api/router"
	"recyclemart/internal/adapter/repository"
	domainrepo "recyclemart/internal/domain/repository"
	"recyclemart/internal/infrastructure/catalog"
	"recyclemart/internal/infrastructure/lock"
	"recyclemart/internal/infrastructure/ratelimit"
	"recyclemart/internal/infrastructure/telemetry"
	"recyclemart/internal/infrastructure/websocket"
	"recyclemart/internal/usecase"
	"recyclemart/pkg/config"
	"recyclemart/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.SetLevel(logger.ParseLevel(cfg.App.LogLevel))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := telemetry.Setup(cfg.Telemetry.TracingEnabled, cfg.Telemetry.ServiceName)
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.Store.Type, err)
	}
	defer store.Close()

	items, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	catalogUseCase, err := usecase.NewCatalogUseCase(items)
	if err != nil {
		log.Fatalf("Invalid catalog: %v", err)
	}
	logger.Info("Catalog loaded with %d items", len(items))

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	locks := lock.NewKeyed()
	clock := usecase.Clock(usecase.SystemClock)

	queueUseCase := usecase.NewQueueUseCase(store, catalogUseCase, locks, clock)
	requestUseCase := usecase.NewCollectionRequestUseCase(store, locks, wsManager, clock, cfg.Lifecycle.CollectionLeadTime)
	ratingUseCase := usecase.NewRatingUseCase(store, locks, wsManager, clock, cfg.Lifecycle.FeedbackMaxLength)
	collectorUseCase := usecase.NewCollectorUseCase(store)

	handler.Setup(catalogUseCase, queueUseCase, requestUseCase, ratingUseCase, collectorUseCase)
	handler.SetupHealthHandler(cfg.Store.Type)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
	}))
	if cfg.Telemetry.TracingEnabled {
		e.Use(echo.WrapMiddleware(otelhttp.NewMiddleware(cfg.Telemetry.ServiceName)))
	}

	e.Validator = api.NewValidator()

	var limiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = ratelimit.NewRateLimiter(
			ratelimit.Policy{PerSecond: cfg.RateLimit.PerSec, Burst: cfg.RateLimit.Burst},
			map[string]ratelimit.Policy{
				// Submitting drains the whole queue; a user rarely needs more than
				// one every few seconds.
				router.ActionRequestSubmit: {PerSecond: cfg.RateLimit.PerSec / 4, Burst: 3},
			},
		)
		limiter.StartCleanupRoutine(ctx, 10*time.Minute, time.Hour)
	}

	identityMiddleware := apimiddleware.NewIdentityMiddleware()
	rateLimitMiddleware := apimiddleware.NewRateLimitMiddleware(limiter)
	wsHandler := handler.NewWebSocketHandler(wsManager, cfg.Server.AllowedOrigins)

	router.Setup(e, identityMiddleware, rateLimitMiddleware, wsHandler)

	go func() {
		logger.Info("Starting server on port %s (store: %s)", cfg.Server.Port, cfg.Store.Type)
		if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error: %v", err)
	}

	// Stops the websocket manager and the rate limiter cleanup.
	cancel()

	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("Tracer shutdown error: %v", err)
	}

	logger.Info("Server stopped")
}

func openStore(ctx context.Context, cfg config.StoreConfig) (domainrepo.CollectionStore, error) {
	switch cfg.Type {
	case "memory":
		logger.Warn("Using in-memory store; data is lost on restart")
		return repository.NewMemoryCollectionStore(), nil

	case "sqlite":
		return repository.NewSQLiteCollectionStore(cfg.SQLitePath)

	case "mysql":
		return repository.NewMySQLCollectionStore(cfg.MySQLDSN())

	case "postgres":
		return repository.NewPostgresCollectionStore(cfg.PostgresDSN())

	case "redis":
		return repository.NewRedisCollectionStore(repository.RedisStoreConfig{
			Addr:      cfg.RedisAddress(),
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.RedisKeyPrefix,
		})

	case "mongo":
		return repository.NewMongoCollectionStore(cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)

	case "firestore":
		var opts []option.ClientOption
		switch {
		case cfg.FirebaseServiceAccountJSON != "":
			log.Printf("Using Firebase service account from environment variable")
			opts = append(opts, option.WithCredentialsJSON([]byte(cfg.FirebaseServiceAccountJSON)))
		case cfg.FirebaseServiceAccountPath != "":
			if _, err := os.Stat(cfg.FirebaseServiceAccountPath); os.IsNotExist(err) {
				return nil, fmt.Errorf("service account file does not exist: %s", cfg.FirebaseServiceAccountPath)
			}
			log.Printf("Using Firebase service account from file: %s", cfg.FirebaseServiceAccountPath)
			opts = append(opts, option.WithCredentialsFile(cfg.FirebaseServiceAccountPath))
		}
		return repository.NewFirestoreCollectionStore(ctx, cfg.FirebaseProject, cfg.FirestoreCollection, opts...)

	default:
		return nil, fmt.Errorf("unknown STORE_TYPE %q", cfg.Type)
	}
}
