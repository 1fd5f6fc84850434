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

	httpmetrics "rfmInsight/app/echo-server/metrics"
	"rfmInsight/app/echo-server/router"
	"rfmInsight/business/artifact"
	"rfmInsight/business/recommender"
	"rfmInsight/business/segment"
	"rfmInsight/internal/middleware"
	fileRepo "rfmInsight/internal/repository/file"
	minioRepo "rfmInsight/internal/repository/minio"
	psqlRepo "rfmInsight/internal/repository/postgres"
	redisRepo "rfmInsight/internal/repository/redis"
	"rfmInsight/internal/rest"
	"rfmInsight/pkg/config"
	"rfmInsight/pkg/database"
	redisdb "rfmInsight/pkg/database/redis"
	"rfmInsight/pkg/logger"
	"rfmInsight/pkg/metrics"
	"rfmInsight/pkg/storage"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting RFM Insight", "version", cfg.App.Version, "artifact_source", cfg.Artifacts.Source)

	metrics.Init()
	httpmetrics.Init()

	// Artifacts are loaded once; nothing is served without them.
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.Artifacts.LoadTimeout)
	loader, closeSource, err := newArtifactLoader(loadCtx, cfg)
	if err != nil {
		cancelLoad()
		logger.Fatal("Failed to open artifact source", "error", err)
	}

	bundle, err := artifact.LoadBundle(loadCtx, cfg.Artifacts.Source, loader)
	cancelLoad()
	closeSource()
	if err != nil {
		logger.Fatal("Failed to load artifacts", "error", err)
	}

	// Init service
	recommenderService := recommender.NewService(bundle.Similarity())
	segmentService := segment.NewService(bundle, segment.NewLabels(cfg.Segment.Labels))

	// Init handler
	recommendationHandler := rest.NewRecommendationHandler(recommenderService, cfg.Server.RequestTimeout)
	segmentHandler := rest.NewSegmentHandler(segmentService, cfg.Server.RequestTimeout)
	healthHandler := rest.NewHealthHandler(bundle, cfg.App.Version)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger())
	e.Use(httpmetrics.Middleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetRecommendationRoutes(api, recommendationHandler)
	router.SetSegmentRoutes(api, segmentHandler)
	router.SetOpsRoutes(e, healthHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}

// newArtifactLoader opens the configured artifact store. The returned close
// func releases its connections once loading is done.
func newArtifactLoader(ctx context.Context, cfg *config.Config) (artifact.Loader, func(), error) {
	names := artifact.Names{
		Similarity: cfg.Artifacts.SimilarityName,
		Scaler:     cfg.Artifacts.ScalerName,
		Cluster:    cfg.Artifacts.ClusterName,
	}

	switch cfg.Artifacts.Source {
	case config.SourceFile:
		return artifact.NewBlobLoader(fileRepo.NewArtifactRepository(cfg.Artifacts.Dir), names), func() {}, nil

	case config.SourceRedis:
		client, err := redisdb.NewRedisClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := redisdb.CloseRedisClient(client); err != nil {
				logger.Warn("Failed to close redis client", "error", err)
			}
		}
		return artifact.NewBlobLoader(redisRepo.NewArtifactRepository(client, cfg.Redis.RedisKeyPrefix), names), closeFn, nil

	case config.SourceMinio:
		client, err := storage.NewMinioClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := storage.CheckBucket(ctx, client, cfg.Minio.Bucket); err != nil {
			return nil, nil, err
		}
		return artifact.NewBlobLoader(minioRepo.NewArtifactRepository(client, cfg.Minio.Bucket, cfg.Minio.ObjectPrefix), names), func() {}, nil

	case config.SourcePostgres:
		db, err := database.InitPostgres(cfg)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Database connected successfully")
		closeFn := func() {
			if err := database.ClosePostgres(db); err != nil {
				logger.Warn("Failed to close database", "error", err)
			}
		}
		return psqlRepo.NewArtifactRepository(db, names), closeFn, nil
	}

	return nil, nil, fmt.Errorf("unknown artifact source %q", cfg.Artifacts.Source)
}
