package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/aixiv-api/api/swagger"
	"github.com/noah-isme/aixiv-api/internal/handler"
	internalmiddleware "github.com/noah-isme/aixiv-api/internal/middleware"
	"github.com/noah-isme/aixiv-api/internal/repository"
	"github.com/noah-isme/aixiv-api/internal/service"
	"github.com/noah-isme/aixiv-api/pkg/config"
	"github.com/noah-isme/aixiv-api/pkg/database"
	"github.com/noah-isme/aixiv-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/aixiv-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/aixiv-api/pkg/middleware/requestid"
	"github.com/noah-isme/aixiv-api/pkg/storage"
)

// @title aixiv API
// @version 1.0.0
// @description Paper submission and review backend
// @BasePath /api
// @schemes http https

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	objects, err := storage.NewS3Store(ctx, cfg.Storage)
	if err != nil {
		logr.Fatal("object storage init failed", zap.Error(err))
	}

	core := cfg.Core()
	validate := service.NewValidator()
	metrics := service.NewMetricsService()

	submissionRepo := repository.NewSubmissionRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	ids := service.NewIdentifierGenerator(core.IdentifierPrefix, submissionRepo)
	submissions := service.NewSubmissionService(submissionRepo, ids, validate, logr,
		service.WithCreateAttempts(cfg.Submissions.CreateAttempts),
		service.WithObjectRemover(objects),
		service.WithSubmissionMetrics(metrics),
	)
	limiter := service.NewReviewRateLimiter(reviewRepo, core.RateLimitWindowHours, core.RateLimitMaxCount, logr)
	reviews := service.NewReviewService(reviewRepo, submissionRepo, limiter, ids, core, validate, logr,
		service.WithReviewMetrics(metrics),
	)
	uploads := service.NewUploadService(objects, validate, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr, "/metrics", cfg.APIPrefix+"/health"))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metrics))
	r.Use(internalmiddleware.ClientIP())
	r.Use(internalmiddleware.Identity())

	handler.RegisterRoutes(r, cfg.APIPrefix, handler.Handlers{
		Submissions: handler.NewSubmissionHandler(submissions),
		Reviews:     handler.NewReviewHandler(reviews),
		Uploads:     handler.NewUploadHandler(uploads),
		Metrics:     handler.NewMetricsHandler(metrics),
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Env),
			zap.Bool("review_existence_check", core.ExistenceCheckEnabled),
			zap.Float64("review_rate_window_hours", core.RateLimitWindowHours),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
