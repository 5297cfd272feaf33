package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/collectors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/placement-analytics-api/api/swagger"
	"github.com/noah-isme/placement-analytics-api/internal/handler"
	internalmiddleware "github.com/noah-isme/placement-analytics-api/internal/middleware"
	"github.com/noah-isme/placement-analytics-api/internal/models"
	"github.com/noah-isme/placement-analytics-api/internal/repository"
	"github.com/noah-isme/placement-analytics-api/internal/service"
	"github.com/noah-isme/placement-analytics-api/pkg/cache"
	"github.com/noah-isme/placement-analytics-api/pkg/config"
	"github.com/noah-isme/placement-analytics-api/pkg/database"
	"github.com/noah-isme/placement-analytics-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/placement-analytics-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/placement-analytics-api/pkg/middleware/requestid"
)

// @title Placement Analytics API
// @version 1.0.0
// @description Student and trainer performance analytics for placement training programmes
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("connect postgres", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db, database.MigrateUp, logr); err != nil {
			logr.Fatal("apply migrations", zap.Error(err))
		}
	}

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, analytics cache disabled", zap.Error(err))
		redisClient = nil
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()
	if err := metricsSvc.RegisterCollectors(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db.DB, cfg.Database.Name),
	); err != nil {
		logr.Warn("runtime collectors unavailable", zap.Error(err))
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Analytics.CacheTTL, logr, cfg.Analytics.CacheEnabled && redisClient != nil)

	profileRepo := repository.NewStudentProfileRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)

	performanceSvc := service.NewPerformanceService(profileRepo, evaluationRepo, cacheSvc, metricsSvc, logr)
	defaultThreshold := cfg.Analytics.DefaultThreshold
	trainerSvc := service.NewTrainerAnalyticsService(profileRepo, evaluationRepo, cacheSvc, metricsSvc,
		service.TrainerAnalyticsConfig{DefaultThreshold: &defaultThreshold}, logr)
	tokenSvc := service.NewTokenService(service.TokenConfig{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
	}, logr)

	checks := map[string]handler.ReadinessCheck{"postgres": db.PingContext}
	if redisClient != nil {
		checks["redis"] = cacheRepo.Ping
	}
	metricsHandler := handler.NewMetricsHandler(metricsSvc, checks, logr)
	performanceHandler := handler.NewPerformanceHandler(performanceSvc, cfg.Analytics.AlertPollInterval)
	trainerHandler := handler.NewTrainerAnalyticsHandler(trainerSvc, cfg.Analytics.AlertPollInterval)

	r := gin.New()
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))
	r.Use(internalmiddleware.WithResponseMeta())
	r.Use(gin.Recovery())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(internalmiddleware.JWT(tokenSvc))

	students := api.Group("/students/me/performance")
	students.Use(internalmiddleware.RequireRoles(models.RoleStudent))
	students.GET("", performanceHandler.Grouped)
	students.GET("/hero", performanceHandler.Hero)
	students.GET("/insights", performanceHandler.Insights)
	students.GET("/alerts", performanceHandler.Alerts)

	trainer := api.Group("/trainer/analytics")
	trainer.Use(internalmiddleware.RequireRoles(models.RoleTrainer, models.RoleCoordinator))
	trainer.GET("", trainerHandler.Analytics)
	trainer.GET("/alerts", trainerHandler.Alerts)
	trainer.GET("/export", trainerHandler.Export)

	api.GET("/analytics/system", internalmiddleware.RequireRoles(models.RoleCoordinator), metricsHandler.System)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
