package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/minhasaulas/prof-agenda-api/api/swagger"
	"github.com/minhasaulas/prof-agenda-api/internal/handler"
	"github.com/minhasaulas/prof-agenda-api/internal/middleware"
	"github.com/minhasaulas/prof-agenda-api/internal/repository"
	"github.com/minhasaulas/prof-agenda-api/internal/service"
	"github.com/minhasaulas/prof-agenda-api/pkg/cache"
	"github.com/minhasaulas/prof-agenda-api/pkg/config"
	"github.com/minhasaulas/prof-agenda-api/pkg/database"
	"github.com/minhasaulas/prof-agenda-api/pkg/export"
	"github.com/minhasaulas/prof-agenda-api/pkg/logger"
	corsmiddleware "github.com/minhasaulas/prof-agenda-api/pkg/middleware/cors"
	reqidmiddleware "github.com/minhasaulas/prof-agenda-api/pkg/middleware/requestid"
	"github.com/minhasaulas/prof-agenda-api/pkg/storage"
)

// @title Prof Agenda API
// @version 1.0.0
// @description Class scheduling and lesson records for a single teacher
// @BasePath /api/v1
// @schemes http

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	// Redis backs the dashboard cache only; the server runs without it.
	var cacheSvc *service.CacheService
	if cfg.Dashboard.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, true)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}

	var archive *service.ExportArchive
	if store, err := storage.NewLocalStorage(cfg.Export.Dir); err != nil {
		logr.Warn("export archive unavailable", zap.Error(err))
	} else {
		archive = service.NewExportArchive(store, cfg.Export.Retention, logr)
		archive.Start(context.Background())
		defer archive.Stop()
	}

	turmaRepo := repository.NewTurmaRepository(db)
	agendaRepo := repository.NewAgendaRepository(db)
	registroRepo := repository.NewRegistroRepository(db)

	turmaSvc := service.NewTurmaService(db, turmaRepo, agendaRepo, registroRepo, cacheSvc, nil, logr)
	registroSvc := service.NewRegistroService(registroRepo, turmaRepo, agendaRepo, nil, logr)
	agendaSvc := service.NewAgendaService(agendaRepo, registroRepo, logr)
	historicoSvc := service.NewHistoricoService(registroRepo, export.NewCSVExporter(), export.NewPDFExporter(), archive, logr)
	dashboardSvc := service.NewDashboardService(agendaRepo, cacheSvc, logr)

	turmaHandler := handler.NewTurmaHandler(turmaSvc)
	registroHandler := handler.NewRegistroHandler(registroSvc)
	agendaHandler := handler.NewAgendaHandler(agendaSvc)
	historicoHandler := handler.NewHistoricoHandler(historicoSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/turmas", turmaHandler.List)
		api.POST("/turmas", turmaHandler.Create)
		api.GET("/turmas/:id", turmaHandler.Get)
		api.PUT("/turmas/:id", turmaHandler.Update)
		api.DELETE("/turmas/:id", turmaHandler.Delete)
		api.GET("/turmas/:id/registro", registroHandler.Reconcile)

		api.POST("/registros", registroHandler.Save)

		api.GET("/agenda", agendaHandler.Day)

		api.GET("/historico", historicoHandler.List)
		api.GET("/historico/export", historicoHandler.Export)

		api.GET("/dashboard/hoje", dashboardHandler.Hoje)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
