package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/edusphere/timetable-api/api/swagger"
	"github.com/edusphere/timetable-api/internal/handler"
	"github.com/edusphere/timetable-api/internal/repository"
	"github.com/edusphere/timetable-api/internal/scheduler"
	"github.com/edusphere/timetable-api/internal/service"
	"github.com/edusphere/timetable-api/pkg/cache"
	"github.com/edusphere/timetable-api/pkg/config"
	"github.com/edusphere/timetable-api/pkg/database"
	"github.com/edusphere/timetable-api/pkg/logger"
	corsmiddleware "github.com/edusphere/timetable-api/pkg/middleware/cors"
	metricsmiddleware "github.com/edusphere/timetable-api/pkg/middleware/metrics"
	reqidmiddleware "github.com/edusphere/timetable-api/pkg/middleware/requestid"
)

// @title EduSphere Timetable API
// @version 0.1.0
// @description Automatic school timetable generation service
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
	defer db.Close()

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		defer redisClient.Close()
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, cfg.Cache.TTL, logr, true)
	} else {
		cacheSvc = service.NewCacheService(nil, cfg.Cache.TTL, logr, false)
	}

	draftRepo := repository.NewDraftRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	constraintRepo := repository.NewTeacherConstraintRepository(db)

	engine := scheduler.New(scheduler.Config{
		MaxAttemptsPerHour: cfg.Generator.MaxAttemptsPerHour,
	})

	timetableSvc := service.NewTimetableService(
		engine,
		draftRepo,
		lessonRepo,
		db,
		validate,
		logr,
		metricsSvc,
		service.TimetableServiceConfig{
			BestOf:      cfg.Generator.BestOf,
			ProposalTTL: cfg.Generator.ProposalTTL,
		},
	)
	constraintSvc := service.NewConstraintService(constraintRepo, cacheSvc, validate, logr)

	var timetableHandler *handler.TimetableHandler
	if cfg.Exports.Enabled {
		exportSvc := service.NewExportService(timetableSvc, cfg.Exports.Title, logr)
		timetableHandler = handler.NewTimetableHandler(timetableSvc, exportSvc, lessonRepo)
	} else {
		timetableHandler = handler.NewTimetableHandler(timetableSvc, nil, lessonRepo)
	}
	constraintHandler := handler.NewConstraintHandler(constraintSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(metricsmiddleware.Middleware(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/timetable/generate", timetableHandler.Generate)
		api.POST("/timetable/draft", timetableHandler.SaveDraft)
		api.GET("/timetable/draft", timetableHandler.GetDraft)
		api.POST("/timetable/commit", timetableHandler.CommitDraft)
		api.GET("/timetable/export", timetableHandler.Export)

		api.GET("/teachers/:id/lessons", timetableHandler.TeacherLessons)
		api.GET("/teachers/:id/constraints", constraintHandler.List)
		api.POST("/constraints", constraintHandler.Create)
		api.DELETE("/constraints/:id", constraintHandler.Delete)
		api.POST("/lessons/validate", constraintHandler.ValidateLesson)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
