package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/curriculum-scheduler/internal/handler"
	"github.com/noah-isme/curriculum-scheduler/internal/middleware"
	"github.com/noah-isme/curriculum-scheduler/internal/models"
	"github.com/noah-isme/curriculum-scheduler/internal/service"
	"github.com/noah-isme/curriculum-scheduler/pkg/config"
	"github.com/noah-isme/curriculum-scheduler/pkg/logger"
	corsmiddleware "github.com/noah-isme/curriculum-scheduler/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/curriculum-scheduler/pkg/middleware/requestid"
)

type routes struct {
	tokens    middleware.TokenValidator
	metrics   *service.MetricsService
	generator *handler.ScheduleGeneratorHandler
	exports   *handler.ExportHandler
	health    *handler.MetricsHandler
	enabled   bool
}

func newRouter(cfg *config.Config, logr *zap.Logger, h routes) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(h.metrics))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", h.health.Health)
	r.GET("/ready", h.health.Ready)
	r.GET("/metrics", h.health.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	if h.exports != nil {
		api.GET("/export/:token", h.exports.Download)
	}

	secured := api.Group("")
	secured.Use(middleware.JWT(h.tokens))

	writers := middleware.RequireRoles(models.RoleAdmin, models.RoleRegistrar)
	admins := middleware.RequireRoles(models.RoleAdmin)

	secured.GET("/metrics/snapshot", admins, h.health.Snapshot)

	if h.enabled {
		secured.POST("/schedules/generate", writers, h.generator.Generate)
		secured.POST("/schedules/save", writers, h.generator.Save)
		secured.GET("/schedule-runs", h.generator.List)
		secured.GET("/schedule-runs/:id/assignments", h.generator.Assignments)
		secured.GET("/schedule-runs/:id/report", h.generator.Report)
		secured.POST("/schedule-runs/:id/publish", admins, h.generator.Publish)
		secured.DELETE("/schedule-runs/:id", writers, h.generator.Delete)
	}

	if h.exports != nil {
		secured.POST("/exports", writers, h.exports.Create)
		secured.GET("/exports/:id", h.exports.Status)
	}

	return r
}
