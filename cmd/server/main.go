package main

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ikarolaborda/open-asm-sub000/internal/handler"
	"github.com/ikarolaborda/open-asm-sub000/internal/middleware"
	"github.com/ikarolaborda/open-asm-sub000/internal/model"
	"github.com/ikarolaborda/open-asm-sub000/internal/service"
	"github.com/ikarolaborda/open-asm-sub000/pkg/config"
	"github.com/ikarolaborda/open-asm-sub000/pkg/database"
	"github.com/ikarolaborda/open-asm-sub000/pkg/jwtutil"
	"github.com/ikarolaborda/open-asm-sub000/pkg/logger"
	"github.com/ikarolaborda/open-asm-sub000/prometheus"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: cfg.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting asset registry service...", cfg.LogConfig()...)

	// Initialize JWT utilities
	jwtUtil := jwtutil.NewJWTUtil(&cfg.JWT)
	log.Info("JWT utilities initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized")

	// Initialize database and run migrations
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := database.Migrate(db, model.All()...); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database connection established and migrations completed",
		zap.String("db_host", cfg.DB.Host),
		zap.String("db_name", cfg.DB.DBName))

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)

	// Request logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start).Seconds()
			status := c.Response().Status

			log := logger.FromEcho(c)
			log.Info("HTTP Request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", status),
				zap.Float64("duration_s", duration),
				zap.String("ip", c.RealIP()),
			)

			prometheus.HttpRequestsTotal.WithLabelValues(
				c.Request().Method,
				c.Request().URL.Path,
				strconv.Itoa(status),
			).Inc()

			prometheus.HttpRequestDuration.WithLabelValues(
				c.Request().Method,
				c.Request().URL.Path,
				strconv.Itoa(status),
			).Observe(duration)

			return err
		}
	})

	// Handlers
	healthHandler := handler.NewHealthHandler(db)
	authHandler := handler.NewAuthHandler(db, jwtUtil)
	orgHandler := handler.NewOrganizationHandler(db)
	assetHandler := handler.NewAssetHandler(db)
	customerHandler := handler.NewCustomerHandler(db)
	warrantyHandler := handler.NewWarrantyHandler(db)
	statsHandler := handler.NewStatsHandler(db, cfg.Stats)
	lookupService := service.NewLookupService(db)

	// Public routes that don't require authentication
	e.GET("/health", healthHandler.Check)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register)

	// API routes that require authentication
	api := e.Group("/api")
	api.Use(middleware.JWTAuth(jwtUtil))

	// Organization management does not need a tenant context: elevated
	// principals have none.
	orgs := api.Group("/organizations")
	orgs.POST("", orgHandler.Create)
	orgs.GET("", orgHandler.List)
	orgs.GET("/:id", orgHandler.Get)
	orgs.PUT("/:id/activation", orgHandler.SetActive)

	// Entity endpoints with tenant context requirement
	entities := api.Group("")
	entities.Use(middleware.RequireTenantContext)

	assets := entities.Group("/assets")
	assets.POST("", assetHandler.Create)
	assets.GET("", assetHandler.List)
	assets.GET("/:id", assetHandler.Get)
	assets.PUT("/:id", assetHandler.Update)
	assets.PATCH("/:id/metadata", assetHandler.PatchMetadata)
	assets.PUT("/:id/tags", assetHandler.SyncTags)
	assets.DELETE("/:id", assetHandler.Delete)
	assets.POST("/:id/restore", assetHandler.Restore)
	assets.DELETE("/:id/purge", assetHandler.Purge)
	assets.POST("/bulk-activation", assetHandler.BulkActivation)
	assets.GET("/:id/warranties", warrantyHandler.ListByAsset)

	customers := entities.Group("/customers")
	customers.POST("", customerHandler.Create)
	customers.GET("", customerHandler.List)
	customers.GET("/:id", customerHandler.Get)
	customers.PUT("/:id", customerHandler.Update)
	customers.PUT("/:id/status", customerHandler.SetStatus)
	customers.GET("/:id/status", customerHandler.GetStatus)
	customers.POST("/:id/contacts", customerHandler.AddContact)
	customers.DELETE("/:id", customerHandler.Delete)
	customers.POST("/:id/restore", customerHandler.Restore)
	customers.DELETE("/:id/purge", customerHandler.Purge)

	warranties := entities.Group("/warranties")
	warranties.POST("", warrantyHandler.Create)
	warranties.GET("/:id", warrantyHandler.Get)
	warranties.PUT("/:id", warrantyHandler.Update)
	warranties.DELETE("/:id", warrantyHandler.Delete)
	warranties.POST("/:id/restore", warrantyHandler.Restore)
	warranties.DELETE("/:id/purge", warrantyHandler.Purge)

	entities.GET("/stats", statsHandler.Snapshot)

	handler.RegisterLookupRoutes[model.Status](entities.Group("/statuses"), lookupService, "status")
	handler.RegisterLookupRoutes[model.Tag](entities.Group("/tags"), lookupService, "tag")
	handler.RegisterLookupRoutes[model.AssetType](entities.Group("/asset-types"), lookupService, "asset_type")
	handler.RegisterLookupRoutes[model.Coverage](entities.Group("/coverages"), lookupService, "coverage")
	handler.RegisterLookupRoutes[model.ServiceLevel](entities.Group("/service-levels"), lookupService, "service_level")
	handler.RegisterLookupRoutes[model.Manufacturer](entities.Group("/manufacturers"), lookupService, "manufacturer")
	handler.RegisterLookupRoutes[model.Product](entities.Group("/products"), lookupService, "product")
	handler.RegisterLookupRoutes[model.Location](entities.Group("/locations"), lookupService, "location")

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
