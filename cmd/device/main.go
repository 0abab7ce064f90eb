package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/vidstreamhq/vidstream/internal/config"
	"github.com/vidstreamhq/vidstream/internal/handler"
	"github.com/vidstreamhq/vidstream/internal/middleware"
	"github.com/vidstreamhq/vidstream/internal/model"
	"github.com/vidstreamhq/vidstream/internal/repository"
	"github.com/vidstreamhq/vidstream/internal/service"
	"github.com/vidstreamhq/vidstream/migrations"
	"github.com/vidstreamhq/vidstream/pkg/token"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// @title           Vidstream Device Service
// @version         1.0
// @description     Device registry and session lifecycle API.

// @host      localhost:8082
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// ==================== Load Config ====================
	cfg := config.Load()
	log.Printf("🚀 Starting Device Service [env=%s]", cfg.App.Env)

	// ==================== Database (PostgreSQL) ====================
	gormLogger := logger.Default.LogMode(logger.Info)
	if cfg.App.Env == "production" {
		gormLogger = logger.Default.LogMode(logger.Warn)
	}

	db, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	log.Println("✅ Connected to PostgreSQL")

	// ==================== Run Migrations ====================
	if err := migrations.Run(cfg.DB.URL()); err != nil {
		log.Printf("⚠️  Migration warning: %v", err)
		log.Println("📦 Falling back to GORM AutoMigrate...")
		if err := db.AutoMigrate(&model.Device{}, &model.Session{}); err != nil {
			log.Fatalf("❌ Failed to migrate database: %v", err)
		}
	}
	log.Println("✅ Database migrated successfully")

	// ==================== Redis ====================
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("❌ Failed to connect to Redis: %v", err)
	}
	log.Println("✅ Connected to Redis")

	// ==================== Initialize Layers ====================
	tokens := token.NewManager(cfg.JWT.Secret, cfg.JWT.RefreshSecret, cfg.JWT.ExpiresIn, cfg.JWT.RefreshExpiresIn)

	deviceRepo := repository.NewDeviceRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	deviceService := service.NewDeviceService(deviceRepo)
	sessionService := service.NewSessionService(sessionRepo, deviceService)

	deviceHandler := handler.NewDeviceHandler(deviceService)
	sessionHandler := handler.NewSessionHandler(sessionService)

	// ==================== Gin Router ====================
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	router.StaticFile("/docs/swagger.json", "./docs/device/swagger.json")
	url := ginSwagger.URL("/docs/swagger.json")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, url))

	router.Use(middleware.CORSMiddleware(cfg.CORS.Origins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "device-service",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	// ==================== API Routes ====================
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(tokens, rdb))
	{
		api.POST("/devices", deviceHandler.RegisterDevice)
		api.GET("/devices", deviceHandler.ListDevices)
		api.DELETE("/devices", deviceHandler.RemoveAllDevices)
		api.GET("/devices/active-count", deviceHandler.ActiveDeviceCount)
		api.POST("/devices/validate-ownership", deviceHandler.ValidateOwnership)
		api.GET("/devices/by-device-id/:deviceId", deviceHandler.GetDeviceByDeviceID)
		api.GET("/devices/:id", deviceHandler.GetDevice)
		api.PATCH("/devices/:id", deviceHandler.UpdateDevice)
		api.DELETE("/devices/:id", deviceHandler.RemoveDevice)
		api.GET("/devices/:id/sessions", sessionHandler.ListDeviceSessions)
		api.POST("/devices/:id/sessions/deactivate", sessionHandler.DeactivateDeviceSessions)

		api.POST("/sessions", sessionHandler.CreateSession)
		api.GET("/sessions/by-token", sessionHandler.GetSessionByToken)
		api.POST("/sessions/validate", sessionHandler.ValidateSession)
		api.DELETE("/sessions/expired", sessionHandler.CleanupExpiredSessions)
		api.GET("/sessions/:id", sessionHandler.GetSession)
		api.POST("/sessions/:id/deactivate", sessionHandler.DeactivateSession)
	}

	// ==================== Start Server ====================
	srv := &http.Server{
		Addr:    ":" + cfg.App.DevicePort,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server failed: %v", err)
		}
	}()

	log.Printf("🌐 Device Service running on http://0.0.0.0:%s", cfg.App.DevicePort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down Device Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Forced shutdown: %v", err)
	}
	log.Println("👋 Device Service stopped")
}
