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
	"github.com/vidstreamhq/vidstream/internal/config"
	"github.com/vidstreamhq/vidstream/internal/gateway"
	"github.com/vidstreamhq/vidstream/internal/handler"
	"github.com/vidstreamhq/vidstream/internal/middleware"
)

func main() {
	// ==================== Load Config ====================
	cfg := config.Load()
	log.Printf("🚀 Starting API Gateway [env=%s]", cfg.App.Env)

	proxy := gateway.New(cfg.Gateway.IdentityServiceURL, cfg.Gateway.DeviceServiceURL)
	proxyHandler := handler.NewProxyHandler(proxy)

	// ==================== Gin Router ====================
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg.CORS.Origins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "api-gateway",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	router.GET("/services", proxyHandler.ServiceInfo)
	router.Any("/identity/*path", proxyHandler.Identity)
	router.Any("/device/*path", proxyHandler.Device)

	// ==================== Start Server ====================
	srv := &http.Server{
		Addr:    ":" + cfg.App.GatewayPort,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server failed: %v", err)
		}
	}()

	log.Printf("🌐 API Gateway running on http://0.0.0.0:%s", cfg.App.GatewayPort)
	log.Printf("🔀 Forwarding /identity → %s, /device → %s",
		cfg.Gateway.IdentityServiceURL, cfg.Gateway.DeviceServiceURL)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down API Gateway...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Forced shutdown: %v", err)
	}
	log.Println("👋 API Gateway stopped")
}
