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
	"go.uber.org/zap"

	"github.com/internmatch/portal/internal/di"
	"github.com/internmatch/portal/internal/handler"
	"github.com/internmatch/portal/internal/middleware"
	"github.com/internmatch/portal/pkg/config"
	"github.com/internmatch/portal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	container, err := di.New(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("failed to initialize: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigin))
	if cfg.OTel.Enabled {
		r.Use(telemetry.TracingMiddleware(cfg.OTel.ServiceName))
	}
	r.Use(middleware.AccessLog(container.Logger))

	handler.RegisterRoutes(r, container.Handlers, container.AuthMiddleware)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		container.Logger.Info("server starting",
			zap.String("addr", server.Addr),
			zap.String("environment", cfg.App.Environment),
			zap.String("gateway_url", cfg.Gateway.URL),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			container.Logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	container.Logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		container.Logger.Error("forced shutdown", zap.Error(err))
	}
	if err := container.Close(shutdownCtx); err != nil {
		container.Logger.Error("cleanup failed", zap.Error(err))
	}
	container.Logger.Info("server stopped")
}
