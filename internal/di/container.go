// Package di wires the application together: configuration, logging,
// telemetry, the credential store, the gateway client, services, and
// handlers.
package di

import (
	"context"
	"fmt"

	"github.com/internmatch/portal/internal/auth"
	"github.com/internmatch/portal/internal/gateway"
	"github.com/internmatch/portal/internal/handler"
	"github.com/internmatch/portal/internal/service"
	"github.com/internmatch/portal/internal/session"
	"github.com/internmatch/portal/pkg/config"
	"github.com/internmatch/portal/pkg/logger"
	"github.com/internmatch/portal/pkg/redis"
	"github.com/internmatch/portal/pkg/telemetry"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *logger.Logger
	Redis  *redis.Client

	SessionStore session.Store
	Gateway      gateway.Gateway

	AuthService        service.AuthService
	JobService         service.JobService
	ApplicationService service.ApplicationService
	ProfileService     service.ProfileService
	AdminService       service.AdminService

	Handlers       *handler.Handlers
	AuthMiddleware *auth.Middleware
}

// New builds the container. Infrastructure comes up first (logger,
// telemetry, redis), then the gateway client, then services and handlers.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	if err := logger.Init(&logger.Config{
		Level:       logLevel(cfg),
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.Get()

	if _, err := telemetry.Init(ctx, &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	redisClient, err := redis.NewClient(ctx, &redis.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	store := session.NewRedisStore(redisClient, cfg.Session.TTL)
	gw := gateway.NewHTTPGateway(cfg.Gateway.URL, cfg.Gateway.Timeout, log)

	c := &Container{
		Config:       cfg,
		Logger:       log,
		Redis:        redisClient,
		SessionStore: store,
		Gateway:      gw,
	}

	c.AuthService = service.NewAuthService(gw, store, log)
	c.JobService = service.NewJobService(gw, log)
	c.ApplicationService = service.NewApplicationService(gw, log)
	c.ProfileService = service.NewProfileService(gw, log)
	c.AdminService = service.NewAdminService(gw, log)

	c.Handlers = &handler.Handlers{
		Auth:        handler.NewAuthHandler(c.AuthService),
		Job:         handler.NewJobHandler(c.JobService),
		Application: handler.NewApplicationHandler(c.ApplicationService),
		Profile:     handler.NewProfileHandler(c.ProfileService),
		Admin:       handler.NewAdminHandler(c.AdminService),
		Health:      handler.NewHealthHandler(redisClient),
	}
	c.AuthMiddleware = auth.NewMiddleware(store, log)

	return c, nil
}

// Close releases the container's resources
func (c *Container) Close(ctx context.Context) error {
	var firstErr error
	if err := telemetry.Shutdown(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	logger.Sync()
	return firstErr
}

func logLevel(cfg *config.Config) string {
	if cfg.App.Debug {
		return "debug"
	}
	return "info"
}
