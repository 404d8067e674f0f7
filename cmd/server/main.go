// Package main runs the EventHub HTTP server with WebSocket and graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"

	"github.com/eventhub/backend/config"
	"github.com/eventhub/backend/internal/auth"
	"github.com/eventhub/backend/internal/catalog"
	"github.com/eventhub/backend/internal/dashboard"
	"github.com/eventhub/backend/internal/live"
	"github.com/eventhub/backend/internal/middleware"
	"github.com/eventhub/backend/internal/models"
	"github.com/eventhub/backend/internal/realtime"
	"github.com/eventhub/backend/internal/registrations"
	"github.com/eventhub/backend/pkg/database"
	"github.com/eventhub/backend/pkg/kvstore"
	"github.com/eventhub/backend/pkg/queue"
	"github.com/eventhub/backend/pkg/redis"
	"github.com/eventhub/backend/pkg/response"
)

// handlers bundles everything the router mounts.
type handlers struct {
	jwt           *auth.JWTService
	limiter       *middleware.IPRateLimiter
	auth          *auth.Handler
	catalog       *catalog.Handler
	dashboard     *dashboard.Handler
	live          *live.Handler
	registrations *registrations.Handler
	ws            gin.HandlerFunc
	corsOrigins   string
	logger        *zap.Logger
}

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Catalog: PostgreSQL when configured, otherwise the built-in events.
	var src catalog.Source = catalog.NewMemory(catalog.SeedEvents())
	if cfg.Database.Enabled() {
		pool, err := database.NewPostgresPool(ctx, cfg.Database.URL, logger)
		if err != nil {
			logger.Fatal("database", zap.Error(err))
		}
		defer pool.Close()
		if cfg.Database.Migrate {
			if err := database.Migrate(ctx, pool); err != nil {
				logger.Fatal("migrate", zap.Error(err))
			}
		}
		pg := catalog.NewPostgres(pool)
		if cfg.Database.Seed {
			if err := pg.Seed(ctx, catalog.SeedEvents()); err != nil {
				logger.Fatal("seed catalog", zap.Error(err))
			}
		}
		src = pg
	}
	cached, err := catalog.NewCached(src, cfg.Catalog.CacheSize)
	if err != nil {
		logger.Fatal("catalog cache", zap.Error(err))
	}

	// Redis is optional: it backs tickets, the confirmation queue and cross-instance panel delivery.
	var (
		tickets  kvstore.Store
		jobs     registrations.Enqueuer
		redisPub realtime.RedisPublisher
		redisSub realtime.RedisSubscriber
	)
	if cfg.Redis.Enabled() {
		rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.Fatal("redis", zap.Error(err))
		}
		defer rdb.Close()
		tickets = kvstore.NewRedis(rdb.Client, "eventhub")
		jobs = queue.NewQueue(rdb.Client, logger)
		pubsub := realtime.NewRedisPubSub(rdb.Client, logger)
		redisPub, redisSub = pubsub, pubsub
	} else {
		bunt, err := kvstore.OpenBunt(cfg.Store.BuntDBPath)
		if err != nil {
			logger.Fatal("buntdb", zap.Error(err), zap.String("path", cfg.Store.BuntDBPath))
		}
		tickets = bunt
		logger.Info("redis disabled; tickets stored in buntdb", zap.String("path", cfg.Store.BuntDBPath))
	}
	defer tickets.Close()

	dir, err := auth.NewDirectory(auth.DefaultUsers(), cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("credential directory", zap.Error(err))
	}
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	hub := realtime.NewHub(logger, redisPub, redisSub)
	panels := live.NewManager(cached, hub, logger)
	ticketSvc := registrations.NewService(cached, tickets, jobs, logger)

	h := handlers{
		jwt:           jwtService,
		limiter:       middleware.NewIPRateLimiter(ctx, rate.Limit(cfg.RateLimit.PerSecond), cfg.RateLimit.Burst, time.Duration(cfg.RateLimit.SweepMinutes)*time.Minute, logger),
		auth:          auth.NewHandler(dir, jwtService, logger),
		catalog:       catalog.NewHandler(cached, logger),
		dashboard:     dashboard.NewHandler(&dashboard.Builder{Events: cached, Users: dir, Tickets: ticketSvc}, logger),
		live:          live.NewHandler(panels, logger),
		registrations: registrations.NewHandler(ticketSvc, logger),
		ws:            realtime.ServeWs(hub, panels, jwtService, logger),
		corsOrigins:   cfg.Server.CORSAllowedOrigins,
		logger:        logger,
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      newRouter(h),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newRouter(h handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(h.corsOrigins))
	router.Use(middleware.Logger(h.logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Catalog (public)
	router.GET("/events", h.catalog.List)
	router.GET("/events/tags", h.catalog.Tags)
	router.GET("/events/:id", h.catalog.Get)

	// Auth (public, rate limited per IP)
	authGroup := router.Group("/auth")
	authGroup.Use(middleware.RateLimit(h.limiter))
	{
		authGroup.POST("/login", h.auth.Login)
		authGroup.POST("/register", h.auth.Register)
	}

	// Protected API (JWT required)
	api := router.Group("")
	api.Use(middleware.JWT(h.jwt))
	{
		api.GET("/auth/me", h.auth.Me)
		api.GET("/users", middleware.RequireRole(models.RoleAdmin), h.auth.List)

		api.POST("/events", middleware.RequireRole(models.RoleAdmin, models.RoleSpeaker), h.catalog.Create)
		api.POST("/events/:id/register", h.registrations.Register)
		api.GET("/me/tickets", h.registrations.Mine)

		api.GET("/dashboard", h.dashboard.Get)

		api.GET("/sessions/:sessionId/panel", h.live.Get)
		api.POST("/sessions/:sessionId/panel/actions", h.live.Apply)
		api.DELETE("/sessions/:sessionId/panel", h.live.Close)
	}

	// WebSocket (token in query; no Authorization header required)
	router.GET("/ws", h.ws)
	return router
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
