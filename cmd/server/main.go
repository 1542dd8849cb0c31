package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adventure-server/internal/auth"
	"adventure-server/internal/config"
	"adventure-server/internal/database"
	"adventure-server/internal/handler"
	"adventure-server/internal/messaging"
	"adventure-server/internal/middleware"
	"adventure-server/internal/repository"
	"adventure-server/internal/service"
	"adventure-server/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Service: "adventure-server", Level: cfg.LogLevel, Encoding: cfg.LogEncoding})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	log.Info("Starting adventure-server",
		zap.String("port", cfg.Port),
		zap.String("db", cfg.SafeDSN()),
		zap.Bool("eventsEnabled", cfg.EventsEnabled()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPool(ctx, database.PoolConfig{
		DSN:             cfg.GetDSN(),
		MaxConns:        cfg.DBMaxConns,
		MaxConnIdleTime: cfg.DBIdleTimeout,
	}, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer dbPool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()
	log.Info("Connected to Redis", zap.String("addr", cfg.RedisAddr))

	var publisher messaging.EventPublisher = messaging.NoopEventPublisher{}
	if cfg.EventsEnabled() {
		conn, err := messaging.Dial(ctx, cfg.RabbitMQURL, 10, 3*time.Second, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
		}
		defer func() { _ = conn.Close() }()

		rabbitPublisher, err := messaging.NewRabbitMQEventPublisher(conn, cfg.GameEventsQueue, log)
		if err != nil {
			log.Fatal("Failed to create game event publisher", zap.Error(err))
		}
		defer func() { _ = rabbitPublisher.Close() }()
		publisher = rabbitPublisher
		log.Info("Game events enabled", zap.String("queue", cfg.GameEventsQueue))
	} else {
		log.Info("RABBITMQ_URL not set, game events disabled")
	}

	storyRepo := repository.NewPgStoryRepository(dbPool, log)
	sceneRepo := repository.NewPgSceneRepository(dbPool, log)
	choiceRepo := repository.NewPgChoiceRepository(dbPool, log)
	sessionRepo := repository.NewPgGameSessionRepository(dbPool, log)
	visitRepo := repository.NewPgSceneVisitRepository(dbPool, log)
	revocationRepo := repository.NewRedisRevocationRepository(redisClient, log)

	verifier, err := auth.NewJWTVerifier(cfg.JWTSecret, revocationRepo, log)
	if err != nil {
		log.Fatal("Failed to create JWT verifier", zap.Error(err))
	}

	gameService := service.NewGameService(storyRepo, sceneRepo, choiceRepo, sessionRepo, visitRepo, publisher, log)
	gameHandler := handler.NewGameHandler(gameService, log)

	var rateLimit gin.HandlerFunc
	if cfg.RateLimitPerMinute > 0 {
		rateLimit = middleware.RedisRateLimiter(redisClient, middleware.RateLimitConfig{
			Rate:  time.Minute,
			Limit: cfg.RateLimitPerMinute,
		}, log)
	}

	gin.SetMode(gin.ReleaseMode)
	router := newRouter(log, cfg.CORSAllowedOrigins, gameHandler, middleware.Auth(verifier.VerifyToken, log), rateLimit)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exiting")
}
