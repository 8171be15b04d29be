package http

import (
	"context"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vidtube/internal/cache"
	"vidtube/internal/config"
	"vidtube/internal/database"
	"vidtube/internal/handler"
	"vidtube/internal/queue"
	"vidtube/internal/redis"
	"vidtube/internal/repository"
	"vidtube/internal/service"
	"vidtube/internal/worker"
)

func Run() error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Connect to Database
	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// 3. Connect to Redis
	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer redisClient.Close()

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(startupCtx); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	// 4. Object Storage (Cloudflare R2)
	mediaService, err := service.NewMediaService(startupCtx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create media service: %w", err)
	}

	// 5. Repositories
	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	// 6. Services
	tokenService := service.NewTokenService(cfg)
	sessionService := service.NewSessionService(userRepo, tokenService, mediaService)

	viewCache := cache.NewViewCache(redisClient.Client)
	publisher := queue.NewPublisher(redisClient.Client)
	videoService := service.NewVideoService(videoRepo, userRepo, viewCache, mediaService, publisher)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, userRepo)

	// 7. View pipeline workers
	consumer := queue.NewConsumer(redisClient.Client)
	workerHandler := worker.NewHandler(viewCache, videoRepo, userRepo)
	manager := worker.NewManager(consumer, workerHandler, worker.DefaultManagerConfig())
	if err := manager.Start(context.Background()); err != nil {
		return fmt.Errorf("failed to start workers: %w", err)
	}

	// 8. HTTP surface
	router := NewRouter(RouterConfig{
		AuthHandler:         handler.NewAuthHandler(sessionService, tokenService),
		UserHandler:         handler.NewUserHandler(sessionService),
		VideoHandler:        handler.NewVideoHandler(videoService),
		SubscriptionHandler: handler.NewSubscriptionHandler(subscriptionService),
		Tokens:              tokenService,
	})

	server := &stdhttp.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Server] Listening on :%s", cfg.ServerPort)
		errCh <- server.ListenAndServe()
	}()

	// 9. Wait for shutdown signal, then drain workers and connections.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		manager.Stop()
		return err
	case sig := <-stop:
		log.Printf("[Server] Received %s, shutting down", sig)
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
		log.Printf("[Server] Shutdown error: %v", err)
	}

	manager.Stop()
	return nil
}
