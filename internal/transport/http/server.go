package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"

	"skillswap_22520060/internal/config"
	"skillswap_22520060/internal/database"
	"skillswap_22520060/internal/handler"
	"skillswap_22520060/internal/queue"
	appredis "skillswap_22520060/internal/redis"
	"skillswap_22520060/internal/repository"
	"skillswap_22520060/internal/service"
	"skillswap_22520060/internal/worker"
)

// Run wires the whole service together and blocks on ListenAndServe.
func Run() error {
	ctx := context.Background()

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

	// 3. Connect to Redis (notification pipeline)
	redisClient, err := appredis.NewClient(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	if err := redisClient.Ping(ctx); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer redisClient.Close()

	// 4. Repositories
	userRepo := repository.NewUserRepository(db)
	swapRepo := repository.NewSwapRequestRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	reportRepo := repository.NewReportRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// 5. Notification pipeline: publisher for the services, worker pool
	// consuming the stream into notification rows.
	publisher := queue.NewPublisher(redisClient.Client)
	consumer := queue.NewConsumer(redisClient.Client)
	workerManager := worker.NewManager(consumer, worker.NewHandler(userRepo, notificationRepo), worker.DefaultManagerConfig())
	if err := workerManager.Start(ctx); err != nil {
		return fmt.Errorf("failed to start notification workers: %w", err)
	}
	defer workerManager.Stop()

	// 6. Services
	var photoStore service.PhotoStore
	if cfg.HasObjectStorage() {
		mediaService, err := service.NewMediaService(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to init media service: %w", err)
		}
		photoStore = mediaService
	} else {
		log.Println("[Server] object storage not configured, profile photo uploads disabled")
	}

	mailer := service.NewSMTPMailer(cfg)
	userService := service.NewUserService(userRepo, photoStore)
	authService := service.NewAuthService(userRepo, mailer, cfg)
	swapService := service.NewSwapService(swapRepo, userRepo, publisher)
	messageService := service.NewMessageService(messageRepo, swapRepo, publisher)
	reviewService := service.NewReviewService(reviewRepo, swapRepo, publisher)
	reportService := service.NewReportService(reportRepo, userRepo, publisher)
	notificationService := service.NewNotificationService(notificationRepo)

	// 7. Handlers and routes
	router := NewRouter(RouterConfig{
		AuthHandler:         handler.NewAuthHandler(userService, authService),
		UserHandler:         handler.NewUserHandler(userService),
		SwapHandler:         handler.NewSwapHandler(swapService),
		MessageHandler:      handler.NewMessageHandler(messageService),
		ReviewHandler:       handler.NewReviewHandler(reviewService),
		ReportHandler:       handler.NewReportHandler(reportService),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
		AdminHandler:        handler.NewAdminHandler(userService, reportService),
		JWTSecret:           cfg.JWTSecret,
		Users:               userRepo,
	})

	addr := ":" + cfg.ServerPort
	log.Printf("[Server] listening on %s", addr)
	return stdhttp.ListenAndServe(addr, router)
}
