package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stayfront/hotel-console/internal/application"
	"github.com/stayfront/hotel-console/internal/auth"
	"github.com/stayfront/hotel-console/internal/config"
	"github.com/stayfront/hotel-console/internal/events"
	"github.com/stayfront/hotel-console/internal/handler"
	"github.com/stayfront/hotel-console/internal/logger"
	"github.com/stayfront/hotel-console/internal/middleware"
	"github.com/stayfront/hotel-console/internal/notifier"
	"github.com/stayfront/hotel-console/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "hotel-console")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting hotel-console",
		zap.String("port", cfg.Port),
		zap.String("store", cfg.StoreBaseURL),
	)

	// Connect the resource store
	stores := store.NewHTTPStores(cfg.StoreBaseURL, cfg.StoreTimeout, log)

	// Initialize token manager
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	// Initialize Kafka producer
	producer := events.NewProducer(cfg.KafkaBrokers, log)
	defer func() { _ = producer.Close() }()

	// Snapshot hub and saga log
	hub := notifier.NewHub()
	sagas := application.NewSagaLog(0)

	// Initialize application services
	bookingService := application.NewBookingService(stores, producer, hub, sagas, log)
	roomService := application.NewRoomService(stores, hub, log)
	guestService := application.NewGuestService(stores, hub, log)
	requestService := application.NewServiceRequestService(stores, hub, log)
	authService := application.NewAuthService(stores, tokens, log)
	userService := application.NewUserService(stores, log)
	dashboardService := application.NewDashboardService(stores, log)

	// Initialize and start payment event consumer in a goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	paymentConsumer := events.NewPaymentEventConsumer(
		cfg.KafkaBrokers,
		cfg.KafkaGroupID,
		bookingService,
		log,
	)
	defer func() { _ = paymentConsumer.Close() }()

	go func() {
		log.Info("starting payment event consumer")
		if err := paymentConsumer.Start(ctx); err != nil && err != context.Canceled {
			log.Error("payment event consumer error", zap.Error(err))
		}
	}()

	// Initialize HTTP handlers
	bookingHandler := handler.NewBookingHandler(bookingService)
	roomHandler := handler.NewRoomHandler(roomService)
	guestHandler := handler.NewGuestHandler(guestService)
	requestHandler := handler.NewServiceRequestHandler(requestService)
	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(userService, bookingService, sagas)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	handler.RegisterValidators()

	// Apply global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.CORS(cfg.CORSOrigins))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Register routes
	bookingHandler.RegisterRoutes(&router.RouterGroup, tokens)
	roomHandler.RegisterRoutes(&router.RouterGroup, tokens)
	guestHandler.RegisterRoutes(&router.RouterGroup, tokens)
	requestHandler.RegisterRoutes(&router.RouterGroup, tokens)
	authHandler.RegisterRoutes(&router.RouterGroup, tokens)
	adminHandler.RegisterRoutes(&router.RouterGroup, tokens)
	dashboardHandler.RegisterRoutes(&router.RouterGroup, tokens)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down hotel-console...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("hotel-console stopped")
}
