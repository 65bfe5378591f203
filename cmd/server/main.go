package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"ticketbari-api/config"
	"ticketbari-api/internal/auth"
	"ticketbari-api/internal/cache"
	"ticketbari-api/internal/database"
	"ticketbari-api/internal/handler"
	"ticketbari-api/internal/monitoring"
	"ticketbari-api/internal/payment"
	"ticketbari-api/internal/repository"
	"ticketbari-api/internal/service"
	"ticketbari-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, relying on environment: %v", err)
	}

	cfg := config.LoadConfig()
	logr := logger.WithComponent("main")

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(context.Background(), pool); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	userRepo := repository.NewUserRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)

	txm := database.NewPoolTxManager(pool)
	listings := cache.NewRedisListingCache(rdb)
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
	processor := payment.NewClient(&cfg.Payment)

	userService := service.NewUserService(userRepo, ticketRepo, txm, tokens, listings)
	ticketService := service.NewTicketService(ticketRepo, listings)
	bookingService := service.NewBookingService(bookingRepo, ticketRepo)
	paymentService := service.NewPaymentService(
		paymentRepo, bookingRepo, ticketRepo, txm, processor, cfg.Payment.Currency, listings)

	router := gin.Default()
	router.Use(monitoring.Middleware())
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", monitoring.Handler())

	handler.NewUserHandler(userService, tokens).RegisterRoutes(router)
	handler.NewTicketHandler(ticketService, tokens).RegisterRoutes(router)
	handler.NewBookingHandler(bookingService, tokens).RegisterRoutes(router)
	handler.NewPaymentHandler(paymentService, tokens).RegisterRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logr.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("Forced shutdown", zap.Error(err))
	}
}
