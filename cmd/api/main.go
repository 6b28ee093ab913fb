package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/glutt28/ecommerce-prototype/internal/api"
	"github.com/glutt28/ecommerce-prototype/internal/auth"
	"github.com/glutt28/ecommerce-prototype/internal/cache"
	"github.com/glutt28/ecommerce-prototype/internal/config"
	"github.com/glutt28/ecommerce-prototype/internal/kafka"
	"github.com/glutt28/ecommerce-prototype/internal/repository"
	"github.com/glutt28/ecommerce-prototype/internal/service"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadAPI()
	if err != nil {
		log.Fatalf("[API] Failed to load configuration: %v", err)
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[API] JWT_SECRET must be at least 32 characters long")
	}

	log.Println("[API] ========================================")
	log.Println("[API] Storefront Backend")
	log.Println("[API] ========================================")
	log.Printf("[API] Mongo: %s/%s", cfg.MongoURI, cfg.MongoDatabase)
	log.Printf("[API] Redis: %s", cfg.RedisAddr)
	log.Printf("[API] Kafka: %v topic=%s", cfg.KafkaBrokers, cfg.KafkaTopic)

	// Initialize MongoDB connection
	connectCtx, connectCancel := context.WithTimeout(ctx, 15*time.Second)
	db, err := repository.ConnectMongo(connectCtx, cfg.MongoURI, cfg.MongoDatabase)
	connectCancel()
	if err != nil {
		log.Fatalf("[API] Failed to connect to MongoDB: %v", err)
	}
	defer db.Client().Disconnect(context.Background())
	log.Println("[API] Connected to MongoDB")

	// Initialize Redis product cache
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()
	productCache := cache.NewRedisCache(redisClient)

	// Initialize Kafka producer for order events
	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer producer.Close()

	// Initialize repositories and services
	products := repository.NewMongoProductRepository(db)
	orders := repository.NewMongoOrderRepository(db)
	users := repository.NewMongoUserRepository(db)

	catalogSvc := service.NewCatalogService(products, productCache)
	orderSvc := service.NewOrderService(orders, producer)

	jwtService := auth.NewJWTService(cfg.JWTSecret, 24*time.Hour)

	// Initialize API
	router := api.NewRouter(api.RouterConfig{
		Handlers:     api.NewHandlers(catalogSvc, orderSvc),
		AuthHandlers: api.NewAuthHandlers(users, jwtService),
		JWTService:   jwtService,
	})

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	go func() {
		log.Printf("[API] Server started on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("[API] Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[API] Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	server.Shutdown(shutdownCtx)
}
