package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Bingusala/rosy-glow/internal/cart"
	"github.com/Bingusala/rosy-glow/internal/catalog"
	"github.com/Bingusala/rosy-glow/internal/checkout"
	"github.com/Bingusala/rosy-glow/internal/events"
	"github.com/Bingusala/rosy-glow/internal/httpapi"
	"github.com/Bingusala/rosy-glow/internal/orders"
	"github.com/Bingusala/rosy-glow/internal/postgres"
	"github.com/Bingusala/rosy-glow/internal/users"
	"github.com/Bingusala/rosy-glow/pkg/config"
	"github.com/Bingusala/rosy-glow/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zapLogger, err := logger.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zapLogger.Sync()

	// Postgres: catalog, users, orders.
	creds := &postgres.Credentials{
		Host:              cfg.PostgresHost,
		Port:              cfg.PostgresPort,
		User:              cfg.PostgresUser,
		Password:          cfg.PostgresPassword,
		DBName:            cfg.PostgresDB,
		MigrationsDirPath: cfg.MigrationsDir,
	}
	db, err := postgres.Connect(creds)
	if err != nil {
		zapLogger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.RunMigrations(db, creds); err != nil {
		zapLogger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Mongo: carts.
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelStartup()

	mongoDB, err := cart.ConnectMongoDB(startupCtx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		zapLogger.Fatal("failed to connect to mongodb", zap.Error(err))
	}
	defer mongoDB.Client().Disconnect(context.Background())

	cartRepo := cart.NewMongoRepository(mongoDB)
	if err := cartRepo.CreateIndexes(startupCtx); err != nil {
		zapLogger.Fatal("failed to create cart indexes", zap.Error(err))
	}

	// Redis: cart cache.
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(startupCtx).Err(); err != nil {
		zapLogger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()
	cartCache := cart.NewRedisCache(redisClient)

	// Kafka: order events. With no brokers configured events are dropped.
	var publisher checkout.EventPublisher = events.NoopPublisher{}
	if cfg.KafkaBrokers != "" {
		kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaTopic, strings.Split(cfg.KafkaBrokers, ",")...)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		zapLogger.Info("kafka publisher enabled", zap.String("topic", cfg.KafkaTopic))
	} else {
		zapLogger.Info("no kafka brokers configured, order events disabled")
	}

	// Services.
	productStore := catalog.NewPostgresStore(db)
	userDirectory := users.NewPostgresDirectory(db)
	orderRepo := orders.NewPostgresRepository(db)

	cartService := cart.NewService(cartRepo, cartCache, productStore, userDirectory, zapLogger)
	checkoutService := checkout.NewService(cartService, productStore, orderRepo, publisher, zapLogger)
	orderQueries := orders.NewQueryService(orderRepo, userDirectory)

	requestTimeout := time.Duration(cfg.RequestTimeout) * time.Second
	router := httpapi.NewRouter(httpapi.RouterDeps{
		Carts:          cartService,
		Checkout:       checkoutService,
		Queries:        orderQueries,
		Users:          userDirectory,
		RequestTimeout: requestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zapLogger.Info("server starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("server exited")
}
