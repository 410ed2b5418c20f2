package main

import (
	"bingolive/internal/cache"
	"bingolive/internal/config"
	"bingolive/internal/game"
	"bingolive/internal/pool"
	"bingolive/internal/repository"
	"bingolive/internal/transport/rest"
	"bingolive/internal/transport/ws"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	optionPool, err := loadPool(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to load option pool: ", err)
	}
	log.Printf("Option pool loaded: %d options", optionPool.Size())

	registry := game.NewRegistry(optionPool, cfg.EvictEmptyRooms)
	wsHandler := ws.NewHandler(registry, cfg.SendQueueSize)

	router := rest.NewRouter(&rest.Container{
		Registry:  registry,
		Pool:      optionPool,
		WSHandler: wsHandler,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Println("Endpoints:")
		log.Println("  GET /health")
		log.Println("  GET /v1/options")
		log.Println("  GET /v1/rooms/{key}")
		log.Println("  WS  /v1/ws/rooms/{key}")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// loadPool builds the option pool from a flat file when OPTIONS_FILE is
// set, otherwise from MongoDB with a Redis read-through cache.
func loadPool(ctx context.Context, cfg *config.Config) (*pool.Pool, error) {
	if cfg.OptionsFile != "" {
		log.Printf("Loading options from file %s", cfg.OptionsFile)
		return pool.LoadFile(cfg.OptionsFile)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	optionCache := cache.NewOptionCache(rdb)

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("Warning: Redis unavailable, skipping option cache: %v", err)
	} else {
		cached, err := optionCache.Get(ctx)
		if err != nil {
			log.Printf("Warning: option cache read failed: %v", err)
		} else if cached != nil {
			log.Println("Loading options from Redis cache")
			return pool.New(cached)
		}
	}

	log.Println("Loading options from MongoDB")

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	mongoClient, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}
	defer mongoClient.Disconnect(ctx)

	if err := mongoClient.Ping(connectCtx, nil); err != nil {
		return nil, err
	}

	optionRepo := repository.NewOptionRepo(mongoClient.Database(cfg.MongoDB))
	texts, err := optionRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	p, err := pool.New(texts)
	if err != nil {
		return nil, err
	}

	if err := optionCache.Set(ctx, texts); err != nil {
		log.Printf("Warning: option cache write failed: %v", err)
	}

	return p, nil
}
