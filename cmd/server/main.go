package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"quizmaster/internal/cache"
	"quizmaster/internal/config"
	"quizmaster/internal/game"
	"quizmaster/internal/question"
	"quizmaster/internal/repository"
	"quizmaster/internal/service"
	"quizmaster/internal/transport/rest"
	"quizmaster/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// MongoDB connection (optional; history endpoints degrade without it)
	var resultRepo repository.GameResultRepo
	if cfg.MongoURI != "" {
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatal("Failed to connect to MongoDB:", err)
		}
		defer mongoClient.Disconnect(ctx)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := mongoClient.Ping(pingCtx, nil); err != nil {
			log.Printf("Warning: MongoDB unreachable, game history disabled: %v", err)
		} else {
			resultRepo = repository.NewGameResultRepo(mongoClient.Database(cfg.MongoDB))
			log.Println("Connected to MongoDB")
		}
		cancel()
	} else {
		log.Println("Warning: MONGO_URI not set, game history disabled")
	}

	// Redis connection (optional; stats caching degrades without it)
	var statsCache cache.StatsCache
	if cfg.RedisAddr != "" {
		redisAddr := strings.TrimPrefix(cfg.RedisAddr, "redis://")
		rdb := redis.NewClient(&redis.Options{
			Addr: redisAddr,
		})
		defer rdb.Close()

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Printf("Warning: Redis unreachable, stats cache disabled: %v", err)
		} else {
			statsCache = cache.NewStatsCache(rdb)
			log.Println("Connected to Redis")
		}
	} else {
		log.Println("Warning: REDIS_ADDR not set, stats cache disabled")
	}

	questions := question.NewService(cfg.QuizAPIKey)
	if cfg.QuizAPIKey == "" {
		log.Println("QUIZ_API_KEY not set, quizapi.io provider disabled")
	}

	resultSvc := service.NewResultService(resultRepo, statsCache)

	hub := ws.NewHub()
	registry := game.NewRegistry(questions)
	clock := game.NewClock()
	engine := game.NewEngine(registry, clock, hub, resultSvc)
	wsHandler := ws.NewHandler(hub, engine)

	router := rest.NewRouter(&rest.Container{
		Registry:      registry,
		Questions:     questions,
		ResultService: resultSvc,
		WSHandler:     wsHandler,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Println("Endpoints:")
		log.Println("  WS   /ws")
		log.Println("  GET  /health")
		log.Println("  GET  /api/categories")
		log.Println("  GET  /api/games")
		log.Println("  GET  /api/games/{code}")
		log.Println("  GET  /api/stats")
		log.Println("  GET  /api/stats/winners")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

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
