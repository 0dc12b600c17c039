package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"trivia-api/internal/config"
	"trivia-api/internal/middleware"
	"trivia-api/internal/trivia"
	"trivia-api/pkg/cache"
	"trivia-api/pkg/database"
	"trivia-api/pkg/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Category cache is optional.
	var categoryCache trivia.CategoryCache
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
		if err := redisCache.Ping(context.Background()); err != nil {
			log.Printf("Warning: %v; serving categories uncached", err)
		} else {
			categoryCache = redisCache
			defer redisCache.Close()
		}
	}

	if cfg.Seed {
		seeded, err := database.SeedCategories(context.Background(), db)
		if err != nil {
			log.Fatalf("Failed to seed categories: %v", err)
		}
		if seeded > 0 {
			if c, ok := categoryCache.(*cache.RedisCache); ok {
				if err := c.InvalidateCategories(context.Background()); err != nil {
					log.Printf("Error invalidating category cache: %v", err)
				}
			}
		}
	}

	wsHub := websocket.NewHub()
	go wsHub.Run()

	repo := trivia.NewRepository(db)
	service := trivia.NewService(repo, categoryCache, wsHub)
	handler := trivia.NewHandler(service)

	router := mux.NewRouter()
	router.Use(middleware.RequestLogger)
	router.HandleFunc("/ws/questions", wsHub.HandleWebSocket)
	handler.RegisterRoutes(router)
	middleware.LogUnmatched(router)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      corsMiddleware.Handler(router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	wsHub.Stop()

	log.Println("Server shutdown gracefully")
}
