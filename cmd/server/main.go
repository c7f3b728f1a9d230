package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/artist-management/internal/config"
	"github.com/iliyamo/artist-management/internal/database"
	"github.com/iliyamo/artist-management/internal/handler"
	"github.com/iliyamo/artist-management/internal/middleware"
	"github.com/iliyamo/artist-management/internal/queue"
	"github.com/iliyamo/artist-management/internal/repository"
	"github.com/iliyamo/artist-management/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	userRepo := repository.NewUserRepo(db)
	artistRepo := repository.NewArtistRepo(db)
	musicRepo := repository.NewMusicRepo(db)

	authHandler := handler.NewAuthHandler(cfg, userRepo)
	userHandler := handler.NewUserHandler(userRepo)
	artistHandler := handler.NewArtistHandler(artistRepo, cfg.BcryptCost)
	csvHandler := handler.NewCSVHandler(cfg, artistRepo)
	musicHandler := handler.NewMusicHandler(musicRepo)

	// Redis is optional: without it the server runs with no rate
	// limiting and no response cache.
	var limiter, cacheMW echo.MiddlewareFunc
	if rdb := config.NewRedisClient(); rdb != nil {
		limiter = middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
		cacheMW = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	} else {
		log.Println("redis unavailable; rate limiting and caching disabled")
	}

	// Background worker removing expired export files.
	go func() {
		if err := queue.StartCleanupConsumer(); err != nil {
			log.Printf("cleanup consumer stopped: %v", err)
		}
	}()

	authMW := middleware.Auth(cfg.AccessSecret, userRepo)

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, authMW, limiter)
	router.RegisterUsers(e, userHandler, authMW)
	router.RegisterArtists(e, artistHandler, csvHandler, authMW, cacheMW)
	router.RegisterMusic(e, musicHandler, authMW, cacheMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
