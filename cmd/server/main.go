package main

import (
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "eventhub/docs"
	"eventhub/internal/auth"
	"eventhub/internal/cache"
	"eventhub/internal/config"
	"eventhub/internal/db"
	"eventhub/internal/handler"
	"eventhub/internal/model"
	"eventhub/internal/repository"
	"eventhub/internal/router"
	"eventhub/internal/service"
)

// @title Eventhub API
// @version 1.0
// @description Event favorites backend with JWT authentication and role-based authorization.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Favorite{},
			&model.Event{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Event{},
		&model.Favorite{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	eventRepo := repository.NewEventRepository(gormDB)
	favoriteRepo := repository.NewFavoriteRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTLifetime)

	// Initialize services
	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(userService, jwtService)
	eventService := service.NewEventService(eventRepo, favoriteRepo, cacheClient)
	favoriteService := service.NewFavoriteService(favoriteRepo, eventRepo, userRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, userService, jwtService.Lifetime())
	eventHandler := handler.NewEventHandler(eventService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)

	// Register routes
	router.Register(
		e,
		jwtService,
		userRepo,
		authHandler,
		eventHandler,
		favoriteHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
