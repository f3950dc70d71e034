package main

import (
	"log"
	"net/http"

	_ "taskboard/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"taskboard/internal/auth"
	"taskboard/internal/cache"
	"taskboard/internal/config"
	"taskboard/internal/db"
	"taskboard/internal/handler"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/router"
	"taskboard/internal/service"
)

// @title Taskboard API
// @version 1.0
// @description Multi-user task board with boards, tasks, and cookie-session authentication.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB was set at startup
	if cfg.ResetDB {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Task{},
			&model.Board{},
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
		&model.Board{},
		&model.Task{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	boardRepo := repository.NewBoardRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	sessionStore := auth.NewSessionStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, sessionStore)
	boardService := service.NewBoardService(boardRepo, taskRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	boardHandler := handler.NewBoardHandler(boardService)

	// Register routes
	router.Register(e, cfg, authHandler, boardHandler, userRepo, sessionStore)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
