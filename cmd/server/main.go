package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/devkashyap/college-management/internal/config"
	"github.com/devkashyap/college-management/internal/database"
	"github.com/devkashyap/college-management/internal/handler"
	"github.com/devkashyap/college-management/internal/middleware"
	"github.com/devkashyap/college-management/internal/queue"
	"github.com/devkashyap/college-management/internal/repository"
	"github.com/devkashyap/college-management/internal/router"
	"github.com/devkashyap/college-management/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	// Repositories and the profile permission gate.
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	ticketRepo := repository.NewTicketRepo(db)
	taskRepo := repository.NewTaskRepo(db)
	attendanceRepo := repository.NewAttendanceRepo(db)
	messageRepo := repository.NewMessageRepo(db)
	resumeRepo := repository.NewResumeRepo(db)
	gate := service.NewProfileGate(db)

	// Handlers.
	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	ticketHandler := handler.NewTicketHandler(ticketRepo, gate)
	profileHandler := handler.NewProfileHandler(userRepo, gate)
	taskHandler := handler.NewTaskHandler(taskRepo, userRepo)
	attendanceHandler := handler.NewAttendanceHandler(attendanceRepo, userRepo)
	chatHandler := handler.NewChatHandler(messageRepo, userRepo)
	resumeHandler := handler.NewResumeHandler(resumeRepo)

	e := echo.New()

	// Redis-backed rate limiting and response caching; both degrade to
	// pass-through when Redis is unreachable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and caching disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterCommon(e, profileHandler, chatHandler, resumeHandler, cfg.JWTSecret)
	router.RegisterStudent(e, ticketHandler, taskHandler, attendanceHandler, cfg.JWTSecret)
	router.RegisterFaculty(e, taskHandler, attendanceHandler, resumeHandler, cfg.JWTSecret)
	router.RegisterAdmin(e, ticketHandler, cfg.JWTSecret)

	// Chat event consumer runs for the lifetime of the process and
	// reconnects on broker failures.
	go func() {
		if err := queue.StartChatConsumer(); err != nil {
			log.Printf("chat consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
