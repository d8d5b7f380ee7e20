package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/venuebook/hall-booking/internal/config"
	"github.com/venuebook/hall-booking/internal/database"
	"github.com/venuebook/hall-booking/internal/handler"
	"github.com/venuebook/hall-booking/internal/middleware"
	"github.com/venuebook/hall-booking/internal/queue"
	"github.com/venuebook/hall-booking/internal/repository"
	"github.com/venuebook/hall-booking/internal/router"
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the response cache and the rate limiter.  Both degrade
	// to no-ops when the client is nil.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, cache and rate limiting disabled")
	}

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	hallRepo := repository.NewHallRepo(db)
	menuRepo := repository.NewMenuRepo(db)
	eventTypeRepo := repository.NewEventTypeRepo(db)
	slotRepo := repository.NewTimeSlotRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	reviewRepo := repository.NewReviewRepo(db)

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	publicHandler := handler.NewPublicHandler(hallRepo, menuRepo, eventTypeRepo, slotRepo, reviewRepo)
	customerHandler := handler.NewCustomerHandler(hallRepo, eventTypeRepo, menuRepo, slotRepo, bookingRepo, reviewRepo)
	ownerHandler := handler.NewOwnerHandler(hallRepo, menuRepo, eventTypeRepo, slotRepo, bookingRepo)
	adminHandler := handler.NewAdminHandler(userRepo, hallRepo, reviewRepo)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, publicHandler, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterCustomer(e, customerHandler, cfg.JWTSecret)
	router.RegisterOwner(e, ownerHandler, cfg.JWTSecret)
	router.RegisterAdmin(e, adminHandler, cfg.JWTSecret)

	// Background consumer writing lifecycle events to logs/booking.log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
