package main

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"user-service/internal/api"
	"user-service/internal/auth"
	"user-service/internal/cache"
	"user-service/internal/config"
	"user-service/internal/events"
	"user-service/internal/repository"
	"user-service/internal/service"
	"user-service/migrations"
)

func connectDB(dsn string) (*sql.DB, error) {
	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("mysql", dsn)
		if err == nil {
			err = db.Ping()
			if err == nil {
				log.Info().Msg("Connected to DB")
				return db, nil
			}
		}
		log.Warn().Err(err).Msgf("Retry %d: Failed to connect to DB", i+1)
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to DB after retries: %v", err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	db, err := connectDB(cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Database unavailable")
	}

	if err := migrations.AutoMigrateUsers(3, db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate users table")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	kafkaWriter := config.NewKafkaWriter(cfg.KafkaBrokers, "user-topic")

	hasher := auth.NewHasher(cfg.HashSecret)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	userRepo := repository.NewUserRepository(db)
	userCache := cache.NewUserCache(rdb)
	publisher := events.NewPublisher(kafkaWriter)

	authService := auth.NewService(userRepo, hasher, tokens)
	userService := service.NewUserService(userRepo, hasher, userCache, publisher)
	userHandler := api.NewUserHandler(userService, authService)

	e := echo.New()

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(1),
				Burst:     3,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.Request().RemoteAddr, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"http://localhost:8080"},
		AllowMethods:     []string{echo.GET, echo.POST, echo.PATCH, echo.DELETE},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, echo.HeaderAccept},
		AllowCredentials: true,
	}))

	// Routes
	e.POST("/api/user", userHandler.CreateUser)
	e.GET("/api/user/:id", userHandler.GetUserByID)
	e.GET("/api/users", userHandler.GetAllUsers)
	e.PATCH("/api/user", userHandler.UpdateUser)
	e.DELETE("/api/user/:id", userHandler.DeleteUser)
	e.POST("/api/login", userHandler.Login, middleware.RateLimiterWithConfig(limiterConfig))

	protected := e.Group("/api/protected", auth.Middleware(tokens))
	protected.GET("/check", userHandler.Check)

	e.GET("/api/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "user-service",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	// Start server
	e.Logger.Fatal(e.Start(cfg.HTTPAddr))
}
