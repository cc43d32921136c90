// Command quizsession serves a single quiz session over a local HTTP API.
// The presentation layer uploads a document, answers the generated questions
// and reads the scored result and feedback through /api/session.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quiz-session/internal/adapter"
	"quiz-session/internal/adapter/mcqservice"
	"quiz-session/internal/cache"
	"quiz-session/internal/config"
	"quiz-session/internal/domain"
	"quiz-session/internal/handler"
	"quiz-session/internal/logger"
	"quiz-session/internal/middleware"
	"quiz-session/internal/service"
	"quiz-session/internal/session"
	"quiz-session/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Remote generation and feedback services
	client, err := mcqservice.NewClient(cfg.Services.BaseURL,
		mcqservice.WithTimeout(cfg.Services.Timeout),
		mcqservice.WithLogger(appLogger.Named("mcqservice")),
	)
	if err != nil {
		appLogger.Fatal("Failed to create MCQ service client", zap.Error(err))
	}
	appLogger.Info("MCQ service client initialized", zap.String("base_url", cfg.Services.BaseURL))

	// Optional generation and feedback cache
	var generator domain.QuizGenerator = client
	var feedback domain.FeedbackProvider = client
	var cacheAdapter domain.Cache
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		appLogger.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))

		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		generator = service.NewCachingGenerator(client, cacheAdapter, cfg.Cache.TTL, appLogger.Named("generation_cache"))
		feedback = service.NewCachingFeedbackProvider(client, cacheAdapter, cfg.Cache.TTL)
		appLogger.Info("Generation and feedback cache enabled", zap.Duration("ttl", cfg.Cache.TTL))
	}

	// Session state machine
	machine := session.NewMachine(generator, feedback,
		session.WithLogger(appLogger.Named("session")),
		session.WithUserID(cfg.Quiz.UserID),
		session.WithDefaultOptions(domain.GenerationOptions{
			NumQuestions: cfg.Quiz.NumQuestions,
			UserFocus:    cfg.Quiz.UserFocus,
		}),
	)

	bodyLimit := cfg.Server.BodyLimitMB * 1024 * 1024

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
		BodyLimit:    bodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	handler.RegisterRoutes(app,
		handler.NewSessionHandler(machine),
		handler.NewHealthHandler(cacheAdapter),
		middleware.NewValidationMiddleware(validation.NewValidator(int64(bodyLimit))),
	)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
