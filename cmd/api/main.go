// @title Study Quiz API
// @version 1.0
// @description Generates extractive summaries and Gemini-backed multiple-choice quizzes from study material.
// @host localhost:8080
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"studyquiz/internal/adapter/quizgen"
	"studyquiz/internal/config"
	"studyquiz/internal/extractor"
	"studyquiz/internal/handler"
	"studyquiz/internal/logger"
	"studyquiz/internal/middleware"
	"studyquiz/internal/service"
	"studyquiz/internal/validation"

	_ "studyquiz/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
		)

		return err
	}
}

func main() {
	// Load configuration. A missing Gemini API key fails here, before any
	// request is processed.
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

	// Initialize the Gemini quiz generator
	generator, err := quizgen.NewGeminiQuizGenerator(context.Background(), cfg.Gemini)
	if err != nil {
		appLogger.Fatal("Failed to create Gemini quiz generator", zap.Error(err))
	}

	// Initialize services and handlers
	quizService := service.NewQuizService(extractor.New(), generator, cfg)
	validator := validation.NewValidator(cfg.Quiz.MinQuestions, cfg.Quiz.MaxQuestions)
	quizHandler := handler.NewQuizHandler(quizService, validator)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	// Swagger handler
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// API group
	apiGroup := app.Group("/api")
	apiGroup.Post("/material", quizHandler.IngestMaterial)
	apiGroup.Post("/quiz", quizHandler.GenerateQuiz)
	apiGroup.Post("/quiz/download", quizHandler.DownloadQuiz)

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
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
