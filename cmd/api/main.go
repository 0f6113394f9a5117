package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"pitchlens/submission-evaluator/internal/config"
	"pitchlens/submission-evaluator/internal/handlers"
	"pitchlens/submission-evaluator/internal/repositories"
	"pitchlens/submission-evaluator/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	evalRepo := repositories.NewEvaluationRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	extractor := services.NewTextExtractor()
	log.Println("✅ Services initialized successfully")

	// Initialize the completion provider. Gemini is the default; the
	// embedding side only exists when Gemini is configured.
	var completions services.CompletionClient
	var embedder services.EmbeddingClient

	switch cfg.Pipeline.Provider {
	case "openrouter":
		completions = services.NewOpenRouterService(
			cfg.OpenRouter.APIKey,
			cfg.OpenRouter.Model,
			cfg.Pipeline.RequestTimeout,
		)
		log.Printf("✅ OpenRouter initialized successfully (model: %s)", cfg.OpenRouter.Model)
	default:
		geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Pipeline.RequestTimeout)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
		}
		completions = geminiService
		embedder = geminiService
		log.Println("✅ Gemini AI initialized successfully")
	}

	// Initialize Qdrant. Optional: without it scoring runs with no
	// retrieved guidance.
	var guidance services.GuidanceStore
	if cfg.Qdrant.URL != "" && embedder != nil {
		store, err := services.NewGuidanceStore(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
		)
		if err != nil {
			log.Printf("⚠️  Failed to initialize Qdrant, continuing without guidance retrieval: %v", err)
		} else if err := store.InitCollection(); err != nil {
			log.Printf("⚠️  Failed to initialize Qdrant collection, continuing without guidance retrieval: %v", err)
		} else {
			guidance = store
			log.Println("✅ Qdrant initialized successfully")
		}
	}

	gatekeeper := services.NewGatekeeper(completions, services.NewPromptBuilder(), cfg.Pipeline.ClassifierCharLimit)

	// Initialize evaluator
	evaluatorService := services.NewEvaluatorService(
		evalRepo,
		extractor,
		gatekeeper,
		completions,
		embedder,
		guidance,
		services.NewResponseNormalizer(),
		services.NewFallbackScorer(),
		cfg.Pipeline.ScoringCharLimit,
	)
	log.Println("✅ Evaluator service initialized")

	// Initialize Handlers
	evaluateHandler := handlers.NewEvaluationHandler(
		evaluatorService,
		storageService,
		cfg.Storage.MaxFileSize,
	)
	resultHandler := handlers.NewResultHandler(evalRepo)
	reportHandler := handlers.NewReportHandler(evalRepo, services.NewReportRenderer())
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Presentation Evaluator API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: false,
	}))

	app.Use(handlers.SessionMiddleware())

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/evaluations", evaluateHandler.HandleEvaluate)
	api.Get("/evaluations", resultHandler.HandleGetHistory)
	api.Get("/evaluations/:id", resultHandler.HandleGetResult)
	api.Get("/evaluations/:id/report", reportHandler.HandleGetReport)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Presentation Evaluator API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/evaluations",
				"GET /api/v1/evaluations",
				"GET /api/v1/evaluations/:id",
				"GET /api/v1/evaluations/:id/report",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
