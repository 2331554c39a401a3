package main

import (
	"context"
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

	"studentpipeline/ai-validator/internal/config"
	"studentpipeline/ai-validator/internal/handlers"
	"studentpipeline/ai-validator/internal/repositories"
	"studentpipeline/ai-validator/internal/services"
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

	// Initialize repositories
	docRepo := repositories.NewDocumentRepository(db)
	jobRepo := repositories.NewValidationJobRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Worker.RetryInitialDelay)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize Qdrant for guideline retrieval
	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	retriever := services.NewGuidelineRetriever(geminiService, qdrantService)

	// Initialize the validation pipeline
	classifier := services.NewDocumentClassifier(geminiService)
	resumeValidator := services.NewResumeValidator(geminiService, retriever)
	lorValidator := services.NewLORValidator(geminiService, retriever)
	marksheetValidator := services.NewMarksheetValidator(geminiService, retriever)
	eligibilityChecker := services.NewEligibilityChecker()
	evaluator := services.NewApplicationEvaluator()

	validationService := services.NewValidationService(
		classifier,
		resumeValidator,
		lorValidator,
		marksheetValidator,
		eligibilityChecker,
		evaluator,
	)
	log.Println("✅ Validation pipeline initialized")

	// Async jobs run the same pipeline over a retrying oracle: nobody is
	// waiting on the response, so transient model errors get retried
	// instead of failing the job.
	retryingOracle := services.NewRetryingOracle(
		geminiService,
		cfg.Worker.RetryMaxAttempts,
		cfg.Worker.RetryInitialDelay,
	)
	workerValidationService := services.NewValidationService(
		services.NewDocumentClassifier(retryingOracle),
		services.NewResumeValidator(retryingOracle, retriever),
		services.NewLORValidator(retryingOracle, retriever),
		services.NewMarksheetValidator(retryingOracle, retriever),
		eligibilityChecker,
		evaluator,
	)

	// Initialize async job processing
	jobService := services.NewJobService(jobRepo, docRepo, pdfParser, workerValidationService)
	worker := services.NewWorker(jobRepo, jobService, cfg.Worker.Concurrency)
	log.Println("✅ Worker initialized successfully")

	ctx := context.Background()
	worker.Start(ctx)

	// Initialize handlers
	uploadHandler := handlers.NewUploadHandler(
		docRepo,
		storageService,
		cfg.Storage.MaxFileSize,
	)
	validateHandler := handlers.NewValidateHandler(
		storageService,
		pdfParser,
		validationService,
		cfg.Storage.MaxFileSize,
	)
	validateAsyncHandler := handlers.NewValidateAsyncHandler(
		jobRepo,
		docRepo,
		worker,
		cfg.Policy.DefaultProfile,
	)
	resultHandler := handlers.NewResultHandler(jobRepo)
	rulesHandler := handlers.NewRulesHandler()
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Internship Application Validator API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) * 5,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Synchronous validation
	api.Post("/validate", validateHandler.HandleValidate)
	api.Post("/validate-resume", validateHandler.HandleValidateResume)
	api.Post("/validate-lor", validateHandler.HandleValidateLOR)
	api.Post("/validate-marksheets", validateHandler.HandleValidateMarksheets)
	api.Get("/eligibility-rules", rulesHandler.HandleGetRules)

	// Asynchronous validation over stored documents
	api.Post("/upload", uploadHandler.HandleUpload)
	api.Post("/validate-async", validateAsyncHandler.HandleValidateAsync)
	api.Get("/result/:id", resultHandler.HandleGetResult)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Internship Application Validator API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/validate",
				"POST /api/v1/validate-resume",
				"POST /api/v1/validate-lor",
				"POST /api/v1/validate-marksheets",
				"GET /api/v1/eligibility-rules",
				"POST /api/v1/upload",
				"POST /api/v1/validate-async",
				"GET /api/v1/result/:id",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
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
