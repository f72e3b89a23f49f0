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

	"cv-formatter/internal/config"
	"cv-formatter/internal/handlers"
	"cv-formatter/internal/repositories"
	"cv-formatter/internal/services"
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
	cvRepo := repositories.NewCVRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	uploadStore := services.NewUploadStorage(cfg.Storage.UploadPath)
	if err := uploadStore.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	extractor := services.NewTextExtractor()
	cache := services.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.MaxEntries)

	// Provider chain: Gemini first, OpenAI-compatible fallback.
	gemini, err := services.NewGeminiProvider(cfg.AI.GeminiAPIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini provider: %v", err)
	}
	openAI := services.NewOpenAIProvider(
		cfg.AI.OpenAIAPIKey,
		cfg.AI.OpenAIBaseURL,
		cfg.AI.OpenAIModel,
		cfg.AI.Timeout,
	)
	if !gemini.Configured() && !openAI.Configured() {
		log.Println("⚠️  No AI provider configured; uploads will fail until a key is set")
	}

	formatter := services.NewAIFormatter(
		[]services.Provider{gemini, openAI},
		cache,
		cfg.AI.RetryMaxAttempts,
		cfg.AI.RetryInitialDelay,
	)

	objectStorage := services.NewSupabaseStorage(
		cfg.Supabase.URL,
		cfg.Supabase.APIKey,
		cfg.Supabase.Bucket,
	)
	photos := services.NewPhotoPipeline(objectStorage)
	log.Println("✅ Services initialized successfully")

	// Initialize handlers
	cvHandler := handlers.NewCVHandler(
		cvRepo,
		uploadStore,
		extractor,
		formatter,
		photos,
		cfg.Storage.MaxFileSize,
		cfg.AI.Timeout,
	)
	exportHandler := handlers.NewExportHandler(cvRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "CV Formatter API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
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
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	cv := app.Group("/cv")
	cv.Post("/upload", cvHandler.HandleUpload)
	cv.Get("/all", cvHandler.HandleGetAll)
	cv.Get("/:id", cvHandler.HandleGetByID)
	cv.Put("/:id", cvHandler.HandleUpdate)
	cv.Get("/:id/export", exportHandler.HandleExportText)
	cv.Get("/:id/export-docx", exportHandler.HandleExportDocx)
	cv.Get("/:id/export-pdf", exportHandler.HandleExportPdf)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "CV Formatter API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /cv/upload",
				"GET /cv/all",
				"GET /cv/:id",
				"PUT /cv/:id",
				"GET /cv/:id/export",
				"GET /cv/:id/export-docx",
				"GET /cv/:id/export-pdf",
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
