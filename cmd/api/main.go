package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/johnquangdev/meeting-reporter/pkg/validator"

	"github.com/johnquangdev/meeting-reporter/internal/adapter/handler"
	"github.com/johnquangdev/meeting-reporter/internal/adapter/repository"
	"github.com/johnquangdev/meeting-reporter/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-reporter/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-reporter/internal/infrastructure/render"
	"github.com/johnquangdev/meeting-reporter/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-reporter/internal/usecase/analyze"
	"github.com/johnquangdev/meeting-reporter/internal/usecase/auth"
	"github.com/johnquangdev/meeting-reporter/internal/usecase/report"
	"github.com/johnquangdev/meeting-reporter/internal/usecase/summarize"
	pkgai "github.com/johnquangdev/meeting-reporter/pkg/ai"
	pkgaudio "github.com/johnquangdev/meeting-reporter/pkg/audio"
	"github.com/johnquangdev/meeting-reporter/pkg/config"
	"github.com/johnquangdev/meeting-reporter/pkg/executor"
	"github.com/johnquangdev/meeting-reporter/pkg/jwt"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE and run cmd/migrate instead.")
		}
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; run cmd/migrate for schema changes")
	}

	// Initialize Redis
	log.Println("📦 Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize repositories and auth
	log.Println("🔑 Initializing auth...")
	userRepo := repository.NewUserRepository(db)
	jwtManager := jwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)
	authService := auth.NewService(userRepo, redisClient, jwtManager, logger)
	authHandler := handler.NewAuth(authService)

	// Initialize engine clients
	log.Println("🤖 Initializing engine clients...")
	var transcriber analyze.Transcriber
	var transcriberPing func(context.Context) error
	switch cfg.Audio.TranscribeProvider {
	case "assemblyai":
		asmProvider := pkgai.NewAssemblyAIProvider(&cfg.Assembly)
		transcriber = asmProvider
		transcriberPing = asmProvider.Ping
		log.Println("🎙️  Transcription provider: AssemblyAI")
	default:
		whisperClient := pkgai.NewWhisperClient(&cfg.Whisper)
		transcriber = whisperClient
		transcriberPing = whisperClient.Ping
		log.Printf("🎙️  Transcription provider: Whisper at %s", cfg.Whisper.BaseURL)
	}

	diarizationClient := pkgai.NewDiarizationClient(&cfg.Diarization)
	groqClient := pkgai.NewGroqClient(&cfg.Groq)

	// Probe each engine so the health endpoint reflects reality from the
	// first request on. A failed probe marks the engine unavailable but
	// never blocks startup.
	availability := &report.Availability{}
	availability.SetTranscription(probeEngine("transcription", transcriberPing))
	availability.SetSummarization(probeEngine("summarization", groqClient.Ping))
	if diarizationClient.Available() {
		availability.SetDiarization(probeEngine("diarization", diarizationClient.Ping))
	} else {
		log.Println("⚠️  Diarization disabled (no DIARIZATION_URL configured)")
	}

	// Initialize pipeline services
	log.Println("⚙️  Initializing pipeline...")
	if err := os.MkdirAll(cfg.Audio.TempDir, 0o755); err != nil {
		log.Fatalf("Failed to create temp dir: %v", err)
	}

	audioValidator := pkgaudio.NewValidator(executor.New(), logger)
	analyzeService := analyze.NewService(transcriber, diarizationClient, logger)
	summarizeService := summarize.NewService(groqClient, logger)

	var archiver report.Archiver
	if cfg.Storage.ArchiveReports {
		log.Println("🗄️  Initializing report archive...")
		reportArchive, err := storage.NewReportArchive(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize report archive: %v", err)
		}
		archiver = reportArchive
	}

	reportService := report.NewService(report.Options{
		Validator:     audioValidator,
		Analyzer:      analyzeService,
		Summarizer:    summarizeService,
		PDFRenderer:   render.NewPDFRenderer(),
		MDRenderer:    render.NewMarkdownRenderer(),
		CacheCapacity: cfg.Audio.CacheCapacity,
		Archiver:      archiver,
		Availability:  availability,
		MaxConcurrent: 2,
		StageTimeout:  cfg.Audio.EngineTimeout,
		OutputDir:     cfg.Audio.TempDir,
		Logger:        logger,
	})
	reportHandler := handler.NewReport(cfg, reportService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, authHandler, reportHandler, jwtManager)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

// probeEngine pings an engine with a few retries and reports whether it
// answered
func probeEngine(name string, ping func(context.Context) error) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	err := backoff.Retry(func() error {
		return ping(ctx)
	}, policy)
	if err != nil {
		log.Printf("⚠️  Engine %q unavailable: %v", name, err)
		return false
	}

	log.Printf("✅ Engine %q available", name)
	return true
}
