package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/config"
	"inkwell/internal/doctypes"
	"inkwell/internal/handler"
	"inkwell/internal/middleware"
	"inkwell/internal/repository/postgres"
	"inkwell/internal/service"
	"inkwell/internal/storage"
	storageS3 "inkwell/internal/storage/s3"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// JWT verifier against the identity provider's JWKS endpoint
	verifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer verifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	docRepo := postgres.NewDocumentRepository(repoConfig)
	redirectRepo := postgres.NewSlugRedirectRepository(repoConfig)
	statsRepo := postgres.NewStatsRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Document type registry (embedded YAML)
	typeRegistry, err := doctypes.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to initialize document type registry: %v", err)
	}
	logger.Info("document type registry initialized")

	// Cover image storage
	var coverStore storage.Backend
	if cfg.S3Bucket != "" {
		coverStore, err = storageS3.New(storageS3.Config{
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Endpoint:        cfg.S3Endpoint,
			UsePathStyle:    cfg.S3UsePathStyle,
		})
		if err != nil {
			log.Fatalf("Failed to create S3 storage backend: %v", err)
		}
		logger.Info("cover image storage ready", "bucket", cfg.S3Bucket)
	} else {
		coverStore = storage.NewMemoryBackend()
		logger.Warn("S3_BUCKET not set, using in-memory cover image storage")
	}

	// Create services
	limiter := service.NewSubmissionLimiter()
	engine := service.NewTransitionEngine(typeRegistry, limiter)
	analyzer := service.NewContentAnalyzer()
	redirectManager := service.NewRedirectManager(redirectRepo, logger)
	statsService := service.NewStatsService(statsRepo, docRepo, logger)
	docService := service.NewDocumentService(
		docRepo,
		statsRepo,
		redirectManager,
		txManager,
		engine,
		limiter,
		analyzer,
		typeRegistry,
		statsService,
		logger,
	)

	// Create handlers
	docHandler := handler.NewDocumentHandler(docService, logger)
	adminHandler := handler.NewAdminHandler(docService, statsService, logger)
	uploadHandler := handler.NewUploadHandler(coverStore, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", docHandler.HealthCheck)

	// Author document routes
	mux.HandleFunc("POST /api/documents", docHandler.CreateDocument)
	mux.HandleFunc("GET /api/documents", docHandler.ListDocuments)
	mux.HandleFunc("GET /api/documents/{id}", docHandler.GetDocument)
	mux.HandleFunc("PATCH /api/documents/{id}", docHandler.UpdateMetadata)
	mux.HandleFunc("PATCH /api/documents/{id}/title", docHandler.UpdateTitle)
	mux.HandleFunc("PATCH /api/documents/{id}/type", docHandler.UpdateType)
	mux.HandleFunc("PUT /api/documents/{id}/content", docHandler.UpdateContent)
	mux.HandleFunc("PATCH /api/documents/{id}/cover-image", docHandler.UpdateCoverImage)
	mux.HandleFunc("POST /api/documents/{id}/submit", docHandler.SubmitDocument)
	mux.HandleFunc("POST /api/documents/{id}/publish", docHandler.PublishDocument)
	mux.HandleFunc("DELETE /api/documents/{id}", docHandler.DeleteDocument)

	// Public reads (slug lookup follows redirects)
	mux.HandleFunc("GET /api/published/{slug}", docHandler.GetPublished)

	// Admin review routes
	mux.HandleFunc("GET /api/admin/review", adminHandler.ListPending)
	mux.HandleFunc("GET /api/admin/review/{id}", adminHandler.GetForReview)
	mux.HandleFunc("POST /api/admin/review/{id}/approve", adminHandler.Approve)
	mux.HandleFunc("POST /api/admin/review/{id}/reject", adminHandler.Reject)
	mux.HandleFunc("GET /api/admin/stats", adminHandler.GetStats)
	mux.HandleFunc("POST /api/admin/stats/recount", adminHandler.RecountStats)

	// Cover image routes
	mux.HandleFunc("POST /api/uploads/covers", uploadHandler.RequestUpload)
	mux.HandleFunc("GET /api/covers/{id}", uploadHandler.GetCoverURL)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	root = middleware.Auth(verifier)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start the server, shut down cleanly on SIGINT/SIGTERM
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}

	logger.Info("server stopped")
}
