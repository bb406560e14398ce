package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/config"
	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/crawler"
	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/docintel"
	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain/repositories"
	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain/services"
	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/handler"
	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/middleware"
	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/repository/memory"
	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/repository/postgres"
	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/scrape"
	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/service/ingest"
	s3sink "github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/storage/s3"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}

	logOut := io.Writer(os.Stdout)
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Blob storage sink
	sink, err := s3sink.NewClient(ctx, s3sink.Config{
		Bucket:    cfg.AWSBucket,
		Region:    cfg.AWSRegion,
		AccessKey: cfg.AWSAccessKey,
		SecretKey: cfg.AWSSecretKey,
	})
	if err != nil {
		log.Fatalf("Failed to create storage client: %v", err)
	}

	// Job store: Postgres when configured, in-memory otherwise
	var jobs repositories.JobStore
	if cfg.DatabaseURL != "" {
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to create connection pool: %v", err)
		}
		defer pool.Close()

		jobs, err = postgres.NewJobStore(ctx, pool)
		if err != nil {
			log.Fatalf("Failed to create job store: %v", err)
		}
		logger.Info("database connected", "max_conns", 25, "min_conns", 5)
	} else {
		jobs = memory.NewJobStore()
		logger.Info("using in-memory job store")
	}

	// Enterprise integrations, enabled only when configured
	var webCrawler services.Crawler
	if cfg.ApifyToken != "" {
		webCrawler = crawler.NewApifyClient(cfg.ApifyToken)
		logger.Info("enterprise scraping enabled")
	}

	var analyzer services.LayoutAnalyzer
	if cfg.AzureEndpoint != "" && cfg.AzureKey != "" {
		analyzer = docintel.NewClient(cfg.AzureEndpoint, cfg.AzureKey)
		logger.Info("enterprise document conversion enabled")
	}

	// Services
	fetcher := scrape.NewFetcher()
	embedder := scrape.NewEmbedder(fetcher, cfg.EmbedImages, logger)
	scrapeService := scrape.NewService(
		fetcher,
		embedder,
		webCrawler,
		sink,
		jobs,
		scrape.SinkFailurePolicy(cfg.SinkFailure),
		logger,
	)
	ingestService := ingest.NewService(sink, jobs, analyzer, ingest.Limits{
		MaxUploadBytes: config.MaxUploadBytes,
		MaxPDFPages:    config.MaxPDFPages,
	}, logger)

	// Handlers
	scrapeHandler := handler.NewScrapeHandler(scrapeService, logger)
	documentHandler := handler.NewDocumentHandler(ingestService, config.MaxUploadBodyBytes, logger)
	artifactHandler := handler.NewArtifactHandler(ingestService, logger)

	// Setup router
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Web scraping
	mux.HandleFunc("POST /api/scrape", scrapeHandler.Scrape)
	mux.HandleFunc("POST /api/scrape/enterprise", scrapeHandler.ScrapeEnterprise)
	mux.HandleFunc("GET /api/scrape/markdowns", scrapeHandler.LatestMarkdown)

	// Document uploads and conversion
	mux.HandleFunc("POST /api/documents", documentHandler.Upload)
	mux.HandleFunc("GET /api/documents/latest", documentHandler.Latest)
	mux.HandleFunc("POST /api/documents/{id}/convert", documentHandler.Convert)

	// Stored artifacts
	mux.HandleFunc("GET /api/artifacts", artifactHandler.List)
	mux.HandleFunc("GET /api/artifacts/markdowns/latest", artifactHandler.LatestMarkdown)

	// Build middleware chain (applied in reverse order, they wrap each other)
	var root http.Handler = mux
	root = middleware.Logging(logger)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: root,
		// Scrapes and conversions can legitimately take minutes.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
