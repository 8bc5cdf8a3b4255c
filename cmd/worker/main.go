package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"

	"github.com/AraTman/recipe-parser-api/internal/cache"
	"github.com/AraTman/recipe-parser-api/internal/config"
	"github.com/AraTman/recipe-parser-api/internal/db"
	"github.com/AraTman/recipe-parser-api/internal/extract"
	"github.com/AraTman/recipe-parser-api/internal/logger"
	"github.com/AraTman/recipe-parser-api/internal/sentry"
	"github.com/AraTman/recipe-parser-api/internal/services/groq"
	"github.com/AraTman/recipe-parser-api/internal/services/parse"
	"github.com/AraTman/recipe-parser-api/internal/services/recipe"
	"github.com/AraTman/recipe-parser-api/internal/services/scraper"
	"github.com/AraTman/recipe-parser-api/internal/telemetry"
	"github.com/AraTman/recipe-parser-api/internal/validation"
	"github.com/AraTman/recipe-parser-api/internal/worker"
)

func main() {
	defer sentry.Recover()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize telemetry
	if cfg.OtelExporterOTLPEndpoint != "" {
		shutdown, err := telemetry.InitTelemetry(ctx, cfg.ServiceName+"-worker", cfg.ServiceVersion, cfg.Env, cfg.OtelExporterOTLPEndpoint, cfg.OTLPHeaders())
		if err != nil {
			slog.Warn("Failed to init telemetry", "error", err)
		} else {
			defer shutdown(ctx)
		}
	}

	// Initialize Sentry
	if err := sentry.Init(cfg.SentryDSN, cfg.Env, cfg.ServiceName+"-worker", cfg.ServiceVersion); err != nil {
		slog.Warn("Failed to init Sentry", "error", err)
	} else if cfg.SentryDSN != "" {
		defer sentry.Flush(2 * time.Second)
	}

	// Initialize logger with OTel support
	logger := logger.New(cfg.Env)
	slog.SetDefault(logger)

	// Database connection
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	store := db.NewStore(pool)

	// Redis-backed caches
	redisOpt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(redisOpt)
	defer redisClient.Close()

	// Extraction pipeline
	scrapers := []scraper.Scraper{
		scraper.NewInstagramScraper(cfg.ProxyServerURL, cfg.ProxyAPIKey),
		scraper.NewTikTokScraper(cfg.ApifyAPIKey),
		scraper.NewYouTubeScraper(),
	}
	engine := extract.NewEngine(extract.ForLanguage(cfg.Extraction.Language))
	aiProvider := recipe.NewProvider(cfg.Extraction, cfg.GroqKey, cfg.OpenAIKey)
	contentCfg := validation.ContentValidationConfig{
		EnableAIValidation: cfg.Extraction.AIValidation && cfg.GroqKey != "",
		ValidationModel:    cfg.Extraction.ValidationModel,
	}

	parser := parse.NewService(engine, scrapers, logger,
		parse.WithAIProvider(aiProvider),
		parse.WithCaches(cache.NewPostCache(redisClient), cache.NewRecipeCache(redisClient)),
		parse.WithStore(store),
		parse.WithStrategy(cfg.Extraction.Strategy),
		parse.WithContentValidation(contentCfg, groq.NewClient(cfg.GroqKey)),
	)

	broadcaster := worker.NewProgressBroadcaster(cfg.ProgressWebhookURL)

	workerMetrics, err := worker.NewWorkerMetrics()
	if err != nil {
		slog.Warn("Failed to init worker metrics", "error", err)
	}

	// Recipe processor
	processor := worker.NewRecipeProcessor(store, parser, broadcaster, workerMetrics)

	// Asynq server
	srv := worker.NewServer(cfg.RedisURL)

	// Register handlers
	mux := asynq.NewServeMux()
	mux.Use(worker.SentryMiddleware)
	mux.Use(worker.OTelMiddleware)
	mux.HandleFunc(worker.TypeParseRecipe, processor.HandleParseRecipe)
	mux.HandleFunc(worker.TypeCleanupJobs, processor.HandleCleanupJobs)

	// Periodic cleanup of finished jobs
	scheduler := worker.NewScheduler(cfg.RedisURL)
	if _, err := scheduler.Register("0 3 * * *", worker.NewCleanupJobsTask()); err != nil {
		slog.Warn("Failed to register cleanup schedule", "error", err)
	} else {
		go func() {
			if err := scheduler.Run(); err != nil {
				slog.Error("Scheduler stopped", "error", err)
			}
		}()
	}

	// Handle shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutting down worker...")
		scheduler.Shutdown()
		srv.Shutdown()
	}()

	slog.Info("Starting worker", "redis", cfg.RedisURL)

	if err := srv.Run(mux); err != nil {
		log.Fatalf("Worker failed: %v", err)
	}
}
