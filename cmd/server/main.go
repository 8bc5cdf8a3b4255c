package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	otelchimetric "github.com/riandyrn/otelchi/metric"
	"go.opentelemetry.io/otel"

	"github.com/AraTman/recipe-parser-api/internal/api"
	"github.com/AraTman/recipe-parser-api/internal/cache"
	"github.com/AraTman/recipe-parser-api/internal/config"
	"github.com/AraTman/recipe-parser-api/internal/db"
	"github.com/AraTman/recipe-parser-api/internal/extract"
	"github.com/AraTman/recipe-parser-api/internal/logger"
	"github.com/AraTman/recipe-parser-api/internal/middleware"
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
		shutdown, err := telemetry.InitTelemetry(ctx, cfg.ServiceName, cfg.ServiceVersion, cfg.Env, cfg.OtelExporterOTLPEndpoint, cfg.OTLPHeaders())
		if err != nil {
			slog.Warn("Failed to init telemetry", "error", err)
		} else {
			defer shutdown(ctx)
		}
	}

	// Initialize Sentry
	sentry.Init(cfg.SentryDSN, cfg.Env, cfg.ServiceName, cfg.ServiceVersion)
	if cfg.SentryDSN != "" {
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

	// Asynq client for enqueuing tasks
	asynqClient := worker.NewClient(cfg.RedisURL)
	defer asynqClient.Close()

	// Scrapers
	scrapers := []scraper.Scraper{
		scraper.NewInstagramScraper(cfg.ProxyServerURL, cfg.ProxyAPIKey),
		scraper.NewTikTokScraper(cfg.ApifyAPIKey),
		scraper.NewYouTubeScraper(),
	}

	// Extraction pipeline
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

	// API handlers
	apiServer := api.NewServer(cfg, parser, store, asynqClient)

	// Router
	r := chi.NewRouter()

	// Middleware
	r.Use(otelchi.Middleware(cfg.ServiceName,
		otelchi.WithChiRoutes(r),
		otelchi.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/health"
		}),
	))

	// HTTP metrics
	metricCfg := otelchimetric.NewBaseConfig(cfg.ServiceName, otelchimetric.WithMeterProvider(otel.GetMeterProvider()))
	r.Use(otelchimetric.NewRequestDurationMillis(metricCfg))
	r.Use(otelchimetric.NewRequestInFlight(metricCfg))
	r.Use(otelchimetric.NewResponseSizeBytes(metricCfg))

	r.Use(sentry.HTTPMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Public endpoints
	r.Get("/", apiServer.HandleHealth)
	r.Get("/health", apiServer.HandleHealth)

	// API routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg))
		r.Post("/api/v1/parse-recipe", apiServer.HandleParseRecipe)
		r.Get("/api/v1/supported-platforms", apiServer.HandleSupportedPlatforms)
		r.Post("/api/v1/import", apiServer.HandleImportRecipe)
		r.Get("/api/v1/import-status", apiServer.HandleImportStatus)
	})

	slog.Info("Starting server", "port", cfg.Port, "strategy", cfg.Extraction.Strategy, "language", cfg.Extraction.Language)

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
