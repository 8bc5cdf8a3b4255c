package parse

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/AraTman/recipe-parser-api/internal/cache"
	"github.com/AraTman/recipe-parser-api/internal/errors"
	"github.com/AraTman/recipe-parser-api/internal/extract"
	"github.com/AraTman/recipe-parser-api/internal/metrics"
	"github.com/AraTman/recipe-parser-api/internal/services/recipe"
	"github.com/AraTman/recipe-parser-api/internal/services/scraper"
	"github.com/AraTman/recipe-parser-api/internal/telemetry"
	"github.com/AraTman/recipe-parser-api/internal/validation"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// Extraction strategies.
const (
	StrategyHeuristic = "heuristic"
	StrategyAI        = "ai"
	StrategyBoth      = "both"
)

const (
	postCacheTTL   = 24 * time.Hour
	recipeCacheTTL = 7 * 24 * time.Hour
)

// Store persists parsed recipes. Implemented by db.Store.
type Store interface {
	SaveParsedRecipe(ctx context.Context, sourceURL, platform, language string, payload []byte) error
	GetParsedRecipe(ctx context.Context, sourceURL, language string) (json.RawMessage, error)
}

// Service runs the full URL-to-recipe pipeline: scrape, extract, validate,
// cache.
type Service struct {
	engine      *extract.Engine
	aiProvider  recipe.Provider
	scrapers    map[string]scraper.Scraper
	postCache   *cache.PostCache
	recipeCache *cache.RecipeCache
	store       Store
	strategy    string
	contentCfg  validation.ContentValidationConfig
	groqClient  validation.GroqClient
	logger      *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithAIProvider enables the "ai" and "both" strategies.
func WithAIProvider(p recipe.Provider) Option {
	return func(s *Service) { s.aiProvider = p }
}

// WithCaches attaches post and recipe caches.
func WithCaches(post *cache.PostCache, rec *cache.RecipeCache) Option {
	return func(s *Service) {
		s.postCache = post
		s.recipeCache = rec
	}
}

// WithStore attaches a persistence layer for parsed recipes.
func WithStore(store Store) Option {
	return func(s *Service) { s.store = store }
}

// WithStrategy overrides the default heuristic strategy.
func WithStrategy(strategy string) Option {
	return func(s *Service) { s.strategy = strategy }
}

// WithContentValidation enables the AI-assisted caption pre-check for
// captions the quick heuristic is unsure about.
func WithContentValidation(cfg validation.ContentValidationConfig, client validation.GroqClient) Option {
	return func(s *Service) {
		s.contentCfg = cfg
		s.groqClient = client
	}
}

// NewService creates a parse service around an extraction engine and a set of
// platform scrapers.
func NewService(engine *extract.Engine, scrapers []scraper.Scraper, logger *slog.Logger, opts ...Option) *Service {
	byPlatform := make(map[string]scraper.Scraper, len(scrapers))
	for _, sc := range scrapers {
		byPlatform[sc.Platform()] = sc
	}

	s := &Service{
		engine:   engine,
		scrapers: byPlatform,
		strategy: StrategyHeuristic,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ParseCaption extracts a recipe from raw caption text without touching the
// network. Platform is only used as a hint for AI prompts and may be empty.
func (s *Service) ParseCaption(ctx context.Context, caption, platform string) (*ParsedRecipe, error) {
	ctx, span := telemetry.Tracer("parse").Start(ctx, "parse.caption")
	defer span.End()

	r, err := s.extractRecipe(ctx, caption, platform)
	if err != nil {
		return nil, err
	}

	return &ParsedRecipe{
		Recipe:      *r,
		Description: excerpt(caption),
		Platform:    platform,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// ParseURL runs the full pipeline for a post URL.
func (s *Service) ParseURL(ctx context.Context, sourceURL string) (*ParsedRecipe, error) {
	startTime := time.Now()
	language := s.engine.Language()

	ctx, span := telemetry.Tracer("parse").Start(ctx, "parse.url", trace.WithAttributes(
		attribute.String("source_url", sourceURL),
		attribute.String("language", language),
	))
	defer span.End()

	platform, err := scraper.DetectPlatform(sourceURL)
	if err != nil {
		return nil, errors.NewValidationError(
			fmt.Sprintf("unsupported URL: %s", sourceURL),
			"UNSUPPORTED_PLATFORM",
			"Provide an Instagram, TikTok or YouTube post URL.",
		)
	}
	span.SetAttributes(attribute.String("platform", platform))

	defer func() {
		duration := time.Since(startTime).Seconds()
		attrs := []attribute.KeyValue{attribute.String("platform", platform)}
		metrics.RecipeParseDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
		metrics.RecipeParsesTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	}()

	// Serve from the recipe cache when possible
	if s.recipeCache != nil {
		if payload, _ := s.recipeCache.Get(ctx, sourceURL, language); payload != nil {
			var cached ParsedRecipe
			if err := json.Unmarshal(payload, &cached); err == nil {
				metrics.CacheHitsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("cache", "recipe")))
				s.logger.Info("Recipe cache hit", "url", sourceURL, "language", language)
				return &cached, nil
			}
		}
		metrics.CacheMissesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("cache", "recipe")))
	}

	// The database outlives the Redis cache; reuse a previously parsed
	// recipe instead of scraping again.
	if s.store != nil {
		if payload, err := s.store.GetParsedRecipe(ctx, sourceURL, language); err == nil && payload != nil {
			var stored ParsedRecipe
			if err := json.Unmarshal(payload, &stored); err == nil {
				if s.recipeCache != nil {
					_ = s.recipeCache.Set(ctx, sourceURL, language, payload, recipeCacheTTL)
				}
				s.logger.Info("Reusing stored recipe", "url", sourceURL, "language", language)
				return &stored, nil
			}
		}
	}

	post, err := s.fetchPost(ctx, platform, sourceURL)
	if err != nil {
		return nil, err
	}

	v, _ := validation.ValidateContent(ctx, post.Caption, s.contentCfg, s.groqClient, platform)
	if !v.IsValid {
		return nil, errors.NewValidationError(
			fmt.Sprintf("caption does not look like a recipe: %s", v.Reason),
			"NO_RECIPE_CONTENT",
			"Make sure the post caption contains ingredients or cooking steps.",
		)
	}

	r, err := s.extractRecipe(ctx, post.Caption, platform)
	if err != nil {
		return nil, err
	}

	parsed := s.assemble(r, post, sourceURL)

	if payload, err := json.Marshal(parsed); err == nil {
		if s.recipeCache != nil {
			_ = s.recipeCache.Set(ctx, sourceURL, language, payload, recipeCacheTTL)
		}
		if s.store != nil {
			if err := s.store.SaveParsedRecipe(ctx, sourceURL, platform, language, payload); err != nil {
				s.logger.Warn("Failed to persist parsed recipe", "url", sourceURL, "error", err)
			}
		}
	}

	return parsed, nil
}

// fetchPost returns the post from cache or the platform scraper.
func (s *Service) fetchPost(ctx context.Context, platform, sourceURL string) (*scraper.Post, error) {
	if s.postCache != nil {
		if cached, _ := s.postCache.Get(ctx, sourceURL); cached != nil {
			metrics.CacheHitsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("cache", "post")))
			return cachedToPost(cached), nil
		}
		metrics.CacheMissesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("cache", "post")))
	}

	sc, ok := s.scrapers[platform]
	if !ok {
		return nil, errors.NewValidationError(
			fmt.Sprintf("no scraper configured for platform %q", platform),
			"PLATFORM_NOT_CONFIGURED",
			"Check the server configuration for this platform.",
		)
	}

	post, err := sc.Scrape(ctx, sourceURL)
	if err != nil {
		switch err {
		case scraper.ErrRateLimited:
			return nil, errors.NewRateLimitError(
				"scraper was rate limited",
				"SCRAPER_RATE_LIMITED",
				"Wait a moment and try again.",
			)
		case scraper.ErrPrivateAccount:
			return nil, errors.NewValidationError(
				"account is private",
				"PRIVATE_ACCOUNT",
				"Only posts from public accounts can be parsed.",
			)
		case scraper.ErrPostNotFound, scraper.ErrVideoNotFound:
			return nil, errors.NewNotFoundError(
				"post not found",
				"POST_NOT_FOUND",
				"Check that the URL points to a public post.",
			)
		case scraper.ErrInvalidURL:
			return nil, errors.NewValidationError(
				"invalid post URL",
				"INVALID_URL",
				"Check the URL format.",
			)
		default:
			return nil, errors.NewScraperError(
				fmt.Sprintf("failed to scrape %s post", platform),
				"SCRAPE_FAILED",
				err,
			)
		}
	}

	if s.postCache != nil {
		_ = s.postCache.Set(ctx, sourceURL, postToCached(post), postCacheTTL)
	}

	return post, nil
}

// extractRecipe applies the configured strategy to a caption.
func (s *Service) extractRecipe(ctx context.Context, caption, platform string) (*extract.Recipe, error) {
	startTime := time.Now()
	defer func() {
		metrics.ExtractionDuration.Record(ctx, time.Since(startTime).Seconds(),
			metric.WithAttributes(attribute.String("strategy", s.strategy)))
	}()

	language := s.engine.Language()

	switch s.strategy {
	case StrategyAI:
		if s.aiProvider == nil {
			break
		}
		r, err := s.aiProvider.ExtractRecipe(ctx, caption, platform, language)
		if err != nil {
			s.logger.Warn("AI extraction failed, falling back to heuristic engine", "error", err)
			break
		}
		return r, nil

	case StrategyBoth:
		if s.aiProvider == nil {
			break
		}
		return s.extractBoth(ctx, caption, platform, language)
	}

	r := s.engine.Extract(caption)
	return &r, nil
}

// extractBoth runs the heuristic engine and the AI provider in parallel and
// keeps whichever result scores higher. Ties go to the heuristic engine since
// it is deterministic.
func (s *Service) extractBoth(ctx context.Context, caption, platform, language string) (*extract.Recipe, error) {
	var heuristic extract.Recipe
	var fromAI *extract.Recipe

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		heuristic = s.engine.Extract(caption)
		return nil
	})
	g.Go(func() error {
		r, err := s.aiProvider.ExtractRecipe(gctx, caption, platform, language)
		if err != nil {
			s.logger.Warn("AI extraction failed during combined strategy", "error", err)
			return nil
		}
		fromAI = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if fromAI == nil {
		return &heuristic, nil
	}

	cfg := validation.DefaultRecipeValidationConfig()
	heuristicScore := validation.ValidateRecipe(heuristic, cfg).QualityScore
	aiScore := validation.ValidateRecipe(*fromAI, cfg).QualityScore

	s.logger.Info("Combined extraction scored",
		"heuristic_score", heuristicScore,
		"ai_score", aiScore)

	if aiScore > heuristicScore {
		return fromAI, nil
	}
	return &heuristic, nil
}

func (s *Service) assemble(r *extract.Recipe, post *scraper.Post, sourceURL string) *ParsedRecipe {
	parsed := &ParsedRecipe{
		Recipe:        *r,
		Description:   excerpt(post.Caption),
		SourceURL:     sourceURL,
		Platform:      post.Platform,
		Likes:         post.Likes,
		Comments:      post.Comments,
		VideoDuration: post.VideoDuration,
		Thumbnail:     post.ThumbnailURL,
		CreatedAt:     time.Now().UTC(),
	}
	if post.OwnerUsername != "" {
		parsed.Author = &Author{
			Username: post.OwnerUsername,
			Name:     post.OwnerName,
			Avatar:   post.OwnerAvatar,
		}
	}
	if !post.PostedAt.IsZero() {
		t := post.PostedAt
		parsed.PostedAt = &t
	}
	return parsed
}

func cachedToPost(c *cache.CachedPost) *scraper.Post {
	post := &scraper.Post{
		ID:            c.ID,
		Platform:      c.Platform,
		Caption:       c.Caption,
		ImageURL:      c.ImageURL,
		VideoURL:      c.VideoURL,
		VideoDuration: c.VideoDuration,
		ThumbnailURL:  c.ThumbnailURL,
		OwnerUsername: c.OwnerUsername,
		OwnerName:     c.OwnerName,
		OwnerAvatar:   c.OwnerAvatar,
		OwnerID:       c.OwnerID,
		Likes:         c.Likes,
		Comments:      c.Comments,
	}
	if c.PostedAt != "" {
		if t, err := time.Parse(time.RFC3339, c.PostedAt); err == nil {
			post.PostedAt = t
		}
	}
	return post
}

func postToCached(p *scraper.Post) *cache.CachedPost {
	cached := &cache.CachedPost{
		ID:            p.ID,
		Platform:      p.Platform,
		Caption:       p.Caption,
		ImageURL:      p.ImageURL,
		VideoURL:      p.VideoURL,
		VideoDuration: p.VideoDuration,
		ThumbnailURL:  p.ThumbnailURL,
		OwnerUsername: p.OwnerUsername,
		OwnerName:     p.OwnerName,
		OwnerAvatar:   p.OwnerAvatar,
		OwnerID:       p.OwnerID,
		Likes:         p.Likes,
		Comments:      p.Comments,
	}
	if !p.PostedAt.IsZero() {
		cached.PostedAt = p.PostedAt.Format(time.RFC3339)
	}
	return cached
}
