package config

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
	"strings"
)

type Config struct {
	Env            string
	ServiceName    string
	ServiceVersion string

	DatabaseURL string
	RedisURL    string

	JWTSecret string
	JWTIssuer string

	GroqKey   string
	OpenAIKey string

	ApifyAPIKey    string
	ProxyServerURL string
	ProxyAPIKey    string

	OtelExporterOTLPEndpoint string
	OtelExporterOTLPHeaders  string
	SentryDSN                string

	ProgressWebhookURL string

	Port string

	Extraction ExtractionConfig
}

// ExtractionConfig selects how recipes are pulled out of captions.
type ExtractionConfig struct {
	// Strategy is "heuristic" (deterministic engine, the default), "ai"
	// (remote model), or "both" (run both, keep the better result).
	Strategy string `yaml:"strategy"`
	// Language picks the built-in lexicon ("tr" or "en").
	Language string `yaml:"language"`
	// Provider is the primary AI provider for the "ai" and "both" strategies.
	Provider         string `yaml:"provider"`
	FallbackEnabled  bool   `yaml:"fallback_enabled"`
	FallbackProvider string `yaml:"fallback_provider"`
	// AIValidation runs an extra model pass on captions the keyword
	// pre-check is unsure about.
	AIValidation    bool   `yaml:"ai_validation"`
	ValidationModel string `yaml:"validation_model"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:                      os.Getenv("ENV"),
		ServiceName:              os.Getenv("SERVICE_NAME"),
		ServiceVersion:           os.Getenv("SERVICE_VERSION"),
		DatabaseURL:              os.Getenv("DATABASE_URL"),
		RedisURL:                 os.Getenv("REDIS_URL"),
		JWTSecret:                os.Getenv("JWT_SECRET"),
		JWTIssuer:                os.Getenv("JWT_ISSUER"),
		GroqKey:                  os.Getenv("GROQ_API_KEY"),
		OpenAIKey:                os.Getenv("OPENAI_API_KEY"),
		ApifyAPIKey:              os.Getenv("APIFY_API_KEY"),
		ProxyServerURL:           os.Getenv("PROXY_SERVER_URL"),
		ProxyAPIKey:              os.Getenv("PROXY_API_KEY"),
		OtelExporterOTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OtelExporterOTLPHeaders:  os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"),
		SentryDSN:                os.Getenv("SENTRY_DSN"),
		ProgressWebhookURL:       os.Getenv("PROGRESS_WEBHOOK_URL"),
		Port:                     os.Getenv("PORT"),
	}

	// Load from YAML file if available
	if err := cfg.LoadFromYAML("config.yaml"); err != nil {
		return nil, fmt.Errorf("failed to load YAML config: %w", err)
	}

	// Set defaults
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "recipe-parser-api"
	}
	if cfg.ServiceVersion == "" {
		cfg.ServiceVersion = "1.0.0"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	// Set extraction defaults
	cfg.SetExtractionDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func (c *Config) LoadFromYAML(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File not found is not an error
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var yamlConfig struct {
		Extraction ExtractionConfig `yaml:"extraction"`
	}

	if err := yaml.Unmarshal(data, &yamlConfig); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply extraction config with defaults
	if yamlConfig.Extraction.Strategy != "" {
		c.Extraction.Strategy = yamlConfig.Extraction.Strategy
	}
	if yamlConfig.Extraction.Language != "" {
		c.Extraction.Language = yamlConfig.Extraction.Language
	}
	if yamlConfig.Extraction.Provider != "" {
		c.Extraction.Provider = yamlConfig.Extraction.Provider
	}
	if yamlConfig.Extraction.FallbackEnabled {
		c.Extraction.FallbackEnabled = yamlConfig.Extraction.FallbackEnabled
	}
	if yamlConfig.Extraction.FallbackProvider != "" {
		c.Extraction.FallbackProvider = yamlConfig.Extraction.FallbackProvider
	}
	if yamlConfig.Extraction.AIValidation {
		c.Extraction.AIValidation = yamlConfig.Extraction.AIValidation
	}
	if yamlConfig.Extraction.ValidationModel != "" {
		c.Extraction.ValidationModel = yamlConfig.Extraction.ValidationModel
	}

	return nil
}

func (c *Config) SetExtractionDefaults() {
	if c.Extraction.Strategy == "" {
		c.Extraction.Strategy = "heuristic"
	}
	if c.Extraction.Language == "" {
		c.Extraction.Language = "tr"
	}
	if c.Extraction.Provider == "" {
		c.Extraction.Provider = "groq"
	}
	if c.Extraction.FallbackProvider == "" {
		c.Extraction.FallbackProvider = "openai"
	}
}

// OTLPHeaders parses the OTEL_EXPORTER_OTLP_HEADERS value, a comma separated
// list of key=value pairs, into the map the exporters expect.
func (c *Config) OTLPHeaders() map[string]string {
	if c.OtelExporterOTLPHeaders == "" {
		return nil
	}

	headers := make(map[string]string)
	for _, pair := range strings.Split(c.OtelExporterOTLPHeaders, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || key == "" {
			continue
		}
		headers[key] = value
	}
	if len(headers) == 0 {
		return nil
	}
	return headers
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}
	switch c.Extraction.Strategy {
	case "heuristic", "ai", "both":
	default:
		return fmt.Errorf("unknown extraction strategy %q", c.Extraction.Strategy)
	}
	return nil
}
