package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadExtractionConfig(t *testing.T) {
	// Create a temporary config file for testing
	configContent := `extraction:
  strategy: both
  language: en
  provider: openai
  fallback_enabled: false
  fallback_provider: groq`

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.yaml")

	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	// Test loading config from YAML
	cfg := &Config{}
	err = cfg.LoadFromYAML(configPath)
	if err != nil {
		t.Fatalf("Failed to load YAML config: %v", err)
	}

	// Verify extraction config was loaded
	if cfg.Extraction.Strategy != "both" {
		t.Errorf("Expected strategy to be 'both', got '%s'", cfg.Extraction.Strategy)
	}
	if cfg.Extraction.Language != "en" {
		t.Errorf("Expected language to be 'en', got '%s'", cfg.Extraction.Language)
	}
	if cfg.Extraction.Provider != "openai" {
		t.Errorf("Expected provider to be 'openai', got '%s'", cfg.Extraction.Provider)
	}
	if cfg.Extraction.FallbackProvider != "groq" {
		t.Errorf("Expected fallback_provider to be 'groq', got '%s'", cfg.Extraction.FallbackProvider)
	}
}

func TestLoadExtractionConfigPartial(t *testing.T) {
	// Test with partial config (only language specified)
	configContent := `extraction:
  language: en`

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config_partial.yaml")

	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	cfg := &Config{}
	cfg.SetExtractionDefaults() // Set defaults first
	err = cfg.LoadFromYAML(configPath)
	if err != nil {
		t.Fatalf("Failed to load YAML config: %v", err)
	}

	// Verify language was loaded but defaults applied for other fields
	if cfg.Extraction.Language != "en" {
		t.Errorf("Expected language to be 'en', got '%s'", cfg.Extraction.Language)
	}
	if cfg.Extraction.Strategy != "heuristic" {
		t.Errorf("Expected strategy to be 'heuristic' (default), got '%s'", cfg.Extraction.Strategy)
	}
	if cfg.Extraction.Provider != "groq" {
		t.Errorf("Expected provider to be 'groq' (default), got '%s'", cfg.Extraction.Provider)
	}
	if cfg.Extraction.FallbackProvider != "openai" {
		t.Errorf("Expected fallback_provider to be 'openai' (default), got '%s'", cfg.Extraction.FallbackProvider)
	}
}

func TestLoadExtractionConfigDefaults(t *testing.T) {
	// Test without any YAML file
	cfg := &Config{}
	cfg.SetExtractionDefaults()

	// Verify defaults
	if cfg.Extraction.Strategy != "heuristic" {
		t.Errorf("Expected strategy to be 'heuristic' (default), got '%s'", cfg.Extraction.Strategy)
	}
	if cfg.Extraction.Language != "tr" {
		t.Errorf("Expected language to be 'tr' (default), got '%s'", cfg.Extraction.Language)
	}
	if cfg.Extraction.Provider != "groq" {
		t.Errorf("Expected provider to be 'groq' (default), got '%s'", cfg.Extraction.Provider)
	}
}

func TestLoadExtractionConfigFileNotFound(t *testing.T) {
	// Test with non-existent file
	cfg := &Config{}
	err := cfg.LoadFromYAML("non_existent_file.yaml")

	// Should not return an error for non-existent files
	if err != nil {
		t.Errorf("Expected no error for non-existent file, got: %v", err)
	}
}

func TestOTLPHeaders(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]string
	}{
		{name: "empty", raw: "", want: nil},
		{name: "single pair", raw: "authorization=Basic abc", want: map[string]string{"authorization": "Basic abc"}},
		{name: "multiple pairs", raw: "a=1, b=2", want: map[string]string{"a": "1", "b": "2"}},
		{name: "malformed pairs skipped", raw: "a=1,nonsense,=x", want: map[string]string{"a": "1"}},
		{name: "only malformed", raw: "nonsense", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{OtelExporterOTLPHeaders: tt.raw}
			got := cfg.OTLPHeaders()
			if len(got) != len(tt.want) {
				t.Fatalf("OTLPHeaders() = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("OTLPHeaders()[%q] = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestLoadExtractionConfigInvalidYAML(t *testing.T) {
	// Test with invalid YAML content
	configContent := `extraction:
  strategy: ai
  invalid_yaml: [unclosed`

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config_invalid.yaml")

	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	cfg := &Config{}
	err = cfg.LoadFromYAML(configPath)
	if err == nil {
		t.Error("Expected error for invalid YAML, got nil")
	}
}
