package telemetry

import (
	"context"
	"testing"
)

func TestInitTelemetryEmptyEndpoint(t *testing.T) {
	shutdown, err := InitTelemetry(context.Background(), "test-service", "v1.0.0", "test", "", nil)
	if err != nil {
		t.Fatalf("InitTelemetry failed: %v", err)
	}
	if shutdown != nil {
		defer shutdown(context.Background())
	}
}

func TestSplitEndpoint(t *testing.T) {
	tests := []struct {
		raw      string
		endpoint string
		basePath string
		insecure bool
	}{
		{"", "", "", false},
		{"https://otlp.example.com", "otlp.example.com", "", false},
		{"http://localhost:4318", "localhost:4318", "", true},
		{"https://otlp.example.com/otlp", "otlp.example.com", "/otlp", false},
		{"https://in.logs.example.com/v1/traces", "in.logs.example.com", "/v1/traces", false},
	}

	for _, tt := range tests {
		endpoint, basePath, insecure := splitEndpoint(tt.raw)
		if endpoint != tt.endpoint || basePath != tt.basePath || insecure != tt.insecure {
			t.Errorf("splitEndpoint(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.raw, endpoint, basePath, insecure, tt.endpoint, tt.basePath, tt.insecure)
		}
	}
}

func TestSignalPaths(t *testing.T) {
	tests := []struct {
		basePath  string
		tracePath string
		logPath   string
	}{
		{"", "/v1/traces", "/"},
		{"/otlp", "/otlp/v1/traces", "/otlp/v1/logs"},
		{"/custom", "/custom/v1/traces", "/custom/v1/logs"},
		{"/custom/v1/traces", "/custom/v1/traces", "/custom/v1/logs"},
	}

	for _, tt := range tests {
		tracePath, logPath := signalPaths(tt.basePath)
		if tracePath != tt.tracePath || logPath != tt.logPath {
			t.Errorf("signalPaths(%q) = (%q, %q), want (%q, %q)",
				tt.basePath, tracePath, logPath, tt.tracePath, tt.logPath)
		}
	}
}

func TestTracer(t *testing.T) {
	if Tracer("test-tracer") == nil {
		t.Fatal("Tracer returned nil")
	}
}
