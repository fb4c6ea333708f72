package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.API.BaseURL != "https://fe-api-training.ssit.company" {
		t.Fatalf("unexpected API base URL: %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 15*time.Second {
		t.Fatalf("expected default timeout 15s, got %v", cfg.API.Timeout)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Fatalf("expected default session TTL 24h, got %v", cfg.Session.TTL)
	}
	if cfg.Receipt.DefaultPaymentMethod != "CASH" {
		t.Fatalf("expected default payment method CASH, got %q", cfg.Receipt.DefaultPaymentMethod)
	}
	if cfg.Orders.PageSize != 20 {
		t.Fatalf("expected default orders page size 20, got %d", cfg.Orders.PageSize)
	}
}

func TestLoad_MissingBaseURL(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAPIBaseURL); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAPIBaseURL, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing base URL to return an error")
	}
}

func TestLoad_NormalizesBaseURL(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvAPIBaseURL, "https://fe-api-training.ssit.company/ ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.API.BaseURL != "https://fe-api-training.ssit.company" {
		t.Fatalf("expected trailing slash to be trimmed, got %q", cfg.API.BaseURL)
	}
}

func TestLoad_RejectsNonHTTPBaseURL(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvAPIBaseURL, "ftp://somewhere")

	if _, err := Load(); err == nil {
		t.Fatal("expected non-http base URL to return an error")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAPIBaseURL, "https://fe-api-training.ssit.company")
}
