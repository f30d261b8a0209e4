package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 0},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_NegativeRateLimit(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080, RateLimitRPM: -1},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for negative rate limit")
	}
}

func TestValidate_NegativeCacheSize(t *testing.T) {
	cfg := Config{
		HTTP:   HTTPConfig{Port: 8080},
		Engine: EngineConfig{CacheSize: -5},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for negative cache size")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Catalog.Path != "data/catalog.ndjson" {
		t.Errorf("expected catalog path default, got %q", cfg.Catalog.Path)
	}
	if cfg.Engine.CandidateCap != 500 {
		t.Errorf("expected CandidateCap=500, got %d", cfg.Engine.CandidateCap)
	}
	if cfg.Engine.BruteForceMax != 25000 {
		t.Errorf("expected BruteForceMax=25000, got %d", cfg.Engine.BruteForceMax)
	}
	if cfg.Store.KeyPrefix != "loupe:" {
		t.Errorf("expected KeyPrefix='loupe:', got %q", cfg.Store.KeyPrefix)
	}
	if cfg.Crawler.Concurrency != 8 {
		t.Errorf("expected Concurrency=8, got %d", cfg.Crawler.Concurrency)
	}
	if cfg.Crawler.UserAgent == "" {
		t.Error("expected non-empty default user agent")
	}
	if cfg.Crawler.MaxBodyBytes != 2<<20 {
		t.Errorf("expected MaxBodyBytes=%d, got %d", 2<<20, cfg.Crawler.MaxBodyBytes)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:    HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Catalog: CatalogConfig{Path: "custom/catalog.ndjson"},
		Engine:  EngineConfig{CandidateCap: 100, BruteForceMax: 1000},
		Store:   StoreConfig{KeyPrefix: "custom:"},
		Crawler: CrawlerConfig{Concurrency: 2, UserAgent: "custom-agent"},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Catalog.Path != "custom/catalog.ndjson" {
		t.Errorf("expected custom catalog path, got %q", cfg.Catalog.Path)
	}
	if cfg.Engine.CandidateCap != 100 {
		t.Errorf("expected CandidateCap=100, got %d", cfg.Engine.CandidateCap)
	}
	if cfg.Store.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Store.KeyPrefix)
	}
	if cfg.Crawler.UserAgent != "custom-agent" {
		t.Errorf("expected custom user agent, got %q", cfg.Crawler.UserAgent)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("LOUPE_TEST_PORT", "9090")

	in := []byte("port: ${LOUPE_TEST_PORT}\nprefix: ${LOUPE_TEST_MISSING:-loupe:}\n")
	out := string(expandEnvVars(in))

	want := "port: 9090\nprefix: loupe:\n"
	if out != want {
		t.Errorf("expanded = %q, want %q", out, want)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	data := []byte("http:\n  port: 8087\ncatalog:\n  path: data/test.ndjson\n")
	if err := os.WriteFile(filepath.Join(dir, "config", "test.yaml"), data, 0o600); err != nil {
		t.Fatal(err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 8087 {
		t.Errorf("port = %d, want 8087", cfg.HTTP.Port)
	}
	if cfg.Catalog.Path != "data/test.ndjson" {
		t.Errorf("catalog path = %q, want data/test.ndjson", cfg.Catalog.Path)
	}
	// Defaults applied on top of the file.
	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("ReadTimeoutSec = %d, want default 10", cfg.HTTP.ReadTimeoutSec)
	}
}
