package config

import (
	"os"
	"testing"
)

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Driver: "postgres"},
		Search:   SearchConfig{Strategy: "lexical"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown database driver")
	}
}

func TestValidate_RedisRequiresAddrs(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Driver: "redis"},
		Search:   SearchConfig{Strategy: "lexical"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing redis addrs")
	}
}

func TestValidate_SemanticRequiresAPIKey(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Driver: "sqlite", Path: "test.db"},
		Search:   SearchConfig{Strategy: "semantic"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for semantic strategy without api key")
	}

	cfg.Embedding.APIKey = "test-key"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error with api key set: %v", err)
	}
}

func TestValidate_MinSimilarityRange(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Driver: "sqlite", Path: "test.db"},
		Search:   SearchConfig{Strategy: "lexical", MinSimilarity: 1.5},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for min_similarity out of range")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("expected default driver sqlite, got %q", cfg.Database.Driver)
	}
	if cfg.Search.Strategy != "lexical" {
		t.Errorf("expected default strategy lexical, got %q", cfg.Search.Strategy)
	}
	if cfg.Search.MinSimilarity != 0.30 {
		t.Errorf("expected default min_similarity 0.30, got %v", cfg.Search.MinSimilarity)
	}
	if cfg.Search.SemanticLimit != 20 {
		t.Errorf("expected default semantic_limit 20, got %d", cfg.Search.SemanticLimit)
	}
	if cfg.Database.KeyPrefix != "prodsearch:" {
		t.Errorf("expected default key prefix, got %q", cfg.Database.KeyPrefix)
	}
}

func TestExpandEnvVars(t *testing.T) {
	os.Setenv("PRODSEARCH_TEST_KEY", "secret")
	defer os.Unsetenv("PRODSEARCH_TEST_KEY")

	in := []byte("api_key: ${PRODSEARCH_TEST_KEY}\nmodel: ${PRODSEARCH_TEST_MODEL:-text-embedding-3-small}")
	out := string(expandEnvVars(in))

	want := "api_key: secret\nmodel: text-embedding-3-small"
	if out != want {
		t.Errorf("expandEnvVars:\ngot:  %q\nwant: %q", out, want)
	}
}
