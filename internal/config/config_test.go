package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.CacheTTL != 10*time.Minute {
		t.Errorf("expected default cache ttl 10m, got %v", cfg.CacheTTL)
	}
	if cfg.TrendingSize != 10 || cfg.RecommendationSize != 5 {
		t.Errorf("unexpected view sizes: %d/%d", cfg.TrendingSize, cfg.RecommendationSize)
	}
	if cfg.MaxStarRating != 5 {
		t.Errorf("expected default max star rating 5, got %v", cfg.MaxStarRating)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CINESCOPE_PORT", "9090")
	t.Setenv("CINESCOPE_TRENDING_SIZE", "20")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("expected env override port 9090, got %d", cfg.Port)
	}
	if cfg.TrendingSize != 20 {
		t.Errorf("expected env override trending size 20, got %d", cfg.TrendingSize)
	}
}

func TestAddr(t *testing.T) {
	cfg := &Config{Port: 8080}
	if cfg.Addr() != ":8080" {
		t.Errorf("unexpected addr %q", cfg.Addr())
	}
}
