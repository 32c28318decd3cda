package config

import (
	"testing"
	"time"

	"rpascope/domain/rules"
)

// TestLoadDefaults tests the shipped defaults without any environment
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %s, want 8080", cfg.Server.Port)
	}
	if cfg.Scoring.SeverityWeights[rules.SeverityCritical] != 15 {
		t.Errorf("Critical weight = %v, want 15", cfg.Scoring.SeverityWeights[rules.SeverityCritical])
	}
	if cfg.Scoring.GradeBands.A != 90 || cfg.Scoring.GradeBands.D != 60 {
		t.Errorf("Grade bands = %+v, want 90/80/70/60", cfg.Scoring.GradeBands)
	}
	if cfg.Complexity.LowMax != 50 || cfg.Complexity.HighMax != 150 {
		t.Errorf("Complexity thresholds = %+v, want 50/100/150", cfg.Complexity)
	}
	if cfg.Migration.PartialWeight != 0.6 {
		t.Errorf("Partial weight = %v, want 0.6", cfg.Migration.PartialWeight)
	}
	if !cfg.Cache.Enabled {
		t.Error("Expected the cache to default to enabled")
	}
}

// TestLoadOverrides tests environment overrides
func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("WEIGHT_CRITICAL", "25")
	t.Setenv("CACHE_TTL", "5m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %s, want 9090", cfg.Server.Port)
	}
	if cfg.Scoring.SeverityWeights[rules.SeverityCritical] != 25 {
		t.Errorf("Critical weight = %v, want 25", cfg.Scoring.SeverityWeights[rules.SeverityCritical])
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("TTL = %v, want 5m", cfg.Cache.TTL)
	}
}

// TestLoadRejectsInvalidThresholds tests validation of non-monotone settings
func TestLoadRejectsInvalidThresholds(t *testing.T) {
	t.Setenv("COMPLEXITY_LOW_MAX", "200")
	if _, err := Load(); err == nil {
		t.Error("Expected non-monotone complexity thresholds to fail validation")
	}
}

// TestLoadRejectsInvalidGradeBands tests validation of the grade cutoffs
func TestLoadRejectsInvalidGradeBands(t *testing.T) {
	t.Setenv("GRADE_A_MIN", "50")
	if _, err := Load(); err == nil {
		t.Error("Expected inverted grade bands to fail validation")
	}
}
