package config

import (
	"os"
	"strconv"
	"time"

	"rpascope/domain/report"
	"rpascope/domain/rules"
	"rpascope/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Scoring    ScoringConfig
	Complexity ComplexityConfig
	Migration  MigrationConfig
	Usage      UsageConfig
	Cache      CacheConfig
	Mappings   MappingsConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds database connection settings. An empty URL selects
// the in-memory stores (dev/test mode).
type DatabaseConfig struct {
	URL string
}

// ScoringConfig holds the severity weight table and grade bands used by the
// rule engine. Weights are configuration, not constants, so tenants can
// recalibrate without code changes.
type ScoringConfig struct {
	SeverityWeights map[rules.Severity]float64
	GradeBands      report.GradeBands
}

// ComplexityConfig holds the complexity score thresholds and formula factors
type ComplexityConfig struct {
	// Level thresholds: score <= Low -> low, <= Medium -> medium,
	// <= High -> high, else critical.
	LowMax    float64
	MediumMax float64
	HighMax   float64

	// Formula factors.
	ActivityFactor float64
	DepthFactor    float64
	HandlerPenalty float64
}

// MigrationConfig holds the compatibility score weights
type MigrationConfig struct {
	DirectWeight  float64
	PartialWeight float64
}

// UsageConfig holds the variable/argument analyzer settings
type UsageConfig struct {
	// NamingPattern is the convention regex; defaults to PascalCase.
	NamingPattern string

	// Sub-score weights for the overall weighted mean.
	UsageWeight  float64
	TypeWeight   float64
	NamingWeight float64

	// Penalty subtracted from a sub-score per issue found.
	IssuePenalty float64
}

// CacheConfig holds review cache settings
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// MappingsConfig points at an optional mapping-table workbook overlaid on the
// built-in tables
type MappingsConfig struct {
	WorkbookPath string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Scoring: ScoringConfig{
			SeverityWeights: map[rules.Severity]float64{
				rules.SeverityCritical: getEnvFloatOrDefault("WEIGHT_CRITICAL", 15),
				rules.SeverityHigh:     getEnvFloatOrDefault("WEIGHT_HIGH", 10),
				rules.SeverityMajor:    getEnvFloatOrDefault("WEIGHT_MAJOR", 5),
				rules.SeverityMedium:   getEnvFloatOrDefault("WEIGHT_MEDIUM", 3),
				rules.SeverityMinor:    getEnvFloatOrDefault("WEIGHT_MINOR", 2),
				rules.SeverityInfo:     getEnvFloatOrDefault("WEIGHT_INFO", 1),
			},
			GradeBands: report.GradeBands{
				A: getEnvFloatOrDefault("GRADE_A_MIN", 90),
				B: getEnvFloatOrDefault("GRADE_B_MIN", 80),
				C: getEnvFloatOrDefault("GRADE_C_MIN", 70),
				D: getEnvFloatOrDefault("GRADE_D_MIN", 60),
			},
		},
		Complexity: ComplexityConfig{
			LowMax:         getEnvFloatOrDefault("COMPLEXITY_LOW_MAX", 50),
			MediumMax:      getEnvFloatOrDefault("COMPLEXITY_MEDIUM_MAX", 100),
			HighMax:        getEnvFloatOrDefault("COMPLEXITY_HIGH_MAX", 150),
			ActivityFactor: getEnvFloatOrDefault("COMPLEXITY_ACTIVITY_FACTOR", 1.0),
			DepthFactor:    getEnvFloatOrDefault("COMPLEXITY_DEPTH_FACTOR", 8.0),
			HandlerPenalty: getEnvFloatOrDefault("COMPLEXITY_HANDLER_PENALTY", 20.0),
		},
		Migration: MigrationConfig{
			DirectWeight:  getEnvFloatOrDefault("MIGRATION_DIRECT_WEIGHT", 1.0),
			PartialWeight: getEnvFloatOrDefault("MIGRATION_PARTIAL_WEIGHT", 0.6),
		},
		Usage: UsageConfig{
			NamingPattern: getEnvOrDefault("NAMING_PATTERN", `^[A-Z][a-zA-Z0-9]*$`),
			UsageWeight:   getEnvFloatOrDefault("USAGE_WEIGHT_USAGE", 1.0),
			TypeWeight:    getEnvFloatOrDefault("USAGE_WEIGHT_TYPE", 1.0),
			NamingWeight:  getEnvFloatOrDefault("USAGE_WEIGHT_NAMING", 1.0),
			IssuePenalty:  getEnvFloatOrDefault("USAGE_ISSUE_PENALTY", 10.0),
		},
		Cache: CacheConfig{
			Enabled: getEnvBoolOrDefault("CACHE_ENABLED", true),
			TTL:     getEnvDurationOrDefault("CACHE_TTL", 0), // 0 = no TTL
		},
		Mappings: MappingsConfig{
			WorkbookPath: getEnvOrDefault("MAPPING_WORKBOOK", ""),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	c := config.Complexity
	if !(c.LowMax < c.MediumMax && c.MediumMax < c.HighMax) {
		return errors.ConfigurationError("complexity thresholds must be strictly increasing")
	}
	b := config.Scoring.GradeBands
	if !(b.D < b.C && b.C < b.B && b.B < b.A) {
		return errors.ConfigurationError("grade bands must be strictly increasing")
	}
	for sev, w := range config.Scoring.SeverityWeights {
		if w < 0 {
			return errors.ConfigurationError("severity weight for " + string(sev) + " must be non-negative")
		}
	}
	if config.Usage.UsageWeight+config.Usage.TypeWeight+config.Usage.NamingWeight <= 0 {
		return errors.ConfigurationError("usage sub-score weights must sum to a positive value")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
