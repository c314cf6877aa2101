package model

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultConfig_Valid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default configuration must validate, got %v", err)
	}
}

func TestConfig_Validate_OutOfRange(t *testing.T) {
	tests := []struct {
		option string
		mutate func(*Config)
	}{
		{"similarity_threshold", func(c *Config) { c.Scoring.SimilarityThreshold = 1.5 }},
		{"contradiction_penalty", func(c *Config) { c.Scoring.ContradictionPenalty = -0.1 }},
		{"grounded_threshold", func(c *Config) { c.Scoring.GroundedThreshold = 2.0 }},
		{"default_raw_confidence", func(c *Config) { c.Scoring.DefaultRawConfidence = -1 }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)

		err := cfg.Validate()
		if err == nil {
			t.Errorf("%s: expected a validation error", tt.option)
			continue
		}

		var rangeErr *ConfigurationRangeError
		if !errors.As(err, &rangeErr) {
			t.Errorf("%s: expected ConfigurationRangeError, got %T", tt.option, err)
			continue
		}
		if rangeErr.Option != tt.option {
			t.Errorf("expected option %s, got %s", tt.option, rangeErr.Option)
		}
		if !strings.Contains(err.Error(), tt.option) {
			t.Errorf("error message must name the option, got %q", err.Error())
		}
	}
}

func TestConfig_Validate_BoundaryValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scoring.SimilarityThreshold = 0
	cfg.Scoring.GroundedThreshold = 1

	if err := cfg.Validate(); err != nil {
		t.Errorf("0 and 1 are valid boundary values, got %v", err)
	}
}

func TestConfig_Validate_CrossedThresholdsAllowed(t *testing.T) {
	// Crossed thresholds are defined behavior, not a configuration error
	cfg := DefaultConfig()
	cfg.Scoring.HallucinationThreshold = 0.9
	cfg.Scoring.GroundedThreshold = 0.1

	if err := cfg.Validate(); err != nil {
		t.Errorf("crossed thresholds must validate, got %v", err)
	}
}
