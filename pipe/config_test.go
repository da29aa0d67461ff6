package pipe

import (
	"errors"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero pipe radius", func(c *Config) { c.PipeRadius = 0 }},
		{"zero radial", func(c *Config) { c.RadialSegments = 0 }},
		{"negative ring distance", func(c *Config) { c.RingDistance = -0.1 }},
		{"zero min curve radius", func(c *Config) { c.MinCurveRadius = 0 }},
		{"inverted curve radius", func(c *Config) { c.MaxCurveRadius = c.MinCurveRadius - 1 }},
		{"pipe wider than bend", func(c *Config) { c.PipeRadius = c.MinCurveRadius }},
		{"zero min curve segments", func(c *Config) { c.MinCurveSegments = 0 }},
		{"inverted curve segments", func(c *Config) { c.MaxCurveSegments = c.MinCurveSegments - 1 }},
		{"too few pipes", func(c *Config) { c.PipeCount = 2 }},
		{"negative empty", func(c *Config) { c.EmptyCount = -1 }},
		{"all empty", func(c *Config) { c.EmptyCount = c.PipeCount }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
