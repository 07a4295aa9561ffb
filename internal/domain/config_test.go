package domain_test

import (
	"testing"

	"github.com/filegate/filegate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultEngineConfig(t *testing.T) {
	cfg := domain.DefaultEngineConfig()
	assert.Equal(t, 10, cfg.MaxSamples)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, []string{""}, cfg.NullValues)
	assert.False(t, cfg.TrimSpace)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, 100, cfg.History.Limit)
	assert.True(t, cfg.Cache.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestEngineConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.EngineConfig)
		errMsg string
	}{
		{"upper case level accepted", func(c *domain.EngineConfig) { c.Log.Level = "DEBUG" }, ""},
		{"empty level accepted", func(c *domain.EngineConfig) { c.Log.Level = "" }, ""},
		{"unknown level", func(c *domain.EngineConfig) { c.Log.Level = "trace" }, "unknown log.level"},
		{"duplicate null value", func(c *domain.EngineConfig) { c.NullValues = []string{"NA", "NA"} }, "more than once"},
		{"prom file accepted", func(c *domain.EngineConfig) { c.MetricsFile = "/tmp/filegate.prom" }, ""},
		{"bad metrics suffix", func(c *domain.EngineConfig) { c.MetricsFile = "/tmp/filegate.txt" }, "must end in .prom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.DefaultEngineConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
