package observability

import (
	"testing"

	"github.com/smallbiznis/dentalpay/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("OTEL_ENABLED", "")

	cfg := LoadConfig(config.Config{Environment: "production", OTLPEndpoint: "collector:4317"})
	assert.Equal(t, "dentalpay", cfg.ServiceName)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.OtelEnabled)
	assert.Equal(t, "collector:4317", cfg.OtelExporterEndpoint)
	assert.False(t, cfg.Debug())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_SAMPLING_RATIO", "0.5")

	cfg := LoadConfig(config.Config{AppName: "survey"})
	assert.Equal(t, "survey", cfg.ServiceName)
	assert.True(t, cfg.Debug())
	assert.True(t, cfg.OtelEnabled)
	assert.Equal(t, 0.5, cfg.OtelSamplingRatio)
}
