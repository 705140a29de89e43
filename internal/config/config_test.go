package config

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SAP-F-2025/question-import-service/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("IMPORT_PREVIEW_TTL", "not-a-duration")
	t.Setenv("IMPORT_MAX_FILE_BYTES", "-5")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.Import.PreviewTTL)
	assert.Equal(t, int64(5<<20), cfg.Import.MaxFileBytes)
	assert.False(t, cfg.Import.StrictNumeric)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("IMPORT_STRICT_NUMERIC", "true")
	t.Setenv("IMPORT_PREVIEW_TTL", "5m")
	t.Setenv("EVENTS_ENABLED", "false")
	t.Setenv("AUTH_MODE", "header")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.Import.StrictNumeric)
	assert.Equal(t, 5*time.Minute, cfg.Import.PreviewTTL)
	assert.False(t, cfg.Events.Enabled)
	assert.Equal(t, "header", cfg.Auth.Mode)
}

func TestEventConfig(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	c := EventConfig{KafkaBrokers: "a:9092, b:9092,,"}
	assert.Equal(t, []string{"a:9092", "b:9092"}, c.GetKafkaBrokers())

	publisher, err := (&EventConfig{Enabled: false}).CreateEventPublisher(logger)
	require.NoError(t, err)
	assert.IsType(t, &events.MockEventPublisher{}, publisher)

	publisher, err = (&EventConfig{Enabled: true, Publisher: "unknown"}).CreateEventPublisher(logger)
	require.NoError(t, err)
	assert.IsType(t, &events.MockEventPublisher{}, publisher)
}
