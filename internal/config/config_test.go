package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gilah-EnE/entropy/internal/analysis"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Equal(t, FormatConsole, cfg.LogFormat)
	assert.Equal(t, 1048576, cfg.BlockSize)
	assert.False(t, cfg.Exact)
	assert.Equal(t, analysis.DefaultThresholds(), cfg.Thresholds)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("ENTROPY_BLOCK_SIZE", "4096")
	t.Setenv("ENTROPY_LOG_LEVEL", "debug")
	t.Setenv("ENTROPY_ENTROPY_THRESHOLD", "7.5")
	t.Setenv("ENTROPY_EXACT", "true")

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, 4096, cfg.BlockSize)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Equal(t, 7.5, cfg.Thresholds.Entropy)
	assert.True(t, cfg.Exact)
}

func TestLoadInvalid(t *testing.T) {
	v := New()
	v.Set(KeyBlockSize, 0)
	v.Set(KeyLogLevel, "loud")
	v.Set(KeyLogFormat, "xml")
	v.Set(KeyKSThreshold, -1)
	v.Set(KeyEntropyThreshold, 9)

	_, err := Load(v)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	for _, key := range []string{KeyBlockSize, KeyLogLevel, KeyLogFormat, KeyKSThreshold, KeyEntropyThreshold} {
		assert.Contains(t, err.Error(), key)
	}
}
