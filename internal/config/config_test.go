package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insuranceguard/insuranceguard/internal/types"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := GetDefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.True(t, cfg.IsLocal())
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 24*time.Hour, cfg.Dunning.SweepInterval)
}

func TestValidateRejectsMissingFields(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Data.Path = ""
	assert.Error(t, cfg.Validate())

	cfg = GetDefaultConfig()
	cfg.Dunning.SweepInterval = 0
	assert.Error(t, cfg.Validate())
}

func TestNewConfigUsesEnvOverrides(t *testing.T) {
	t.Setenv("INSURANCEGUARD_SERVER_ADDRESS", ":9999")
	t.Setenv("INSURANCEGUARD_LOGGING_LEVEL", string(types.LogLevelDebug))

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Address)
	assert.Equal(t, types.LogLevelDebug, cfg.Logging.Level)
}
