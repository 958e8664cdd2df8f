package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRegistryDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "asset-registry", cfg.ServiceName)
	assert.Equal(t, "asset_registry", cfg.DB.DBName)
	assert.Equal(t, "asset_registry", cfg.Metrics.Prefix)
	assert.Equal(t, 50, cfg.Stats.LowScoreThreshold)
	assert.Equal(t, 5, cfg.Stats.TopCustomers)
}

func TestLoadReadsEnvironmentOverrides(t *testing.T) {
	t.Setenv("DB_NAME", "registry_test")
	t.Setenv("STATS_LOW_SCORE_THRESHOLD", "70")
	t.Setenv("STATS_TOP_CUSTOMERS", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "registry_test", cfg.DB.DBName)
	assert.Equal(t, 70, cfg.Stats.LowScoreThreshold)
	assert.Equal(t, 3, cfg.Stats.TopCustomers)
}
