package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrendo/arrendo-ui/config"
)

func TestLoadConfig_DefaultsWithoutEnvFile(t *testing.T) {
	// Run from a directory without a .env file; a missing file is not an error.
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, config.ChallengeStoreMemory, cfg.Auth.ChallengeStore)
}

func TestLoadConfig_ReadsEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_ADDR", "127.0.0.1:9090")
	t.Setenv("API_BASE_URL", "https://api.arrendo.app")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.HTTP.Addr)
	assert.Equal(t, "https://api.arrendo.app", cfg.API.BaseURL)
}

func TestInitLogger_SetsDefault(t *testing.T) {
	logger := InitLogger()
	require.NotNil(t, logger)
}
