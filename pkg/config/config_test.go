package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name  string `yaml:"name"`
	Level string `yaml:"level"`
}

var errNoName = errors.New("name is required")

func (c *testConfig) Validate() error {
	if c.Name == "" {
		return errNoName
	}
	return nil
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("VAULT_TEST_LEVEL", "debug")
	path := writeFile(t, "name: vault\nlevel: ${VAULT_TEST_LEVEL}\n")

	var cfg testConfig
	require.NoError(t, Load(path, &cfg))
	assert.Equal(t, "vault", cfg.Name)
	assert.Equal(t, "debug", cfg.Level)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		var cfg testConfig
		err := Load(filepath.Join(t.TempDir(), "absent.yaml"), &cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		var cfg testConfig
		err := Load(writeFile(t, "name: [unterminated\n"), &cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("validation", func(t *testing.T) {
		var cfg testConfig
		err := Load(writeFile(t, "level: info\n"), &cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, errNoName)
		assert.Contains(t, err.Error(), "config validation failed")
	})
}

func TestLoadWithDefaults(t *testing.T) {
	cfg := testConfig{Name: "default", Level: "info"}
	require.NoError(t, LoadWithDefaults(filepath.Join(t.TempDir(), "absent.yaml"), &cfg))
	assert.Equal(t, testConfig{Name: "default", Level: "info"}, cfg)

	require.NoError(t, LoadWithDefaults("", &cfg))

	require.NoError(t, LoadWithDefaults(writeFile(t, "level: warn\n"), &cfg))
	assert.Equal(t, "default", cfg.Name)
	assert.Equal(t, "warn", cfg.Level)

	empty := testConfig{}
	assert.ErrorIs(t, LoadWithDefaults("", &empty), errNoName)
}
