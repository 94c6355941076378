package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Practice.Words)
	assert.Nil(t, cfg.Log.Level)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[practice]
words = 40
caps = 0.25
punct-set = ".,"
frontend = "tea"

[log]
level = "debug"
file = ""
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Practice.Words)
	assert.Equal(t, 40, *cfg.Practice.Words)
	assert.Equal(t, 0.25, *cfg.Practice.CapsPct)
	assert.Equal(t, ".,", *cfg.Practice.PunctSet)
	assert.Equal(t, "tea", *cfg.Practice.Frontend)
	assert.Nil(t, cfg.Practice.Lang)
	assert.Equal(t, "debug", *cfg.Log.Level)
	require.NotNil(t, cfg.Log.File)
	assert.Empty(t, *cfg.Log.File)
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[practice]\nwordz = 3\n"), 0o644))
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "practice.wordz")
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[practice\n"), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestXDGPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_STATE_HOME", "/state")
	assert.Equal(t, filepath.Join("/cfg", "typeracer", "config.toml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join("/cfg", "typeracer", "wordlists", "de.txt"), DefaultWordListPath("de"))
	assert.Equal(t, filepath.Join("/state", "typeracer", "typeracer.log"), DefaultLogPath())
}
