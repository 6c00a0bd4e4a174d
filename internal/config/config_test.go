package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 2*time.Hour, cfg.SessionIdleTimeout())
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "forca.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "5175", cfg.Port)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forca.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "8080"
db_path: /tmp/forca.db
content:
  words_file: /srv/palavras.txt
auth:
  cookie_name: meu_token
session_idle_minutes: 30
`), 0o644))

	t.Setenv("PORT", "9090")
	t.Setenv("NODE_ENV", "production")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/tmp/forca.db", cfg.DBPath)
	assert.Equal(t, "/srv/palavras.txt", cfg.Content.WordsFile)
	assert.Equal(t, "meu_token", cfg.Auth.CookieName)
	assert.Equal(t, 14, cfg.Auth.ExpiresDays)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTimeout())
	assert.True(t, cfg.Production)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "port: [1, 2"},
		{"bad port", "port: abc"},
		{"zero idle", "session_idle_minutes: 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "forca.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestEnvInt(t *testing.T) {
	t.Setenv("FORCA_N", "12")
	assert.Equal(t, 12, EnvInt("FORCA_N", 3))
	t.Setenv("FORCA_N", "doze")
	assert.Equal(t, 3, EnvInt("FORCA_N", 3))
}
