package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "contalibro", cfg.AppName)
	assert.Equal(t, BackendSQL, cfg.Backend)
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.Equal(t, "contalibro.db", cfg.DBPath)
	assert.Equal(t, "adjuntos", cfg.AttachmentRoot)
	assert.Equal(t, "respaldos", cfg.BackupDir)
	assert.False(t, cfg.IsFirestore())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CONTALIBRO_LISTEN_ADDR", "127.0.0.1:9000")
	t.Setenv("CONTALIBRO_DATABASE_PATH", "/tmp/otra.db")

	cfg := Load()
	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddr)
	assert.Equal(t, "/tmp/otra.db", cfg.DBPath)
}

func TestNormalizeBackend(t *testing.T) {
	cases := map[string]string{
		"sql":       BackendSQL,
		"":          BackendSQL,
		"sqlite":    BackendSQL,
		"firestore": BackendFirestore,
		"Firebase":  BackendFirestore,
		"CLOUD":     BackendFirestore,
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeBackend(in), "input %q", in)
	}
}
