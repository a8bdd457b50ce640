package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{
		"port": 9000,
		"database_url": "postgres://localhost/recruiter",
		"gemini_api_key": "key-123",
		"model": "gemini-2.5-flash",
		"chat_flush_delay_ms": 250,
		"log_json": true
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "postgres://localhost/recruiter", cfg.DatabaseURL)
	assert.Equal(t, "key-123", cfg.GeminiAPIKey)
	assert.Equal(t, 250, cfg.ChatFlushDelayMS)
	assert.True(t, cfg.LogJSON)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/recruiter")
	t.Setenv("GEMINI_API_KEY", "key-abc")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("PORT", "8080")
	t.Setenv("CHAT_FLUSH_DELAY_MS", "500")
	t.Setenv("LOG_JSON", "true")
	t.Setenv("LOG_DEBUG", "false")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/recruiter", cfg.DatabaseURL)
	assert.Equal(t, "key-abc", cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.Model)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 500, cfg.ChatFlushDelayMS)
	assert.True(t, cfg.LogJSON)
	assert.False(t, cfg.LogDebug)
}

func TestFromEnvInvalidNumbers(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	_, err := FromEnv()
	assert.Error(t, err)

	t.Setenv("PORT", "8080")
	t.Setenv("CHAT_FLUSH_DELAY_MS", "soon")
	_, err = FromEnv()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Port: 8000, DatabaseURL: "postgres://x"}, false},
		{"missing database url", Config{Port: 8000}, true},
		{"port out of range", Config{Port: 70000, DatabaseURL: "postgres://x"}, true},
		{"negative port", Config{Port: -1, DatabaseURL: "postgres://x"}, true},
		{"negative flush delay", Config{Port: 8000, DatabaseURL: "postgres://x", ChatFlushDelayMS: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{DatabaseURL: "postgres://file"}
	defaults := Config{
		DatabaseURL:      "postgres://env",
		GeminiAPIKey:     "env-key",
		Model:            "gemini-2.5-flash",
		Port:             9000,
		ChatFlushDelayMS: 400,
	}

	merged := cfg.MergeWithDefaults(defaults)
	assert.Equal(t, "postgres://file", merged.DatabaseURL, "file value wins")
	assert.Equal(t, "env-key", merged.GeminiAPIKey)
	assert.Equal(t, "gemini-2.5-flash", merged.Model)
	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, 400, merged.ChatFlushDelayMS)

	// Empty defaults still fill the port.
	bare := Config{DatabaseURL: "postgres://x"}
	merged = bare.MergeWithDefaults(Config{})
	assert.Equal(t, 8000, merged.Port)
}
