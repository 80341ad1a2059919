package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "modern", cfg.Template)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 60, cfg.RateLimit)
	assert.Equal(t, 70, cfg.TargetScore)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `{"template": "classic", "rate_limit": 10}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "classic", cfg.Template)
	assert.Equal(t, 10, cfg.RateLimit)
	assert.Equal(t, ":8080", cfg.ListenAddr, "unset fields keep defaults")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `{"listen_addr": ":9000"}`)
	t.Setenv("CVTAILOR_LISTEN_ADDR", ":7000")
	t.Setenv("CVTAILOR_API_KEY", "env-key")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.ListenAddr)
	assert.Equal(t, "env-key", cfg.APIKey)
}

func TestLoad_GeminiKeyHonored(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "sdk-key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sdk-key", cfg.APIKey)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoad_InvalidJSONFails(t *testing.T) {
	path := writeConfig(t, `{not json`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate_MutuallyExclusiveJobSources(t *testing.T) {
	path := writeConfig(t, `{"job": "posting.txt", "job_url": "https://example.com"}`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestValidate_TargetScoreRange(t *testing.T) {
	path := writeConfig(t, `{"target_score": 150}`)
	_, err := Load(path)
	assert.Error(t, err)
}
