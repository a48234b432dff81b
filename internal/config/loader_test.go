package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// createTempConfigFile writes content as config.yaml into dir.
func createTempConfigFile(t *testing.T, dir string, content interface{}) string {
	t.Helper()
	path := filepath.Join(dir, configFileName)
	data, err := yaml.Marshal(content)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestLoadConfig_DefaultOnly(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), cfg)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	createTempConfigFile(t, dir, map[string]interface{}{
		"endpoint":       "https://intranet.example.com/fdu/client/",
		"actorId":        42,
		"requestTimeout": "15s",
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://intranet.example.com/fdu/client/", cfg.Endpoint)
	assert.Equal(t, 42, cfg.ActorID)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	// untouched keys keep their defaults
	assert.Equal(t, DefaultPageSize, cfg.PageSize)
	assert.True(t, cfg.CSRF.Discover)
}

func TestLoadConfig_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("endpoint: [unclosed"), 0644))

	_, err := LoadConfig(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error loading config")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvEndpoint, "http://env.example.com/client/")
	t.Setenv(EnvActorID, "7")
	t.Setenv(EnvPageSize, "25")
	t.Setenv(EnvCSRFHeader, "X-CSRF-TOKEN")
	t.Setenv(EnvCSRFToken, "abc")

	cfg := GetDefaultConfig()
	require.NoError(t, ApplyEnv(&cfg))

	assert.Equal(t, "http://env.example.com/client/", cfg.Endpoint)
	assert.Equal(t, 7, cfg.ActorID)
	assert.Equal(t, 25, cfg.PageSize)
	assert.True(t, cfg.CSRF.HasStaticToken())
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	t.Setenv(EnvActorID, "one")
	t.Setenv(EnvRequestTimeout, "soon")

	cfg := GetDefaultConfig()
	err := ApplyEnv(&cfg)
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
	assert.Equal(t, DefaultActorID, cfg.ActorID)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CLIENTCTL_ACTOR_ID=99\n"), 0644))
	t.Setenv(EnvActorID, "")
	os.Unsetenv(EnvActorID)

	require.NoError(t, LoadDotEnv(dir))

	cfg := GetDefaultConfig()
	require.NoError(t, ApplyEnv(&cfg))
	assert.Equal(t, 99, cfg.ActorID)
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(t.TempDir()))
}

func TestGetDefaultConfigPathOrPanic(t *testing.T) {
	original := osUserHomeDir
	t.Cleanup(func() { osUserHomeDir = original })

	osUserHomeDir = func() (string, error) { return "/home/tester", nil }
	assert.Equal(t, filepath.Join("/home/tester", userConfigDir), GetDefaultConfigPathOrPanic())
}
