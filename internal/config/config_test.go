package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, DefaultMockAddr, cfg.Mock.Addr)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadEnvAndFlags(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("NETLICENSING_API_KEY", " key-1 ")
	t.Setenv("NETLICENSING_LOG_LEVEL", "DEBUG")
	t.Setenv("NETLICENSING_BASE_URL", "http://localhost:8089/core/v2/rest/")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Duration("timeout", 0, "")
	require.NoError(t, flags.Parse([]string{"--timeout=5s"}))

	cfg, err := Load(flags)
	require.NoError(t, err)
	assert.Equal(t, "key-1", cfg.APIKey)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "http://localhost:8089/core/v2/rest", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "netlicensing.yaml"), []byte(
		"username: demo\npassword: demo\nlog:\n  format: console\n"), 0o600))

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Username)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestValidate(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("otel.sampling_ratio", 2.0)
	_, err := FromViper(v)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	v.Set("otel.sampling_ratio", 0.5)
	v.Set("log.format", "xml")
	_, err = FromViper(v)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestReloadAppliesOnlyValidConfig(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	var applied []string
	apply := func(cfg Config) { applied = append(applied, cfg.Log.Level) }
	event := fsnotify.Event{Name: "netlicensing.yaml", Op: fsnotify.Write}

	v.Set("log.level", "warn")
	reload(v, zap.NewNop(), event, apply)

	v.Set("timeout", "-1s")
	reload(v, zap.NewNop(), event, apply)

	assert.Equal(t, []string{"warn"}, applied)
}
