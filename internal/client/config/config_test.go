package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("codepad", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func noEnv(string) string { return "" }

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://127.0.0.1:8000/api_version_1", c.APIBaseURL)
	assert.Equal(t, "http://127.0.0.1:8000/api/admin/admin", c.AdminBaseURL)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Equal(t, StoreSQLite, c.StoreBackend)
	assert.Equal(t, "dark", c.Theme)
	require.NoError(t, c.Validate())
}

func TestLoad_NoSourcesGivesDefaults(t *testing.T) {
	cfg, err := load(newFlags(t), noEnv)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestLoad_Precedence(t *testing.T) {
	path := writeFile(t, "cfg.json", `{
		"api_url": "http://file:1/api",
		"admin_url": "http://file:1/admin",
		"request_timeout": "5s",
		"log_backend": "zap"
	}`)
	env := func(k string) string {
		if k == EnvAPIURL {
			return "http://env:2/api"
		}
		return ""
	}

	t.Run("file then env", func(t *testing.T) {
		cfg, err := load(newFlags(t, "-c", path), env)
		require.NoError(t, err)
		assert.Equal(t, "http://env:2/api", cfg.APIBaseURL)
		assert.Equal(t, "http://file:1/admin", cfg.AdminBaseURL)
		assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "zap", cfg.LogBackend)
	})

	t.Run("flags win", func(t *testing.T) {
		cfg, err := load(newFlags(t, "--config", path, "--api-url", "http://flag:3/api", "--timeout", "2s"), env)
		require.NoError(t, err)
		assert.Equal(t, "http://flag:3/api", cfg.APIBaseURL)
		assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	})

	t.Run("unset flags do not reset file values", func(t *testing.T) {
		cfg, err := load(newFlags(t, "-c", path), noEnv)
		require.NoError(t, err)
		assert.Equal(t, "http://file:1/api", cfg.APIBaseURL)
	})
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeFile(t, "cfg.yaml", "store_backend: bolt\nstore_path: /tmp/x.bolt\ntheme: light\nrequest_timeout: 1m\n")

	cfg, err := load(newFlags(t, "-c", path), noEnv)
	require.NoError(t, err)
	assert.Equal(t, StoreBolt, cfg.StoreBackend)
	assert.Equal(t, "/tmp/x.bolt", cfg.ResolvedStorePath())
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, time.Minute, cfg.RequestTimeout)
}

func TestLoad_BadFilePanics(t *testing.T) {
	bad := writeFile(t, "bad.json", `{ this is not valid json`)
	require.Panics(t, func() { _, _ = load(newFlags(t, "-c", bad), noEnv) })

	missing := filepath.Join(t.TempDir(), "missing.json")
	require.Panics(t, func() { _, _ = load(newFlags(t, "-c", missing), noEnv) })
}

func TestLoad_InvalidValueIsError(t *testing.T) {
	_, err := load(newFlags(t, "--store", "postgres"), noEnv)
	require.ErrorContains(t, err, "store backend")

	_, err = load(newFlags(t, "--api-url", "not a url"), noEnv)
	require.ErrorContains(t, err, "api url")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "zero timeout", mutate: func(c *Config) { c.RequestTimeout = 0 }, wantErr: true},
		{name: "bad format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: true},
		{name: "bad theme", mutate: func(c *Config) { c.Theme = "blue" }, wantErr: true},
		{name: "bolt", mutate: func(c *Config) { c.StoreBackend = StoreBolt }},
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			tt.mutate(c)
			if tt.wantErr {
				require.Error(t, c.Validate())
			} else {
				require.NoError(t, c.Validate())
			}
		})
	}
}

func TestResolvedStorePath_DefaultsByBackend(t *testing.T) {
	c := defaults()
	assert.Equal(t, "codepad.db", filepath.Base(c.ResolvedStorePath()))

	c.StoreBackend = StoreBolt
	assert.Equal(t, "codepad.bolt", filepath.Base(c.ResolvedStorePath()))
}
