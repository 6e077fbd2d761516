package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/codepad/internal/common"
	"github.com/dmitrijs2005/codepad/internal/filex"
)

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreBolt   = "bolt"
)

// Config holds runtime settings for the codepad CLI.
type Config struct {
	// APIBaseURL is the base of every user-facing endpoint.
	APIBaseURL string
	// AdminBaseURL is the base of the admin console endpoints.
	AdminBaseURL   string
	RequestTimeout time.Duration

	StoreBackend string
	StorePath    string

	LogLevel   string
	LogFormat  string
	LogBackend string

	// Theme is the initial theme used until one is toggled and persisted.
	Theme string
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000/api_version_1"
	c.AdminBaseURL = "http://127.0.0.1:8000/api/admin/admin"
	c.RequestTimeout = 30 * time.Second
	c.StoreBackend = StoreSQLite
	c.StorePath = ""
	c.LogLevel = "warn"
	c.LogFormat = "text"
	c.LogBackend = "slog"
	c.Theme = "dark"
}

// ResolvedStorePath returns StorePath, or the default file for the backend in
// the per-user data directory.
func (c *Config) ResolvedStorePath() string {
	if c.StorePath != "" {
		return c.StorePath
	}
	name := "codepad.db"
	if c.StoreBackend == StoreBolt {
		name = "codepad.bolt"
	}
	return filepath.Join(filex.DefaultDataDir(common.AppName), name)
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	for _, u := range []struct{ name, value string }{
		{"api url", c.APIBaseURL},
		{"admin url", c.AdminBaseURL},
	} {
		parsed, err := url.Parse(u.value)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("invalid %s %q", u.name, u.value)
		}
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}

	checks := []struct {
		name, value string
		allowed     []string
	}{
		{"store backend", c.StoreBackend, []string{StoreSQLite, StoreBolt}},
		{"log format", c.LogFormat, []string{"text", "json"}},
		{"log backend", c.LogBackend, []string{"slog", "zap"}},
		{"log level", c.LogLevel, []string{"debug", "info", "warn", "error"}},
		{"theme", c.Theme, []string{"dark", "light"}},
	}
	for _, ch := range checks {
		if !contains(ch.allowed, ch.value) {
			return fmt.Errorf("invalid %s %q, expected one of %v", ch.name, ch.value, ch.allowed)
		}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
