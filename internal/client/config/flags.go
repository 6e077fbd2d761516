package config

import (
	"os"

	"github.com/spf13/pflag"
)

// Flag names shared by RegisterFlags and Load.
const (
	FlagConfig     = "config"
	FlagAPIURL     = "api-url"
	FlagAdminURL   = "admin-url"
	FlagTimeout    = "timeout"
	FlagStore      = "store"
	FlagStorePath  = "store-path"
	FlagLogLevel   = "log-level"
	FlagLogFormat  = "log-format"
	FlagLogBackend = "log-backend"
)

// RegisterFlags declares the configuration flags on fs, using the defaults as
// flag defaults so --help shows them.
func RegisterFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(FlagConfig, "c", "", "path to a JSON or YAML config file")
	fs.String(FlagAPIURL, d.APIBaseURL, "base URL of the API (env "+EnvAPIURL+")")
	fs.String(FlagAdminURL, d.AdminBaseURL, "base URL of the admin API")
	fs.Duration(FlagTimeout, d.RequestTimeout, "per-request timeout")
	fs.String(FlagStore, d.StoreBackend, "local store backend: sqlite or bolt")
	fs.String(FlagStorePath, d.StorePath, "local store file (default: user config dir)")
	fs.String(FlagLogLevel, d.LogLevel, "log level: debug, info, warn, error")
	fs.String(FlagLogFormat, d.LogFormat, "log format: text or json")
	fs.String(FlagLogBackend, d.LogBackend, "logger implementation: slog or zap")
}

// parseFlags copies every flag the user actually set into cfg.
func parseFlags(cfg *Config, fs *pflag.FlagSet) {
	strFlags := map[string]*string{
		FlagAPIURL:     &cfg.APIBaseURL,
		FlagAdminURL:   &cfg.AdminBaseURL,
		FlagStore:      &cfg.StoreBackend,
		FlagStorePath:  &cfg.StorePath,
		FlagLogLevel:   &cfg.LogLevel,
		FlagLogFormat:  &cfg.LogFormat,
		FlagLogBackend: &cfg.LogBackend,
	}
	for name, dst := range strFlags {
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetString(name)
		if err != nil {
			panic(err)
		}
		*dst = v
	}

	if fs.Changed(FlagTimeout) {
		v, err := fs.GetDuration(FlagTimeout)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = v
	}
}

// Load builds a Config from defaults, the optional config file named by
// --config, the environment and the flags set on fs, in that order.
func Load(fs *pflag.FlagSet) (*Config, error) {
	return load(fs, os.Getenv)
}

func load(fs *pflag.FlagSet, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	path, _ := fs.GetString(FlagConfig)
	parseFile(cfg, path)
	parseEnv(cfg, getenv)
	parseFlags(cfg, fs)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
