package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/codepad/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used only for decoding config files. Empty fields leave
// the current value untouched.
type FileConfig struct {
	APIBaseURL     string         `json:"api_url" yaml:"api_url"`
	AdminBaseURL   string         `json:"admin_url" yaml:"admin_url"`
	RequestTimeout timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	StoreBackend   string         `json:"store_backend" yaml:"store_backend"`
	StorePath      string         `json:"store_path" yaml:"store_path"`
	LogLevel       string         `json:"log_level" yaml:"log_level"`
	LogFormat      string         `json:"log_format" yaml:"log_format"`
	LogBackend     string         `json:"log_backend" yaml:"log_backend"`
	Theme          string         `json:"theme" yaml:"theme"`
}

// parseFile overlays cfg with the values of a JSON or YAML file; the format
// is picked by extension (.yaml and .yml are YAML, anything else JSON).
// An empty path is a no-op. Read and decode errors panic.
func parseFile(cfg *Config, path string) {
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.APIBaseURL, fc.APIBaseURL)
	setString(&cfg.AdminBaseURL, fc.AdminBaseURL)
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	setString(&cfg.StoreBackend, fc.StoreBackend)
	setString(&cfg.StorePath, fc.StorePath)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)
	setString(&cfg.LogBackend, fc.LogBackend)
	setString(&cfg.Theme, fc.Theme)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
