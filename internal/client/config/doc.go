// Package config loads runtime configuration for the codepad CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected with -c/--config.
//  3. Environment: CODEPAD_API_URL.
//  4. Command-line flags registered by RegisterFlags; only flags that were
//     set explicitly override earlier values.
//
// # File schema
//
// Durations accept strings like "30s" or integer nanoseconds:
//
//	{
//	  "api_url": "http://127.0.0.1:8000/api_version_1",
//	  "admin_url": "http://127.0.0.1:8000/api/admin/admin",
//	  "request_timeout": "30s",
//	  "store_backend": "sqlite",
//	  "log_backend": "zap",
//	  "theme": "light"
//	}
//
// A file that cannot be read or decoded panics; invalid values are reported
// by Load as an error.
package config
