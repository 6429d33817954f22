// Package config loads runtime configuration for the Divya Drishti CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. Environment variables with the ASTRO_ prefix. A dotenv file given
//     with -env, or ./.env when present, is loaded first.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string     backend API base URL
//	-l string     content language
//	-d string     local database path
//	-t duration   request timeout
//
// # File schema
//
// Durations accept strings like "30s" or integer nanoseconds:
//
//	{
//	  "api_url": "http://localhost:5000/api",
//	  "request_timeout": "30s",
//	  "quota_cooldown": "5m",
//	  "online_check_interval": "10s",
//	  "language": "Hindi",
//	  "db_path": "divyadrishti.db",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "metrics_addr": ":9100"
//	}
package config
