package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/divyadrishti/internal/flagx"
)

// Config holds runtime settings for the Divya Drishti CLI.
type Config struct {
	APIURL              string
	RequestTimeout      time.Duration
	QuotaCooldown       time.Duration
	OnlineCheckInterval time.Duration
	Language            string
	DBPath              string
	LogLevel            string
	LogFormat           string
	// MetricsAddr enables a /metrics listener when not empty.
	MetricsAddr string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "http://localhost:5000/api"
	c.RequestTimeout = 30 * time.Second
	c.QuotaCooldown = 5 * time.Minute
	c.OnlineCheckInterval = 10 * time.Second
	c.Language = "English"
	c.DBPath = "divyadrishti.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.MetricsAddr = ""
}

// LoadConfig applies defaults, then the config file, the environment and
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	configPath, envPath := flagx.ConfigFiles()
	if err := parseFile(cfg, configPath); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if err := parseEnv(cfg, envPath); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := parseFlags(cfg); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}
