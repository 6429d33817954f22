package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "ASTRO"

// EnvConfig lists the variables read from the environment, for example
// ASTRO_API_URL or ASTRO_REQUEST_TIMEOUT=45s.
type EnvConfig struct {
	APIURL              string        `envconfig:"API_URL"`
	RequestTimeout      time.Duration `envconfig:"REQUEST_TIMEOUT"`
	QuotaCooldown       time.Duration `envconfig:"QUOTA_COOLDOWN"`
	OnlineCheckInterval time.Duration `envconfig:"ONLINE_CHECK_INTERVAL"`
	Language            string        `envconfig:"LANGUAGE"`
	DBPath              string        `envconfig:"DB_PATH"`
	LogLevel            string        `envconfig:"LOG_LEVEL"`
	LogFormat           string        `envconfig:"LOG_FORMAT"`
	MetricsAddr         string        `envconfig:"METRICS_ADDR"`
}

// parseEnv loads envPath (or ./.env when it exists) into the process
// environment without overriding variables already set, then overlays cfg
// with the ASTRO_* variables.
func parseEnv(cfg *Config, envPath string) error {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			return err
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	var ec EnvConfig
	if err := envconfig.Process(envPrefix, &ec); err != nil {
		return err
	}

	setString(&cfg.APIURL, ec.APIURL)
	setDuration(&cfg.RequestTimeout, ec.RequestTimeout)
	setDuration(&cfg.QuotaCooldown, ec.QuotaCooldown)
	setDuration(&cfg.OnlineCheckInterval, ec.OnlineCheckInterval)
	setString(&cfg.Language, ec.Language)
	setString(&cfg.DBPath, ec.DBPath)
	setString(&cfg.LogLevel, ec.LogLevel)
	setString(&cfg.LogFormat, ec.LogFormat)
	setString(&cfg.MetricsAddr, ec.MetricsAddr)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v > 0 {
		*dst = v
	}
}
