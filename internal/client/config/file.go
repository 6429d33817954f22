package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/divyadrishti/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for file decoding. Durations use
// timex.Duration so files can say "30s" or give integer nanoseconds.
type FileConfig struct {
	APIURL              string         `json:"api_url" yaml:"api_url"`
	RequestTimeout      timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	QuotaCooldown       timex.Duration `json:"quota_cooldown" yaml:"quota_cooldown"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
	Language            string         `json:"language" yaml:"language"`
	DBPath              string         `json:"db_path" yaml:"db_path"`
	LogLevel            string         `json:"log_level" yaml:"log_level"`
	LogFormat           string         `json:"log_format" yaml:"log_format"`
	MetricsAddr         string         `json:"metrics_addr" yaml:"metrics_addr"`
}

// parseFile overlays cfg with the values set in path. YAML is used for
// .yaml and .yml files, JSON otherwise. An empty path is a no-op.
func parseFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return err
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.APIURL, fc.APIURL)
	setDuration(&cfg.RequestTimeout, fc.RequestTimeout.Duration)
	setDuration(&cfg.QuotaCooldown, fc.QuotaCooldown.Duration)
	setDuration(&cfg.OnlineCheckInterval, fc.OnlineCheckInterval.Duration)
	setString(&cfg.Language, fc.Language)
	setString(&cfg.DBPath, fc.DBPath)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)
	setString(&cfg.MetricsAddr, fc.MetricsAddr)
}
