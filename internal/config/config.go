// Package config loads CLI configuration from the XDG config dir and environment.
// Only non-secret settings are kept here; session state goes through internal/storage.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/ryo-clouds/fortress-panel-sub001/internal/xdg"
)

// DefaultBaseURL is used when no API base URL is configured.
const DefaultBaseURL = "http://localhost:3001"

// Config holds non-sensitive CLI settings.
type Config struct {
	APIBaseURL     string        `yaml:"api_base_url" env:"FORTRESS_API_URL" env-default:"http://localhost:3001"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"FORTRESS_REQUEST_TIMEOUT" env-default:"10s"`
	Storage        string        `yaml:"storage" env:"FORTRESS_STORAGE" env-default:"file"`
	LogLevel       string        `yaml:"log_level" env:"FORTRESS_LOG_LEVEL" env-default:"info"`
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yml"), nil
}

// Load reads configuration from the config file (when present) and the
// environment. Environment values win over file values; a missing file
// yields defaults.
func Load() (Config, error) {
	var c Config
	p, err := path()
	if err != nil {
		return c, err
	}
	if st, statErr := os.Stat(p); statErr == nil && !st.IsDir() {
		if err := cleanenv.ReadConfig(p, &c); err != nil {
			return c, err
		}
	} else if statErr != nil && !errors.Is(statErr, os.ErrNotExist) {
		return c, statErr
	}
	if err := cleanenv.ReadEnv(&c); err != nil {
		return c, err
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultBaseURL
	}
	return c, nil
}
