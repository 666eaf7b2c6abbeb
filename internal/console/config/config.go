package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds runtime settings for the console.
type Config struct {
	APIBaseURL     string
	DatabasePath   string
	RequestTimeout time.Duration
	MirrorCookie   bool
	Locale         string
	LogFile        string
	LogLevel       string
	RowsPerPage    int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8090/api/v1"
	c.DatabasePath = "console.db"
	c.RequestTimeout = 0
	c.MirrorCookie = false
	c.Locale = "ru"
	c.LogFile = ""
	c.LogLevel = "info"
	c.RowsPerPage = 10
}

// Validate reports settings the console cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.APIBaseURL == "" {
		errs = append(errs, errors.New("api base url is empty"))
	}
	if c.DatabasePath == "" {
		errs = append(errs, errors.New("database path is empty"))
	}
	if c.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("request timeout %s is negative", c.RequestTimeout))
	}
	if c.RowsPerPage <= 0 {
		errs = append(errs, fmt.Errorf("rows per page must be positive, got %d", c.RowsPerPage))
	}
	return errors.Join(errs...)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON, the environment and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
