package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/cga-events/internal/calendar"
	"github.com/pfrederiksen/cga-events/internal/logger"
	"github.com/pfrederiksen/cga-events/internal/scraper"
)

// Defaults applied when no config file sets a value.
const (
	DefaultDays       = 14
	DefaultDelay      = 500 * time.Millisecond
	DefaultOutputPath = "cga.ics"
	DefaultLogLevel   = "info"
)

// Config holds the settings for one scraper run
type Config struct {
	LandingURL      string        `yaml:"landing_url"`
	SearchURL       string        `yaml:"search_url"`
	UserAgent       string        `yaml:"user_agent"`
	LandingTimeout  time.Duration `yaml:"landing_timeout"`
	SearchTimeout   time.Duration `yaml:"search_timeout"`
	Days            int           `yaml:"days"`
	Delay           time.Duration `yaml:"delay"`    // pause between days
	Timezone        string        `yaml:"timezone"` // TZID tag on DTSTART
	OutputPath      string        `yaml:"output_path"`
	MetricsTextfile string        `yaml:"metrics_textfile"` // optional, node_exporter textfile format
	LogLevel        string        `yaml:"log_level"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		LandingURL:     scraper.LandingURL,
		SearchURL:      scraper.SearchURL,
		UserAgent:      scraper.UserAgent,
		LandingTimeout: scraper.LandingTimeout,
		SearchTimeout:  scraper.SearchTimeout,
		Days:           DefaultDays,
		Delay:          DefaultDelay,
		Timezone:       calendar.DefaultTZID,
		OutputPath:     DefaultOutputPath,
		LogLevel:       DefaultLogLevel,
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate reports the first setting that cannot drive a run.
func (c *Config) Validate() error {
	switch {
	case c.LandingURL == "" || c.SearchURL == "":
		return errors.New("landing_url and search_url are required")
	case c.Days < 1:
		return fmt.Errorf("days must be at least 1, got %d", c.Days)
	case c.Delay < 0:
		return fmt.Errorf("delay must not be negative, got %s", c.Delay)
	case c.LandingTimeout <= 0 || c.SearchTimeout <= 0:
		return errors.New("timeouts must be positive")
	case c.OutputPath == "":
		return errors.New("output_path is required")
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
