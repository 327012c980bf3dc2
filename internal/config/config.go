package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AgeBin is one right-closed age bucket: an age a falls into the first bin
// with a <= Max. A boundary age belongs to the lower-labeled bucket.
type AgeBin struct {
	Max   int32  `yaml:"max"`
	Label string `yaml:"label"`
}

// DefaultAgeBins are the fixed (0,18] (18,35] (35,50] (50,65] (65,100] buckets.
var DefaultAgeBins = []AgeBin{
	{Max: 18, Label: "Under 18"},
	{Max: 35, Label: "18-34"},
	{Max: 50, Label: "35-49"},
	{Max: 65, Label: "50-64"},
	{Max: 100, Label: "65+"},
}

// RatingBounds is the inclusive valid range for feedback rating measures.
type RatingBounds struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Config holds all runtime configuration for a dwbuild run.
type Config struct {
	DSN        string
	InputDir   string
	StagingDir string
	ReportDir  string
	LogFormat  string // "text" or "json"
	SkipChecks bool

	BufferDays         int          `yaml:"buffer_days"`
	GranularityMinutes int          `yaml:"granularity_minutes"`
	RatingBounds       RatingBounds `yaml:"rating_bounds"`
	AgeBins            []AgeBin     `yaml:"age_bins"`
}

// yamlConfig is the on-disk YAML structure. Pointers distinguish absent
// keys from zero values so a partial file merges cleanly.
type yamlConfig struct {
	BufferDays         *int          `yaml:"buffer_days"`
	GranularityMinutes *int          `yaml:"granularity_minutes"`
	RatingBounds       *RatingBounds `yaml:"rating_bounds"`
	AgeBins            []AgeBin      `yaml:"age_bins"`
}

// Default returns a Config with the standard transformation parameters.
func Default() Config {
	return Config{
		LogFormat:          "text",
		BufferDays:         30,
		GranularityMinutes: 15,
		RatingBounds:       RatingBounds{Min: 1, Max: 5},
		AgeBins:            DefaultAgeBins,
	}
}

// LoadFromFile reads a YAML config file and merges its values into Config.
// Absent keys keep their current values.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if yc.BufferDays != nil {
		c.BufferDays = *yc.BufferDays
	}
	if yc.GranularityMinutes != nil {
		c.GranularityMinutes = *yc.GranularityMinutes
	}
	if yc.RatingBounds != nil {
		c.RatingBounds = *yc.RatingBounds
	}
	if len(yc.AgeBins) > 0 {
		c.AgeBins = yc.AgeBins
	}
	return c.Validate()
}

// Validate checks structural configuration rules. Only an invalid structure
// is a hard error; absent raw data never is.
func (c *Config) Validate() error {
	if c.BufferDays < 0 {
		return fmt.Errorf("buffer_days must be >= 0, got %d", c.BufferDays)
	}
	if c.GranularityMinutes <= 0 || 1440%c.GranularityMinutes != 0 {
		return fmt.Errorf("granularity_minutes must be a positive divisor of 1440, got %d", c.GranularityMinutes)
	}
	if c.RatingBounds.Min >= c.RatingBounds.Max {
		return fmt.Errorf("rating_bounds min %v must be below max %v", c.RatingBounds.Min, c.RatingBounds.Max)
	}
	if len(c.AgeBins) == 0 {
		return fmt.Errorf("age_bins must not be empty")
	}
	prev := int32(0)
	for i, b := range c.AgeBins {
		if b.Max <= prev {
			return fmt.Errorf("age_bins must have strictly ascending max edges, bin %d has max %d", i, b.Max)
		}
		if b.Label == "" {
			return fmt.Errorf("age_bins bin %d has an empty label", i)
		}
		prev = b.Max
	}
	return nil
}

// ValidateBuild checks the fields the build command requires.
func (c *Config) ValidateBuild() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.InputDir == "" {
		return fmt.Errorf("--input is required")
	}
	if _, err := os.Stat(c.InputDir); err != nil {
		return fmt.Errorf("input dir not accessible: %w", err)
	}
	if c.StagingDir == "" {
		return fmt.Errorf("--staging is required")
	}
	return nil
}

// ValidateWithDSN checks staging plus database connection fields.
func (c *Config) ValidateWithDSN() error {
	if c.StagingDir == "" {
		return fmt.Errorf("--staging is required")
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or TELEDW_DB_URL is required")
	}
	return nil
}
