package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Input     InputConfig     `yaml:"input" envconfig:"INPUT"`
	Analytics AnalyticsConfig `yaml:"analytics" envconfig:"ANALYTICS"`
	Output    OutputConfig    `yaml:"output" envconfig:"OUTPUT"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
}

// InputConfig describes the transactional dataset to load
type InputConfig struct {
	Path   string `yaml:"path" envconfig:"PATH"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"csv"`
	Sheet  string `yaml:"sheet" envconfig:"SHEET" default:"Online Retail"`
}

// AnalyticsConfig contains the tunable parameters of the intelligence engine
type AnalyticsConfig struct {
	RFMQuantiles       int     `yaml:"rfm_quantiles" envconfig:"RFM_QUANTILES" default:"5"`
	CLVLifespan        string  `yaml:"clv_lifespan" envconfig:"CLV_LIFESPAN" default:"observed"`
	CLVLifespanMonths  int     `yaml:"clv_lifespan_months" envconfig:"CLV_LIFESPAN_MONTHS" default:"12"`
	ParetoThreshold    float64 `yaml:"pareto_threshold" envconfig:"PARETO_THRESHOLD" default:"0.8"`
	ReferenceDate      string  `yaml:"reference_date" envconfig:"REFERENCE_DATE"`
	CancellationMarker string  `yaml:"cancellation_marker" envconfig:"CANCELLATION_MARKER" default:"C"`
}

// OutputConfig contains export destinations and chart dimensions
type OutputConfig struct {
	Dir           string  `yaml:"dir" envconfig:"DIR" default:"output"`
	ChartWidthIn  float64 `yaml:"chart_width_in" envconfig:"CHART_WIDTH_IN" default:"12"`
	ChartHeightIn float64 `yaml:"chart_height_in" envconfig:"CHART_HEIGHT_IN" default:"8"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/analytics.log"`
}

// CLV lifespan variants
const (
	// LifespanObserved derives the lifespan from the observed span between a
	// customer's first and last transaction, in months
	LifespanObserved = "observed"
	// LifespanFixed uses a fixed horizon of CLVLifespanMonths months
	LifespanFixed = "fixed"
)

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("RETAIL", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	configFile := getConfigFilePath()
	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Input.Path == "" {
		envConfig.Input.Path = fileConfig.Input.Path
	}
	if envConfig.Input.Format == "" {
		envConfig.Input.Format = fileConfig.Input.Format
	}
	if envConfig.Analytics.RFMQuantiles == 0 {
		envConfig.Analytics.RFMQuantiles = fileConfig.Analytics.RFMQuantiles
	}
	if envConfig.Analytics.CLVLifespan == "" {
		envConfig.Analytics.CLVLifespan = fileConfig.Analytics.CLVLifespan
	}
	if envConfig.Analytics.ParetoThreshold == 0 {
		envConfig.Analytics.ParetoThreshold = fileConfig.Analytics.ParetoThreshold
	}
	if envConfig.Analytics.ReferenceDate == "" {
		envConfig.Analytics.ReferenceDate = fileConfig.Analytics.ReferenceDate
	}
	if envConfig.Output.Dir == "" {
		envConfig.Output.Dir = fileConfig.Output.Dir
	}

	return envConfig
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Analytics.RFMQuantiles < 2 || c.Analytics.RFMQuantiles > 10 {
		return fmt.Errorf("rfm_quantiles must be between 2 and 10, got %d", c.Analytics.RFMQuantiles)
	}

	if c.Analytics.CLVLifespan != LifespanObserved && c.Analytics.CLVLifespan != LifespanFixed {
		return fmt.Errorf("clv_lifespan must be %q or %q, got %q",
			LifespanObserved, LifespanFixed, c.Analytics.CLVLifespan)
	}

	if c.Analytics.CLVLifespan == LifespanFixed && c.Analytics.CLVLifespanMonths <= 0 {
		return fmt.Errorf("clv_lifespan_months must be positive, got %d", c.Analytics.CLVLifespanMonths)
	}

	if c.Analytics.ParetoThreshold <= 0 || c.Analytics.ParetoThreshold > 1 {
		return fmt.Errorf("pareto_threshold must be in (0, 1], got %f", c.Analytics.ParetoThreshold)
	}

	if c.Analytics.CancellationMarker == "" {
		return fmt.Errorf("cancellation_marker must not be empty")
	}

	if c.Analytics.ReferenceDate != "" {
		if _, err := c.Analytics.ParseReferenceDate(); err != nil {
			return fmt.Errorf("invalid reference_date: %w", err)
		}
	}

	if c.Input.Format != "csv" && c.Input.Format != "xlsx" {
		return fmt.Errorf("input format must be csv or xlsx, got %q", c.Input.Format)
	}

	return nil
}

// ParseReferenceDate parses the configured analysis reference date. The zero
// time is returned when no override is configured; the engine then uses the
// dataset's max date plus one day.
func (a AnalyticsConfig) ParseReferenceDate() (time.Time, error) {
	if a.ReferenceDate == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", a.ReferenceDate)
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	// Check for config file in common locations
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Format: "csv",
			Sheet:  "Online Retail",
		},
		Analytics: AnalyticsConfig{
			RFMQuantiles:       5,
			CLVLifespan:        LifespanObserved,
			CLVLifespanMonths:  12,
			ParetoThreshold:    0.8,
			CancellationMarker: "C",
		},
		Output: OutputConfig{
			Dir:           "output",
			ChartWidthIn:  12,
			ChartHeightIn: 8,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/analytics.log",
		},
	}
}
