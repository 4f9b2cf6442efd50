package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"cashflow-forecast/internal/model"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Data      DataConfig         `yaml:"data"`
	Forecast  ForecastConfig     `yaml:"forecast"`
	Scenarios map[string]float64 `yaml:"scenarios"`
	LogLevel  string             `yaml:"log_level"`
}

type DataConfig struct {
	DailyCSV  string `yaml:"daily_csv"`
	OutputDir string `yaml:"output_dir"`
}

type ForecastConfig struct {
	Column              string `yaml:"column"`
	Horizon             int    `yaml:"horizon"`
	MovingAverageWindow int    `yaml:"moving_average_window"`
	SeasonalPeriod      int    `yaml:"seasonal_period"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads, defaults, and validates a YAML config file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// applyDefaults fills zero values so config files stay concise.
func (c *Config) applyDefaults() {
	if c.Data.DailyCSV == "" {
		c.Data.DailyCSV = "data/sample_data.csv"
	}
	if c.Data.OutputDir == "" {
		c.Data.OutputDir = "output"
	}
	if c.Forecast.Column == "" {
		c.Forecast.Column = model.ColumnNetCashFlow
	}
	if c.Forecast.Horizon == 0 {
		c.Forecast.Horizon = 12
	}
	if c.Forecast.MovingAverageWindow == 0 {
		c.Forecast.MovingAverageWindow = 3
	}
	if c.Forecast.SeasonalPeriod == 0 {
		c.Forecast.SeasonalPeriod = 12
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Forecast.Horizon < 1 {
		return errors.New("forecast.horizon must be >= 1")
	}
	if c.Forecast.MovingAverageWindow < 1 {
		return errors.New("forecast.moving_average_window must be >= 1")
	}
	if c.Forecast.SeasonalPeriod < 1 {
		return errors.New("forecast.seasonal_period must be >= 1")
	}
	if !knownColumn(c.Forecast.Column) {
		return fmt.Errorf("forecast.column %q is not a known column", c.Forecast.Column)
	}
	for name, mult := range c.Scenarios {
		if mult <= 0 {
			return fmt.Errorf("scenario %q multiplier must be > 0, got %v", name, mult)
		}
	}
	return nil
}

func knownColumn(name string) bool {
	for _, c := range model.Columns() {
		if c == name {
			return true
		}
	}
	return false
}
