package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/username/datecalc/internal/calendar"
	"github.com/username/datecalc/internal/render"
)

const (
	defaultVerbosity = "standard"
	defaultMaxUnits  = 3
)

// Config represents application configuration
type Config struct {
	Timezone string         `mapstructure:"timezone"`
	Duration DurationConfig `mapstructure:"duration"`
	Business BusinessConfig `mapstructure:"business"`
	Log      LogConfig      `mapstructure:"log"`
}

// DurationConfig represents duration rendering defaults
type DurationConfig struct {
	Verbosity string `mapstructure:"verbosity"` // "compact", "standard" or "verbose"
	MaxUnits  int    `mapstructure:"max_units"` // <= 0 renders every non-zero unit
}

// BusinessConfig represents business day configuration
type BusinessConfig struct {
	NonBusinessDays []string `mapstructure:"non_business_days"`
	HolidaysFile    string   `mapstructure:"holidays_file"` // YYYY-MM-DD [note] per line
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Default returns the configuration used when no config file exists
func Default() *Config {
	return &Config{
		Timezone: "UTC",
		Duration: DurationConfig{
			Verbosity: defaultVerbosity,
			MaxUnits:  defaultMaxUnits,
		},
		Business: BusinessConfig{
			NonBusinessDays: []string{"saturday", "sunday"},
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load loads configuration from file. A missing config file is not an
// error unless configPath was given explicitly.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("timezone", def.Timezone)
	v.SetDefault("duration.verbosity", def.Duration.Verbosity)
	v.SetDefault("duration.max_units", def.Duration.MaxUnits)
	v.SetDefault("business.non_business_days", def.Business.NonBusinessDays)
	v.SetDefault("business.holidays_file", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", def.Log.Level)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("datecalc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.datecalc")
		v.AddConfigPath("/etc/datecalc")
	}

	// Read environment variables, e.g. DATECALC_DURATION_MAX_UNITS
	v.SetEnvPrefix("datecalc")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandEnvVars()

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("timezone %q is not a known timezone: %w", c.Timezone, err)
		}
	}

	if _, err := render.ParseVerbosity(c.Duration.Verbosity); err != nil {
		return fmt.Errorf("duration.verbosity: %w", err)
	}

	if _, err := calendar.ParseWeekdays(c.Business.NonBusinessDays); err != nil {
		return fmt.Errorf("business.non_business_days: %w", err)
	}

	return nil
}

// GetVerbosity returns the default verbosity
func (c *DurationConfig) GetVerbosity() render.Verbosity {
	v, err := render.ParseVerbosity(c.Verbosity)
	if err != nil {
		return render.Standard
	}
	return v
}

// GetWeekend returns the non-business weekday set.
// Falls back to Saturday/Sunday on invalid input.
func (c *BusinessConfig) GetWeekend() calendar.WeekdaySet {
	set, err := calendar.ParseWeekdays(c.NonBusinessDays)
	if err != nil {
		return calendar.DefaultWeekdaySet()
	}
	return set
}

// GetLevel returns the log level, "info" if unset
func (c *LogConfig) GetLevel() string {
	if c.Level == "" {
		return "info"
	}
	return c.Level
}

// ExpandEnvVars expands environment variables in config paths
func (c *Config) ExpandEnvVars() {
	c.Business.HolidaysFile = os.ExpandEnv(c.Business.HolidaysFile)
	c.Log.File = os.ExpandEnv(c.Log.File)
}
