// Package config provides Viper-based hierarchical configuration
// management: defaults, then an optional config.yaml, then FINADVISOR_*
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var envOnce sync.Once

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Rules struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"rules" yaml:"rules"`

	Advisor struct {
		CategoryShareThreshold float64 `mapstructure:"category_share_threshold" yaml:"category_share_threshold"`
		TargetSavingsRate      float64 `mapstructure:"target_savings_rate" yaml:"target_savings_rate"`
	} `mapstructure:"advisor" yaml:"advisor"`

	Savings struct {
		Rate float64 `mapstructure:"rate" yaml:"rate"`
	} `mapstructure:"savings" yaml:"savings"`

	Subscriptions struct {
		AmountTolerance float64 `mapstructure:"amount_tolerance" yaml:"amount_tolerance"`
		MinOccurrences  int     `mapstructure:"min_occurrences" yaml:"min_occurrences"`
	} `mapstructure:"subscriptions" yaml:"subscriptions"`

	Web struct {
		Addr           string `mapstructure:"addr" yaml:"addr"`
		MaxUploadBytes int64  `mapstructure:"max_upload_bytes" yaml:"max_upload_bytes"`
	} `mapstructure:"web" yaml:"web"`
}

// LoadEnv loads environment variables from a .env file if one exists in
// the working directory or its parent. It runs at most once.
func LoadEnv() {
	envOnce.Do(func() {
		envFile := ".env"
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			envFile = filepath.Join("..", ".env")
			if _, err := os.Stat(envFile); os.IsNotExist(err) {
				return
			}
		}
		_ = godotenv.Load(envFile)
	})
}

// Load initializes the configuration with hierarchical loading.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.finadvisor")
	v.AddConfigPath(".finadvisor")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FINADVISOR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Keep going with defaults and env vars.
			fmt.Fprintf(os.Stderr, "warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ";")

	v.SetDefault("rules.file", "categories.yaml")

	v.SetDefault("advisor.category_share_threshold", 0.30)
	v.SetDefault("advisor.target_savings_rate", 0.20)

	v.SetDefault("savings.rate", 0.20)

	v.SetDefault("subscriptions.amount_tolerance", 2.0)
	v.SetDefault("subscriptions.min_occurrences", 2)

	v.SetDefault("web.addr", ":8080")
	v.SetDefault("web.max_upload_bytes", 10*1024*1024)
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Advisor.CategoryShareThreshold <= 0 || config.Advisor.CategoryShareThreshold > 1 {
		return fmt.Errorf("advisor.category_share_threshold must be in (0, 1], got: %f", config.Advisor.CategoryShareThreshold)
	}

	if config.Advisor.TargetSavingsRate < 0 || config.Advisor.TargetSavingsRate > 1 {
		return fmt.Errorf("advisor.target_savings_rate must be in [0, 1], got: %f", config.Advisor.TargetSavingsRate)
	}

	if config.Savings.Rate <= 0 || config.Savings.Rate > 1 {
		return fmt.Errorf("savings.rate must be in (0, 1], got: %f", config.Savings.Rate)
	}

	if config.Subscriptions.AmountTolerance < 0 {
		return fmt.Errorf("subscriptions.amount_tolerance must not be negative, got: %f", config.Subscriptions.AmountTolerance)
	}

	if config.Subscriptions.MinOccurrences < 2 {
		return fmt.Errorf("subscriptions.min_occurrences must be at least 2, got: %d", config.Subscriptions.MinOccurrences)
	}

	if config.Web.Addr == "" {
		return fmt.Errorf("web.addr must not be empty")
	}

	if config.Web.MaxUploadBytes <= 0 {
		return fmt.Errorf("web.max_upload_bytes must be positive, got: %d", config.Web.MaxUploadBytes)
	}

	return nil
}

// ConfigureLogging builds a logrus logger from the Log section.
func ConfigureLogging(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

// Delimiter returns the configured CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	return []rune(c.CSV.Delimiter)[0]
}
