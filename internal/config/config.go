// Package config loads assistant configuration from the environment and
// an optional .env file.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DataDir         string        `mapstructure:"DATA_DIR"`
	RegistryURL     string        `mapstructure:"REGISTRY_URL"`
	RegistryTimeout time.Duration `mapstructure:"REGISTRY_TIMEOUT"`
	OpenAIAPIKey    string        `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel     string        `mapstructure:"OPENAI_MODEL"`
	MetricsAddr     string        `mapstructure:"METRICS_ADDR"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	SupportPhone    string        `mapstructure:"SUPPORT_PHONE"`
	SupportEmail    string        `mapstructure:"SUPPORT_EMAIL"`
}

// Load reads configuration from the environment, falling back to an
// optional .env file and defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("DATA_DIR", ".")
	v.SetDefault("REGISTRY_URL", "https://api.fda.gov")
	v.SetDefault("REGISTRY_TIMEOUT", "10s")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("METRICS_ADDR", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SUPPORT_PHONE", "1-866-640-3800")
	v.SetDefault("SUPPORT_EMAIL", "pharmacysupport@well.ca")

	// Bind env vars explicitly so Unmarshal picks them up.
	v.BindEnv("DATA_DIR")
	v.BindEnv("REGISTRY_URL")
	v.BindEnv("REGISTRY_TIMEOUT")
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("OPENAI_MODEL")
	v.BindEnv("METRICS_ADDR")
	v.BindEnv("LOG_LEVEL")
	v.BindEnv("SUPPORT_PHONE")
	v.BindEnv("SUPPORT_EMAIL")

	// A missing .env file is fine.
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// PrescriptionsFile is the durable prescription store path.
func (c *Config) PrescriptionsFile() string {
	return filepath.Join(c.DataDir, "prescriptions.json")
}

// UsersFile is the credential store path.
func (c *Config) UsersFile() string {
	return filepath.Join(c.DataDir, "users.json")
}

// RatingsFile is the service ratings log path.
func (c *Config) RatingsFile() string {
	return filepath.Join(c.DataDir, "ratings.json")
}

// ImprovementsFile is the review suggestions log path.
func (c *Config) ImprovementsFile() string {
	return filepath.Join(c.DataDir, "improvements.json")
}
