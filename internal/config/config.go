// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds client configuration values loaded from file or environment
// variables.
type Config struct {
	APIBaseURL     string  `mapstructure:"API_BASE_URL"`
	APIToken       string  `mapstructure:"API_TOKEN"`
	TokenPath      string  `mapstructure:"TOKEN_PATH"`
	RequestTimeout int     `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
	PageSize       int     `mapstructure:"PAGE_SIZE"`
	LogLevel       string  `mapstructure:"LOG_LEVEL"`
	Env            string  `mapstructure:"APP_ENV"`
	TracingEnabled bool    `mapstructure:"TRACING_ENABLED"`
	TraceExporter  string  `mapstructure:"TRACE_EXPORTER"`
	OTLPEndpoint   string  `mapstructure:"OTLP_ENDPOINT"`
	TraceSample    float64 `mapstructure:"TRACE_SAMPLE_RATIO"`
}

// LoadConfig loads client configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".makernet"))
	}
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The config file is optional; environment variables and defaults are
	// enough to run against a local server.
	_ = viper.ReadInConfig()

	viper.SetDefault("API_BASE_URL", "http://localhost:4000/api/v1")
	viper.SetDefault("API_TOKEN", "")
	viper.SetDefault("TOKEN_PATH", defaultTokenPath())
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", 15)
	viper.SetDefault("PAGE_SIZE", 20)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACE_EXPORTER", "stdout")
	viper.SetDefault("OTLP_ENDPOINT", "localhost:4318")
	viper.SetDefault("TRACE_SAMPLE_RATIO", 1.0)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present and sane.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("API_BASE_URL is required")
	}
	if _, err := url.ParseRequestURI(c.APIBaseURL); err != nil {
		return fmt.Errorf("API_BASE_URL is not a valid URL: %w", err)
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT_SECONDS must be positive")
	}
	if c.PageSize < 1 || c.PageSize > 100 {
		return errors.New("PAGE_SIZE must be between 1 and 100")
	}
	if c.TracingEnabled && c.TraceExporter == "otlp" && c.OTLPEndpoint == "" {
		return errors.New("OTLP_ENDPOINT is required when TRACE_EXPORTER is otlp")
	}
	return nil
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".makernet/token"
	}
	return filepath.Join(home, ".makernet", "token")
}
