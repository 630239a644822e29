// Package config loads service configuration from a YAML file with
// environment-variable overrides. A missing file yields the defaults,
// so the service runs with nothing but an API key in the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds all gameforge configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	LLM      LLMConfig      `yaml:"llm"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string `yaml:"host" env:"GAMEFORGE_HOST"`
	Port            int    `yaml:"port" env:"GAMEFORGE_PORT"`
	ShutdownTimeout string `yaml:"shutdown_timeout" env:"GAMEFORGE_SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig configures project storage.
type DatabaseConfig struct {
	Path string `yaml:"path" env:"GAMEFORGE_DB"`
}

// LLMConfig configures the generation backend.
type LLMConfig struct {
	Provider   string `yaml:"provider" env:"GAMEFORGE_LLM_PROVIDER"`
	APIKey     string `yaml:"api_key" env:"GAMEFORGE_API_KEY"`
	Model      string `yaml:"model" env:"GAMEFORGE_MODEL"`
	ImageModel string `yaml:"image_model" env:"GAMEFORGE_IMAGE_MODEL"`
	BaseURL    string `yaml:"base_url" env:"GAMEFORGE_LLM_BASE_URL"`

	// TextTimeout bounds text-only generation calls. The multimodal
	// timeout must be strictly larger; image output is slower by an
	// order of magnitude.
	TextTimeout       string `yaml:"text_timeout" env:"GAMEFORGE_TEXT_TIMEOUT"`
	MultimodalTimeout string `yaml:"multimodal_timeout" env:"GAMEFORGE_MULTIMODAL_TIMEOUT"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"GAMEFORGE_LOG_LEVEL"`   // debug, info, warn, error
	Format string `yaml:"format" env:"GAMEFORGE_LOG_FORMAT"` // json, console
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8001,
			ShutdownTimeout: "10s",
		},
		Database: DatabaseConfig{
			Path: "data/gameforge.db",
		},
		LLM: LLMConfig{
			TextTimeout:       "60s",
			MultimodalTimeout: "180s",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from a YAML file and applies environment
// overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// GetTextTimeout returns the text-generation timeout as a duration.
func (c *Config) GetTextTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.TextTimeout)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}

// GetMultimodalTimeout returns the multimodal timeout as a duration.
func (c *Config) GetMultimodalTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.MultimodalTimeout)
	if err != nil || d <= 0 {
		return 180 * time.Second
	}
	return d
}

// GetShutdownTimeout returns the graceful-shutdown budget.
func (c *Config) GetShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// Addr returns the host:port the HTTP server binds.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
