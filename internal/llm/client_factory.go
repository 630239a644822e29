package llm

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// Provider names a generation backend.
type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderAnthropic Provider = "anthropic"
)

// ProviderConfig holds the resolved provider and its settings.
type ProviderConfig struct {
	Provider   Provider
	APIKey     string
	BaseURL    string
	Model      string // optional model override
	ImageModel string // optional image model override (gemini only)
	Timeout    time.Duration
	Logger     *zap.Logger
}

// DetectProvider resolves a provider from environment variables.
// Priority: GEMINI_API_KEY > ANTHROPIC_API_KEY.
func DetectProvider() (*ProviderConfig, error) {
	providers := []struct {
		envVar   string
		provider Provider
	}{
		{"GEMINI_API_KEY", ProviderGemini},
		{"ANTHROPIC_API_KEY", ProviderAnthropic},
	}

	for _, p := range providers {
		if key := os.Getenv(p.envVar); key != "" {
			return &ProviderConfig{Provider: p.provider, APIKey: key}, nil
		}
	}

	return nil, fmt.Errorf("no API key found; set GEMINI_API_KEY or ANTHROPIC_API_KEY")
}

// NewClient creates a backend client for the configured provider.
func NewClient(cfg ProviderConfig) (Client, error) {
	switch cfg.Provider {
	case ProviderGemini, "":
		return NewGeminiClientWithConfig(GeminiConfig{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			ImageModel: cfg.ImageModel,
			Timeout:    cfg.Timeout,
			Logger:     cfg.Logger,
		}), nil
	case ProviderAnthropic:
		return NewAnthropicClientWithConfig(AnthropicConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		}), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

// NewClientFromEnv creates a client from environment variables.
func NewClientFromEnv() (Client, error) {
	cfg, err := DetectProvider()
	if err != nil {
		return nil, err
	}
	return NewClient(*cfg)
}
