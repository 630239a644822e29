package llm

import (
	"context"
	"errors"
	"testing"
)

func TestDetectProvider_PriorityOrder(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("ANTHROPIC_API_KEY", "a-key")

	cfg, err := DetectProvider()
	if err != nil {
		t.Fatalf("DetectProvider() error = %v", err)
	}
	if cfg.Provider != ProviderGemini {
		t.Fatalf("Provider = %q, want gemini first", cfg.Provider)
	}
	if cfg.APIKey != "g-key" {
		t.Fatalf("APIKey = %q, want g-key", cfg.APIKey)
	}
}

func TestDetectProvider_AnthropicFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "a-key")

	cfg, err := DetectProvider()
	if err != nil {
		t.Fatalf("DetectProvider() error = %v", err)
	}
	if cfg.Provider != ProviderAnthropic {
		t.Fatalf("Provider = %q, want anthropic", cfg.Provider)
	}
}

func TestDetectProvider_NoKeys(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	if _, err := DetectProvider(); err == nil {
		t.Fatal("DetectProvider() error = nil, want missing key failure")
	}
}

func TestNewClient_ByProvider(t *testing.T) {
	gem, err := NewClient(ProviderConfig{Provider: ProviderGemini, APIKey: "k"})
	if err != nil {
		t.Fatalf("NewClient(gemini) error = %v", err)
	}
	if _, ok := gem.(*GeminiClient); !ok {
		t.Fatalf("NewClient(gemini) = %T, want *GeminiClient", gem)
	}

	anth, err := NewClient(ProviderConfig{Provider: ProviderAnthropic, APIKey: "k"})
	if err != nil {
		t.Fatalf("NewClient(anthropic) error = %v", err)
	}
	if _, ok := anth.(*AnthropicClient); !ok {
		t.Fatalf("NewClient(anthropic) = %T, want *AnthropicClient", anth)
	}

	if _, err := NewClient(ProviderConfig{Provider: "openai"}); err == nil {
		t.Fatal("NewClient(openai) error = nil, want unknown provider failure")
	}
}

func TestAnthropicClient_MultimodalUnsupported(t *testing.T) {
	client := NewAnthropicClient("k")
	_, err := client.CompleteMultimodal(context.Background(), Request{Prompt: "draw"})
	if !errors.Is(err, ErrImageOutputUnsupported) {
		t.Fatalf("CompleteMultimodal() error = %v, want ErrImageOutputUnsupported", err)
	}
}
