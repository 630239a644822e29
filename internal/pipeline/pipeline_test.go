package pipeline

import (
	"testing"
	"time"
)

func TestNew_TimeoutDefaults(t *testing.T) {
	p := New(Config{Client: &MockClient{}, Store: NewMockStore()})
	if p.textTimeout != defaultTextTimeout {
		t.Fatalf("textTimeout = %v, want %v", p.textTimeout, defaultTextTimeout)
	}
	if p.multimodalTimeout != defaultMultimodalTimeout {
		t.Fatalf("multimodalTimeout = %v, want %v", p.multimodalTimeout, defaultMultimodalTimeout)
	}
}

func TestNew_MultimodalTimeoutStrictlyLarger(t *testing.T) {
	cases := []struct {
		name       string
		text       time.Duration
		multimodal time.Duration
	}{
		{"equal budgets", 30 * time.Second, 30 * time.Second},
		{"inverted budgets", 120 * time.Second, 20 * time.Second},
		{"multimodal unset", 45 * time.Second, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := New(Config{
				Client:            &MockClient{},
				Store:             NewMockStore(),
				TextTimeout:       tc.text,
				MultimodalTimeout: tc.multimodal,
			})
			if p.multimodalTimeout <= p.textTimeout {
				t.Fatalf("multimodalTimeout %v must exceed textTimeout %v", p.multimodalTimeout, p.textTimeout)
			}
		})
	}
}

func TestPipeline_SessionIDFreshPerCall(t *testing.T) {
	p := newTestPipeline(&MockClient{}, NewMockStore())
	a := p.sessionID("game-gen")
	b := p.sessionID("game-gen")
	if a == b {
		t.Fatalf("sessionID reused: %q", a)
	}
}
