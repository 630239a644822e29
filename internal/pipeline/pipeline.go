// Package pipeline composes the generation backend, response
// extraction and the project store into the five public operations:
// game generation, scene addition, code generation, preview images and
// video-scene frames.
//
// Each operation is one request→backend round trip→persist→respond
// unit; operations on the same project may run concurrently and the
// pipeline does not serialize the load→mutate→persist sequence. The
// store's in-row appends are atomic, but the relative order of
// concurrent appends is undefined.
package pipeline

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gameforge/internal/llm"
	"gameforge/internal/store"
)

const (
	defaultTextTimeout       = 60 * time.Second
	defaultMultimodalTimeout = 180 * time.Second
)

// Config assembles a Pipeline.
type Config struct {
	Client llm.Client
	Store  store.ProjectStore
	Logger *zap.Logger

	// TextTimeout bounds text-only backend calls. MultimodalTimeout
	// bounds image-producing calls and must be strictly larger; it is
	// bumped if configured otherwise.
	TextTimeout       time.Duration
	MultimodalTimeout time.Duration

	// Now and NewID are overridable for tests.
	Now   func() time.Time
	NewID func() string
}

// Pipeline orchestrates the content-generation operations.
type Pipeline struct {
	client            llm.Client
	store             store.ProjectStore
	logger            *zap.Logger
	textTimeout       time.Duration
	multimodalTimeout time.Duration
	now               func() time.Time
	newID             func() string
}

// New creates a pipeline. The store handle is owned by the caller and
// shared; the pipeline never closes it.
func New(cfg Config) *Pipeline {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.TextTimeout <= 0 {
		cfg.TextTimeout = defaultTextTimeout
	}
	if cfg.MultimodalTimeout <= cfg.TextTimeout {
		cfg.MultimodalTimeout = cfg.TextTimeout + defaultMultimodalTimeout - defaultTextTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	return &Pipeline{
		client:            cfg.Client,
		store:             cfg.Store,
		logger:            cfg.Logger,
		textTimeout:       cfg.TextTimeout,
		multimodalTimeout: cfg.MultimodalTimeout,
		now:               cfg.Now,
		newID:             cfg.NewID,
	}
}

// sessionID mints a fresh backend conversation scope for one call.
func (p *Pipeline) sessionID(kind string) string {
	return kind + "-" + p.newID()
}
