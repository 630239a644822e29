// Package llm adapts generation backends behind a single interface.
// Backends are treated as opaque and possibly non-conformant: they
// accept a system instruction, a per-call session identifier, a model
// selector and a user message, and return free text or text plus image
// artifacts. Every call carries a fresh session id; no conversation
// state is reused across calls.
package llm

import (
	"context"
	"errors"
)

// Request is one self-contained completion exchange.
type Request struct {
	System    string // system instruction
	SessionID string // scopes backend-side context to this one call
	Model     string // model selector; empty uses the client default
	Prompt    string // user message
}

// Image is one encoded image artifact returned by a multimodal call.
type Image struct {
	MIMEType string
	Data     string // base64 payload
}

// MultimodalResponse carries the text commentary and any image
// artifacts a multimodal call produced. Zero images with a nil error is
// a normal outcome, distinct from an adapter failure.
type MultimodalResponse struct {
	Text   string
	Images []Image
}

// Client is the generation backend adapter consumed by the pipeline.
type Client interface {
	// Complete returns the backend's free-form text response.
	Complete(ctx context.Context, req Request) (string, error)

	// CompleteMultimodal invokes the backend in image-output mode.
	CompleteMultimodal(ctx context.Context, req Request) (*MultimodalResponse, error)
}

// ErrImageOutputUnsupported is returned by CompleteMultimodal when the
// configured provider has no image-output capability at all, as opposed
// to a capable provider producing zero images for one request.
var ErrImageOutputUnsupported = errors.New("provider does not support image output")
