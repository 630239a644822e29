package pipeline

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrGenerationFailed wraps a backend or validation failure inside
	// a stateful operation. The triggering cause stays on the chain, so
	// errors.As still surfaces an extract.MalformedOutputError.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrGenerationTimeout marks a backend call that exceeded its
	// deadline.
	ErrGenerationTimeout = errors.New("generation deadline exceeded")
)

// wrapBackendErr tags an adapter error with the pipeline taxonomy,
// distinguishing deadline expiry from other failures.
func wrapBackendErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %w", op, ErrGenerationTimeout, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrGenerationFailed, err)
}
