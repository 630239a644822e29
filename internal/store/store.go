// Package store persists Game Project aggregates. One document per
// project, keyed by its identifier, scenes embedded as a sub-sequence
// within the project document.
//
// The store offers no cross-call atomicity: a load→mutate→persist
// sequence in the caller races with concurrent writers. In-row scene
// appends are individually atomic, but their relative order across
// concurrent appenders is undefined, and updated_at is last-write-wins.
// Callers needing stronger guarantees must serialize per-project
// mutations themselves.
package store

import (
	"context"
	"errors"
	"time"

	"gameforge/internal/game"
)

// ErrNotFound reports a project id with no stored document.
var ErrNotFound = errors.New("project not found")

// ProjectStore is the persistence capability consumed by the pipeline.
// The handle is process-wide: constructed once at startup, shared across
// concurrent operations, released at shutdown.
type ProjectStore interface {
	// Insert persists a new project document.
	Insert(ctx context.Context, p *game.Project) error

	// UpdateFields sets the named fields on a stored project.
	// Unknown field names are rejected.
	UpdateFields(ctx context.Context, id string, fields map[string]any) error

	// AppendScene atomically appends one scene to the project's scene
	// sequence and advances updated_at.
	AppendScene(ctx context.Context, id string, sc game.Scene, updatedAt time.Time) error

	// Find returns the project with the given id, or ErrNotFound.
	Find(ctx context.Context, id string) (*game.Project, error)

	// List returns up to limit projects ordered by creation time,
	// newest first.
	List(ctx context.Context, limit int) ([]*game.Project, error)

	// Delete removes a project and reports how many documents were
	// removed (0 or 1).
	Delete(ctx context.Context, id string) (int64, error)

	// Close releases the underlying connection.
	Close() error
}
