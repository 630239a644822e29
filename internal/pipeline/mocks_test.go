package pipeline

import (
	"context"
	"fmt"
	"time"

	"gameforge/internal/game"
	"gameforge/internal/llm"
	"gameforge/internal/store"
)

// --- MockClient ---

type MockClient struct {
	CompleteFunc           func(ctx context.Context, req llm.Request) (string, error)
	CompleteMultimodalFunc func(ctx context.Context, req llm.Request) (*llm.MultimodalResponse, error)

	// State for verification
	CompleteRequests   []llm.Request
	MultimodalRequests []llm.Request
}

func (m *MockClient) Complete(ctx context.Context, req llm.Request) (string, error) {
	m.CompleteRequests = append(m.CompleteRequests, req)
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	return "", nil
}

func (m *MockClient) CompleteMultimodal(ctx context.Context, req llm.Request) (*llm.MultimodalResponse, error) {
	m.MultimodalRequests = append(m.MultimodalRequests, req)
	if m.CompleteMultimodalFunc != nil {
		return m.CompleteMultimodalFunc(ctx, req)
	}
	return &llm.MultimodalResponse{}, nil
}

// --- MockStore ---

type MockStore struct {
	FindFunc func(ctx context.Context, id string) (*game.Project, error)

	// State for verification
	Inserted       []*game.Project
	Updated        map[string]map[string]any
	AppendedScenes map[string][]game.Scene
	Deleted        []string
}

func NewMockStore() *MockStore {
	return &MockStore{
		Updated:        make(map[string]map[string]any),
		AppendedScenes: make(map[string][]game.Scene),
	}
}

func (m *MockStore) Insert(ctx context.Context, p *game.Project) error {
	m.Inserted = append(m.Inserted, p)
	return nil
}

func (m *MockStore) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	if m.FindFunc != nil {
		if _, err := m.FindFunc(ctx, id); err != nil {
			return err
		}
	}
	m.Updated[id] = fields
	return nil
}

func (m *MockStore) AppendScene(ctx context.Context, id string, sc game.Scene, updatedAt time.Time) error {
	if m.FindFunc != nil {
		if _, err := m.FindFunc(ctx, id); err != nil {
			return err
		}
	}
	m.AppendedScenes[id] = append(m.AppendedScenes[id], sc)
	return nil
}

func (m *MockStore) Find(ctx context.Context, id string) (*game.Project, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, id)
	}
	return nil, fmt.Errorf("find %s: %w", id, store.ErrNotFound)
}

func (m *MockStore) List(ctx context.Context, limit int) ([]*game.Project, error) {
	return nil, nil
}

func (m *MockStore) Delete(ctx context.Context, id string) (int64, error) {
	m.Deleted = append(m.Deleted, id)
	return 1, nil
}

func (m *MockStore) Close() error { return nil }

// newTestPipeline wires a pipeline with deterministic time and ids.
func newTestPipeline(client *MockClient, st store.ProjectStore) *Pipeline {
	n := 0
	return New(Config{
		Client: client,
		Store:  st,
		Now:    func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) },
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	})
}
