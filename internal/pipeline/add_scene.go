package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"gameforge/internal/extract"
	"gameforge/internal/game"
	"gameforge/internal/llm"
)

// AddScene generates one more scene for an existing project and
// appends it. The prompt carries the current scene count so the
// backend can number the next scene, but the suggested identifier is
// advisory; a duplicate scene_id from the backend is kept as-is.
// Returns store.ErrNotFound when the project does not exist.
func (p *Pipeline) AddScene(ctx context.Context, projectID, scenePrompt string) (*game.Scene, error) {
	project, err := p.store.Find(ctx, projectID)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, p.textTimeout)
	defer cancel()

	raw, err := p.client.Complete(callCtx, llm.Request{
		System:    sceneSystemPrompt,
		SessionID: p.sessionID("scene-gen"),
		Prompt:    buildScenePrompt(project, scenePrompt),
	})
	if err != nil {
		return nil, wrapBackendErr("add scene", err)
	}

	scene, err := extract.SceneFromText(raw, extract.PolicyLenient)
	if err != nil {
		return nil, fmt.Errorf("add scene: %w", err)
	}
	if scene.ID == "" {
		scene.ID = suggestedSceneID(len(project.Scenes) + 1)
	}

	if err := p.store.AppendScene(ctx, projectID, scene, p.now().UTC()); err != nil {
		return nil, fmt.Errorf("append scene: %w", err)
	}

	p.logger.Info("scene added",
		zap.String("game_id", projectID),
		zap.String("scene_id", scene.ID))

	return &scene, nil
}
