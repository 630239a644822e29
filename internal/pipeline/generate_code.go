package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"gameforge/internal/game"
	"gameforge/internal/llm"
)

// CodeResult carries the generated source blob and the platform whose
// template produced it.
type CodeResult struct {
	Code     string              `json:"code"`
	Platform game.TargetPlatform `json:"platform"`
}

// GenerateCode produces platform-specific source for a stored project
// and persists it into the project's generated_code field. The
// backend's response is treated as opaque code, not parsed or
// validated. Returns store.ErrNotFound when the project is absent.
func (p *Pipeline) GenerateCode(ctx context.Context, projectID string) (*CodeResult, error) {
	project, err := p.store.Find(ctx, projectID)
	if err != nil {
		return nil, err
	}

	// Stored documents predating enum coercion may carry arbitrary
	// platform strings; unknown values use the JavaScript template.
	platform := game.NormalizeTargetPlatform(string(project.TargetPlatform))

	callCtx, cancel := context.WithTimeout(ctx, p.textTimeout)
	defer cancel()

	code, err := p.client.Complete(callCtx, llm.Request{
		System:    codeSystemPrompt,
		SessionID: p.sessionID("code-gen"),
		Prompt:    buildCodePrompt(project, platform),
	})
	if err != nil {
		return nil, wrapBackendErr("generate code", err)
	}

	err = p.store.UpdateFields(ctx, projectID, map[string]any{
		"generated_code": code,
		"updated_at":     p.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("persist generated code: %w", err)
	}

	p.logger.Info("code generated",
		zap.String("game_id", projectID),
		zap.String("platform", string(platform)),
		zap.Int("bytes", len(code)))

	return &CodeResult{Code: code, Platform: platform}, nil
}
