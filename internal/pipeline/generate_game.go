package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"gameforge/internal/extract"
	"gameforge/internal/game"
	"gameforge/internal/llm"
)

const seedSceneID = "scene_001"

// GenerateGameRequest describes a new game concept. ControlScheme and
// TargetPlatform are free text at this boundary; unrecognized values
// are coerced to the defaults, never persisted uninterpreted.
type GenerateGameRequest struct {
	Prompt               string
	Genre                string
	CharacterDescription string
	ControlScheme        string
	TargetPlatform       string
	Name                 string // optional; the schema's game_name is used when empty
}

// GenerateGameResult is the full outcome of game generation: the
// persisted project, the raw schema document the backend produced, and
// its suggested follow-up scene prompts.
type GenerateGameResult struct {
	Project          *game.Project  `json:"game"`
	Schema           map[string]any `json:"schema"`
	NextScenePrompts []string       `json:"next_scene_prompts"`
}

// GenerateGame turns a free-text concept into a persisted project
// seeded with one scene. Backend and validation failures surface as
// ErrGenerationFailed (or ErrGenerationTimeout) with the triggering
// cause on the chain; nothing is persisted on failure.
func (p *Pipeline) GenerateGame(ctx context.Context, req GenerateGameRequest) (*GenerateGameResult, error) {
	scheme := game.NormalizeControlScheme(req.ControlScheme)
	platform := game.NormalizeTargetPlatform(req.TargetPlatform)

	callCtx, cancel := context.WithTimeout(ctx, p.textTimeout)
	defer cancel()

	raw, err := p.client.Complete(callCtx, llm.Request{
		System:    schemaSystemPrompt,
		SessionID: p.sessionID("game-gen"),
		Prompt:    buildSchemaPrompt(req.Prompt, req.Genre, req.CharacterDescription, scheme),
	})
	if err != nil {
		return nil, wrapBackendErr("generate game", err)
	}

	doc, err := extract.Document(extract.StripFences(raw))
	if err != nil {
		return nil, wrapBackendErr("generate game", err)
	}

	initial, err := extract.Scene(extract.ObjectField(doc, "initial_scene"), extract.PolicyLenient)
	if err != nil {
		return nil, wrapBackendErr("generate game", err)
	}
	if initial.ID == "" {
		initial.ID = seedSceneID
	}

	state := game.DefaultState()
	if m, ok := doc["game_state"].(map[string]any); ok {
		state = game.State(m)
	}

	name := req.Name
	if name == "" {
		name = extract.StringField(doc, "game_name")
	}
	if name == "" {
		name = "Untitled Game"
	}

	now := p.now().UTC()
	project := &game.Project{
		ID:                   p.newID(),
		Name:                 name,
		Genre:                req.Genre,
		Prompt:               req.Prompt,
		CharacterDescription: req.CharacterDescription,
		ControlScheme:        scheme,
		TargetPlatform:       platform,
		Scenes:               []game.Scene{initial},
		GameState:            state,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := p.store.Insert(ctx, project); err != nil {
		return nil, fmt.Errorf("persist project: %w", err)
	}

	p.logger.Info("game generated",
		zap.String("id", project.ID),
		zap.String("name", project.Name),
		zap.String("genre", project.Genre))

	return &GenerateGameResult{
		Project:          project,
		Schema:           doc,
		NextScenePrompts: extract.StringsField(doc, "next_scene_prompts"),
	}, nil
}
