package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"gameforge/internal/extract"
	"gameforge/internal/llm"
)

const arcadeSchema = `{
  "game_name": "Neon Descent",
  "genre": "arcade",
  "story_premise": "a courier dives through a collapsing arcology",
  "main_character": {"name": "Kite", "description": "a wiry courier", "abilities": ["dash"]},
  "initial_scene": {
    "scene_id": "scene_001",
    "setting": "rooftop landing pad at dusk",
    "characters": ["Kite"],
    "player_action": "leap between collapsing platforms",
    "mechanic": "timed jumps",
    "success_outcome": "reaches the lower tier",
    "failure_outcome": "falls into the void",
    "video_length_seconds": 10,
    "camera": "tracking side view",
    "character_pose": "mid-leap",
    "environment_motion": "crumbling ledges"
  },
  "game_state": {"player_health": 100, "score": 0, "level": 1, "inventory": []},
  "next_scene_prompts": ["the mid-tier market", "a rooftop chase"]
}`

func TestPipeline_GenerateGame(t *testing.T) {
	client := &MockClient{
		CompleteFunc: func(ctx context.Context, req llm.Request) (string, error) {
			return "```json\n" + arcadeSchema + "\n```", nil
		},
	}
	st := NewMockStore()
	p := newTestPipeline(client, st)

	res, err := p.GenerateGame(context.Background(), GenerateGameRequest{
		Prompt:               "a courier dives through a collapsing arcology",
		Genre:                "arcade",
		CharacterDescription: "a wiry courier",
		ControlScheme:        "dpad_buttons",
		TargetPlatform:       "javascript",
	})
	if err != nil {
		t.Fatalf("GenerateGame() error = %v", err)
	}

	if len(st.Inserted) != 1 {
		t.Fatalf("Inserted = %d projects, want 1", len(st.Inserted))
	}
	project := st.Inserted[0]
	if project.Name != "Neon Descent" {
		t.Fatalf("Name = %q, want Neon Descent from schema", project.Name)
	}
	if len(project.Scenes) != 1 {
		t.Fatalf("Scenes = %d, want exactly one seeded scene", len(project.Scenes))
	}
	if project.Scenes[0].ID != "scene_001" {
		t.Fatalf("seed scene ID = %q, want scene_001", project.Scenes[0].ID)
	}
	if !project.CreatedAt.Equal(project.UpdatedAt) {
		t.Fatalf("CreatedAt %v != UpdatedAt %v on creation", project.CreatedAt, project.UpdatedAt)
	}
	if project.ID == "" {
		t.Fatal("project ID must be generated")
	}
	for _, key := range []string{"player_health", "score", "level"} {
		if _, ok := project.GameState[key]; !ok {
			t.Fatalf("GameState missing %q: %v", key, project.GameState)
		}
	}
	if len(res.NextScenePrompts) != 2 {
		t.Fatalf("NextScenePrompts = %v, want 2 entries", res.NextScenePrompts)
	}
	if res.Schema["game_name"] != "Neon Descent" {
		t.Fatalf("Schema not returned raw: %v", res.Schema["game_name"])
	}
	if res.Project != project {
		t.Fatal("result must carry the persisted project")
	}

	if len(client.CompleteRequests) != 1 {
		t.Fatalf("backend calls = %d, want 1", len(client.CompleteRequests))
	}
	req := client.CompleteRequests[0]
	if !strings.HasPrefix(req.SessionID, "game-gen-") {
		t.Fatalf("SessionID = %q, want game-gen prefix", req.SessionID)
	}
	if !strings.Contains(req.Prompt, "collapsing arcology") {
		t.Fatal("prompt must embed the caller's free text")
	}
	if !strings.Contains(req.Prompt, "initial_scene") {
		t.Fatal("prompt must embed the structural contract")
	}
}

func TestPipeline_GenerateGame_NamePrecedence(t *testing.T) {
	cases := []struct {
		name     string
		reqName  string
		schema   string
		wantName string
	}{
		{"request name wins", "My Game", arcadeSchema, "My Game"},
		{"schema name when request empty", "", arcadeSchema, "Neon Descent"},
		{"fallback when both absent", "", `{"initial_scene": {}}`, "Untitled Game"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := &MockClient{
				CompleteFunc: func(ctx context.Context, req llm.Request) (string, error) {
					return tc.schema, nil
				},
			}
			st := NewMockStore()
			p := newTestPipeline(client, st)

			res, err := p.GenerateGame(context.Background(), GenerateGameRequest{
				Prompt: "x", Genre: "arcade", Name: tc.reqName,
			})
			if err != nil {
				t.Fatalf("GenerateGame() error = %v", err)
			}
			if res.Project.Name != tc.wantName {
				t.Fatalf("Name = %q, want %q", res.Project.Name, tc.wantName)
			}
		})
	}
}

func TestPipeline_GenerateGame_DefaultsWhenSchemaSparse(t *testing.T) {
	client := &MockClient{
		CompleteFunc: func(ctx context.Context, req llm.Request) (string, error) {
			return `{"game_name": "Bare"}`, nil
		},
	}
	st := NewMockStore()
	p := newTestPipeline(client, st)

	res, err := p.GenerateGame(context.Background(), GenerateGameRequest{
		Prompt: "x", Genre: "puzzle",
	})
	if err != nil {
		t.Fatalf("GenerateGame() error = %v", err)
	}
	project := res.Project
	if project.Scenes[0].ID != "scene_001" {
		t.Fatalf("seed scene ID = %q, want scene_001 default", project.Scenes[0].ID)
	}
	if project.Scenes[0].VideoLengthSecs != extract.DefaultResponseSceneSeconds {
		t.Fatalf("VideoLengthSecs = %d, want %d", project.Scenes[0].VideoLengthSecs, extract.DefaultResponseSceneSeconds)
	}
	if project.GameState["player_health"] != 100 {
		t.Fatalf("GameState = %v, want default state", project.GameState)
	}
	if len(res.NextScenePrompts) != 0 {
		t.Fatalf("NextScenePrompts = %v, want empty", res.NextScenePrompts)
	}
}

func TestPipeline_GenerateGame_NormalizesEnums(t *testing.T) {
	client := &MockClient{
		CompleteFunc: func(ctx context.Context, req llm.Request) (string, error) {
			return arcadeSchema, nil
		},
	}
	st := NewMockStore()
	p := newTestPipeline(client, st)

	res, err := p.GenerateGame(context.Background(), GenerateGameRequest{
		Prompt:         "x",
		Genre:          "arcade",
		ControlScheme:  "thought_control",
		TargetPlatform: "dreamcast",
	})
	if err != nil {
		t.Fatalf("GenerateGame() error = %v", err)
	}
	if res.Project.ControlScheme != "dpad_buttons" {
		t.Fatalf("ControlScheme = %q, want dpad_buttons fallback", res.Project.ControlScheme)
	}
	if res.Project.TargetPlatform != "javascript" {
		t.Fatalf("TargetPlatform = %q, want javascript fallback", res.Project.TargetPlatform)
	}
}

func TestPipeline_GenerateGame_BackendError(t *testing.T) {
	client := &MockClient{
		CompleteFunc: func(ctx context.Context, req llm.Request) (string, error) {
			return "", fmt.Errorf("api returned status 500")
		},
	}
	st := NewMockStore()
	p := newTestPipeline(client, st)

	_, err := p.GenerateGame(context.Background(), GenerateGameRequest{Prompt: "x", Genre: "arcade"})
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("GenerateGame() error = %v, want ErrGenerationFailed", err)
	}
	if len(st.Inserted) != 0 {
		t.Fatal("no project may be persisted on failure")
	}
}

func TestPipeline_GenerateGame_Timeout(t *testing.T) {
	client := &MockClient{
		CompleteFunc: func(ctx context.Context, req llm.Request) (string, error) {
			return "", fmt.Errorf("call: %w", context.DeadlineExceeded)
		},
	}
	st := NewMockStore()
	p := newTestPipeline(client, st)

	_, err := p.GenerateGame(context.Background(), GenerateGameRequest{Prompt: "x", Genre: "arcade"})
	if !errors.Is(err, ErrGenerationTimeout) {
		t.Fatalf("GenerateGame() error = %v, want ErrGenerationTimeout", err)
	}
	if len(st.Inserted) != 0 {
		t.Fatal("no project may be persisted on timeout")
	}
}

func TestPipeline_GenerateGame_MalformedOutput(t *testing.T) {
	client := &MockClient{
		CompleteFunc: func(ctx context.Context, req llm.Request) (string, error) {
			return "I cannot produce JSON today", nil
		},
	}
	st := NewMockStore()
	p := newTestPipeline(client, st)

	_, err := p.GenerateGame(context.Background(), GenerateGameRequest{Prompt: "x", Genre: "arcade"})
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("GenerateGame() error = %v, want ErrGenerationFailed", err)
	}
	var malformed *extract.MalformedOutputError
	if !errors.As(err, &malformed) {
		t.Fatalf("cause = %T, want *extract.MalformedOutputError on the chain", err)
	}
	if malformed.Raw != "I cannot produce JSON today" {
		t.Fatalf("Raw = %q, want original backend text", malformed.Raw)
	}
	if len(st.Inserted) != 0 {
		t.Fatal("no project may be persisted on malformed output")
	}
}
