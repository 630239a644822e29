package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"gameforge/internal/game"
)

// MalformedOutputError reports backend text that did not parse or
// validate. Raw carries the offending text for diagnostics; nothing is
// silently substituted at this layer.
type MalformedOutputError struct {
	Raw string
	Err error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed generation output: %v", e.Err)
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

// Policy decides how the coercer treats a missing required field.
// The original service silently substituted empty strings everywhere,
// which can mask backend malfunction, so the choice is explicit here.
type Policy int

const (
	// PolicyLenient substitutes an empty string for a missing required
	// field and proceeds.
	PolicyLenient Policy = iota
	// PolicyStrict fails coercion when a required field is absent.
	PolicyStrict
)

// sceneRequiredFields are the fields a Scene cannot meaningfully lack.
var sceneRequiredFields = []string{
	"setting",
	"player_action",
	"mechanic",
	"success_outcome",
	"failure_outcome",
}

// DefaultResponseSceneSeconds is the duration default applied when a
// generation response omits video_length_seconds. The prompts ask the
// backend for 10-second beats, so the response-context default differs
// from game.DefaultSceneSeconds.
const DefaultResponseSceneSeconds = 10

// Document parses normalized backend text as a JSON object. Parse
// failure yields a MalformedOutputError carrying the raw text.
func Document(raw string) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, &MalformedOutputError{Raw: raw, Err: err}
	}
	return doc, nil
}

// Scene projects a schema document into a game.Scene. Missing optional
// fields take documented defaults (duration 10, empty participant list,
// nil directives); missing required fields are handled per policy.
// Unknown extra keys are ignored.
func Scene(doc map[string]any, policy Policy) (game.Scene, error) {
	if policy == PolicyStrict {
		var missing []string
		for _, f := range sceneRequiredFields {
			if stringField(doc, f) == "" {
				missing = append(missing, f)
			}
		}
		if len(missing) > 0 {
			return game.Scene{}, &MalformedOutputError{
				Raw: encode(doc),
				Err: fmt.Errorf("scene missing required fields: %s", strings.Join(missing, ", ")),
			}
		}
	}

	sc := game.Scene{
		ID:                stringField(doc, "scene_id"),
		Setting:           stringField(doc, "setting"),
		Characters:        stringSliceField(doc, "characters"),
		PlayerAction:      stringField(doc, "player_action"),
		Mechanic:          stringField(doc, "mechanic"),
		SuccessOutcome:    stringField(doc, "success_outcome"),
		FailureOutcome:    stringField(doc, "failure_outcome"),
		VideoLengthSecs:   intField(doc, "video_length_seconds", DefaultResponseSceneSeconds),
		Camera:            optionalStringField(doc, "camera"),
		CharacterPose:     optionalStringField(doc, "character_pose"),
		EnvironmentMotion: optionalStringField(doc, "environment_motion"),
	}
	return sc, nil
}

// SceneFromText normalizes, parses and coerces raw backend text into a
// Scene in one step.
func SceneFromText(raw string, policy Policy) (game.Scene, error) {
	doc, err := Document(StripFences(raw))
	if err != nil {
		return game.Scene{}, err
	}
	return Scene(doc, policy)
}

// ObjectField returns doc[key] as a nested object, or an empty map when
// the key is absent or not an object.
func ObjectField(doc map[string]any, key string) map[string]any {
	if m, ok := doc[key].(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// StringsField returns doc[key] as a string slice, dropping non-string
// elements. Absent or mistyped values yield an empty slice.
func StringsField(doc map[string]any, key string) []string {
	return stringSliceField(doc, key)
}

// StringField returns doc[key] as a string, or "" when absent.
func StringField(doc map[string]any, key string) string {
	return stringField(doc, key)
}

func stringField(doc map[string]any, key string) string {
	if s, ok := doc[key].(string); ok {
		return s
	}
	return ""
}

func optionalStringField(doc map[string]any, key string) *string {
	if s, ok := doc[key].(string); ok && s != "" {
		return &s
	}
	return nil
}

func stringSliceField(doc map[string]any, key string) []string {
	raw, ok := doc[key].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func intField(doc map[string]any, key string, fallback int) int {
	switch v := doc[key].(type) {
	case float64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return fallback
}

func encode(doc map[string]any) string {
	b, err := json.Marshal(doc)
	if err != nil {
		return ""
	}
	return string(b)
}
