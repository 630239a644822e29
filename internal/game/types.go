// Package game defines the domain model for generated game projects:
// the Project aggregate, its embedded Scenes, and the enumerated
// control schemes and target platforms the generator recognizes.
package game

import (
	"time"
)

// ControlScheme is the input model a generated game targets.
type ControlScheme string

const (
	// ControlSchemeDpadButtons is a classic D-Pad plus A/B/C/D button layout.
	ControlSchemeDpadButtons ControlScheme = "dpad_buttons"
	// ControlSchemeSwipe is touch-based swipe/tap control.
	ControlSchemeSwipe ControlScheme = "swipe"
)

// DefaultControlScheme is used when a request carries an unrecognized scheme.
const DefaultControlScheme = ControlSchemeDpadButtons

// ParseControlScheme reports whether s names a known control scheme.
func ParseControlScheme(s string) (ControlScheme, bool) {
	switch ControlScheme(s) {
	case ControlSchemeDpadButtons, ControlSchemeSwipe:
		return ControlScheme(s), true
	}
	return "", false
}

// NormalizeControlScheme coerces unrecognized values to the default so
// free-text input never reaches the store uninterpreted.
func NormalizeControlScheme(s string) ControlScheme {
	if cs, ok := ParseControlScheme(s); ok {
		return cs
	}
	return DefaultControlScheme
}

// TargetPlatform selects which code generation template a project uses.
type TargetPlatform string

const (
	// PlatformJavaScript targets an HTML5 canvas game playable in a browser.
	PlatformJavaScript TargetPlatform = "javascript"
	// PlatformUnity targets Unity C# scripts.
	PlatformUnity TargetPlatform = "unity"
	// PlatformUnreal targets Unreal Engine C++ code.
	PlatformUnreal TargetPlatform = "unreal"
)

// DefaultPlatform is the fallback for unrecognized platform values.
const DefaultPlatform = PlatformJavaScript

// ParseTargetPlatform reports whether s names a known platform.
func ParseTargetPlatform(s string) (TargetPlatform, bool) {
	switch TargetPlatform(s) {
	case PlatformJavaScript, PlatformUnity, PlatformUnreal:
		return TargetPlatform(s), true
	}
	return "", false
}

// NormalizeTargetPlatform coerces unrecognized values to the default.
func NormalizeTargetPlatform(s string) TargetPlatform {
	if tp, ok := ParseTargetPlatform(s); ok {
		return tp
	}
	return DefaultPlatform
}

// DefaultSceneSeconds is the target duration of a scene when nothing
// else specifies one.
const DefaultSceneSeconds = 6

// Scene is one beat of gameplay. Scenes are immutable once appended to a
// project; there is no in-place scene edit.
type Scene struct {
	ID                string   `json:"scene_id"`
	Setting           string   `json:"setting"`
	Characters        []string `json:"characters"`
	PlayerAction      string   `json:"player_action"`
	Mechanic          string   `json:"mechanic"`
	SuccessOutcome    string   `json:"success_outcome"`
	FailureOutcome    string   `json:"failure_outcome"`
	VideoLengthSecs   int      `json:"video_length_seconds"`
	Camera            *string  `json:"camera"`
	CharacterPose     *string  `json:"character_pose"`
	EnvironmentMotion *string  `json:"environment_motion"`
}

// State is the open key-value game-state bag (health, score, level,
// inventory and whatever else the generator produces).
type State map[string]any

// DefaultState seeds a project whose schema response carried no state bag.
func DefaultState() State {
	return State{
		"player_health": 100,
		"score":         0,
		"level":         1,
	}
}

// Project is the aggregate root describing one generated game concept.
// The identifier is immutable after creation, the scene sequence only
// grows, and UpdatedAt advances on every mutation.
type Project struct {
	ID                   string         `json:"id"`
	Name                 string         `json:"name"`
	Genre                string         `json:"genre"`
	Prompt               string         `json:"prompt"`
	CharacterDescription string         `json:"character_description"`
	ControlScheme        ControlScheme  `json:"control_scheme"`
	TargetPlatform       TargetPlatform `json:"target_platform"`
	Scenes               []Scene        `json:"scenes"`
	GameState            State          `json:"game_state"`
	GeneratedCode        string         `json:"generated_code,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}
