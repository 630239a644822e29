package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"

	"gameforge/internal/game"
)

const schemaSystemPrompt = `You are an expert game designer AI. Generate detailed game schemas in JSON format.
You must return ONLY valid JSON without any markdown formatting or code blocks.
Follow the exact structure requested.`

const sceneSystemPrompt = "You are a game designer. Generate scene schemas in JSON format only."

const codeSystemPrompt = `You are an expert game developer. Generate production-ready game code.
Return ONLY the code without any explanations or markdown formatting.`

const imageSystemPrompt = "You are an expert game artist. Create high-quality game scene images."

// controlDescriptions explains each control scheme to the backend when
// generating a schema.
var controlDescriptions = map[game.ControlScheme]string{
	game.ControlSchemeDpadButtons: `Controls (D-Pad + ABCD Buttons):
- Left Hand: D-Pad for movement (Up/Down/Left/Right)
- Right Hand: A (Action/Shoot), B (Jump), C (Special/Kick), D (Boost/Special Weapon)`,
	game.ControlSchemeSwipe: `Controls (Swipe):
- Swipe Up/Down/Left/Right for movement
- Tap center for Action
- Double tap for Jump
- Long press for Special
- Two-finger tap for Boost`,
}

// controlMappings explains each control scheme to the backend when
// generating code.
var controlMappings = map[game.ControlScheme]string{
	game.ControlSchemeDpadButtons: `Control Mapping (D-Pad + ABCD):
- D-Pad Up: Move Forward/Up
- D-Pad Down: Move Backward/Down
- D-Pad Left: Move Left
- D-Pad Right: Move Right
- A Button: Primary Action (Shoot/Attack)
- B Button: Jump
- C Button: Secondary Action (Special/Kick)
- D Button: Boost/Special Weapon`,
	game.ControlSchemeSwipe: `Control Mapping (Swipe):
- Swipe Up: Move Forward/Up
- Swipe Down: Move Backward/Down
- Swipe Left: Move Left
- Swipe Right: Move Right
- Tap: Primary Action
- Double Tap: Jump
- Long Press: Secondary Action
- Two-Finger Tap: Boost`,
}

// platformInstructions is the enum-keyed code-generation table.
// Unrecognized platforms fall back to the JavaScript entry via
// game.NormalizeTargetPlatform before lookup.
var platformInstructions = map[game.TargetPlatform]string{
	game.PlatformJavaScript: `Generate a complete HTML5 Canvas + JavaScript game.
Include:
- HTML structure with canvas
- JavaScript game loop
- Input handling for the specified control scheme
- Basic collision detection
- Score tracking
- Game state management
Make it immediately playable in a browser.`,
	game.PlatformUnity: `Generate Unity C# scripts for this game.
Include:
- GameManager.cs - main game controller
- PlayerController.cs - player movement and actions
- InputManager.cs - handle the specified control scheme
- GameState.cs - track game state
- Scene scripts for the defined scenes
Use Unity's new Input System format.`,
	game.PlatformUnreal: `Generate Unreal Engine C++ code for this game.
Include:
- GameMode class
- PlayerController class
- PlayerCharacter class with movement
- Input handling for the specified control scheme
- Game state management
- Blueprint-friendly with UFUNCTION/UPROPERTY macros`,
}

// genreStyles is the per-genre visual style table for image prompts,
// with a generic fallback for unknown genres.
var genreStyles = map[string]string{
	"shooter":   "futuristic sci-fi space environment with neon lights, starships, and cosmic backgrounds",
	"action":    "intense battle scene with explosions, dramatic lighting, and powerful warriors",
	"puzzle":    "colorful mystical environment with floating platforms and magical elements",
	"adventure": "lush jungle or ancient ruins with atmospheric god rays and detailed foliage",
	"arcade":    "vibrant retro-modern environment with bright colors and dynamic elements",
	"racing":    "high-speed track with motion blur, sleek vehicles, and dramatic perspective",
	"rpg":       "epic fantasy landscape with castles, dragons, and magical auras",
}

const genericGenreStyle = "detailed game environment"

func genreStyle(genre string) string {
	if style, ok := genreStyles[genre]; ok {
		return style
	}
	return genericGenreStyle
}

const imageRequirements = `Requirements:
- Photo-realistic 3D graphics like AAA video games
- Volumetric lighting with god rays
- Rich detailed textures
- Atmospheric depth and fog
- Third-person view showing the character from behind
- Epic cinematic composition
- 16:9 aspect ratio game screenshot
- No text or UI elements in the image`

// buildSchemaPrompt embeds the fixed structural contract of the schema
// document plus the caller's free text.
func buildSchemaPrompt(prompt, genre, character string, scheme game.ControlScheme) string {
	return fmt.Sprintf(`Generate a game schema for the following:

Genre: %s
Game Concept: %s
Main Character: %s
%s

Return a JSON object with this EXACT structure (no markdown, no code blocks, just pure JSON):
{
  "game_name": "string - creative name for the game",
  "genre": "%s",
  "story_premise": "string - brief story setup",
  "main_character": {
    "name": "string",
    "description": "string based on: %s",
    "abilities": ["list of abilities"]
  },
  "initial_scene": {
    "scene_id": "scene_001",
    "setting": "string - describe the environment",
    "characters": ["list of characters in scene"],
    "player_action": "string - what player does",
    "mechanic": "string - core game mechanic",
    "success_outcome": "string - what happens on success",
    "failure_outcome": "string - what happens on failure",
    "video_length_seconds": 10,
    "camera": "string - camera angle/movement",
    "character_pose": "string - character animation state",
    "environment_motion": "string - background animation"
  },
  "game_state": {
    "player_health": 100,
    "score": 0,
    "level": 1,
    "inventory": []
  },
  "next_scene_prompts": ["2-3 possible next scene descriptions"]
}`, genre, prompt, character, controlDescriptions[scheme], genre, character)
}

// buildScenePrompt includes the current scene count so the backend can
// number the next scene. The suggested id is advisory; uniqueness is
// not enforced.
func buildScenePrompt(p *game.Project, scenePrompt string) string {
	return fmt.Sprintf(`Generate a new scene for this game:
Game: %s
Genre: %s
Existing scenes: %d
Scene prompt: %s

Return ONLY a JSON object with:
{
  "scene_id": "%s",
  "setting": "description",
  "characters": ["list"],
  "player_action": "action",
  "mechanic": "mechanic",
  "success_outcome": "outcome",
  "failure_outcome": "outcome",
  "video_length_seconds": 10,
  "camera": "camera description",
  "character_pose": "pose",
  "environment_motion": "motion"
}`, p.Name, p.Genre, len(p.Scenes), scenePrompt, suggestedSceneID(len(p.Scenes)+1))
}

func suggestedSceneID(n int) string {
	return fmt.Sprintf("scene_%03d", n)
}

// condensedScene is the reduced scene view embedded in code prompts.
type condensedScene struct {
	SceneID  string `json:"scene_id"`
	Setting  string `json:"setting"`
	Mechanic string `json:"mechanic"`
}

// buildCodePrompt embeds a condensed view of all scenes and the
// game-state bag alongside the platform instruction.
func buildCodePrompt(p *game.Project, platform game.TargetPlatform) string {
	condensed := make([]condensedScene, 0, len(p.Scenes))
	for _, sc := range p.Scenes {
		condensed = append(condensed, condensedScene{
			SceneID:  sc.ID,
			Setting:  sc.Setting,
			Mechanic: sc.Mechanic,
		})
	}
	scenes, _ := json.Marshal(condensed)
	state, _ := json.Marshal(p.GameState)

	return fmt.Sprintf(`Generate %s game code for:

Game: %s
Genre: %s
Concept: %s
Character: %s

%s

Scenes: %s

Game State: %s

%s

Return only the code, properly formatted and ready to use.`,
		strings.ToUpper(string(platform)), p.Name, p.Genre, p.Prompt,
		p.CharacterDescription, controlMappings[p.ControlScheme],
		scenes, state, platformInstructions[platform])
}

// buildPreviewImagePrompt merges the per-genre style with the caller's
// free text.
func buildPreviewImagePrompt(req PreviewImageRequest) string {
	return fmt.Sprintf(`Create a high-fidelity 3D realistic video game screenshot in %s style.

Genre: %s GAME
Scene: %s
Character: %s
Style: %s

%s`, req.Style, strings.ToUpper(req.Genre), req.SceneDescription,
		req.CharacterDescription, genreStyle(req.Genre), imageRequirements)
}

// buildVideoScenePrompt additionally encodes the sequence position and
// puts the character inside the action rather than overlaid.
func buildVideoScenePrompt(req VideoSceneRequest) string {
	return fmt.Sprintf(`Create a high-fidelity 3D realistic video game frame, scene %d of %d.

Genre: %s GAME
Scene: %s
Character: %s
Action: the character is performing this action within the scene, not overlaid: %s
Style: %s
Additional direction: %s

Keep character and environment continuity across the sequence.

%s`, req.SceneNumber, req.TotalScenes, strings.ToUpper(req.Genre),
		req.SceneDescription, req.CharacterDescription, req.Action,
		genreStyle(req.Genre), req.UserPrompt,
		imageRequirements)
}
