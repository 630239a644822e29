package game

// GenreInfo describes one selectable genre for catalog listings.
type GenreInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// PlatformInfo describes one selectable target platform.
type PlatformInfo struct {
	ID          TargetPlatform `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
}

// ControlSchemeInfo describes one selectable control scheme.
type ControlSchemeInfo struct {
	ID          ControlScheme     `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Bindings    map[string]string `json:"bindings"`
}

// Genres returns the selectable genre catalog.
func Genres() []GenreInfo {
	return []GenreInfo{
		{ID: "action", Name: "Action Games", Icon: "sword", Color: "#FF6B6B"},
		{ID: "puzzle", Name: "Puzzle Games", Icon: "puzzle", Color: "#4ECDC4"},
		{ID: "adventure", Name: "Adventure", Icon: "compass", Color: "#45B7D1"},
		{ID: "arcade", Name: "Arcade", Icon: "gamepad", Color: "#96CEB4"},
		{ID: "racing", Name: "Racing Game", Icon: "car", Color: "#FFEAA7"},
		{ID: "rpg", Name: "RPG", Icon: "shield", Color: "#DDA0DD"},
		{ID: "shooter", Name: "Shooter Game", Icon: "crosshair", Color: "#FF7675"},
	}
}

// Platforms returns the selectable platform catalog.
func Platforms() []PlatformInfo {
	return []PlatformInfo{
		{ID: PlatformJavaScript, Name: "JavaScript/HTML5", Description: "Web browser playable"},
		{ID: PlatformUnity, Name: "Unity C#", Description: "Unity Engine compatible"},
		{ID: PlatformUnreal, Name: "Unreal C++", Description: "Unreal Engine compatible"},
	}
}

// ControlSchemes returns the selectable control scheme catalog.
func ControlSchemes() []ControlSchemeInfo {
	return []ControlSchemeInfo{
		{
			ID:          ControlSchemeDpadButtons,
			Name:        "D-Pad + ABCD Buttons",
			Description: "Classic controller layout",
			Bindings: map[string]string{
				"dpad": "Movement (Up/Down/Left/Right)",
				"A":    "Action/Shoot",
				"B":    "Jump",
				"C":    "Special/Kick",
				"D":    "Boost/Special Weapon",
			},
		},
		{
			ID:          ControlSchemeSwipe,
			Name:        "Swipe Controls",
			Description: "Touch-based movement",
			Bindings: map[string]string{
				"swipe":          "Movement in swipe direction",
				"tap":            "Primary Action",
				"double_tap":     "Jump",
				"long_press":     "Special Action",
				"two_finger_tap": "Boost",
			},
		},
	}
}
