package server

import (
	"net/http"

	"gameforge/internal/game"
	"gameforge/internal/pipeline"
)

const listLimit = 100

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"message": "Game Generator API",
		"version": "1.0.0",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":         "healthy",
		"llm_configured": s.llmConfigured,
	})
}

type generateGameRequest struct {
	Prompt               string `json:"prompt"`
	Genre                string `json:"genre"`
	CharacterDescription string `json:"character_description"`
	ControlScheme        string `json:"control_scheme"`
	TargetPlatform       string `json:"target_platform"`
	GameName             string `json:"game_name"`
}

func (s *Server) handleGenerateGame(w http.ResponseWriter, r *http.Request) {
	var req generateGameRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.gen.GenerateGame(r.Context(), pipeline.GenerateGameRequest{
		Prompt:               req.Prompt,
		Genre:                req.Genre,
		CharacterDescription: req.CharacterDescription,
		ControlScheme:        req.ControlScheme,
		TargetPlatform:       req.TargetPlatform,
		Name:                 req.GameName,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"success":            true,
		"game":               res.Project,
		"schema":             res.Schema,
		"next_scene_prompts": res.NextScenePrompts,
	})
}

type addSceneRequest struct {
	ScenePrompt string `json:"scene_prompt"`
}

func (s *Server) handleAddScene(w http.ResponseWriter, r *http.Request) {
	var req addSceneRequest
	if !s.decode(w, r, &req) {
		return
	}
	scene, err := s.gen.AddScene(r.Context(), r.PathValue("id"), req.ScenePrompt)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"scene":   scene,
	})
}

func (s *Server) handleGenerateCode(w http.ResponseWriter, r *http.Request) {
	res, err := s.gen.GenerateCode(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"code":     res.Code,
		"platform": res.Platform,
	})
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.store.List(r.Context(), listLimit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, games)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	project, err := s.store.Find(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, project)
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	n, err := s.store.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if n == 0 {
		s.writeJSON(w, http.StatusNotFound, errorDetail{Detail: "Game not found"})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Game deleted",
	})
}

func (s *Server) handleGenres(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"genres": game.Genres()})
}

func (s *Server) handlePlatforms(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"platforms": game.Platforms()})
}

func (s *Server) handleControlSchemes(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"schemes": game.ControlSchemes()})
}

type previewImageRequest struct {
	Genre                string `json:"genre"`
	SceneDescription     string `json:"scene_description"`
	CharacterDescription string `json:"character_description"`
	Style                string `json:"style"`
}

func (s *Server) handlePreviewImage(w http.ResponseWriter, r *http.Request) {
	var req previewImageRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.gen.GeneratePreviewImage(r.Context(), pipeline.PreviewImageRequest{
		Genre:                req.Genre,
		SceneDescription:     req.SceneDescription,
		CharacterDescription: req.CharacterDescription,
		Style:                req.Style,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

type videoSceneRequest struct {
	Genre                string `json:"genre"`
	SceneDescription     string `json:"scene_description"`
	CharacterDescription string `json:"character_description"`
	Action               string `json:"action"`
	SceneNumber          int    `json:"scene_number"`
	TotalScenes          int    `json:"total_scenes"`
	UserPrompt           string `json:"user_prompt"`
}

func (s *Server) handleVideoScene(w http.ResponseWriter, r *http.Request) {
	var req videoSceneRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.gen.GenerateVideoScene(r.Context(), pipeline.VideoSceneRequest{
		Genre:                req.Genre,
		SceneDescription:     req.SceneDescription,
		CharacterDescription: req.CharacterDescription,
		Action:               req.Action,
		SceneNumber:          req.SceneNumber,
		TotalScenes:          req.TotalScenes,
		UserPrompt:           req.UserPrompt,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}
