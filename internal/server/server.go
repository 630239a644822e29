// Package server exposes the generation pipeline over HTTP. It is a
// thin boundary: it decodes requests, calls the pipeline or the store,
// and maps the error taxonomy to status codes. Not-found conditions
// map to 404, everything else to 500 with a human-readable detail.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"gameforge/internal/game"
	"gameforge/internal/pipeline"
	"gameforge/internal/store"
)

// Generator is the pipeline surface the HTTP layer consumes.
type Generator interface {
	GenerateGame(ctx context.Context, req pipeline.GenerateGameRequest) (*pipeline.GenerateGameResult, error)
	AddScene(ctx context.Context, projectID, scenePrompt string) (*game.Scene, error)
	GenerateCode(ctx context.Context, projectID string) (*pipeline.CodeResult, error)
	GeneratePreviewImage(ctx context.Context, req pipeline.PreviewImageRequest) (*pipeline.ImageResult, error)
	GenerateVideoScene(ctx context.Context, req pipeline.VideoSceneRequest) (*pipeline.VideoSceneResult, error)
}

// Server routes API requests to the pipeline and the project store.
type Server struct {
	gen           Generator
	store         store.ProjectStore
	logger        *zap.Logger
	llmConfigured bool
}

// Config assembles a Server.
type Config struct {
	Generator     Generator
	Store         store.ProjectStore
	Logger        *zap.Logger
	LLMConfigured bool
}

// New creates a Server.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Server{
		gen:           cfg.Generator,
		store:         cfg.Store,
		logger:        cfg.Logger,
		llmConfigured: cfg.LLMConfigured,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/{$}", s.handleRoot)
	mux.HandleFunc("GET /api/health", s.handleHealth)

	mux.HandleFunc("POST /api/games/generate", s.handleGenerateGame)
	mux.HandleFunc("POST /api/games/{id}/add-scene", s.handleAddScene)
	mux.HandleFunc("POST /api/games/{id}/generate-code", s.handleGenerateCode)
	mux.HandleFunc("GET /api/games", s.handleListGames)
	mux.HandleFunc("GET /api/games/{id}", s.handleGetGame)
	mux.HandleFunc("DELETE /api/games/{id}", s.handleDeleteGame)

	mux.HandleFunc("GET /api/genres", s.handleGenres)
	mux.HandleFunc("GET /api/platforms", s.handlePlatforms)
	mux.HandleFunc("GET /api/control-schemes", s.handleControlSchemes)

	mux.HandleFunc("POST /api/generate-preview-image", s.handlePreviewImage)
	mux.HandleFunc("POST /api/generate-video-scene", s.handleVideoScene)

	return cors(mux)
}

// cors mirrors the permissive policy of the original deployment; the
// service sits behind a gateway that scopes origins.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("response encode failed", zap.Error(err))
	}
}

type errorDetail struct {
	Detail string `json:"detail"`
}

// writeError maps the pipeline and store taxonomy to status codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	detail := err.Error()
	if errors.Is(err, store.ErrNotFound) {
		status = http.StatusNotFound
		detail = "Game not found"
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	s.writeJSON(w, status, errorDetail{Detail: detail})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorDetail{Detail: "invalid JSON body"})
		return false
	}
	return true
}
