package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"gameforge/internal/game"
)

// SQLiteStore implements ProjectStore on a local SQLite database.
// Scenes and the game-state bag are stored as JSON columns inside the
// project row, so a project round-trips as a single document.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
	logger *zap.Logger
}

// NewSQLiteStore initializes the database at the given path, creating
// parent directories and the schema as needed.
func NewSQLiteStore(path string, logger *zap.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SQLiteStore{db: db, dbPath: path, logger: logger}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		genre TEXT NOT NULL,
		prompt TEXT NOT NULL DEFAULT '',
		character_description TEXT NOT NULL DEFAULT '',
		control_scheme TEXT NOT NULL,
		target_platform TEXT NOT NULL,
		scenes TEXT NOT NULL DEFAULT '[]',
		game_state TEXT NOT NULL DEFAULT '{}',
		generated_code TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_games_created_at ON games(created_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Insert persists a new project document.
func (s *SQLiteStore) Insert(ctx context.Context, p *game.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	scenes, err := json.Marshal(p.Scenes)
	if err != nil {
		return fmt.Errorf("failed to encode scenes: %w", err)
	}
	state, err := json.Marshal(p.GameState)
	if err != nil {
		return fmt.Errorf("failed to encode game state: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO games (id, name, genre, prompt, character_description,
			control_scheme, target_platform, scenes, game_state, generated_code,
			created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Genre, p.Prompt, p.CharacterDescription,
		string(p.ControlScheme), string(p.TargetPlatform), string(scenes),
		string(state), p.GeneratedCode,
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if err != nil {
		s.logger.Error("insert failed", zap.String("id", p.ID), zap.Error(err))
		return fmt.Errorf("failed to insert project: %w", err)
	}

	s.logger.Debug("project inserted", zap.String("id", p.ID), zap.String("name", p.Name))
	return nil
}

// updatableColumns maps permitted field names to their columns. The
// identifier, creation timestamp and scene sequence are deliberately
// absent: ids are immutable and scenes only change via AppendScene.
var updatableColumns = map[string]string{
	"name":           "name",
	"genre":          "genre",
	"game_state":     "game_state",
	"generated_code": "generated_code",
	"updated_at":     "updated_at",
}

// UpdateFields sets the named fields on a stored project.
func (s *SQLiteStore) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return fmt.Errorf("no fields to update")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	assignments := make([]string, 0, len(names))
	args := make([]any, 0, len(names)+1)
	for _, name := range names {
		col, ok := updatableColumns[name]
		if !ok {
			return fmt.Errorf("field %q is not updatable", name)
		}
		val, err := encodeFieldValue(name, fields[name])
		if err != nil {
			return err
		}
		assignments = append(assignments, col+" = ?")
		args = append(args, val)
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		"UPDATE games SET "+strings.Join(assignments, ", ")+" WHERE id = ?", args...)
	if err != nil {
		s.logger.Error("update failed", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to update project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update %s: %w", id, ErrNotFound)
	}
	return nil
}

// AppendScene appends one scene and advances updated_at in a single
// statement, so the in-row append itself is atomic.
func (s *SQLiteStore) AppendScene(ctx context.Context, id string, sc game.Scene, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	encoded, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("failed to encode scene: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE games
		 SET scenes = json_insert(scenes, '$[#]', json(?)), updated_at = ?
		 WHERE id = ?`,
		string(encoded), formatTime(updatedAt), id,
	)
	if err != nil {
		s.logger.Error("scene append failed", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to append scene: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("append scene to %s: %w", id, ErrNotFound)
	}

	s.logger.Debug("scene appended", zap.String("id", id), zap.String("scene_id", sc.ID))
	return nil
}

// Find returns the project with the given id.
func (s *SQLiteStore) Find(ctx context.Context, id string) (*game.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, genre, prompt, character_description, control_scheme,
			target_platform, scenes, game_state, generated_code, created_at, updated_at
		 FROM games WHERE id = ?`, id)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("find %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	return p, nil
}

// List returns up to limit projects, newest first.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]*game.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, genre, prompt, character_description, control_scheme,
			target_platform, scenes, game_state, generated_code, created_at, updated_at
		 FROM games ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*game.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// Delete removes a project and reports the removed count.
func (s *SQLiteStore) Delete(ctx context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM games WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	s.logger.Debug("project deleted", zap.String("id", id), zap.Int64("removed", n))
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*game.Project, error) {
	var p game.Project
	var scheme, platform, scenes, state, createdAt, updatedAt string
	err := row.Scan(&p.ID, &p.Name, &p.Genre, &p.Prompt, &p.CharacterDescription,
		&scheme, &platform, &scenes, &state, &p.GeneratedCode, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	p.ControlScheme = game.ControlScheme(scheme)
	p.TargetPlatform = game.TargetPlatform(platform)
	if err := json.Unmarshal([]byte(scenes), &p.Scenes); err != nil {
		return nil, fmt.Errorf("corrupt scenes column for %s: %w", p.ID, err)
	}
	if err := json.Unmarshal([]byte(state), &p.GameState); err != nil {
		return nil, fmt.Errorf("corrupt game_state column for %s: %w", p.ID, err)
	}
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func encodeFieldValue(name string, v any) (any, error) {
	switch name {
	case "updated_at":
		t, ok := v.(time.Time)
		if !ok {
			return nil, fmt.Errorf("updated_at must be a time.Time")
		}
		return formatTime(t), nil
	case "game_state":
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode game_state: %w", err)
		}
		return string(encoded), nil
	default:
		return v, nil
	}
}

// timeColumnLayout keeps a fixed-width fractional part so that the
// created_at index sorts lexically in timestamp order.
const timeColumnLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeColumnLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("corrupt timestamp %q: %w", s, err)
	}
	return t, nil
}
