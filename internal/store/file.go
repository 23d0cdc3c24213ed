package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// FileStore persists the snapshot as a pretty-printed JSON file. A missing or
// unreadable file reads as an empty database so a fresh deployment works
// without seeding.
type FileStore struct {
	path string
	log  zerolog.Logger
}

// NewFileStore creates a FileStore at the given path.
func NewFileStore(path string, log zerolog.Logger) *FileStore {
	return &FileStore{
		path: path,
		log:  log.With().Str("component", "file_store").Logger(),
	}
}

func (s *FileStore) Read(_ context.Context) (Database, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return normalize(Database{}), nil
	}

	var db Database
	if err := json.Unmarshal(raw, &db); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("corrupt store file, starting empty")
		return normalize(Database{}), nil
	}
	return normalize(db), nil
}

func (s *FileStore) Write(_ context.Context, db Database) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	raw, err := json.MarshalIndent(normalize(db), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	return nil
}
