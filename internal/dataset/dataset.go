// Package dataset reads and writes the universities.json artifact.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/imgoedu/imgo-backend/internal/model"
)

// Load reads the artifact from path.
func Load(path string) ([]model.Institution, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var list []model.Institution
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return list, nil
}

// Save writes the artifact to path, creating parent directories as needed.
// The whole file is replaced in one write; a failed run never corrupts a prior
// successful artifact because nothing is written before this point.
func Save(path string, list []model.Institution) error {
	if list == nil {
		list = []model.Institution{}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dataset dir: %w", err)
	}

	raw, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}

	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	return nil
}
