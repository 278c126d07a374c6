package fileio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spec-kit/project-tracker/internal/api/dto"
)

// EncodeResults renders results as an indented JSON array. An empty run
// encodes as [].
func EncodeResults(results []*dto.Result) ([]byte, error) {
	if results == nil {
		results = []*dto.Result{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return nil, fmt.Errorf("encoding results: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteResults writes results to path, creating parent directories.
func WriteResults(path string, results []*dto.Result) error {
	data, err := EncodeResults(results)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
