// Package fileio reads the roster and command files of a replay and writes
// its results. Inputs are JSON extended with comments and trailing commas;
// the roster may also be YAML.
package fileio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/spec-kit/project-tracker/internal/api/dto"
	"github.com/spec-kit/project-tracker/internal/domain"
)

// ParseRoster decodes roster records. YAML is chosen by the .yaml or .yml
// extension of name; anything else is read as JSONC.
func ParseRoster(name string, data []byte) ([]dto.UserRecord, error) {
	var records []dto.UserRecord
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parsing roster: %w", err)
		}
	default:
		if err := json.Unmarshal(jsonc.ToJSON(data), &records); err != nil {
			return nil, fmt.Errorf("parsing roster: %w", err)
		}
	}
	return records, nil
}

// LoadRoster reads the roster at path and builds its users in file order.
func LoadRoster(path string) ([]*domain.User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	records, err := ParseRoster(path, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	users := make([]*domain.User, 0, len(records))
	for i, record := range records {
		user, err := record.ToUser()
		if err != nil {
			return nil, fmt.Errorf("%s: entry %d: %w", path, i, err)
		}
		users = append(users, user)
	}
	return users, nil
}
