package fileio

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/spec-kit/project-tracker/internal/api/dto"
)

// ParseCommands decodes a JSONC array of command records.
func ParseCommands(data []byte) ([]dto.Command, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return nil, fmt.Errorf("parsing commands: %w", err)
	}

	commands := make([]dto.Command, 0, len(raw))
	for i, record := range raw {
		cmd, err := dto.DecodeCommand(record)
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", i, err)
		}
		commands = append(commands, cmd)
	}
	return commands, nil
}

// LoadCommands reads the command file at path.
func LoadCommands(path string) ([]dto.Command, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	commands, err := ParseCommands(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return commands, nil
}
