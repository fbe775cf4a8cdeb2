package decision

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DecisionsFile is the decisions.yaml structure.
type DecisionsFile struct {
	Version   string     `yaml:"version"`
	Decisions []Decision `yaml:"decisions"`
}

// LoadFile reads and parses a decisions YAML file.
func LoadFile(path string) (*DecisionsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read decisions file: %w", err)
	}

	var file DecisionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse decisions file: %w", err)
	}

	return &file, nil
}

// LoadDecisions loads decision records from a YAML file and validates each
// one. Duplicate IDs are rejected.
func LoadDecisions(path string) ([]Decision, error) {
	file, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(file.Decisions))
	for i := range file.Decisions {
		d := &file.Decisions[i]
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("decision %q: %w", d.ID, err)
		}
		if seen[d.ID] {
			return nil, fmt.Errorf("duplicate decision id %q", d.ID)
		}
		seen[d.ID] = true
	}

	return file.Decisions, nil
}
