// Package datadir defines the on-disk layout of a provgraph data directory
// and the loaders for the files inside it. The provenance-api processor and
// the offline CLI commands read the same layout:
//
//	data/
//	  constraints.yaml    constraint definitions
//	  decisions.yaml      decision log
//	  components.yaml     file-to-component mapping rules
//	  teams/<team>.yaml   one provenance graph per team
package datadir

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/provgraph/constraint"
	"github.com/c360studio/provgraph/decision"
	"github.com/c360studio/provgraph/provenance"
	"github.com/c360studio/provgraph/sourcemap"
)

// File names recognized under the data directory.
const (
	// ConstraintsFile holds the constraint definitions.
	ConstraintsFile = "constraints.yaml"
	// DecisionsFile holds the decision log.
	DecisionsFile = "decisions.yaml"
	// ComponentsFile holds the file-to-component mapping rules.
	ComponentsFile = "components.yaml"
	// TeamsDir holds one graph file per team.
	TeamsDir = "teams"
)

// TeamFile is the on-disk YAML shape of a team graph.
type TeamFile struct {
	Nodes []provenance.Node `yaml:"nodes"`
	Edges []provenance.Edge `yaml:"edges"`
}

// TeamPath returns the path of a team's graph file inside a data directory.
func TeamPath(dataDir, team string) string {
	return filepath.Join(dataDir, TeamsDir, team+".yaml")
}

// TeamName derives the team from a teams/ file path.
func TeamName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// LoadTeamGraph reads one teams/<team>.yaml file and validates it into a
// graph. Dangling edges or duplicate IDs fail the load.
func LoadTeamGraph(path string) (*provenance.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read team file: %w", err)
	}

	var file TeamFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse team file: %w", err)
	}

	g, err := provenance.NewGraph(file.Nodes, file.Edges)
	if err != nil {
		return nil, fmt.Errorf("validate team file: %w", err)
	}
	return g, nil
}

// LoadTeamsDir loads every team graph under dir. A missing directory yields
// an empty map; a broken team file fails the whole load.
func LoadTeamsDir(dir string) (map[string]*provenance.Graph, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]*provenance.Graph{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read teams dir: %w", err)
	}

	graphs := make(map[string]*provenance.Graph)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		g, err := LoadTeamGraph(path)
		if err != nil {
			return nil, fmt.Errorf("team %q: %w", TeamName(path), err)
		}
		graphs[TeamName(path)] = g
	}
	return graphs, nil
}

// LoadConstraints reads constraints.yaml. A missing file means no
// constraints.
func LoadConstraints(path string) ([]constraint.Constraint, error) {
	file, err := constraint.LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return file.Constraints, nil
}

// LoadDecisions reads decisions.yaml. A missing file means no decisions.
func LoadDecisions(path string) ([]decision.Decision, error) {
	decisions, err := decision.LoadDecisions(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decisions, nil
}

// LoadRules reads components.yaml. A missing file means no mapping rules.
func LoadRules(path string) ([]sourcemap.Rule, error) {
	rules, err := sourcemap.LoadRules(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rules, nil
}
