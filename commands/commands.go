// Package commands provides the provgraph CLI subcommands that work
// directly from the data directory, without a running platform.
package commands

import (
	"path/filepath"

	"github.com/c360studio/provgraph/config"
	"github.com/c360studio/provgraph/constraint"
	"github.com/c360studio/provgraph/datadir"
	"github.com/c360studio/provgraph/decision"
	"github.com/c360studio/provgraph/sourcemap"
)

// dataset is the file-loaded state the offline commands operate on.
type dataset struct {
	cfg       *config.Config
	registry  *constraint.Registry
	decisions []decision.Decision
	resolver  *sourcemap.Resolver
}

// loadDataset resolves configuration and loads the data directory. An
// explicit dataDir overrides the configured one.
func loadDataset(dataDir string) (*dataset, error) {
	cfg, err := config.NewLoader(nil).Load()
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.Data.Dir = dataDir
	}

	constraints, err := datadir.LoadConstraints(filepath.Join(cfg.Data.Dir, datadir.ConstraintsFile))
	if err != nil {
		return nil, err
	}
	registry, err := constraint.NewRegistry(constraints)
	if err != nil {
		return nil, err
	}

	decisions, err := datadir.LoadDecisions(filepath.Join(cfg.Data.Dir, datadir.DecisionsFile))
	if err != nil {
		return nil, err
	}

	rules, err := datadir.LoadRules(filepath.Join(cfg.Data.Dir, datadir.ComponentsFile))
	if err != nil {
		return nil, err
	}

	return &dataset{
		cfg:       cfg,
		registry:  registry,
		decisions: decisions,
		resolver:  sourcemap.New(rules, cfg.Repo.Path),
	}, nil
}
