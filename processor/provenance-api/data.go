package provenanceapi

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/c360studio/provgraph/conflict"
	"github.com/c360studio/provgraph/constraint"
	"github.com/c360studio/provgraph/datadir"
	"github.com/c360studio/provgraph/decision"
	"github.com/c360studio/provgraph/provenance"
	"github.com/c360studio/provgraph/sourcemap"
)

// loadDataFiles reads all data files under the data dir and swaps in a fresh
// snapshot. Parse or validation failures abort the load and leave the
// current snapshot untouched.
func (c *Component) loadDataFiles() error {
	graphs, err := datadir.LoadTeamsDir(filepath.Join(c.dataDir, datadir.TeamsDir))
	if err != nil {
		return err
	}

	constraints, err := datadir.LoadConstraints(filepath.Join(c.dataDir, datadir.ConstraintsFile))
	if err != nil {
		return err
	}
	registry, err := constraint.NewRegistry(constraints)
	if err != nil {
		return err
	}

	decisions, err := datadir.LoadDecisions(filepath.Join(c.dataDir, datadir.DecisionsFile))
	if err != nil {
		return err
	}

	rules, err := datadir.LoadRules(filepath.Join(c.dataDir, datadir.ComponentsFile))
	if err != nil {
		return err
	}

	c.snapMu.Lock()
	c.graphs = graphs
	c.constraints = constraints
	c.registry = registry
	c.decisions = decisions
	c.resolver = sourcemap.New(rules, c.repoRoot)
	c.evaluator = conflict.NewEvaluator(registry, decisions)
	c.snapMu.Unlock()

	for team, g := range graphs {
		c.metrics.observeGraph(team, g)
	}

	return nil
}

// reloadPath reloads the single data file that changed. Unrecognized files
// are ignored.
func (c *Component) reloadPath(path string) {
	if filepath.Base(filepath.Dir(path)) == datadir.TeamsDir {
		c.reloadTeam(path)
		return
	}

	switch filepath.Base(path) {
	case datadir.ConstraintsFile:
		c.reloadConstraints(path)
	case datadir.DecisionsFile:
		c.reloadDecisions(path)
	case datadir.ComponentsFile:
		c.reloadComponents(path)
	}
}

// reloadTeam replaces one team's graph snapshot. A file that fails
// validation is rejected and the previous snapshot stays live.
func (c *Component) reloadTeam(path string) {
	team := datadir.TeamName(path)
	g, err := datadir.LoadTeamGraph(path)
	if err != nil {
		c.logger.Warn("Team reload rejected, keeping previous snapshot",
			"team", team,
			"error", err)
		c.metrics.recordReload("rejected")
		return
	}

	c.snapMu.Lock()
	c.graphs[team] = g
	c.snapMu.Unlock()

	c.metrics.observeGraph(team, g)
	c.metrics.recordReload("applied")
	c.logger.Info("Team graph reloaded",
		"team", team,
		"nodes", len(g.Nodes),
		"edges", len(g.Edges))
}

// reloadConstraints replaces the constraint registry and rebuilds the
// evaluator.
func (c *Component) reloadConstraints(path string) {
	constraints, err := datadir.LoadConstraints(path)
	if err == nil {
		err = c.setConstraints(constraints)
	}
	if err != nil {
		c.logger.Warn("Constraint reload rejected, keeping previous registry",
			"error", err)
		c.metrics.recordReload("rejected")
		return
	}

	c.metrics.recordReload("applied")
	c.logger.Info("Constraint registry reloaded", "constraints", len(constraints))
}

// reloadDecisions replaces the decision log and rebuilds the evaluator.
func (c *Component) reloadDecisions(path string) {
	decisions, err := datadir.LoadDecisions(path)
	if err != nil {
		c.logger.Warn("Decision reload rejected, keeping previous log",
			"error", err)
		c.metrics.recordReload("rejected")
		return
	}

	c.snapMu.Lock()
	c.decisions = decisions
	c.evaluator = conflict.NewEvaluator(c.registry, decisions)
	c.snapMu.Unlock()

	c.metrics.recordReload("applied")
	c.logger.Info("Decision log reloaded", "decisions", len(decisions))
}

// reloadComponents replaces the file-to-component resolver.
func (c *Component) reloadComponents(path string) {
	rules, err := datadir.LoadRules(path)
	if err != nil {
		c.logger.Warn("Component rules reload rejected, keeping previous rules",
			"error", err)
		c.metrics.recordReload("rejected")
		return
	}

	c.snapMu.Lock()
	c.resolver = sourcemap.New(rules, c.repoRoot)
	c.snapMu.Unlock()

	c.metrics.recordReload("applied")
	c.logger.Info("Component rules reloaded", "rules", len(rules))
}

// setConstraints swaps in a new constraint list, rebuilding the registry and
// evaluator. The list is validated before anything is replaced.
func (c *Component) setConstraints(constraints []constraint.Constraint) error {
	registry, err := constraint.NewRegistry(constraints)
	if err != nil {
		return err
	}

	c.snapMu.Lock()
	c.constraints = constraints
	c.registry = registry
	c.evaluator = conflict.NewEvaluator(registry, c.decisions)
	c.snapMu.Unlock()

	return nil
}

// hydrateFromStore overlays KV-persisted entities under the file-loaded
// snapshot. Data files win on conflict; the store contributes teams,
// constraints, and decisions the files don't define.
func (c *Component) hydrateFromStore(ctx context.Context) error {
	teams, err := c.store.ListTeams(ctx)
	if err != nil {
		return fmt.Errorf("list stored teams: %w", err)
	}

	for _, team := range teams {
		c.snapMu.RLock()
		_, exists := c.graphs[team]
		c.snapMu.RUnlock()
		if exists {
			continue
		}

		g, err := c.store.GetGraph(ctx, team)
		if err != nil {
			c.logger.Warn("Skipping stored team graph", "team", team, "error", err)
			continue
		}

		c.snapMu.Lock()
		if _, exists := c.graphs[team]; !exists {
			c.graphs[team] = g
		}
		c.snapMu.Unlock()
		c.metrics.observeGraph(team, g)
	}

	stored, err := c.store.ListConstraints(ctx)
	if err != nil {
		return fmt.Errorf("list stored constraints: %w", err)
	}
	if merged, added := mergeConstraints(c.snapshotConstraints(), stored); added > 0 {
		if err := c.setConstraints(merged); err != nil {
			return fmt.Errorf("merge stored constraints: %w", err)
		}
		c.logger.Debug("Hydrated constraints from store", "added", added)
	}

	storedDecisions, err := c.store.ListDecisions(ctx)
	if err != nil {
		return fmt.Errorf("list stored decisions: %w", err)
	}
	if merged, added := mergeDecisions(c.snapshotDecisions(), storedDecisions); added > 0 {
		c.snapMu.Lock()
		c.decisions = merged
		c.evaluator = conflict.NewEvaluator(c.registry, merged)
		c.snapMu.Unlock()
		c.logger.Debug("Hydrated decisions from store", "added", added)
	}

	return nil
}

// mergeConstraints appends stored constraints whose IDs the base list does
// not already define. Stored extras are appended in ID order so the registry
// order stays stable across restarts.
func mergeConstraints(base, stored []constraint.Constraint) ([]constraint.Constraint, int) {
	known := make(map[string]bool, len(base))
	for _, c := range base {
		known[c.ID] = true
	}

	extras := make([]constraint.Constraint, 0, len(stored))
	for _, c := range stored {
		if known[c.ID] {
			continue
		}
		extras = append(extras, c)
	}
	sort.Slice(extras, func(i, j int) bool { return extras[i].ID < extras[j].ID })

	return append(append([]constraint.Constraint{}, base...), extras...), len(extras)
}

// mergeDecisions appends stored decisions whose IDs the base list does not
// already define.
func mergeDecisions(base, stored []decision.Decision) ([]decision.Decision, int) {
	known := make(map[string]bool, len(base))
	for _, d := range base {
		known[d.ID] = true
	}

	extras := make([]decision.Decision, 0, len(stored))
	for _, d := range stored {
		if known[d.ID] {
			continue
		}
		extras = append(extras, d)
	}
	sort.Slice(extras, func(i, j int) bool { return extras[i].ID < extras[j].ID })

	return append(append([]decision.Decision{}, base...), extras...), len(extras)
}

// snapshotGraph returns the current graph for a team.
func (c *Component) snapshotGraph(team string) (*provenance.Graph, bool) {
	c.snapMu.RLock()
	defer c.snapMu.RUnlock()
	g, ok := c.graphs[team]
	return g, ok
}

// snapshotRegistry returns the current constraint registry.
func (c *Component) snapshotRegistry() *constraint.Registry {
	c.snapMu.RLock()
	defer c.snapMu.RUnlock()
	return c.registry
}

// snapshotConstraints returns the current raw constraint list.
func (c *Component) snapshotConstraints() []constraint.Constraint {
	c.snapMu.RLock()
	defer c.snapMu.RUnlock()
	return c.constraints
}

// snapshotDecisions returns the current decision log.
func (c *Component) snapshotDecisions() []decision.Decision {
	c.snapMu.RLock()
	defer c.snapMu.RUnlock()
	return c.decisions
}

// snapshotEvaluator returns the current evaluator and resolver pair.
func (c *Component) snapshotEvaluator() (*conflict.Evaluator, *sourcemap.Resolver) {
	c.snapMu.RLock()
	defer c.snapMu.RUnlock()
	return c.evaluator, c.resolver
}
