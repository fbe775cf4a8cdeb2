package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

const testConstraintsYAML = `version: "1"
constraints:
  - id: sec-001
    type: security
    name: Payment handler changes need security review
    severity: critical
    scope:
      files:
        - src/payments/**
    enforcement: hard
    is_active: true
  - id: perf-002
    type: performance
    name: Catalog queries must stay under budget
    severity: medium
    scope:
      components:
        - catalog
    enforcement: soft
    is_active: true
`

const testDecisionsYAML = `version: "1"
decisions:
  - id: decision.20240916.a1b2c3d4
    title: Cache the product catalog
    category: architecture
    importance: high
    decided_by: platform-team
    created_at: 2024-09-16T09:00:00Z
    affected_files:
      - src/catalog/query.go
    alternatives_considered:
      - title: Precompute catalog pages
        reason: Stale data risk outweighed the latency win
`

const testComponentsYAML = `version: "1"
rules:
  - pattern: src/catalog/**
    component: catalog
`

const testTeamYAML = `nodes:
  - id: intent-001
    type: intent
    title: Reduce checkout latency
    agency: human
    status: active
    timestamp: 2024-09-15T10:00:00Z
  - id: decision-001
    type: decision
    title: Cache the product catalog
    agency: human
    status: completed
    timestamp: 2024-09-16T09:00:00Z
edges:
  - id: edge-001
    source: intent-001
    target: decision-001
`

// setupDataDir writes a complete data directory fixture and returns its path.
func setupDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	if err := os.MkdirAll(filepath.Join(dir, "teams"), 0755); err != nil {
		t.Fatalf("mkdir teams: %v", err)
	}

	files := map[string]string{
		"constraints.yaml":    testConstraintsYAML,
		"decisions.yaml":      testDecisionsYAML,
		"components.yaml":     testComponentsYAML,
		"teams/platform.yaml": testTeamYAML,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

// runCommand executes a command with args and returns its combined output.
func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
