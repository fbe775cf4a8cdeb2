package datadir

import (
	"os"
	"path/filepath"
	"testing"
)

const teamYAML = `nodes:
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

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", filepath.Base(path), err)
	}
}

func TestLoadTeamGraph(t *testing.T) {
	path := filepath.Join(t.TempDir(), "platform.yaml")
	writeFile(t, path, teamYAML)

	g, err := LoadTeamGraph(path)
	if err != nil {
		t.Fatalf("LoadTeamGraph: %v", err)
	}
	if len(g.Nodes) != 2 || len(g.Edges) != 1 {
		t.Errorf("graph = %d nodes %d edges, want 2 and 1", len(g.Nodes), len(g.Edges))
	}
}

func TestLoadTeamGraph_DanglingEdge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	writeFile(t, path, `nodes:
  - id: intent-001
    type: intent
    title: Lone intent
    agency: human
    status: active
    timestamp: 2024-09-15T10:00:00Z
edges:
  - id: edge-001
    source: intent-001
    target: ghost-001
`)

	if _, err := LoadTeamGraph(path); err == nil {
		t.Fatal("expected validation error for dangling edge")
	}
}

func TestLoadTeamGraph_Missing(t *testing.T) {
	if _, err := LoadTeamGraph(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing team file")
	}
}

func TestLoadTeamsDir_Missing(t *testing.T) {
	graphs, err := LoadTeamsDir(filepath.Join(t.TempDir(), "no-such-dir"))
	if err != nil {
		t.Fatalf("LoadTeamsDir: %v", err)
	}
	if len(graphs) != 0 {
		t.Errorf("graphs = %d, want 0", len(graphs))
	}
}

func TestLoadTeamsDir_SkipsNonYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "platform.yaml"), teamYAML)
	writeFile(t, filepath.Join(dir, "README.md"), "# not a team file")

	graphs, err := LoadTeamsDir(dir)
	if err != nil {
		t.Fatalf("LoadTeamsDir: %v", err)
	}
	if len(graphs) != 1 {
		t.Fatalf("graphs = %d, want 1", len(graphs))
	}
	if _, ok := graphs["platform"]; !ok {
		t.Error("platform team missing")
	}
}

func TestTeamName(t *testing.T) {
	cases := map[string]string{
		"data/teams/platform.yaml": "platform",
		"teams/mobile.yml":         "mobile",
		"checkout.yaml":            "checkout",
	}
	for path, want := range cases {
		if got := TeamName(path); got != want {
			t.Errorf("TeamName(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestTeamPath(t *testing.T) {
	got := TeamPath("data", "platform")
	want := filepath.Join("data", "teams", "platform.yaml")
	if got != want {
		t.Errorf("TeamPath = %q, want %q", got, want)
	}
}

func TestLoadConstraints_Missing(t *testing.T) {
	constraints, err := LoadConstraints(filepath.Join(t.TempDir(), ConstraintsFile))
	if err != nil {
		t.Fatalf("LoadConstraints: %v", err)
	}
	if constraints != nil {
		t.Errorf("constraints = %v, want nil for missing file", constraints)
	}
}

func TestLoadDecisions_Missing(t *testing.T) {
	decisions, err := LoadDecisions(filepath.Join(t.TempDir(), DecisionsFile))
	if err != nil {
		t.Fatalf("LoadDecisions: %v", err)
	}
	if decisions != nil {
		t.Errorf("decisions = %v, want nil for missing file", decisions)
	}
}

func TestLoadRules_Missing(t *testing.T) {
	rules, err := LoadRules(filepath.Join(t.TempDir(), ComponentsFile))
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if rules != nil {
		t.Errorf("rules = %v, want nil for missing file", rules)
	}
}
