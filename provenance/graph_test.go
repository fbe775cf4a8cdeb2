package provenance

import (
	"encoding/json"
	"errors"
	"testing"
)

func testGraph(t *testing.T) *Graph {
	t.Helper()

	nodes := []Node{
		validNode("intent-1"),
		validNode("decision-1"),
		validNode("task-1"),
	}
	nodes[0].Type = NodeIntent
	nodes[2].Type = NodeTask
	nodes[2].Agency = AgencyAI

	edges := []Edge{
		{ID: "e1", Source: "intent-1", Target: "decision-1"},
		{ID: "e2", Source: "decision-1", Target: "task-1"},
	}

	g, err := NewGraph(nodes, edges)
	if err != nil {
		t.Fatalf("NewGraph() error = %v", err)
	}
	return g
}

func TestNewGraph(t *testing.T) {
	g := testGraph(t)

	if len(g.Nodes) != 3 {
		t.Errorf("Nodes count = %d, want 3", len(g.Nodes))
	}
	if len(g.Edges) != 2 {
		t.Errorf("Edges count = %d, want 2", len(g.Edges))
	}

	n, ok := g.Node("decision-1")
	if !ok {
		t.Fatal("Node(decision-1) not found")
	}
	if n.ID != "decision-1" {
		t.Errorf("Node ID = %q, want %q", n.ID, "decision-1")
	}

	if _, ok := g.Node("missing"); ok {
		t.Error("Node(missing) found, want absent")
	}
}

func TestNewGraphDuplicateNodeID(t *testing.T) {
	_, err := NewGraph([]Node{validNode("n1"), validNode("n1")}, nil)
	if err == nil {
		t.Fatal("NewGraph() = nil error, want duplicate id error")
	}
}

func TestNewGraphDuplicateEdgeID(t *testing.T) {
	nodes := []Node{validNode("a"), validNode("b")}
	edges := []Edge{
		{ID: "e1", Source: "a", Target: "b"},
		{ID: "e1", Source: "b", Target: "a"},
	}
	if _, err := NewGraph(nodes, edges); err == nil {
		t.Fatal("NewGraph() = nil error, want duplicate edge id error")
	}
}

func TestNewGraphDanglingEndpoint(t *testing.T) {
	nodes := []Node{validNode("a")}
	edges := []Edge{{ID: "e1", Source: "a", Target: "ghost"}}

	_, err := NewGraph(nodes, edges)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("NewGraph() error = %v, want ErrNotFound", err)
	}
}

func TestNewGraphSelfLoop(t *testing.T) {
	nodes := []Node{validNode("a")}
	edges := []Edge{{ID: "loop", Source: "a", Target: "a"}}

	if _, err := NewGraph(nodes, edges); err != nil {
		t.Fatalf("NewGraph() with self-loop error = %v, want nil", err)
	}
}

func TestNewGraphCycle(t *testing.T) {
	nodes := []Node{validNode("a"), validNode("b")}
	edges := []Edge{
		{ID: "e1", Source: "a", Target: "b"},
		{ID: "e2", Source: "b", Target: "a"},
	}

	if _, err := NewGraph(nodes, edges); err != nil {
		t.Fatalf("NewGraph() with cycle error = %v, want nil", err)
	}
}

func TestGraphJSONRoundTrip(t *testing.T) {
	g := testGraph(t)

	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded Graph
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if err := decoded.Validate(); err != nil {
		t.Fatalf("Validate() after round trip = %v", err)
	}
	if len(decoded.Nodes) != len(g.Nodes) || len(decoded.Edges) != len(g.Edges) {
		t.Errorf("round trip lost elements: %d/%d nodes, %d/%d edges",
			len(decoded.Nodes), len(g.Nodes), len(decoded.Edges), len(g.Edges))
	}
}
