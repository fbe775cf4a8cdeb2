package provenance

import (
	"fmt"
)

// Graph is a validated provenance graph snapshot. Nodes and Edges keep their
// construction order so queries over the same snapshot are deterministic.
type Graph struct {
	// Nodes are the artifacts in the graph.
	Nodes []Node `json:"nodes"`

	// Edges are the directed connections between nodes.
	Edges []Edge `json:"edges"`
}

// NewGraph validates the supplied nodes and edges and returns a graph
// snapshot. It fails on the first invalid node or edge, duplicate ID, or
// edge endpoint that references a node not in the set.
func NewGraph(nodes []Node, edges []Edge) (*Graph, error) {
	g := &Graph{Nodes: nodes, Edges: edges}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate checks every invariant the graph model requires: well-formed
// nodes and edges, unique IDs, and both endpoints of every edge present.
func (g *Graph) Validate() error {
	seen := make(map[string]bool, len(g.Nodes))
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if err := n.Validate(); err != nil {
			return fmt.Errorf("node %q: %w", n.ID, err)
		}
		if seen[n.ID] {
			return fmt.Errorf("duplicate node id %q", n.ID)
		}
		seen[n.ID] = true
	}

	edgeSeen := make(map[string]bool, len(g.Edges))
	for i := range g.Edges {
		e := &g.Edges[i]
		if err := e.Validate(); err != nil {
			return fmt.Errorf("edge %q: %w", e.ID, err)
		}
		if edgeSeen[e.ID] {
			return fmt.Errorf("duplicate edge id %q", e.ID)
		}
		edgeSeen[e.ID] = true

		if !seen[e.Source] {
			return fmt.Errorf("edge %q source %q: %w", e.ID, e.Source, ErrNotFound)
		}
		if !seen[e.Target] {
			return fmt.Errorf("edge %q target %q: %w", e.ID, e.Target, ErrNotFound)
		}
	}
	return nil
}

// Node returns the node with the given ID, or false when it is absent.
func (g *Graph) Node(id string) (Node, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return g.Nodes[i], true
		}
	}
	return Node{}, false
}

// Filter returns the visible subgraph for the given options.
func (g *Graph) Filter(opts FilterOptions) View {
	return Filter(g.Nodes, g.Edges, opts)
}

// Neighborhood returns the one-hop neighborhood of the given node.
func (g *Graph) Neighborhood(nodeID string) (*Neighborhood, error) {
	return NeighborhoodOf(nodeID, g.Nodes, g.Edges)
}
