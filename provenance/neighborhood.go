package provenance

import (
	"fmt"
)

// Neighborhood is the one-hop causal neighborhood of a node.
type Neighborhood struct {
	// Node is the node the neighborhood was resolved for.
	Node Node `json:"node"`

	// Incoming are the edges pointing at the node.
	Incoming []Edge `json:"incoming"`

	// Outgoing are the edges leaving the node.
	Outgoing []Edge `json:"outgoing"`

	// IncomingNodes are the source nodes of the incoming edges, deduplicated,
	// in edge order.
	IncomingNodes []Node `json:"incoming_nodes"`

	// OutgoingNodes are the target nodes of the outgoing edges, deduplicated,
	// in edge order.
	OutgoingNodes []Node `json:"outgoing_nodes"`
}

// NeighborhoodOf resolves the one-hop neighborhood of nodeID. Resolution is
// deliberately a single hop: following a neighbor is a new call, which keeps
// traversal cost bounded on graphs with cycles.
//
// An unknown nodeID fails with ErrNotFound rather than returning an empty
// neighborhood, so "no edges" and "no such node" stay distinguishable. A
// blank nodeID fails with ErrEmptyInput. An edge whose far endpoint is
// missing from nodes is a violated graph invariant and fails with
// ErrNotFound naming the edge.
func NeighborhoodOf(nodeID string, nodes []Node, edges []Edge) (*Neighborhood, error) {
	if nodeID == "" {
		return nil, fmt.Errorf("node id: %w", ErrEmptyInput)
	}

	byID := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	node, ok := byID[nodeID]
	if !ok {
		return nil, fmt.Errorf("node %q: %w", nodeID, ErrNotFound)
	}

	nb := &Neighborhood{
		Node:          node,
		Incoming:      make([]Edge, 0),
		Outgoing:      make([]Edge, 0),
		IncomingNodes: make([]Node, 0),
		OutgoingNodes: make([]Node, 0),
	}

	seenIn := make(map[string]bool)
	seenOut := make(map[string]bool)

	for _, e := range edges {
		if e.Target == nodeID {
			src, ok := byID[e.Source]
			if !ok {
				return nil, fmt.Errorf("edge %q source %q: %w", e.ID, e.Source, ErrNotFound)
			}
			nb.Incoming = append(nb.Incoming, e)
			if !seenIn[src.ID] {
				seenIn[src.ID] = true
				nb.IncomingNodes = append(nb.IncomingNodes, src)
			}
		}
		if e.Source == nodeID {
			dst, ok := byID[e.Target]
			if !ok {
				return nil, fmt.Errorf("edge %q target %q: %w", e.ID, e.Target, ErrNotFound)
			}
			nb.Outgoing = append(nb.Outgoing, e)
			if !seenOut[dst.ID] {
				seenOut[dst.ID] = true
				nb.OutgoingNodes = append(nb.OutgoingNodes, dst)
			}
		}
	}

	return nb, nil
}
