package provenance

// FilterOptions selects which node types and agencies remain visible.
type FilterOptions struct {
	// NodeTypes are the node types to keep. Empty means nothing is visible.
	NodeTypes []NodeType `json:"node_types"`

	// Agencies are the agencies to keep. Empty means nothing is visible.
	Agencies []Agency `json:"agencies"`
}

// View is the visible subgraph produced by Filter.
type View struct {
	// Nodes are the visible nodes, in input order.
	Nodes []Node `json:"nodes"`

	// Edges are the edges whose endpoints are both visible, in input order.
	Edges []Edge `json:"edges"`
}

// Filter derives the visible subgraph: nodes whose type AND agency are both
// selected, and edges whose source AND target survive the node filter. An
// edge with a hidden endpoint is dropped entirely, never partially shown.
//
// An empty NodeTypes or Agencies set yields an empty view. That is a defined
// result, not an error: deselecting everything hides everything.
func Filter(nodes []Node, edges []Edge, opts FilterOptions) View {
	view := View{
		Nodes: make([]Node, 0, len(nodes)),
		Edges: make([]Edge, 0, len(edges)),
	}
	if len(opts.NodeTypes) == 0 || len(opts.Agencies) == 0 {
		return view
	}

	types := make(map[NodeType]bool, len(opts.NodeTypes))
	for _, t := range opts.NodeTypes {
		types[t] = true
	}
	agencies := make(map[Agency]bool, len(opts.Agencies))
	for _, a := range opts.Agencies {
		agencies[a] = true
	}

	visible := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if types[n.Type] && agencies[n.Agency] {
			view.Nodes = append(view.Nodes, n)
			visible[n.ID] = true
		}
	}

	for _, e := range edges {
		if visible[e.Source] && visible[e.Target] {
			view.Edges = append(view.Edges, e)
		}
	}

	return view
}
