package provenanceapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/c360studio/provgraph/conflict"
	"github.com/c360studio/provgraph/constraint"
	"github.com/c360studio/provgraph/decision"
	"github.com/c360studio/provgraph/export"
	"github.com/c360studio/provgraph/provenance"
)

// maxRequestBodySize limits POST body sizes to prevent DoS.
const maxRequestBodySize = 1 << 20 // 1 MB

// RegisterHTTPHandlers registers all provenance-api HTTP handlers under the
// given prefix. The prefix should be the path segment without a trailing
// slash (e.g. "provgraph"). Handlers are registered as:
//
//	GET  <prefix>/api/graph/{team}
//	POST <prefix>/api/graph/{team}/filter
//	GET  <prefix>/api/graph/{team}/nodes/{id}/neighborhood
//	GET  <prefix>/api/constraints
//	POST <prefix>/api/constraints/match
//	POST <prefix>/api/changes/evaluate
//	GET  <prefix>/api/decisions/trace
//	GET  <prefix>/api/export
//	GET  <prefix>/metrics
func (c *Component) RegisterHTTPHandlers(prefix string, mux *http.ServeMux) {
	// Normalise: ensure leading slash and trailing slash.
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix = prefix + "/"
	}

	mux.HandleFunc(prefix+"api/graph/{team}", c.handleGraph)
	mux.HandleFunc(prefix+"api/graph/{team}/filter", c.handleGraphFilter)
	mux.HandleFunc(prefix+"api/graph/{team}/nodes/{id}/neighborhood", c.handleNeighborhood)
	mux.HandleFunc(prefix+"api/constraints", c.handleConstraints)
	mux.HandleFunc(prefix+"api/constraints/match", c.handleConstraintsMatch)
	mux.HandleFunc(prefix+"api/changes/evaluate", c.handleChangesEvaluate)
	mux.HandleFunc(prefix+"api/decisions/trace", c.handleDecisionsTrace)
	mux.HandleFunc(prefix+"api/export", c.handleExport)
	mux.Handle(prefix+"metrics", c.metrics.handler())
}

// ----------------------------------------------------------------------------
// GET /api/graph/{team}
// ----------------------------------------------------------------------------

// handleGraph returns the full graph snapshot for a team.
func (c *Component) handleGraph(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	team := r.PathValue("team")
	g, ok := c.snapshotGraph(team)
	if !ok {
		http.Error(w, "Unknown team", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, g)
}

// ----------------------------------------------------------------------------
// POST /api/graph/{team}/filter
// ----------------------------------------------------------------------------

// handleGraphFilter returns the subgraph matching the requested node types
// and agencies. An empty filter list in either dimension matches nothing.
func (c *Component) handleGraphFilter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	team := r.PathValue("team")
	g, ok := c.snapshotGraph(team)
	if !ok {
		http.Error(w, "Unknown team", http.StatusNotFound)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var opts provenance.FilterOptions
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, g.Filter(opts))
}

// ----------------------------------------------------------------------------
// GET /api/graph/{team}/nodes/{id}/neighborhood
// ----------------------------------------------------------------------------

// handleNeighborhood returns a node with its direct incoming and outgoing
// connections.
func (c *Component) handleNeighborhood(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	team := r.PathValue("team")
	g, ok := c.snapshotGraph(team)
	if !ok {
		http.Error(w, "Unknown team", http.StatusNotFound)
		return
	}

	neighborhood, err := g.Neighborhood(r.PathValue("id"))
	switch {
	case errors.Is(err, provenance.ErrNotFound):
		http.Error(w, "Unknown node", http.StatusNotFound)
		return
	case errors.Is(err, provenance.ErrEmptyInput):
		http.Error(w, "Missing node id", http.StatusBadRequest)
		return
	case err != nil:
		c.logger.Error("Neighborhood lookup failed", "team", team, "error", err)
		http.Error(w, "Neighborhood lookup failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, neighborhood)
}

// ----------------------------------------------------------------------------
// GET /api/constraints
// ----------------------------------------------------------------------------

// ConstraintsResponse is the response body for constraint listings.
type ConstraintsResponse struct {
	Constraints []constraint.Constraint `json:"constraints"`
}

// handleConstraints returns all active constraints in registry order.
func (c *Component) handleConstraints(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	registry := c.snapshotRegistry()
	if registry == nil {
		http.Error(w, "Not ready", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusOK, ConstraintsResponse{Constraints: registry.Active()})
}

// ----------------------------------------------------------------------------
// POST /api/constraints/match
// ----------------------------------------------------------------------------

// MatchRequest asks which active constraints a prospective change touches.
type MatchRequest struct {
	// Files are repo-relative paths the change modifies.
	Files []string `json:"files"`

	// Components are logical component names the change touches.
	Components []string `json:"components,omitempty"`
}

// handleConstraintsMatch returns the active constraints whose scope overlaps
// the given files or components.
func (c *Component) handleConstraintsMatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	registry := c.snapshotRegistry()
	if registry == nil {
		http.Error(w, "Not ready", http.StatusServiceUnavailable)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	matched := registry.ActiveFor(req.Files, req.Components)
	writeJSON(w, http.StatusOK, ConstraintsResponse{Constraints: matched})
}

// ----------------------------------------------------------------------------
// POST /api/changes/evaluate
// ----------------------------------------------------------------------------

// handleChangesEvaluate runs a change request through the conflict
// evaluator. When the request names no components, the file-to-component
// resolver fills them in so component-scoped constraints still match.
func (c *Component) handleChangesEvaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	evaluator, resolver := c.snapshotEvaluator()
	if evaluator == nil {
		http.Error(w, "Not ready", http.StatusServiceUnavailable)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var req conflict.ChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if len(req.Components) == 0 && resolver != nil {
		req.Components = resolver.Resolve(r.Context(), req.Files)
	}

	report := evaluator.Evaluate(req)
	c.metrics.observeReport(report)

	writeJSON(w, http.StatusOK, report)
}

// ----------------------------------------------------------------------------
// GET /api/decisions/trace?file=PATH
// ----------------------------------------------------------------------------

// TraceResponse carries the decision history for one file.
type TraceResponse struct {
	File      string              `json:"file"`
	Decisions []decision.Decision `json:"decisions"`
}

// handleDecisionsTrace returns every decision that touches the given file,
// newest first.
func (c *Component) handleDecisionsTrace(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	file := r.URL.Query().Get("file")
	if file == "" {
		http.Error(w, "Missing file parameter", http.StatusBadRequest)
		return
	}

	trace, err := decision.Trace(file, c.snapshotDecisions())
	if err != nil {
		http.Error(w, "Invalid file parameter", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, TraceResponse{File: file, Decisions: trace})
}

// ----------------------------------------------------------------------------
// GET /api/export?team=T&format=F&profile=P
// ----------------------------------------------------------------------------

// handleExport serializes a team graph to RDF. Format defaults to turtle,
// profile to minimal, team to the configured default.
func (c *Component) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	team := r.URL.Query().Get("team")
	if team == "" {
		team = c.config.GetDefaultTeam()
	}

	format := export.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = export.FormatTurtle
	}
	info, ok := export.GetFormatInfo(format)
	if !ok {
		http.Error(w, "Unsupported format", http.StatusBadRequest)
		return
	}

	profile := export.Profile(r.URL.Query().Get("profile"))
	if profile == "" {
		profile = export.ProfileMinimal
	}

	g, found := c.snapshotGraph(team)
	if !found {
		http.Error(w, "Unknown team", http.StatusNotFound)
		return
	}

	output, err := export.FromGraph(team, g, profile).Export(format)
	if err != nil {
		c.logger.Error("Export failed", "team", team, "format", format, "error", err)
		http.Error(w, "Export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", info.MIMEType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(output))
}

// ----------------------------------------------------------------------------
// Helpers
// ----------------------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Response is already partially written; nothing useful to do.
		_ = err
	}
}
