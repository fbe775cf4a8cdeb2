package provenanceapi

import (
	"reflect"

	"github.com/c360studio/semstreams/service"

	"github.com/c360studio/provgraph/conflict"
	"github.com/c360studio/provgraph/constraint"
	"github.com/c360studio/provgraph/decision"
	"github.com/c360studio/provgraph/provenance"
)

func init() {
	service.RegisterOpenAPISpec("provenance-api", provenanceOpenAPISpec())
}

// OpenAPISpec implements the OpenAPIProvider interface.
func (c *Component) OpenAPISpec() *service.OpenAPISpec {
	return provenanceOpenAPISpec()
}

// provenanceOpenAPISpec returns the OpenAPI specification for provenance endpoints.
func provenanceOpenAPISpec() *service.OpenAPISpec {
	return &service.OpenAPISpec{
		Tags: []service.TagSpec{
			{Name: "Graph", Description: "Team provenance graphs - nodes, edges, filtering, and neighborhood queries"},
			{Name: "Constraints", Description: "Constraint registry - listing and scope matching"},
			{Name: "Changes", Description: "Change evaluation against constraints and prior decisions"},
			{Name: "Decisions", Description: "Decision log queries"},
			{Name: "Export", Description: "RDF export of team graphs"},
		},
		Paths: map[string]service.PathSpec{
			"/api/graph/{team}": {
				GET: &service.OperationSpec{
					Summary:     "Get team graph",
					Description: "Returns the full provenance graph snapshot for a team",
					Tags:        []string{"Graph"},
					Parameters: []service.ParameterSpec{
						{
							Name:        "team",
							In:          "path",
							Required:    true,
							Description: "Team name",
							Schema:      service.Schema{Type: "string"},
						},
					},
					Responses: map[string]service.ResponseSpec{
						"200": {
							Description: "Provenance graph with all nodes and edges",
							ContentType: "application/json",
							SchemaRef:   "#/components/schemas/Graph",
						},
						"404": {Description: "Unknown team"},
					},
				},
			},
			"/api/graph/{team}/filter": {
				POST: &service.OperationSpec{
					Summary:     "Filter team graph",
					Description: "Returns the subgraph matching the requested node types and agencies",
					Tags:        []string{"Graph"},
					Parameters: []service.ParameterSpec{
						{
							Name:        "team",
							In:          "path",
							Required:    true,
							Description: "Team name",
							Schema:      service.Schema{Type: "string"},
						},
					},
					Responses: map[string]service.ResponseSpec{
						"200": {
							Description: "Filtered subgraph with dangling edges removed",
							ContentType: "application/json",
							SchemaRef:   "#/components/schemas/Graph",
						},
						"400": {Description: "Invalid filter body"},
						"404": {Description: "Unknown team"},
					},
				},
			},
			"/api/graph/{team}/nodes/{id}/neighborhood": {
				GET: &service.OperationSpec{
					Summary:     "Get node neighborhood",
					Description: "Returns a node with its direct incoming and outgoing connections",
					Tags:        []string{"Graph"},
					Parameters: []service.ParameterSpec{
						{
							Name:        "team",
							In:          "path",
							Required:    true,
							Description: "Team name",
							Schema:      service.Schema{Type: "string"},
						},
						{
							Name:        "id",
							In:          "path",
							Required:    true,
							Description: "Node identifier",
							Schema:      service.Schema{Type: "string"},
						},
					},
					Responses: map[string]service.ResponseSpec{
						"200": {
							Description: "Node with incoming and outgoing edges and their peer nodes",
							ContentType: "application/json",
							SchemaRef:   "#/components/schemas/Neighborhood",
						},
						"404": {Description: "Unknown team or node"},
					},
				},
			},
			"/api/constraints": {
				GET: &service.OperationSpec{
					Summary:     "List active constraints",
					Description: "Returns all active constraints in registry order",
					Tags:        []string{"Constraints"},
					Responses: map[string]service.ResponseSpec{
						"200": {
							Description: "Active constraints",
							ContentType: "application/json",
							SchemaRef:   "#/components/schemas/ConstraintsResponse",
						},
					},
				},
			},
			"/api/constraints/match": {
				POST: &service.OperationSpec{
					Summary:     "Match constraints",
					Description: "Returns the active constraints whose scope overlaps the given files or components",
					Tags:        []string{"Constraints"},
					Responses: map[string]service.ResponseSpec{
						"200": {
							Description: "Constraints matching the change scope",
							ContentType: "application/json",
							SchemaRef:   "#/components/schemas/ConstraintsResponse",
						},
						"400": {Description: "Invalid request body"},
					},
				},
			},
			"/api/changes/evaluate": {
				POST: &service.OperationSpec{
					Summary:     "Evaluate change",
					Description: "Runs a change request through the conflict evaluator and returns violations, warnings, prior decisions, and a risk level",
					Tags:        []string{"Changes"},
					Responses: map[string]service.ResponseSpec{
						"200": {
							Description: "Conflict report with risk level and proceed flag",
							ContentType: "application/json",
							SchemaRef:   "#/components/schemas/ConflictReport",
						},
						"400": {Description: "Invalid request body"},
					},
				},
			},
			"/api/decisions/trace": {
				GET: &service.OperationSpec{
					Summary:     "Trace file decisions",
					Description: "Returns every decision that touches the given file, newest first",
					Tags:        []string{"Decisions"},
					Parameters: []service.ParameterSpec{
						{
							Name:        "file",
							In:          "query",
							Required:    true,
							Description: "Repo-relative file path",
							Schema:      service.Schema{Type: "string"},
						},
					},
					Responses: map[string]service.ResponseSpec{
						"200": {
							Description: "Decision history for the file",
							ContentType: "application/json",
							SchemaRef:   "#/components/schemas/TraceResponse",
						},
						"400": {Description: "Missing or invalid file parameter"},
					},
				},
			},
			"/api/export": {
				GET: &service.OperationSpec{
					Summary:     "Export team graph as RDF",
					Description: "Serializes a team graph to RDF. Format defaults to turtle, profile to minimal, team to the configured default",
					Tags:        []string{"Export"},
					Parameters: []service.ParameterSpec{
						{
							Name:        "team",
							In:          "query",
							Required:    false,
							Description: "Team name (defaults to the configured default team)",
							Schema:      service.Schema{Type: "string"},
						},
						{
							Name:        "format",
							In:          "query",
							Required:    false,
							Description: "Serialization format: turtle, ntriples, or jsonld",
							Schema:      service.Schema{Type: "string"},
						},
						{
							Name:        "profile",
							In:          "query",
							Required:    false,
							Description: "Vocabulary profile: minimal, prov, or bfo",
							Schema:      service.Schema{Type: "string"},
						},
					},
					Responses: map[string]service.ResponseSpec{
						"200": {Description: "RDF document in the requested format"},
						"400": {Description: "Unsupported format"},
						"404": {Description: "Unknown team"},
					},
				},
			},
		},
		ResponseTypes: []reflect.Type{
			reflect.TypeOf(ConstraintsResponse{}),
			reflect.TypeOf(MatchRequest{}),
			reflect.TypeOf(TraceResponse{}),
			reflect.TypeOf(provenance.Graph{}),
			reflect.TypeOf(provenance.Node{}),
			reflect.TypeOf(provenance.Edge{}),
			reflect.TypeOf(provenance.Neighborhood{}),
			reflect.TypeOf(constraint.Constraint{}),
			reflect.TypeOf(conflict.ChangeRequest{}),
			reflect.TypeOf(conflict.ConflictReport{}),
			reflect.TypeOf(conflict.Conflict{}),
			reflect.TypeOf(decision.Decision{}),
		},
	}
}
