package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/c360studio/provgraph/graph"
	"github.com/c360studio/provgraph/provenance"
	vocab "github.com/c360studio/provgraph/vocabulary/provenance"
	"github.com/c360studio/semstreams/message"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"
)

// Triple represents a semantic triple for export.
type Triple struct {
	Subject   string
	Predicate string
	Object    any
}

// Entity represents an exportable entity with its type and triples.
type Entity struct {
	ID         string
	EntityType vocab.EntityType
	Triples    []Triple
}

// RDFExporter exports entities to RDF with configurable ontology profiles.
type RDFExporter struct {
	profile  Profile
	config   ProfileConfig
	entities []Entity
	prefixes map[string]string
}

// NewRDFExporter creates a new RDF exporter with the specified profile.
func NewRDFExporter(profile Profile) *RDFExporter {
	return &RDFExporter{
		profile:  profile,
		config:   GetProfileConfig(profile),
		entities: make([]Entity, 0),
		prefixes: defaultPrefixes(),
	}
}

// defaultPrefixes returns the standard namespace prefixes for RDF export.
func defaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":       "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
		"rdfs":      "http://www.w3.org/2000/01/rdf-schema#",
		"xsd":       "http://www.w3.org/2001/XMLSchema#",
		"dc":        "http://purl.org/dc/terms/",
		"prov":      "http://www.w3.org/ns/prov#",
		"bfo":       "http://purl.obolibrary.org/obo/",
		"provgraph": vocab.Namespace,
		"entity":    vocab.EntityNamespace,
	}
}

// FromGraph builds an exporter preloaded with a team graph snapshot. Nodes
// and edges are added in ID order so repeated exports of the same snapshot
// produce identical output.
func FromGraph(team string, g *provenance.Graph, profile Profile) *RDFExporter {
	e := NewRDFExporter(profile)

	nodes := append([]provenance.Node(nil), g.Nodes...)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	for i := range nodes {
		payload := &graph.NodePayload{Team: team, Node: nodes[i]}
		e.AddEntity(Entity{
			ID:         payload.EntityID(),
			EntityType: EntityTypeForNode(nodes[i].Type),
			Triples:    fromMessageTriples(payload.Triples()),
		})
	}

	edges := append([]provenance.Edge(nil), g.Edges...)
	sort.Slice(edges, func(i, j int) bool { return edges[i].ID < edges[j].ID })
	for i := range edges {
		payload := &graph.EdgePayload{Team: team, Edge: edges[i]}
		e.AddEntity(Entity{
			ID:         payload.EntityID(),
			EntityType: vocab.EntityTypeEdge,
			Triples:    fromMessageTriples(payload.Triples()),
		})
	}

	return e
}

// fromMessageTriples converts platform triples to export triples.
func fromMessageTriples(triples []message.Triple) []Triple {
	out := make([]Triple, 0, len(triples))
	for _, tr := range triples {
		out = append(out, Triple{Subject: tr.Subject, Predicate: tr.Predicate, Object: tr.Object})
	}
	return out
}

// AddEntity adds an entity to be exported.
func (e *RDFExporter) AddEntity(entity Entity) {
	e.entities = append(e.entities, entity)
}

// AddEntityFromTriples creates and adds an entity from raw triples.
func (e *RDFExporter) AddEntityFromTriples(id string, entityType vocab.EntityType, triples []Triple) {
	e.entities = append(e.entities, Entity{
		ID:         id,
		EntityType: entityType,
		Triples:    triples,
	})
}

// Export serializes all entities to the specified format.
func (e *RDFExporter) Export(format Format) (string, error) {
	switch format {
	case FormatTurtle:
		return e.toTurtle(), nil
	case FormatNTriples:
		return e.toNTriples(), nil
	case FormatJSONLD:
		return e.toJSONLD(), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// predicateIRI resolves a dotted predicate to an IRI under the exporter's
// profile. The minimal profile keeps domain predicates in the provgraph
// namespace and translates only the Dublin Core metadata predicates.
func (e *RDFExporter) predicateIRI(predicate string) string {
	if e.config.TranslatePredicates {
		return vocab.GetPredicateIRI(predicate)
	}
	switch predicate {
	case vocab.DCTitle, vocab.DCDescription:
		return vocab.GetPredicateIRI(predicate)
	}
	return vocab.Namespace + predicate
}

// toTurtle serializes to Turtle format.
func (e *RDFExporter) toTurtle() string {
	w := NewTurtleWriter()
	w.WritePrefixes()

	for _, entity := range e.entities {
		iri := entityIDToIRI(entity.ID)
		w.WriteSubject(iri)

		types := vocab.GetTypesForEntity(entity.EntityType, string(e.profile))
		for i, typeIRI := range types {
			last := i == len(types)-1 && len(entity.Triples) == 0
			w.WriteType(typeIRI, last)
		}

		for i, triple := range entity.Triples {
			w.WritePredicate(e.predicateIRI(triple.Predicate), triple.Object, i == len(entity.Triples)-1)
		}
		w.WriteBlank()
	}

	return w.String()
}

// toNTriples serializes to N-Triples format.
func (e *RDFExporter) toNTriples() string {
	w := NewNTriplesWriter()

	for _, entity := range e.entities {
		iri := entityIDToIRI(entity.ID)

		for _, typeIRI := range vocab.GetTypesForEntity(entity.EntityType, string(e.profile)) {
			w.WriteTypeTriple(iri, typeIRI)
		}

		for _, triple := range entity.Triples {
			w.WriteTriple(iri, e.predicateIRI(triple.Predicate), triple.Object)
		}
	}

	return w.String()
}

// toJSONLD serializes to JSON-LD format.
func (e *RDFExporter) toJSONLD() string {
	w := NewJSONLDWriter()
	w.SetContext(e.prefixes)

	for _, entity := range e.entities {
		iri := entityIDToIRI(entity.ID)
		types := vocab.GetTypesForEntity(entity.EntityType, string(e.profile))

		props := make(map[string]any, len(entity.Triples))
		for _, triple := range entity.Triples {
			key := e.predicateIRI(triple.Predicate)
			val := jsonldObject(triple.Object)
			if existing, ok := props[key]; ok {
				// Repeated predicates become arrays
				switch ev := existing.(type) {
				case []any:
					props[key] = append(ev, val)
				default:
					props[key] = []any{ev, val}
				}
			} else {
				props[key] = val
			}
		}

		w.AddNode(iri, types, props)
	}

	return w.String()
}

// entityIDToIRI converts a dotted entity ID to an IRI.
// Example: "local.provgraph.platform.intent.intent-001"
//       -> "https://provgraph.dev/entity/platform/intent/intent-001"
func entityIDToIRI(entityID string) string {
	parts := strings.Split(entityID, ".")
	if len(parts) < 5 {
		// Not enough parts, use as-is
		return vocab.EntityNamespace + entityID
	}

	// Skip org (0) and "provgraph" (1); use context (2), kind (3),
	// instance (4+)
	context := parts[2]
	kind := parts[3]
	instance := strings.Join(parts[4:], "/")

	return fmt.Sprintf("%s%s/%s/%s", vocab.EntityNamespace, context, kind, instance)
}

// looksLikeEntityID reports whether a string value is a dotted entity ID
// rather than a plain literal.
func looksLikeEntityID(v string) bool {
	return strings.Contains(v, ".") && !strings.Contains(v, " ") && len(strings.Split(v, ".")) >= 4
}

// jsonldObject converts an object value to its JSON-LD representation.
func jsonldObject(obj any) any {
	switch v := obj.(type) {
	case string:
		if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
			return map[string]any{"@id": v}
		}
		if looksLikeEntityID(v) {
			return map[string]any{"@id": entityIDToIRI(v)}
		}
		if _, err := time.Parse(time.RFC3339, v); err == nil {
			return map[string]any{"@value": v, "@type": "xsd:dateTime"}
		}
		return v
	default:
		return v
	}
}

// formatObject formats an object value for Turtle output.
func formatObject(obj any) string {
	switch v := obj.(type) {
	case string:
		if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
			return fmt.Sprintf("<%s>", v)
		}
		if looksLikeEntityID(v) {
			return fmt.Sprintf("<%s>", entityIDToIRI(v))
		}
		if _, err := time.Parse(time.RFC3339, v); err == nil {
			return fmt.Sprintf("\"%s\"^^xsd:dateTime", v)
		}
		return fmt.Sprintf("\"%s\"", escapeString(v))
	case int, int32, int64:
		return fmt.Sprintf("\"%d\"^^xsd:integer", v)
	case float32, float64:
		return fmt.Sprintf("\"%f\"^^xsd:decimal", v)
	case bool:
		return fmt.Sprintf("\"%t\"^^xsd:boolean", v)
	default:
		return fmt.Sprintf("\"%v\"", v)
	}
}

// formatObjectNTriples formats an object value for N-Triples output.
func formatObjectNTriples(obj any) string {
	switch v := obj.(type) {
	case string:
		if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
			return fmt.Sprintf("<%s>", v)
		}
		if looksLikeEntityID(v) {
			return fmt.Sprintf("<%s>", entityIDToIRI(v))
		}
		if _, err := time.Parse(time.RFC3339, v); err == nil {
			return fmt.Sprintf("\"%s\"^^<http://www.w3.org/2001/XMLSchema#dateTime>", v)
		}
		return fmt.Sprintf("\"%s\"", escapeString(v))
	case int, int32, int64:
		return fmt.Sprintf("\"%d\"^^<http://www.w3.org/2001/XMLSchema#integer>", v)
	case float32, float64:
		return fmt.Sprintf("\"%f\"^^<http://www.w3.org/2001/XMLSchema#decimal>", v)
	case bool:
		return fmt.Sprintf("\"%t\"^^<http://www.w3.org/2001/XMLSchema#boolean>", v)
	default:
		return fmt.Sprintf("\"%v\"", v)
	}
}

// escapeString escapes special characters in strings for RDF serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
