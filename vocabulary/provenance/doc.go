// Package provenance provides the domain vocabulary for provgraph entities.
//
// The vocabulary covers the provenance graph (nodes and edges), standing
// constraints, and recorded decisions. It is designed for:
//   - Internal efficiency: three-level dotted predicates (prov.node.title)
//     suited to NATS wildcard queries
//   - External interoperability: PROV-O, Dublin Core, and BFO alignment for
//     RDF export
//
// # Semstreams Integration
//
// Predicates are registered in init() using vocabulary.Register() with
// description, data type, and an IRI mapping where a standard term exists.
//
// # Export Profiles
//
// The export package renders entities under three profiles:
//   - minimal: provgraph + PROV-O typing, core Dublin Core attributes
//   - prov: full predicate translation with PROV-O activity/entity typing
//   - bfo: the prov profile plus BFO continuant/occurrent classes
//
// Intent, decision, outcome, and insight nodes are informational and map to
// prov:Entity; task and execution nodes are events and map to prov:Activity.
package provenance
