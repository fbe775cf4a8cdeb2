// Package export provides RDF export of provenance graph snapshots with
// PROV-O and BFO ontology alignment.
package export

import (
	"strings"

	"github.com/c360studio/provgraph/provenance"
	vocab "github.com/c360studio/provgraph/vocabulary/provenance"
	"github.com/c360studio/semstreams/message"
)

// Profile determines which ontology type assertions are included in the
// export and how far predicates are translated to standard IRIs.
type Profile string

const (
	// ProfileMinimal includes PROV-O typing and Dublin Core metadata;
	// domain predicates stay in the provgraph namespace.
	ProfileMinimal Profile = "minimal"

	// ProfilePROV translates all mapped predicates to their PROV-O and
	// Dublin Core IRIs on top of the minimal typing.
	ProfilePROV Profile = "prov"

	// ProfileBFO includes BFO type assertions plus the prov profile.
	ProfileBFO Profile = "bfo"
)

// ProfileConfig contains configuration for an export profile.
type ProfileConfig struct {
	// Name is the profile identifier.
	Name Profile

	// Description describes the profile.
	Description string

	// IncludePROV indicates whether to include PROV-O type assertions.
	IncludePROV bool

	// IncludeBFO indicates whether to include BFO type assertions.
	IncludeBFO bool

	// TranslatePredicates indicates whether to translate domain predicates
	// to standard IRIs.
	TranslatePredicates bool
}

// Profiles contains the configuration for all available export profiles.
var Profiles = map[Profile]ProfileConfig{
	ProfileMinimal: {
		Name:                ProfileMinimal,
		Description:         "PROV-O typing and Dublin Core metadata only",
		IncludePROV:         true,
		IncludeBFO:          false,
		TranslatePredicates: false,
	},
	ProfilePROV: {
		Name:                ProfilePROV,
		Description:         "Full PROV-O predicate translation",
		IncludePROV:         true,
		IncludeBFO:          false,
		TranslatePredicates: true,
	},
	ProfileBFO: {
		Name:                ProfileBFO,
		Description:         "BFO type assertions plus the prov profile",
		IncludePROV:         true,
		IncludeBFO:          true,
		TranslatePredicates: true,
	},
}

// GetProfileConfig returns the configuration for a profile.
func GetProfileConfig(profile Profile) ProfileConfig {
	if config, ok := Profiles[profile]; ok {
		return config
	}
	return Profiles[ProfileMinimal]
}

// TypeAsserter generates type assertions for entities based on profile.
type TypeAsserter struct {
	profile ProfileConfig
}

// NewTypeAsserter creates a new type asserter for the given profile.
func NewTypeAsserter(profile Profile) *TypeAsserter {
	return &TypeAsserter{
		profile: GetProfileConfig(profile),
	}
}

// GetTypeIRIs returns all type IRIs for an entity type based on the profile.
func (t *TypeAsserter) GetTypeIRIs(entityType vocab.EntityType) []string {
	types := make([]string, 0, 3)

	// The provgraph class is always asserted
	if class, ok := vocab.ProvgraphClassMap[entityType]; ok {
		types = append(types, class)
	}

	if t.profile.IncludePROV {
		if class, ok := vocab.PROVClassMap[entityType]; ok {
			types = append(types, class)
		}
	}

	if t.profile.IncludeBFO {
		if class, ok := vocab.BFOClassMap[entityType]; ok {
			types = append(types, class)
		}
	}

	return types
}

// TypeTriples returns rdf:type triples as []message.Triple for an entity
// based on its type and the given profile.
func TypeTriples(entityID string, entityType vocab.EntityType, profile Profile) []message.Triple {
	asserter := NewTypeAsserter(profile)
	typeIRIs := asserter.GetTypeIRIs(entityType)
	triples := make([]message.Triple, 0, len(typeIRIs))
	for _, typeIRI := range typeIRIs {
		triples = append(triples, message.Triple{
			Subject:    entityID,
			Predicate:  "rdf.syntax.type",
			Object:     typeIRI,
			Source:     "provgraph.export",
			Confidence: 1.0,
		})
	}
	return triples
}

// EntityTypeForNode maps a provenance node type to its export entity type.
func EntityTypeForNode(t provenance.NodeType) vocab.EntityType {
	switch t {
	case provenance.NodeIntent:
		return vocab.EntityTypeIntent
	case provenance.NodeDecision:
		return vocab.EntityTypeDecision
	case provenance.NodeTask:
		return vocab.EntityTypeTask
	case provenance.NodeExecution:
		return vocab.EntityTypeExecution
	case provenance.NodeOutcome:
		return vocab.EntityTypeOutcome
	case provenance.NodeInsight:
		return vocab.EntityTypeInsight
	default:
		return ""
	}
}

// InferEntityType attempts to infer the entity type from an entity ID.
func InferEntityType(entityID string) vocab.EntityType {
	// Entity ID format: {org}.provgraph.{context}.{kind}.{instance}
	// Examples:
	//   local.provgraph.platform.intent.intent-001
	//   local.provgraph.platform.edge.edge-001
	//   local.provgraph.registry.constraint.sec-001

	parts := strings.Split(entityID, ".")
	if len(parts) < 5 || parts[1] != "provgraph" {
		return ""
	}

	switch parts[3] {
	case "intent":
		return vocab.EntityTypeIntent
	case "decision":
		return vocab.EntityTypeDecision
	case "task":
		return vocab.EntityTypeTask
	case "execution":
		return vocab.EntityTypeExecution
	case "outcome":
		return vocab.EntityTypeOutcome
	case "insight":
		return vocab.EntityTypeInsight
	case "edge":
		return vocab.EntityTypeEdge
	case "constraint":
		return vocab.EntityTypeConstraint
	case "decision_record":
		return vocab.EntityTypeDecisionRecord
	}

	return ""
}
