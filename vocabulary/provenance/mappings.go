package provenance

import (
	"github.com/c360studio/semstreams/vocabulary"
	"github.com/c360studio/semstreams/vocabulary/bfo"
)

// EntityType represents the kind of a provgraph entity for mapping purposes.
type EntityType string

// Entity type constants map entity kinds to their string identifiers.
const (
	// EntityTypeIntent is the entity type for intent nodes.
	EntityTypeIntent EntityType = "intent"
	// EntityTypeDecision is the entity type for decision nodes.
	EntityTypeDecision EntityType = "decision"
	// EntityTypeTask is the entity type for task nodes.
	EntityTypeTask EntityType = "task"
	// EntityTypeExecution is the entity type for execution nodes.
	EntityTypeExecution EntityType = "execution"
	// EntityTypeOutcome is the entity type for outcome nodes.
	EntityTypeOutcome EntityType = "outcome"
	// EntityTypeInsight is the entity type for insight nodes.
	EntityTypeInsight EntityType = "insight"
	// EntityTypeEdge is the entity type for directed provenance links.
	EntityTypeEdge EntityType = "edge"
	// EntityTypeConstraint is the entity type for standing constraints.
	EntityTypeConstraint EntityType = "constraint"
	// EntityTypeDecisionRecord is the entity type for recorded engineering
	// decisions (distinct from decision nodes in the graph).
	EntityTypeDecisionRecord EntityType = "decision_record"
)

// ProvgraphClassMap maps entity types to provgraph class IRIs.
var ProvgraphClassMap = map[EntityType]string{
	EntityTypeIntent:         ClassIntent,
	EntityTypeDecision:       ClassDecision,
	EntityTypeTask:           ClassTask,
	EntityTypeExecution:      ClassExecution,
	EntityTypeOutcome:        ClassOutcome,
	EntityTypeInsight:        ClassInsight,
	EntityTypeEdge:           ClassEdge,
	EntityTypeConstraint:     ClassConstraint,
	EntityTypeDecisionRecord: ClassDecisionRecord,
}

// PROVClassMap maps entity types to PROV-O class IRIs. Informational nodes
// are prov:Entity; task and execution nodes are prov:Activity.
var PROVClassMap = map[EntityType]string{
	EntityTypeIntent:         vocabulary.ProvEntity,
	EntityTypeDecision:       vocabulary.ProvEntity,
	EntityTypeOutcome:        vocabulary.ProvEntity,
	EntityTypeInsight:        vocabulary.ProvEntity,
	EntityTypeEdge:           vocabulary.ProvEntity,
	EntityTypeConstraint:     vocabulary.ProvEntity,
	EntityTypeDecisionRecord: vocabulary.ProvEntity,

	EntityTypeTask:      vocabulary.ProvActivity,
	EntityTypeExecution: vocabulary.ProvActivity,
}

// BFOClassMap maps entity types to BFO class IRIs for the bfo export
// profile.
var BFOClassMap = map[EntityType]string{
	EntityTypeIntent:         bfo.GenericallyDependentContinuant,
	EntityTypeDecision:       bfo.GenericallyDependentContinuant,
	EntityTypeOutcome:        bfo.GenericallyDependentContinuant,
	EntityTypeInsight:        bfo.GenericallyDependentContinuant,
	EntityTypeEdge:           bfo.GenericallyDependentContinuant,
	EntityTypeConstraint:     bfo.GenericallyDependentContinuant,
	EntityTypeDecisionRecord: bfo.GenericallyDependentContinuant,

	EntityTypeTask:      bfo.Process,
	EntityTypeExecution: bfo.Process,
}

// PredicateIRIMap maps internal predicates to standard IRIs for RDF export.
var PredicateIRIMap = map[string]string{
	// Node predicates
	PredicateNodeType:   Namespace + "nodeType",
	NodeTitle:           vocabulary.DcTitle,
	NodeDescription:     "http://purl.org/dc/terms/description",
	NodeAgency:          Namespace + "agency",
	NodeConfidence:      Namespace + "confidence",
	PredicateNodeStatus: Namespace + "status",
	NodeTimestamp:       vocabulary.ProvGeneratedAtTime,
	NodeTeam:            Namespace + "team",

	// Edge predicates
	EdgeSource: PropSource,
	EdgeTarget: PropTarget,

	// Constraint predicates
	PredicateConstraintType:  Namespace + "constraintType",
	ConstraintName:           vocabulary.DcTitle,
	ConstraintDescription:    "http://purl.org/dc/terms/description",
	ConstraintSeverity:       Namespace + "severity",
	ConstraintEnforcement:    Namespace + "enforcement",
	ConstraintFileScope:      Namespace + "fileScope",
	ConstraintComponentScope: Namespace + "componentScope",
	ConstraintApprovedBy:     vocabulary.ProvWasAttributedTo,
	ConstraintActive:         Namespace + "active",

	// Dublin Core predicates
	DCTitle:       vocabulary.DcTitle,
	DCDescription: "http://purl.org/dc/terms/description",

	// Decision record predicates
	DecisionTitle:       vocabulary.DcTitle,
	DecisionCategory:    Namespace + "category",
	DecisionImportance:  Namespace + "importance",
	DecisionDecidedBy:   vocabulary.ProvWasAttributedTo,
	DecisionCreatedAt:   vocabulary.ProvGeneratedAtTime,
	DecisionFile:        PropAffectsFile,
	DecisionAlternative: PropRejectedAlternative,
}

// GetPredicateIRI returns the standard IRI for an internal predicate.
func GetPredicateIRI(predicate string) string {
	if iri, ok := PredicateIRIMap[predicate]; ok {
		return iri
	}
	// Fall back to the provgraph namespace for unmapped predicates
	return Namespace + predicate
}

// GetTypesForEntity returns the type IRIs for an entity under the given
// export profile:
//   - "minimal": provgraph + PROV-O types
//   - "prov": same typing as minimal (the profiles differ in which
//     predicates the exporter translates)
//   - "bfo": minimal plus the BFO class
func GetTypesForEntity(entityType EntityType, profile string) []string {
	types := make([]string, 0, 3)

	if class, ok := ProvgraphClassMap[entityType]; ok {
		types = append(types, class)
	}
	if class, ok := PROVClassMap[entityType]; ok {
		types = append(types, class)
	}
	if profile == "bfo" {
		if class, ok := BFOClassMap[entityType]; ok {
			types = append(types, class)
		}
	}

	return types
}
