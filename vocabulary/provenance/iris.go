package provenance

// Namespace is the base IRI prefix for all provgraph ontology terms.
const Namespace = "https://provgraph.dev/ontology/"

// EntityNamespace is the base IRI for provgraph entity instances.
const EntityNamespace = "https://provgraph.dev/entity/"

// Class IRIs define the types of entities in the provgraph ontology.
const (
	// ClassIntent represents a recorded intent or goal.
	// Extends: bfo:GenericallyDependentContinuant, prov:Entity
	ClassIntent = Namespace + "Intent"

	// ClassDecision represents a decision node in the provenance graph.
	// Extends: bfo:GenericallyDependentContinuant, prov:Entity
	ClassDecision = Namespace + "Decision"

	// ClassTask represents planned work.
	// Extends: bfo:Process, prov:Activity
	ClassTask = Namespace + "Task"

	// ClassExecution represents work being carried out.
	// Extends: bfo:Process, prov:Activity
	ClassExecution = Namespace + "Execution"

	// ClassOutcome represents the observed result of executed work.
	// Extends: bfo:GenericallyDependentContinuant, prov:Entity
	ClassOutcome = Namespace + "Outcome"

	// ClassInsight represents a lesson drawn from an outcome.
	// Extends: bfo:GenericallyDependentContinuant, prov:Entity
	ClassInsight = Namespace + "Insight"

	// ClassEdge represents a directed provenance link between two nodes.
	ClassEdge = Namespace + "Edge"

	// ClassConstraint represents a standing constraint over files and
	// components.
	// Extends: bfo:GenericallyDependentContinuant, prov:Entity
	ClassConstraint = Namespace + "Constraint"

	// ClassDecisionRecord represents a recorded engineering decision with
	// affected files and rejected alternatives.
	// Extends: bfo:GenericallyDependentContinuant, prov:Entity
	ClassDecisionRecord = Namespace + "DecisionRecord"
)

// Object property IRIs define relationships between entities.
const (
	// PropSource links an edge to its source node.
	PropSource = Namespace + "source"

	// PropTarget links an edge to its target node.
	PropTarget = Namespace + "target"

	// PropAffectsFile links a decision record to a file path it shaped.
	PropAffectsFile = Namespace + "affectsFile"

	// PropRejectedAlternative links a decision record to a rejected option.
	PropRejectedAlternative = Namespace + "rejectedAlternative"
)
