package provenance

import "github.com/c360studio/semstreams/vocabulary"

// Node predicates define attributes for provenance graph nodes.
const (
	// PredicateNodeType is the node kind predicate.
	// Values: intent, decision, task, execution, outcome, insight
	PredicateNodeType = "prov.node.type"

	// NodeTitle is the node title.
	NodeTitle = "prov.node.title"

	// NodeDescription is the node description.
	NodeDescription = "prov.node.description"

	// NodeAgency records who drove the work.
	// Values: human, ai
	NodeAgency = "prov.node.agency"

	// NodeConfidence is the confidence grade, when stated.
	// Values: low, medium, high, verified
	NodeConfidence = "prov.node.confidence"

	// PredicateNodeStatus is the lifecycle status predicate.
	// Values: proposed, active, completed, blocked, abandoned, superseded
	PredicateNodeStatus = "prov.node.status"

	// NodeTimestamp is the RFC3339 creation timestamp.
	NodeTimestamp = "prov.node.timestamp"

	// NodeTeam links a node to the team graph that owns it.
	NodeTeam = "prov.node.team"
)

// Edge predicates define the endpoints of directed provenance links.
const (
	// EdgeSource links an edge to its source node entity.
	EdgeSource = "prov.edge.source"

	// EdgeTarget links an edge to its target node entity.
	EdgeTarget = "prov.edge.target"
)

// Constraint predicates define attributes for standing constraints.
const (
	// PredicateConstraintType is the constraint category predicate.
	// Values: security, performance, cost, reliability, regulatory, architecture
	PredicateConstraintType = "prov.constraint.type"

	// ConstraintName is the constraint name.
	ConstraintName = "prov.constraint.name"

	// ConstraintDescription is the constraint description.
	ConstraintDescription = "prov.constraint.description"

	// ConstraintSeverity is the severity grade.
	// Values: critical, high, medium, low
	ConstraintSeverity = "prov.constraint.severity"

	// ConstraintEnforcement is the enforcement mode.
	// Values: hard, soft
	ConstraintEnforcement = "prov.constraint.enforcement"

	// ConstraintFileScope is a file glob the constraint applies to.
	ConstraintFileScope = "prov.constraint.file_scope"

	// ConstraintComponentScope is a component name the constraint applies to.
	ConstraintComponentScope = "prov.constraint.component_scope"

	// ConstraintApprovedBy names who approved the constraint.
	ConstraintApprovedBy = "prov.constraint.approved_by"

	// ConstraintActive indicates whether the constraint is in force.
	ConstraintActive = "prov.constraint.active"
)

// Decision record predicates define attributes for recorded decisions.
const (
	// DecisionTitle is the decision title.
	DecisionTitle = "prov.decision.title"

	// DecisionCategory groups the decision (architecture, security, ...).
	DecisionCategory = "prov.decision.category"

	// DecisionImportance grades how consequential the decision was.
	// Values: critical, high, medium, low
	DecisionImportance = "prov.decision.importance"

	// DecisionDecidedBy names who made the call.
	DecisionDecidedBy = "prov.decision.decided_by"

	// DecisionCreatedAt is the RFC3339 timestamp the decision was recorded.
	DecisionCreatedAt = "prov.decision.created_at"

	// DecisionFile is a file path the decision shaped.
	DecisionFile = "prov.decision.file"

	// DecisionAlternative is a rejected option with its reason.
	DecisionAlternative = "prov.decision.alternative"
)

// Standard metadata predicates aligned with Dublin Core.
const (
	// DCTitle is the human-readable title.
	DCTitle = "dc.terms.title"

	// DCDescription is the description text.
	DCDescription = "dc.terms.description"
)

func registerNodePredicates() {
	vocabulary.Register(PredicateNodeType,
		vocabulary.WithDescription("Node kind"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"nodeType"))

	vocabulary.Register(NodeTitle,
		vocabulary.WithDescription("Node title"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(vocabulary.DcTitle))

	vocabulary.Register(NodeDescription,
		vocabulary.WithDescription("Node description"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI("http://purl.org/dc/terms/description"))

	vocabulary.Register(NodeAgency,
		vocabulary.WithDescription("Who drove the work (human or ai)"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"agency"))

	vocabulary.Register(NodeConfidence,
		vocabulary.WithDescription("Confidence grade"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"confidence"))

	vocabulary.Register(PredicateNodeStatus,
		vocabulary.WithDescription("Lifecycle status"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"status"))

	vocabulary.Register(NodeTimestamp,
		vocabulary.WithDescription("Creation timestamp (RFC3339)"),
		vocabulary.WithDataType("datetime"),
		vocabulary.WithIRI(vocabulary.ProvGeneratedAtTime))

	vocabulary.Register(NodeTeam,
		vocabulary.WithDescription("Owning team graph"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"team"))
}

func registerEdgePredicates() {
	vocabulary.Register(EdgeSource,
		vocabulary.WithDescription("Source node of the link"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropSource))

	vocabulary.Register(EdgeTarget,
		vocabulary.WithDescription("Target node of the link"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropTarget))
}

func registerConstraintPredicates() {
	vocabulary.Register(PredicateConstraintType,
		vocabulary.WithDescription("Constraint category"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"constraintType"))

	vocabulary.Register(ConstraintName,
		vocabulary.WithDescription("Constraint name"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(vocabulary.DcTitle))

	vocabulary.Register(ConstraintDescription,
		vocabulary.WithDescription("Constraint description"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI("http://purl.org/dc/terms/description"))

	vocabulary.Register(ConstraintSeverity,
		vocabulary.WithDescription("Severity grade"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"severity"))

	vocabulary.Register(ConstraintEnforcement,
		vocabulary.WithDescription("Enforcement mode (hard or soft)"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"enforcement"))

	vocabulary.Register(ConstraintFileScope,
		vocabulary.WithDescription("File glob the constraint applies to"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"fileScope"))

	vocabulary.Register(ConstraintComponentScope,
		vocabulary.WithDescription("Component the constraint applies to"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"componentScope"))

	vocabulary.Register(ConstraintApprovedBy,
		vocabulary.WithDescription("Who approved the constraint"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(vocabulary.ProvWasAttributedTo))

	vocabulary.Register(ConstraintActive,
		vocabulary.WithDescription("Whether the constraint is in force"),
		vocabulary.WithDataType("bool"),
		vocabulary.WithIRI(Namespace+"active"))
}

func registerDecisionPredicates() {
	vocabulary.Register(DecisionTitle,
		vocabulary.WithDescription("Decision title"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(vocabulary.DcTitle))

	vocabulary.Register(DecisionCategory,
		vocabulary.WithDescription("Decision category"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"category"))

	vocabulary.Register(DecisionImportance,
		vocabulary.WithDescription("How consequential the decision was"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"importance"))

	vocabulary.Register(DecisionDecidedBy,
		vocabulary.WithDescription("Who made the call"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(vocabulary.ProvWasAttributedTo))

	vocabulary.Register(DecisionCreatedAt,
		vocabulary.WithDescription("When the decision was recorded (RFC3339)"),
		vocabulary.WithDataType("datetime"),
		vocabulary.WithIRI(vocabulary.ProvGeneratedAtTime))

	vocabulary.Register(DecisionFile,
		vocabulary.WithDescription("File path the decision shaped"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(PropAffectsFile))

	vocabulary.Register(DecisionAlternative,
		vocabulary.WithDescription("Rejected option with reason"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(PropRejectedAlternative))
}

func init() {
	registerNodePredicates()
	registerEdgePredicates()
	registerConstraintPredicates()
	registerDecisionPredicates()
}
