// Package provenance provides the typed provenance graph model: nodes
// connecting intents to decisions, tasks, executions, outcomes, and insights,
// plus the pure filter and traversal operations over them.
//
// All operations in this package are stateless transformations over
// caller-supplied snapshots. The package performs no I/O and retains no
// state between calls.
package provenance

import (
	"time"
)

// NodeType classifies what kind of artifact a node records.
type NodeType string

const (
	// NodeIntent captures a goal or motivation that started a chain of work.
	NodeIntent NodeType = "intent"
	// NodeDecision records a choice made in service of an intent.
	NodeDecision NodeType = "decision"
	// NodeTask is a unit of work derived from a decision.
	NodeTask NodeType = "task"
	// NodeExecution records an attempt to carry out a task.
	NodeExecution NodeType = "execution"
	// NodeOutcome records the observable result of an execution.
	NodeOutcome NodeType = "outcome"
	// NodeInsight captures a lesson learned from an outcome.
	NodeInsight NodeType = "insight"
)

// String returns the string representation of the node type.
func (t NodeType) String() string {
	return string(t)
}

// IsValid returns true if the node type is one of the six known kinds.
func (t NodeType) IsValid() bool {
	switch t {
	case NodeIntent, NodeDecision, NodeTask, NodeExecution, NodeOutcome, NodeInsight:
		return true
	default:
		return false
	}
}

// AllNodeTypes returns every node type in causal order.
func AllNodeTypes() []NodeType {
	return []NodeType{NodeIntent, NodeDecision, NodeTask, NodeExecution, NodeOutcome, NodeInsight}
}

// Agency identifies whether a human or an AI agent produced a node.
type Agency string

const (
	// AgencyHuman marks work recorded by a person.
	AgencyHuman Agency = "human"
	// AgencyAI marks work recorded by an automated agent.
	AgencyAI Agency = "ai"
)

// String returns the string representation of the agency.
func (a Agency) String() string {
	return string(a)
}

// IsValid returns true if the agency is a known value.
func (a Agency) IsValid() bool {
	return a == AgencyHuman || a == AgencyAI
}

// AllAgencies returns both agency values.
func AllAgencies() []Agency {
	return []Agency{AgencyHuman, AgencyAI}
}

// Confidence expresses how much trust the author places in a node's content.
type Confidence string

const (
	// ConfidenceLow marks speculative or weakly supported content.
	ConfidenceLow Confidence = "low"
	// ConfidenceMedium marks reasonably supported content.
	ConfidenceMedium Confidence = "medium"
	// ConfidenceHigh marks well supported content.
	ConfidenceHigh Confidence = "high"
	// ConfidenceVerified marks content confirmed by an independent check.
	ConfidenceVerified Confidence = "verified"
)

// String returns the string representation of the confidence level.
func (c Confidence) String() string {
	return string(c)
}

// IsValid returns true if the confidence is a known level.
func (c Confidence) IsValid() bool {
	switch c {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh, ConfidenceVerified:
		return true
	default:
		return false
	}
}

// NodeStatus is the lifecycle state of a node.
type NodeStatus string

const (
	// StatusProposed indicates the node has been recorded but not acted on.
	StatusProposed NodeStatus = "proposed"
	// StatusActive indicates work on the node is in progress.
	StatusActive NodeStatus = "active"
	// StatusCompleted indicates the node's work finished.
	StatusCompleted NodeStatus = "completed"
	// StatusBlocked indicates progress is blocked on something external.
	StatusBlocked NodeStatus = "blocked"
	// StatusAbandoned indicates the node was dropped without completion.
	StatusAbandoned NodeStatus = "abandoned"
	// StatusSuperseded indicates a later node replaced this one.
	StatusSuperseded NodeStatus = "superseded"
)

// String returns the string representation of the status.
func (s NodeStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is a known lifecycle state.
func (s NodeStatus) IsValid() bool {
	switch s {
	case StatusProposed, StatusActive, StatusCompleted, StatusBlocked, StatusAbandoned, StatusSuperseded:
		return true
	default:
		return false
	}
}

// CanTransitionTo returns true if the status can move to the target state.
func (s NodeStatus) CanTransitionTo(target NodeStatus) bool {
	switch s {
	case StatusProposed:
		return target == StatusActive || target == StatusAbandoned
	case StatusActive:
		return target == StatusCompleted || target == StatusBlocked || target == StatusAbandoned
	case StatusBlocked:
		return target == StatusActive || target == StatusAbandoned
	case StatusCompleted:
		return target == StatusSuperseded
	case StatusAbandoned, StatusSuperseded:
		return false // Terminal states
	default:
		return false
	}
}

// Node is a single artifact in the provenance graph.
type Node struct {
	// ID uniquely identifies the node within a graph instance.
	ID string `json:"id"`

	// Type classifies the artifact. Immutable after creation.
	Type NodeType `json:"type"`

	// Title is the short human-readable summary.
	Title string `json:"title"`

	// Description is the optional longer explanation.
	Description string `json:"description,omitempty"`

	// Agency records whether a human or an AI agent produced the node.
	Agency Agency `json:"agency"`

	// Confidence is the optional trust level; empty means unstated.
	Confidence Confidence `json:"confidence,omitempty"`

	// Status is the lifecycle state.
	Status NodeStatus `json:"status"`

	// Timestamp is when the artifact was recorded.
	Timestamp time.Time `json:"timestamp"`
}

// Validate checks that required fields are present and enums are known values.
func (n *Node) Validate() error {
	if n.ID == "" {
		return &ValidationError{Field: "id", Message: "id is required"}
	}
	if !n.Type.IsValid() {
		return &ValidationError{Field: "type", Message: "unknown node type: " + n.Type.String()}
	}
	if n.Title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if !n.Agency.IsValid() {
		return &ValidationError{Field: "agency", Message: "unknown agency: " + n.Agency.String()}
	}
	if n.Confidence != "" && !n.Confidence.IsValid() {
		return &ValidationError{Field: "confidence", Message: "unknown confidence: " + n.Confidence.String()}
	}
	if !n.Status.IsValid() {
		return &ValidationError{Field: "status", Message: "unknown status: " + n.Status.String()}
	}
	if n.Timestamp.IsZero() {
		return &ValidationError{Field: "timestamp", Message: "timestamp is required"}
	}
	return nil
}

// Edge is a directed connection between two nodes. Edges may form cycles;
// nothing in this package assumes the graph is acyclic.
type Edge struct {
	// ID uniquely identifies the edge within a graph instance.
	ID string `json:"id"`

	// Source is the node ID the edge points from.
	Source string `json:"source"`

	// Target is the node ID the edge points to.
	Target string `json:"target"`
}

// Validate checks that the edge carries an ID and both endpoint references.
// Endpoint existence is checked at the graph level, where the node set is known.
func (e *Edge) Validate() error {
	if e.ID == "" {
		return &ValidationError{Field: "id", Message: "id is required"}
	}
	if e.Source == "" {
		return &ValidationError{Field: "source", Message: "source is required"}
	}
	if e.Target == "" {
		return &ValidationError{Field: "target", Message: "target is required"}
	}
	return nil
}

// ValidationError reports a field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
