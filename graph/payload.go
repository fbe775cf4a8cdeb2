package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/c360studio/provgraph/constraint"
	"github.com/c360studio/provgraph/decision"
	"github.com/c360studio/provgraph/provenance"
	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
)

func init() {
	err := component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "provgraph",
		Category:    "node",
		Version:     "v1",
		Description: "Provenance node payload for graph ingestion",
		Factory:     func() any { return &NodePayload{} },
	})
	if err != nil {
		panic("failed to register NodePayload: " + err.Error())
	}

	err = component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "provgraph",
		Category:    "edge",
		Version:     "v1",
		Description: "Provenance edge payload for graph ingestion",
		Factory:     func() any { return &EdgePayload{} },
	})
	if err != nil {
		panic("failed to register EdgePayload: " + err.Error())
	}

	err = component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "provgraph",
		Category:    "constraint",
		Version:     "v1",
		Description: "Constraint payload for registry ingestion",
		Factory:     func() any { return &ConstraintPayload{} },
	})
	if err != nil {
		panic("failed to register ConstraintPayload: " + err.Error())
	}

	err = component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "provgraph",
		Category:    "decision",
		Version:     "v1",
		Description: "Decision record payload for registry ingestion",
		Factory:     func() any { return &DecisionPayload{} },
	})
	if err != nil {
		panic("failed to register DecisionPayload: " + err.Error())
	}
}

// NodeEntityType is the message type for node payloads.
var NodeEntityType = message.Type{Domain: "provgraph", Category: "node", Version: "v1"}

// EdgeEntityType is the message type for edge payloads.
var EdgeEntityType = message.Type{Domain: "provgraph", Category: "edge", Version: "v1"}

// ConstraintEntityType is the message type for constraint payloads.
var ConstraintEntityType = message.Type{Domain: "provgraph", Category: "constraint", Version: "v1"}

// DecisionEntityType is the message type for decision record payloads.
var DecisionEntityType = message.Type{Domain: "provgraph", Category: "decision", Version: "v1"}

// defaultOrg is the organization segment used in entity IDs.
const defaultOrg = "local"

// NodeEntityID returns the graph entity ID for a provenance node.
// Format: local.provgraph.{team}.{node type}.{id}
func NodeEntityID(team string, nodeType provenance.NodeType, id string) string {
	return fmt.Sprintf("%s.provgraph.%s.%s.%s", defaultOrg, team, nodeType, id)
}

// EdgeEntityID returns the graph entity ID for a provenance edge.
// Format: local.provgraph.{team}.edge.{id}
func EdgeEntityID(team, id string) string {
	return fmt.Sprintf("%s.provgraph.%s.edge.%s", defaultOrg, team, id)
}

// ConstraintEntityID returns the graph entity ID for a constraint.
// Format: local.provgraph.registry.constraint.{id}
func ConstraintEntityID(id string) string {
	return fmt.Sprintf("%s.provgraph.registry.constraint.%s", defaultOrg, id)
}

// DecisionRecordEntityID returns the graph entity ID for a decision record.
// Format: local.provgraph.registry.decision_record.{id}
func DecisionRecordEntityID(id string) string {
	return fmt.Sprintf("%s.provgraph.registry.decision_record.%s", defaultOrg, id)
}

// NodePayload implements message.Payload and graph.Graphable for provenance
// node ingestion.
type NodePayload struct {
	Team      string          `json:"team"`
	Node      provenance.Node `json:"node"`
	UpdatedAt time.Time       `json:"updated_at,omitempty"`
}

// EntityID returns the entity identifier for Graphable interface.
func (p *NodePayload) EntityID() string {
	return NodeEntityID(p.Team, p.Node.Type, p.Node.ID)
}

// Schema returns the message type for Payload interface.
func (p *NodePayload) Schema() message.Type { return NodeEntityType }

// Validate validates the payload for Payload interface.
func (p *NodePayload) Validate() error {
	if p.Team == "" {
		return errors.New("team is required")
	}
	return p.Node.Validate()
}

// MarshalJSON implements json.Marshaler.
func (p *NodePayload) MarshalJSON() ([]byte, error) {
	type Alias NodePayload
	return json.Marshal((*Alias)(p))
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *NodePayload) UnmarshalJSON(data []byte) error {
	type Alias NodePayload
	return json.Unmarshal(data, (*Alias)(p))
}

// EdgePayload implements message.Payload and graph.Graphable for provenance
// edge ingestion.
type EdgePayload struct {
	Team      string          `json:"team"`
	Edge      provenance.Edge `json:"edge"`
	UpdatedAt time.Time       `json:"updated_at,omitempty"`
}

// EntityID returns the entity identifier for Graphable interface.
func (p *EdgePayload) EntityID() string {
	return EdgeEntityID(p.Team, p.Edge.ID)
}

// Schema returns the message type for Payload interface.
func (p *EdgePayload) Schema() message.Type { return EdgeEntityType }

// Validate validates the payload for Payload interface.
func (p *EdgePayload) Validate() error {
	if p.Team == "" {
		return errors.New("team is required")
	}
	return p.Edge.Validate()
}

// MarshalJSON implements json.Marshaler.
func (p *EdgePayload) MarshalJSON() ([]byte, error) {
	type Alias EdgePayload
	return json.Marshal((*Alias)(p))
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *EdgePayload) UnmarshalJSON(data []byte) error {
	type Alias EdgePayload
	return json.Unmarshal(data, (*Alias)(p))
}

// ConstraintPayload implements message.Payload and graph.Graphable for
// constraint registry ingestion.
type ConstraintPayload struct {
	Constraint constraint.Constraint `json:"constraint"`
	UpdatedAt  time.Time             `json:"updated_at,omitempty"`
}

// EntityID returns the entity identifier for Graphable interface.
func (p *ConstraintPayload) EntityID() string {
	return ConstraintEntityID(p.Constraint.ID)
}

// Schema returns the message type for Payload interface.
func (p *ConstraintPayload) Schema() message.Type { return ConstraintEntityType }

// Validate validates the payload for Payload interface.
func (p *ConstraintPayload) Validate() error {
	return p.Constraint.Validate()
}

// MarshalJSON implements json.Marshaler.
func (p *ConstraintPayload) MarshalJSON() ([]byte, error) {
	type Alias ConstraintPayload
	return json.Marshal((*Alias)(p))
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *ConstraintPayload) UnmarshalJSON(data []byte) error {
	type Alias ConstraintPayload
	return json.Unmarshal(data, (*Alias)(p))
}

// DecisionPayload implements message.Payload and graph.Graphable for decision
// record ingestion.
type DecisionPayload struct {
	Decision  decision.Decision `json:"decision"`
	UpdatedAt time.Time         `json:"updated_at,omitempty"`
}

// EntityID returns the entity identifier for Graphable interface.
func (p *DecisionPayload) EntityID() string {
	return DecisionRecordEntityID(p.Decision.ID)
}

// Schema returns the message type for Payload interface.
func (p *DecisionPayload) Schema() message.Type { return DecisionEntityType }

// Validate validates the payload for Payload interface.
func (p *DecisionPayload) Validate() error {
	return p.Decision.Validate()
}

// MarshalJSON implements json.Marshaler.
func (p *DecisionPayload) MarshalJSON() ([]byte, error) {
	type Alias DecisionPayload
	return json.Marshal((*Alias)(p))
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *DecisionPayload) UnmarshalJSON(data []byte) error {
	type Alias DecisionPayload
	return json.Unmarshal(data, (*Alias)(p))
}
