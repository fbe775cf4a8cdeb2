package graph

import (
	"time"

	vocab "github.com/c360studio/provgraph/vocabulary/provenance"
	"github.com/c360studio/semstreams/message"
)

// Triples returns the entity triples for Graphable interface.
func (p *NodePayload) Triples() []message.Triple {
	entityID := p.EntityID()

	triples := []message.Triple{
		{Subject: entityID, Predicate: vocab.PredicateNodeType, Object: string(p.Node.Type)},
		{Subject: entityID, Predicate: vocab.NodeTitle, Object: p.Node.Title},
		{Subject: entityID, Predicate: vocab.NodeAgency, Object: string(p.Node.Agency)},
		{Subject: entityID, Predicate: vocab.PredicateNodeStatus, Object: string(p.Node.Status)},
		{Subject: entityID, Predicate: vocab.NodeTimestamp, Object: p.Node.Timestamp.Format(time.RFC3339)},
		{Subject: entityID, Predicate: vocab.NodeTeam, Object: p.Team},
		{Subject: entityID, Predicate: vocab.DCTitle, Object: p.Node.Title},
	}

	if p.Node.Description != "" {
		triples = append(triples, message.Triple{Subject: entityID, Predicate: vocab.NodeDescription, Object: p.Node.Description})
	}
	if p.Node.Confidence != "" {
		triples = append(triples, message.Triple{Subject: entityID, Predicate: vocab.NodeConfidence, Object: string(p.Node.Confidence)})
	}

	return triples
}

// Triples returns the entity triples for Graphable interface. Edge endpoints
// are node IDs within the owning team graph.
func (p *EdgePayload) Triples() []message.Triple {
	entityID := p.EntityID()

	return []message.Triple{
		{Subject: entityID, Predicate: vocab.EdgeSource, Object: p.Edge.Source},
		{Subject: entityID, Predicate: vocab.EdgeTarget, Object: p.Edge.Target},
	}
}

// Triples returns the entity triples for Graphable interface.
func (p *ConstraintPayload) Triples() []message.Triple {
	entityID := p.EntityID()
	c := p.Constraint

	triples := []message.Triple{
		{Subject: entityID, Predicate: vocab.PredicateConstraintType, Object: string(c.Type)},
		{Subject: entityID, Predicate: vocab.ConstraintName, Object: c.Name},
		{Subject: entityID, Predicate: vocab.ConstraintSeverity, Object: string(c.Severity)},
		{Subject: entityID, Predicate: vocab.ConstraintEnforcement, Object: string(c.Enforcement)},
		{Subject: entityID, Predicate: vocab.ConstraintActive, Object: c.IsActive},
		{Subject: entityID, Predicate: vocab.DCTitle, Object: c.Name},
	}

	if c.Description != "" {
		triples = append(triples, message.Triple{Subject: entityID, Predicate: vocab.ConstraintDescription, Object: c.Description})
	}
	if c.ApprovedBy != "" {
		triples = append(triples, message.Triple{Subject: entityID, Predicate: vocab.ConstraintApprovedBy, Object: c.ApprovedBy})
	}
	for _, pattern := range c.Scope.Files {
		triples = append(triples, message.Triple{Subject: entityID, Predicate: vocab.ConstraintFileScope, Object: pattern})
	}
	for _, name := range c.Scope.Components {
		triples = append(triples, message.Triple{Subject: entityID, Predicate: vocab.ConstraintComponentScope, Object: name})
	}

	return triples
}

// Triples returns the entity triples for Graphable interface.
func (p *DecisionPayload) Triples() []message.Triple {
	entityID := p.EntityID()
	d := p.Decision

	triples := []message.Triple{
		{Subject: entityID, Predicate: vocab.DecisionTitle, Object: d.Title},
		{Subject: entityID, Predicate: vocab.DecisionCategory, Object: d.Category},
		{Subject: entityID, Predicate: vocab.DecisionImportance, Object: string(d.Importance)},
		{Subject: entityID, Predicate: vocab.DecisionCreatedAt, Object: d.CreatedAt.Format(time.RFC3339)},
		{Subject: entityID, Predicate: vocab.DCTitle, Object: d.Title},
	}

	if d.DecidedBy != "" {
		triples = append(triples, message.Triple{Subject: entityID, Predicate: vocab.DecisionDecidedBy, Object: d.DecidedBy})
	}
	for _, file := range d.AffectedFiles {
		triples = append(triples, message.Triple{Subject: entityID, Predicate: vocab.DecisionFile, Object: file})
	}
	for _, alt := range d.AlternativesConsidered {
		obj := alt.Title
		if alt.Reason != "" {
			obj = alt.Title + ": " + alt.Reason
		}
		triples = append(triples, message.Triple{Subject: entityID, Predicate: vocab.DecisionAlternative, Object: obj})
	}

	return triples
}
