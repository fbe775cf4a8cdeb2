package provenanceapi

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360studio/provgraph/conflict"
	"github.com/c360studio/provgraph/constraint"
	"github.com/c360studio/provgraph/decision"
	"github.com/c360studio/provgraph/graph"
	"github.com/c360studio/provgraph/provenance"
	"github.com/c360studio/provgraph/storage"
	ssgraph "github.com/c360studio/semstreams/graph"
	"github.com/c360studio/semstreams/message"
)

// handleEntityMessage processes a single entity ingest message.
func (c *Component) handleEntityMessage(ctx context.Context, msg jetstream.Msg) {
	var baseMsg message.BaseMessage
	if err := json.Unmarshal(msg.Data(), &baseMsg); err != nil {
		c.logger.Warn("Failed to unmarshal base message",
			"error", err,
			"subject", msg.Subject())
		c.metrics.recordIngest("unknown", "malformed")
		_ = msg.Nak()
		return
	}

	kind, err := c.applyEntity(ctx, baseMsg.Payload())
	if err != nil {
		c.logger.Warn("Entity not applied",
			"kind", kind,
			"type", baseMsg.Type(),
			"error", err)
		c.metrics.recordIngest(kind, "rejected")
		_ = msg.Nak()
		return
	}

	c.metrics.recordIngest(kind, "applied")
	_ = msg.Ack()
	c.updateLastActivity()
}

// applyEntity folds one payload into the snapshot, returning the entity kind
// for metrics.
func (c *Component) applyEntity(ctx context.Context, payload message.Payload) (string, error) {
	switch p := payload.(type) {
	case *graph.NodePayload:
		return "node", c.applyNode(ctx, p)
	case *graph.EdgePayload:
		return "edge", c.applyEdge(ctx, p)
	case *graph.ConstraintPayload:
		return "constraint", c.applyConstraint(ctx, p)
	case *graph.DecisionPayload:
		return "decision", c.applyDecision(ctx, p)
	default:
		return "unknown", fmt.Errorf("unsupported payload type %T", payload)
	}
}

// applyNode upserts a node into the team graph. The prospective graph is
// validated before the snapshot pointer swaps, so a bad entity never
// corrupts the live snapshot.
func (c *Component) applyNode(ctx context.Context, p *graph.NodePayload) error {
	if err := p.Validate(); err != nil {
		return err
	}

	c.snapMu.Lock()
	cur := c.graphs[p.Team]
	var nodes []provenance.Node
	var edges []provenance.Edge
	if cur != nil {
		nodes = append(nodes, cur.Nodes...)
		edges = cur.Edges
	}

	replaced := false
	for i := range nodes {
		if nodes[i].ID == p.Node.ID {
			nodes[i] = p.Node
			replaced = true
			break
		}
	}
	if !replaced {
		nodes = append(nodes, p.Node)
	}

	next, err := provenance.NewGraph(nodes, edges)
	if err != nil {
		c.snapMu.Unlock()
		return err
	}
	c.graphs[p.Team] = next
	c.snapMu.Unlock()

	c.metrics.observeGraph(p.Team, next)
	c.persistGraph(ctx, p.Team, next)
	c.republish(ctx, p)
	return nil
}

// applyEdge upserts an edge into the team graph. Edges without an ID get a
// generated one; edges referencing unknown endpoints are rejected by graph
// validation.
func (c *Component) applyEdge(ctx context.Context, p *graph.EdgePayload) error {
	if p.Edge.ID == "" {
		p.Edge.ID = "edge-" + uuid.New().String()
	}
	if err := p.Validate(); err != nil {
		return err
	}

	c.snapMu.Lock()
	cur := c.graphs[p.Team]
	var nodes []provenance.Node
	var edges []provenance.Edge
	if cur != nil {
		nodes = cur.Nodes
		edges = append(edges, cur.Edges...)
	}

	replaced := false
	for i := range edges {
		if edges[i].ID == p.Edge.ID {
			edges[i] = p.Edge
			replaced = true
			break
		}
	}
	if !replaced {
		edges = append(edges, p.Edge)
	}

	next, err := provenance.NewGraph(nodes, edges)
	if err != nil {
		c.snapMu.Unlock()
		return err
	}
	c.graphs[p.Team] = next
	c.snapMu.Unlock()

	c.metrics.observeGraph(p.Team, next)
	c.persistGraph(ctx, p.Team, next)
	c.republish(ctx, p)
	return nil
}

// applyConstraint upserts a constraint and rebuilds the registry and
// evaluator. A constraint that breaks registry validation is rejected.
func (c *Component) applyConstraint(ctx context.Context, p *graph.ConstraintPayload) error {
	if p.Constraint.ID == "" {
		p.Constraint.ID = storage.NewEntityID(storage.EntityTypeConstraint).String()
	}
	if err := p.Validate(); err != nil {
		return err
	}

	c.snapMu.Lock()
	next := upsertConstraint(c.constraints, p.Constraint)
	registry, err := constraint.NewRegistry(next)
	if err != nil {
		c.snapMu.Unlock()
		return err
	}
	c.constraints = next
	c.registry = registry
	c.evaluator = conflict.NewEvaluator(registry, c.decisions)
	c.snapMu.Unlock()

	c.persistConstraint(ctx, p.Constraint)
	c.republish(ctx, p)
	return nil
}

// applyDecision upserts a decision record and rebuilds the evaluator.
func (c *Component) applyDecision(ctx context.Context, p *graph.DecisionPayload) error {
	if p.Decision.ID == "" {
		p.Decision.ID = storage.NewEntityID(storage.EntityTypeDecision).String()
	}
	if err := p.Validate(); err != nil {
		return err
	}

	c.snapMu.Lock()
	next := upsertDecision(c.decisions, p.Decision)
	c.decisions = next
	c.evaluator = conflict.NewEvaluator(c.registry, next)
	c.snapMu.Unlock()

	c.persistDecision(ctx, p.Decision)
	c.republish(ctx, p)
	return nil
}

// upsertConstraint returns a copy of list with cst replaced or appended.
func upsertConstraint(list []constraint.Constraint, cst constraint.Constraint) []constraint.Constraint {
	next := make([]constraint.Constraint, len(list), len(list)+1)
	copy(next, list)
	for i := range next {
		if next[i].ID == cst.ID {
			next[i] = cst
			return next
		}
	}
	return append(next, cst)
}

// upsertDecision returns a copy of list with d replaced or appended.
func upsertDecision(list []decision.Decision, d decision.Decision) []decision.Decision {
	next := make([]decision.Decision, len(list), len(list)+1)
	copy(next, list)
	for i := range next {
		if next[i].ID == d.ID {
			next[i] = d
			return next
		}
	}
	return append(next, d)
}

// persistGraph writes a team snapshot through to KV so restarts can hydrate
// teams that have no data file. Write failures are logged, not fatal: the
// ingest stream itself remains the durable record.
func (c *Component) persistGraph(ctx context.Context, team string, g *provenance.Graph) {
	if c.store == nil {
		return
	}
	if err := c.store.PutGraph(ctx, team, g); err != nil {
		c.logger.Warn("Graph write-through failed", "team", team, "error", err)
	}
}

func (c *Component) persistConstraint(ctx context.Context, cst constraint.Constraint) {
	if c.store == nil {
		return
	}
	if err := c.store.PutConstraint(ctx, &cst); err != nil {
		c.logger.Warn("Constraint write-through failed", "constraint_id", cst.ID, "error", err)
	}
}

func (c *Component) persistDecision(ctx context.Context, d decision.Decision) {
	if c.store == nil {
		return
	}
	if err := c.store.PutDecision(ctx, &d); err != nil {
		c.logger.Warn("Decision write-through failed", "decision_id", d.ID, "error", err)
	}
}

// republish forwards an applied entity to the platform knowledge graph.
func (c *Component) republish(ctx context.Context, g ssgraph.Graphable) {
	if err := graph.PublishEntity(ctx, c.natsClient, g); err != nil {
		c.logger.Warn("Graph republish failed", "entity_id", g.EntityID(), "error", err)
	}
}
