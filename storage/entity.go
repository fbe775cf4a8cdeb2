// Package storage provides entity storage for provgraph using NATS KV.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360studio/provgraph/constraint"
	"github.com/c360studio/provgraph/decision"
	"github.com/c360studio/provgraph/provenance"
)

// EntityType represents the type of entity stored in KV.
type EntityType string

const (
	EntityTypeConstraint EntityType = "constraint"
	EntityTypeDecision   EntityType = "decision"
)

// Bucket names for each entity type. Graph snapshots key by team ID;
// constraints and decisions key by entity ID.
const (
	BucketGraphs      = "PROVGRAPH_GRAPHS"
	BucketConstraints = "PROVGRAPH_CONSTRAINTS"
	BucketDecisions   = "PROVGRAPH_DECISIONS"
)

// EntityID represents a typed entity identifier.
type EntityID struct {
	Type EntityType
	ID   string
}

// String returns the string representation of the entity ID.
func (e EntityID) String() string {
	return fmt.Sprintf("%s:%s", e.Type, e.ID)
}

// ParseEntityID parses an entity ID string into its components.
func ParseEntityID(s string) (EntityID, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return EntityID{}, fmt.Errorf("invalid entity ID format: %s", s)
	}
	entityType := EntityType(parts[0])
	switch entityType {
	case EntityTypeConstraint, EntityTypeDecision:
		return EntityID{Type: entityType, ID: parts[1]}, nil
	default:
		return EntityID{}, fmt.Errorf("unknown entity type: %s", parts[0])
	}
}

// NewEntityID generates a new unique entity ID for the given type.
func NewEntityID(t EntityType) EntityID {
	return EntityID{
		Type: t,
		ID:   uuid.New().String(),
	}
}

// storageKey returns the KV key for an entity ID. Typed IDs store under
// their uuid portion since NATS KV keys cannot contain colons; natural
// IDs store as-is.
func storageKey(id string) string {
	if parsed, err := ParseEntityID(id); err == nil {
		return parsed.ID
	}
	return id
}

// Store provides entity storage operations backed by NATS KV.
type Store struct {
	graphs      jetstream.KeyValue
	constraints jetstream.KeyValue
	decisions   jetstream.KeyValue
}

// NewStore creates a new Store with the given JetStream context.
// It creates the necessary KV buckets if they don't exist.
func NewStore(ctx context.Context, js jetstream.JetStream) (*Store, error) {
	graphs, err := getOrCreateBucket(ctx, js, BucketGraphs, "Provgraph team graph snapshots")
	if err != nil {
		return nil, fmt.Errorf("create graphs bucket: %w", err)
	}

	constraints, err := getOrCreateBucket(ctx, js, BucketConstraints, "Provgraph constraint registry")
	if err != nil {
		return nil, fmt.Errorf("create constraints bucket: %w", err)
	}

	decisions, err := getOrCreateBucket(ctx, js, BucketDecisions, "Provgraph decision records")
	if err != nil {
		return nil, fmt.Errorf("create decisions bucket: %w", err)
	}

	return &Store{
		graphs:      graphs,
		constraints: constraints,
		decisions:   decisions,
	}, nil
}

func getOrCreateBucket(ctx context.Context, js jetstream.JetStream, name, description string) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, name)
	if err == nil {
		return kv, nil
	}
	// Bucket doesn't exist, create it
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: description,
		History:     5, // Keep last 5 revisions
	})
}

// PutGraph stores a team's graph snapshot.
func (s *Store) PutGraph(ctx context.Context, team string, g *provenance.Graph) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal graph: %w", err)
	}

	if _, err := s.graphs.Put(ctx, team, data); err != nil {
		return fmt.Errorf("store graph: %w", err)
	}

	return nil
}

// GetGraph retrieves a team's graph snapshot.
func (s *Store) GetGraph(ctx context.Context, team string) (*provenance.Graph, error) {
	entry, err := s.graphs.Get(ctx, team)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get graph: %w", err)
	}

	var g provenance.Graph
	if err := json.Unmarshal(entry.Value(), &g); err != nil {
		return nil, fmt.Errorf("unmarshal graph: %w", err)
	}

	return &g, nil
}

// ListTeams returns the team IDs that have stored graph snapshots.
func (s *Store) ListTeams(ctx context.Context) ([]string, error) {
	keys, err := s.graphs.Keys(ctx)
	if err != nil {
		if err == jetstream.ErrNoKeysFound {
			return nil, nil
		}
		return nil, fmt.Errorf("list graph keys: %w", err)
	}
	return keys, nil
}

// PutConstraint stores a constraint, minting a typed ID if it has none.
func (s *Store) PutConstraint(ctx context.Context, c *constraint.Constraint) error {
	if c.ID == "" {
		c.ID = NewEntityID(EntityTypeConstraint).String()
	}

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal constraint: %w", err)
	}

	if _, err := s.constraints.Put(ctx, storageKey(c.ID), data); err != nil {
		return fmt.Errorf("store constraint: %w", err)
	}

	return nil
}

// GetConstraint retrieves a constraint by ID.
func (s *Store) GetConstraint(ctx context.Context, id string) (*constraint.Constraint, error) {
	entry, err := s.constraints.Get(ctx, storageKey(id))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get constraint: %w", err)
	}

	var c constraint.Constraint
	if err := json.Unmarshal(entry.Value(), &c); err != nil {
		return nil, fmt.Errorf("unmarshal constraint: %w", err)
	}

	return &c, nil
}

// ListConstraints returns all stored constraints.
func (s *Store) ListConstraints(ctx context.Context) ([]constraint.Constraint, error) {
	keys, err := s.constraints.Keys(ctx)
	if err != nil {
		if err == jetstream.ErrNoKeysFound {
			return nil, nil
		}
		return nil, fmt.Errorf("list constraint keys: %w", err)
	}

	constraints := make([]constraint.Constraint, 0, len(keys))
	for _, key := range keys {
		entry, err := s.constraints.Get(ctx, key)
		if err != nil {
			continue // Skip entries that fail to load
		}
		var c constraint.Constraint
		if err := json.Unmarshal(entry.Value(), &c); err != nil {
			continue
		}
		constraints = append(constraints, c)
	}

	return constraints, nil
}

// PutDecision stores a decision record, minting a typed ID if it has none.
func (s *Store) PutDecision(ctx context.Context, d *decision.Decision) error {
	if d.ID == "" {
		d.ID = NewEntityID(EntityTypeDecision).String()
	}

	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal decision: %w", err)
	}

	if _, err := s.decisions.Put(ctx, storageKey(d.ID), data); err != nil {
		return fmt.Errorf("store decision: %w", err)
	}

	return nil
}

// GetDecision retrieves a decision record by ID.
func (s *Store) GetDecision(ctx context.Context, id string) (*decision.Decision, error) {
	entry, err := s.decisions.Get(ctx, storageKey(id))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get decision: %w", err)
	}

	var d decision.Decision
	if err := json.Unmarshal(entry.Value(), &d); err != nil {
		return nil, fmt.Errorf("unmarshal decision: %w", err)
	}

	return &d, nil
}

// ListDecisions returns all stored decision records.
func (s *Store) ListDecisions(ctx context.Context) ([]decision.Decision, error) {
	keys, err := s.decisions.Keys(ctx)
	if err != nil {
		if err == jetstream.ErrNoKeysFound {
			return nil, nil
		}
		return nil, fmt.Errorf("list decision keys: %w", err)
	}

	decisions := make([]decision.Decision, 0, len(keys))
	for _, key := range keys {
		entry, err := s.decisions.Get(ctx, key)
		if err != nil {
			continue
		}
		var d decision.Decision
		if err := json.Unmarshal(entry.Value(), &d); err != nil {
			continue
		}
		decisions = append(decisions, d)
	}

	return decisions, nil
}

// isNotFound checks if an error indicates a key was not found.
func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "key not found")
}
