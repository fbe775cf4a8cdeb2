// Package graph provides knowledge-graph entity payloads for provenance
// nodes, edges, constraints, and decision records, plus utilities for
// publishing them to the platform knowledge graph.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	ssgraph "github.com/c360studio/semstreams/graph"
	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/natsclient"
)

// GraphIngestSubject is the platform knowledge-graph ingestion subject.
const GraphIngestSubject = "graph.ingest.entity"

// IngestSubject is the default subject the provenance-api consumes entity
// payloads from.
const IngestSubject = "provenance.ingest.entity"

// EntityIngestMessage is the message format for graph ingestion.
// Matches the format used by other platform components.
type EntityIngestMessage struct {
	ID        string           `json:"id"`
	Triples   []message.Triple `json:"triples"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// PublishEntity publishes any graphable entity to the platform knowledge
// graph.
func PublishEntity(ctx context.Context, nc *natsclient.Client, g ssgraph.Graphable) error {
	if nc == nil {
		return nil // Skip publishing if no NATS client (graceful degradation)
	}

	msg := EntityIngestMessage{
		ID:        g.EntityID(),
		Triples:   g.Triples(),
		UpdatedAt: time.Now(),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal graph entity: %w", err)
	}

	if err := nc.PublishToStream(ctx, GraphIngestSubject, data); err != nil {
		return fmt.Errorf("publish graph entity: %w", err)
	}

	return nil
}

// PublishIngest wraps a payload in a base message envelope and publishes it
// to the given ingest subject. The provenance-api consumes these envelopes
// and folds the entities into its team graph snapshots.
func PublishIngest(ctx context.Context, nc *natsclient.Client, subject string, payload message.Payload, source string) error {
	if nc == nil {
		return nil // Skip publishing if no NATS client (graceful degradation)
	}

	baseMsg := message.NewBaseMessage(payload.Schema(), payload, source)
	data, err := json.Marshal(baseMsg)
	if err != nil {
		return fmt.Errorf("marshal ingest payload: %w", err)
	}

	if err := nc.PublishToStream(ctx, subject, data); err != nil {
		return fmt.Errorf("publish ingest payload: %w", err)
	}

	return nil
}
