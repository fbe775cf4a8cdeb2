package storage

import (
	"testing"
)

func TestEntityID(t *testing.T) {
	t.Run("NewEntityID generates valid ID", func(t *testing.T) {
		id := NewEntityID(EntityTypeConstraint)
		if id.Type != EntityTypeConstraint {
			t.Errorf("expected type %s, got %s", EntityTypeConstraint, id.Type)
		}
		if id.ID == "" {
			t.Error("expected non-empty ID")
		}
	})

	t.Run("String returns correct format", func(t *testing.T) {
		id := EntityID{Type: EntityTypeDecision, ID: "abc123"}
		expected := "decision:abc123"
		if id.String() != expected {
			t.Errorf("expected %s, got %s", expected, id.String())
		}
	})

	t.Run("ParseEntityID parses valid ID", func(t *testing.T) {
		id, err := ParseEntityID("constraint:abc123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id.Type != EntityTypeConstraint {
			t.Errorf("expected type %s, got %s", EntityTypeConstraint, id.Type)
		}
		if id.ID != "abc123" {
			t.Errorf("expected ID abc123, got %s", id.ID)
		}
	})

	t.Run("ParseEntityID handles all types", func(t *testing.T) {
		tests := []struct {
			input    string
			expected EntityType
		}{
			{"constraint:123", EntityTypeConstraint},
			{"decision:456", EntityTypeDecision},
		}

		for _, tc := range tests {
			id, err := ParseEntityID(tc.input)
			if err != nil {
				t.Errorf("unexpected error for %s: %v", tc.input, err)
				continue
			}
			if id.Type != tc.expected {
				t.Errorf("for %s: expected type %s, got %s", tc.input, tc.expected, id.Type)
			}
		}
	})

	t.Run("ParseEntityID rejects invalid format", func(t *testing.T) {
		invalidIDs := []string{
			"invalid",
			"no-colon",
			"",
			"unknown:123",
		}

		for _, input := range invalidIDs {
			_, err := ParseEntityID(input)
			if err == nil {
				t.Errorf("expected error for %q, got nil", input)
			}
		}
	})

	t.Run("Round trip ID conversion", func(t *testing.T) {
		original := NewEntityID(EntityTypeDecision)
		str := original.String()
		parsed, err := ParseEntityID(str)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if parsed.Type != original.Type {
			t.Errorf("type mismatch: expected %s, got %s", original.Type, parsed.Type)
		}
		if parsed.ID != original.ID {
			t.Errorf("ID mismatch: expected %s, got %s", original.ID, parsed.ID)
		}
	})
}

func TestStorageKey(t *testing.T) {
	t.Run("Typed IDs store under their uuid portion", func(t *testing.T) {
		key := storageKey("constraint:550e8400-e29b-41d4-a716-446655440000")
		if key != "550e8400-e29b-41d4-a716-446655440000" {
			t.Errorf("unexpected key: %s", key)
		}
	})

	t.Run("Natural IDs store as-is", func(t *testing.T) {
		tests := []string{
			"sec-001",
			"decision.20240815.a1b2c3d4",
			"arch_db-choice",
		}
		for _, id := range tests {
			if key := storageKey(id); key != id {
				t.Errorf("storageKey(%q) = %q, want unchanged", id, key)
			}
		}
	})

	t.Run("Unknown typed prefix stores as-is", func(t *testing.T) {
		// "proposal:" is not a provgraph entity type, so the colon form
		// is treated as a natural ID
		id := "proposal:abc"
		if key := storageKey(id); key != id {
			t.Errorf("storageKey(%q) = %q, want unchanged", id, key)
		}
	})
}

func TestBucketNames(t *testing.T) {
	t.Run("Bucket names are set", func(t *testing.T) {
		if BucketGraphs != "PROVGRAPH_GRAPHS" {
			t.Errorf("unexpected graphs bucket: %s", BucketGraphs)
		}
		if BucketConstraints != "PROVGRAPH_CONSTRAINTS" {
			t.Errorf("unexpected constraints bucket: %s", BucketConstraints)
		}
		if BucketDecisions != "PROVGRAPH_DECISIONS" {
			t.Errorf("unexpected decisions bucket: %s", BucketDecisions)
		}
	})
}
