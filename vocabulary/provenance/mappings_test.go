package provenance_test

import (
	"testing"

	vocab "github.com/c360studio/provgraph/vocabulary/provenance"
	"github.com/c360studio/semstreams/vocabulary"
	"github.com/c360studio/semstreams/vocabulary/bfo"
)

func TestPROVClassMap(t *testing.T) {
	tests := []struct {
		entityType vocab.EntityType
		want       string
	}{
		{vocab.EntityTypeIntent, vocabulary.ProvEntity},
		{vocab.EntityTypeDecision, vocabulary.ProvEntity},
		{vocab.EntityTypeTask, vocabulary.ProvActivity},
		{vocab.EntityTypeExecution, vocabulary.ProvActivity},
		{vocab.EntityTypeOutcome, vocabulary.ProvEntity},
		{vocab.EntityTypeInsight, vocabulary.ProvEntity},
		{vocab.EntityTypeConstraint, vocabulary.ProvEntity},
		{vocab.EntityTypeDecisionRecord, vocabulary.ProvEntity},
	}

	for _, tc := range tests {
		t.Run(string(tc.entityType), func(t *testing.T) {
			got, ok := vocab.PROVClassMap[tc.entityType]
			if !ok {
				t.Fatalf("entity type %q not in PROVClassMap", tc.entityType)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestBFOClassMap(t *testing.T) {
	tests := []struct {
		entityType vocab.EntityType
		want       string
	}{
		{vocab.EntityTypeIntent, bfo.GenericallyDependentContinuant},
		{vocab.EntityTypeTask, bfo.Process},
		{vocab.EntityTypeExecution, bfo.Process},
		{vocab.EntityTypeConstraint, bfo.GenericallyDependentContinuant},
	}

	for _, tc := range tests {
		t.Run(string(tc.entityType), func(t *testing.T) {
			got, ok := vocab.BFOClassMap[tc.entityType]
			if !ok {
				t.Fatalf("entity type %q not in BFOClassMap", tc.entityType)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestGetTypesForEntity(t *testing.T) {
	tests := []struct {
		name       string
		entityType vocab.EntityType
		profile    string
		wantLen    int
		wantLast   string
	}{
		{"minimal task", vocab.EntityTypeTask, "minimal", 2, vocabulary.ProvActivity},
		{"prov task", vocab.EntityTypeTask, "prov", 2, vocabulary.ProvActivity},
		{"bfo task", vocab.EntityTypeTask, "bfo", 3, bfo.Process},
		{"bfo intent", vocab.EntityTypeIntent, "bfo", 3, bfo.GenericallyDependentContinuant},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := vocab.GetTypesForEntity(tc.entityType, tc.profile)
			if len(got) != tc.wantLen {
				t.Fatalf("GetTypesForEntity() = %v, want %d types", got, tc.wantLen)
			}
			if got[0] != vocab.ProvgraphClassMap[tc.entityType] {
				t.Errorf("first type = %q, want the provgraph class", got[0])
			}
			if got[len(got)-1] != tc.wantLast {
				t.Errorf("last type = %q, want %q", got[len(got)-1], tc.wantLast)
			}
		})
	}
}

func TestEveryEntityTypeIsMapped(t *testing.T) {
	all := []vocab.EntityType{
		vocab.EntityTypeIntent,
		vocab.EntityTypeDecision,
		vocab.EntityTypeTask,
		vocab.EntityTypeExecution,
		vocab.EntityTypeOutcome,
		vocab.EntityTypeInsight,
		vocab.EntityTypeEdge,
		vocab.EntityTypeConstraint,
		vocab.EntityTypeDecisionRecord,
	}

	for _, et := range all {
		if _, ok := vocab.ProvgraphClassMap[et]; !ok {
			t.Errorf("entity type %q missing from ProvgraphClassMap", et)
		}
		if _, ok := vocab.PROVClassMap[et]; !ok {
			t.Errorf("entity type %q missing from PROVClassMap", et)
		}
		if _, ok := vocab.BFOClassMap[et]; !ok {
			t.Errorf("entity type %q missing from BFOClassMap", et)
		}
	}
}
