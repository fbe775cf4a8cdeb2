package export_test

import (
	"testing"

	"github.com/c360studio/provgraph/export"
	"github.com/c360studio/provgraph/provenance"
	vocab "github.com/c360studio/provgraph/vocabulary/provenance"
	"github.com/c360studio/semstreams/vocabulary"
	"github.com/c360studio/semstreams/vocabulary/bfo"
)

func TestGetProfileConfig(t *testing.T) {
	tests := []struct {
		profile       export.Profile
		wantPROV      bool
		wantBFO       bool
		wantTranslate bool
	}{
		{export.ProfileMinimal, true, false, false},
		{export.ProfilePROV, true, false, true},
		{export.ProfileBFO, true, true, true},
	}

	for _, tc := range tests {
		t.Run(string(tc.profile), func(t *testing.T) {
			config := export.GetProfileConfig(tc.profile)
			if config.IncludePROV != tc.wantPROV {
				t.Errorf("IncludePROV = %v, want %v", config.IncludePROV, tc.wantPROV)
			}
			if config.IncludeBFO != tc.wantBFO {
				t.Errorf("IncludeBFO = %v, want %v", config.IncludeBFO, tc.wantBFO)
			}
			if config.TranslatePredicates != tc.wantTranslate {
				t.Errorf("TranslatePredicates = %v, want %v", config.TranslatePredicates, tc.wantTranslate)
			}
		})
	}
}

func TestGetProfileConfigUnknown(t *testing.T) {
	// Unknown profile should default to minimal
	config := export.GetProfileConfig("unknown")
	if config.Name != export.ProfileMinimal {
		t.Errorf("Unknown profile should default to minimal, got %s", config.Name)
	}
}

func TestTypeAsserterMinimal(t *testing.T) {
	asserter := export.NewTypeAsserter(export.ProfileMinimal)

	types := asserter.GetTypeIRIs(vocab.EntityTypeIntent)

	hasProvEntity := false
	hasProvgraphClass := false
	hasBFOClass := false
	for _, typ := range types {
		if typ == vocabulary.ProvEntity {
			hasProvEntity = true
		}
		if typ == vocab.ClassIntent {
			hasProvgraphClass = true
		}
		if typ == bfo.GenericallyDependentContinuant {
			hasBFOClass = true
		}
	}

	if !hasProvEntity {
		t.Error("Minimal profile should include PROV-O type")
	}
	if !hasProvgraphClass {
		t.Error("Minimal profile should include provgraph type")
	}
	if hasBFOClass {
		t.Error("Minimal profile should not include BFO type")
	}
}

func TestTypeAsserterBFO(t *testing.T) {
	asserter := export.NewTypeAsserter(export.ProfileBFO)

	types := asserter.GetTypeIRIs(vocab.EntityTypeIntent)

	hasBFOClass := false
	for _, typ := range types {
		if typ == bfo.GenericallyDependentContinuant {
			hasBFOClass = true
		}
	}

	if !hasBFOClass {
		t.Error("BFO profile should include BFO type")
	}
}

func TestTypeAsserterActivities(t *testing.T) {
	asserter := export.NewTypeAsserter(export.ProfileBFO)

	types := asserter.GetTypeIRIs(vocab.EntityTypeExecution)

	hasProvActivity := false
	hasBFOProcess := false
	for _, typ := range types {
		if typ == vocabulary.ProvActivity {
			hasProvActivity = true
		}
		if typ == bfo.Process {
			hasBFOProcess = true
		}
	}

	if !hasProvActivity {
		t.Error("Execution should be typed prov:Activity")
	}
	if !hasBFOProcess {
		t.Error("Execution should be typed bfo:Process under the bfo profile")
	}
}

func TestTypeTriples(t *testing.T) {
	entityID := "local.provgraph.platform.intent.intent-001"
	triples := export.TypeTriples(entityID, vocab.EntityTypeIntent, export.ProfileMinimal)

	if len(triples) != 2 {
		t.Fatalf("TypeTriples len = %d, want 2 (provgraph + PROV)", len(triples))
	}
	for _, tr := range triples {
		if tr.Subject != entityID {
			t.Errorf("triple subject = %q, want %q", tr.Subject, entityID)
		}
		if tr.Predicate != "rdf.syntax.type" {
			t.Errorf("triple predicate = %q, want rdf.syntax.type", tr.Predicate)
		}
	}
}

func TestEntityTypeForNode(t *testing.T) {
	tests := []struct {
		nodeType provenance.NodeType
		want     vocab.EntityType
	}{
		{provenance.NodeIntent, vocab.EntityTypeIntent},
		{provenance.NodeDecision, vocab.EntityTypeDecision},
		{provenance.NodeTask, vocab.EntityTypeTask},
		{provenance.NodeExecution, vocab.EntityTypeExecution},
		{provenance.NodeOutcome, vocab.EntityTypeOutcome},
		{provenance.NodeInsight, vocab.EntityTypeInsight},
		{provenance.NodeType("sprint"), ""},
	}

	for _, tc := range tests {
		t.Run(string(tc.nodeType), func(t *testing.T) {
			got := export.EntityTypeForNode(tc.nodeType)
			if got != tc.want {
				t.Errorf("EntityTypeForNode(%q) = %q, want %q", tc.nodeType, got, tc.want)
			}
		})
	}
}

func TestInferEntityType(t *testing.T) {
	tests := []struct {
		entityID string
		wantType vocab.EntityType
	}{
		{"local.provgraph.platform.intent.intent-001", vocab.EntityTypeIntent},
		{"local.provgraph.platform.decision.decision-001", vocab.EntityTypeDecision},
		{"local.provgraph.platform.task.task-001", vocab.EntityTypeTask},
		{"local.provgraph.platform.execution.exec-001", vocab.EntityTypeExecution},
		{"local.provgraph.platform.outcome.out-001", vocab.EntityTypeOutcome},
		{"local.provgraph.platform.insight.ins-001", vocab.EntityTypeInsight},
		{"local.provgraph.platform.edge.edge-001", vocab.EntityTypeEdge},
		{"local.provgraph.registry.constraint.sec-001", vocab.EntityTypeConstraint},
		{"local.provgraph.registry.decision_record.decision.20240815.a1b2c3d4", vocab.EntityTypeDecisionRecord},
	}

	for _, tc := range tests {
		t.Run(tc.entityID, func(t *testing.T) {
			got := export.InferEntityType(tc.entityID)
			if got != tc.wantType {
				t.Errorf("InferEntityType(%q) = %q, want %q", tc.entityID, got, tc.wantType)
			}
		})
	}
}

func TestInferEntityTypeUnknown(t *testing.T) {
	tests := []struct {
		name     string
		entityID string
	}{
		{"short id", "too.short"},
		{"wrong platform segment", "local.otherapp.platform.intent.intent-001"},
		{"unknown kind", "local.provgraph.platform.sprint.sprint-001"},
		{"empty", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := export.InferEntityType(tc.entityID); got != "" {
				t.Errorf("InferEntityType(%q) = %q, want empty", tc.entityID, got)
			}
		})
	}
}
