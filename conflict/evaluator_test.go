package conflict

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/c360studio/provgraph/constraint"
	"github.com/c360studio/provgraph/decision"
)

func testRegistry(t *testing.T, constraints ...constraint.Constraint) *constraint.Registry {
	t.Helper()
	reg, err := constraint.NewRegistry(constraints)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return reg
}

func paymentsConstraint() constraint.Constraint {
	return constraint.Constraint{
		ID:          "sec-001",
		Type:        constraint.TypeSecurity,
		Name:        "Payment flows require security review",
		Description: "Changes under src/payments need a security sign-off.",
		Severity:    constraint.SeverityCritical,
		Enforcement: constraint.EnforcementHard,
		Scope:       constraint.Scope{Files: []string{"src/payments/*"}},
		IsActive:    true,
	}
}

func renderConstraint() constraint.Constraint {
	return constraint.Constraint{
		ID:          "perf-001",
		Type:        constraint.TypePerformance,
		Name:        "Keep render paths fast",
		Severity:    constraint.SeverityHigh,
		Enforcement: constraint.EnforcementSoft,
		Scope:       constraint.Scope{Files: []string{"src/render/**"}},
		IsActive:    true,
	}
}

func gatewayConstraint() constraint.Constraint {
	return constraint.Constraint{
		ID:          "arch-001",
		Type:        constraint.TypeArchitecture,
		Name:        "No direct database access from handlers",
		Severity:    constraint.SeverityMedium,
		Enforcement: constraint.EnforcementSoft,
		Scope:       constraint.Scope{Components: []string{"api-gateway"}},
		IsActive:    true,
	}
}

func sessionDecision() decision.Decision {
	return decision.Decision{
		ID:            "decision.20240815.5e6f7a8b",
		Title:         "Adopt JWT for session auth",
		Category:      "security",
		Importance:    decision.ImportanceCritical,
		CreatedAt:     time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC),
		AffectedFiles: []string{"src/auth/session.ts", "src/auth/token.ts"},
	}
}

func TestEvaluateHardConstraintBlocks(t *testing.T) {
	e := NewEvaluator(testRegistry(t, paymentsConstraint()), nil)

	report := e.Evaluate(ChangeRequest{Files: []string{"src/payments/stripe.ts"}})

	if !report.HasConflicts {
		t.Error("HasConflicts = false, want true")
	}
	if report.CanProceed {
		t.Error("CanProceed = true, want false")
	}
	if report.RiskLevel != constraint.SeverityCritical {
		t.Errorf("RiskLevel = %q, want %q", report.RiskLevel, constraint.SeverityCritical)
	}

	violations := report.Violations()
	if len(violations) != 1 {
		t.Fatalf("got %d violations, want 1", len(violations))
	}
	v := violations[0]
	if v.ConstraintID != "sec-001" {
		t.Errorf("ConstraintID = %q, want %q", v.ConstraintID, "sec-001")
	}
	if v.Kind != KindViolation {
		t.Errorf("Kind = %q, want %q", v.Kind, KindViolation)
	}
	if v.Severity != constraint.SeverityCritical {
		t.Errorf("Severity = %q, want %q", v.Severity, constraint.SeverityCritical)
	}
}

func TestEvaluateNoMatchIsClean(t *testing.T) {
	e := NewEvaluator(testRegistry(t, paymentsConstraint()), nil)

	report := e.Evaluate(ChangeRequest{Files: []string{"src/ui/Button.tsx"}})

	if report.HasConflicts {
		t.Error("HasConflicts = true, want false")
	}
	if !report.CanProceed {
		t.Error("CanProceed = false, want true")
	}
	if report.RiskLevel != constraint.SeverityLow {
		t.Errorf("RiskLevel = %q, want %q", report.RiskLevel, constraint.SeverityLow)
	}
	if len(report.Conflicts) != 0 {
		t.Errorf("Conflicts = %v, want empty", report.Conflicts)
	}
}

func TestEvaluateEmptyRequestIsClean(t *testing.T) {
	e := NewEvaluator(testRegistry(t, paymentsConstraint(), wildcardConstraint()), []decision.Decision{sessionDecision()})

	report := e.Evaluate(ChangeRequest{})

	if report.HasConflicts || !report.CanProceed || report.RiskLevel != constraint.SeverityLow {
		t.Errorf("empty request report = %+v, want clean", report)
	}
	if len(report.Conflicts) != 0 {
		t.Errorf("Conflicts = %v, want empty", report.Conflicts)
	}
}

func wildcardConstraint() constraint.Constraint {
	return constraint.Constraint{
		ID:          "reg-001",
		Type:        constraint.TypeRegulatory,
		Name:        "All changes logged for audit",
		Severity:    constraint.SeverityLow,
		Enforcement: constraint.EnforcementSoft,
		Scope:       constraint.Scope{},
		IsActive:    true,
	}
}

func TestEvaluateSoftConstraintWarns(t *testing.T) {
	e := NewEvaluator(testRegistry(t, renderConstraint()), nil)

	report := e.Evaluate(ChangeRequest{Files: []string{"src/render/gl/shader.ts"}})

	if !report.HasConflicts {
		t.Error("HasConflicts = false, want true")
	}
	if !report.CanProceed {
		t.Error("CanProceed = false, want true for soft-only matches")
	}
	if report.RiskLevel != constraint.SeverityHigh {
		t.Errorf("RiskLevel = %q, want %q", report.RiskLevel, constraint.SeverityHigh)
	}
	if len(report.Warnings()) != 1 || len(report.Violations()) != 0 {
		t.Errorf("got %d warnings and %d violations, want 1 and 0", len(report.Warnings()), len(report.Violations()))
	}
}

func TestEvaluateHardBlockInvariant(t *testing.T) {
	hardLow := constraint.Constraint{
		ID:          "rel-001",
		Type:        constraint.TypeReliability,
		Name:        "Migrations need a rollback script",
		Severity:    constraint.SeverityLow,
		Enforcement: constraint.EnforcementHard,
		Scope:       constraint.Scope{Files: []string{"migrations/**"}},
		IsActive:    true,
	}
	softCritical := constraint.Constraint{
		ID:          "perf-009",
		Type:        constraint.TypePerformance,
		Name:        "Do not regress query plans",
		Severity:    constraint.SeverityCritical,
		Enforcement: constraint.EnforcementSoft,
		Scope:       constraint.Scope{Files: []string{"db/queries/**"}},
		IsActive:    true,
	}
	e := NewEvaluator(testRegistry(t, hardLow, softCritical), nil)

	// Only the soft critical constraint matches: high risk, still unblocked.
	report := e.Evaluate(ChangeRequest{Files: []string{"db/queries/users.sql"}})
	if !report.CanProceed {
		t.Error("CanProceed = false with no hard match, want true")
	}
	if report.RiskLevel != constraint.SeverityCritical {
		t.Errorf("RiskLevel = %q, want %q from the soft match", report.RiskLevel, constraint.SeverityCritical)
	}

	// The hard low constraint matches too: blocked, and risk comes from the
	// hard side even though a soft match is more severe.
	report = e.Evaluate(ChangeRequest{Files: []string{"db/queries/users.sql", "migrations/0042_add_index.sql"}})
	if report.CanProceed {
		t.Error("CanProceed = true with a hard match, want false")
	}
	if report.RiskLevel != constraint.SeverityLow {
		t.Errorf("RiskLevel = %q, want %q from hard violations", report.RiskLevel, constraint.SeverityLow)
	}
}

func TestEvaluateComponentMatch(t *testing.T) {
	e := NewEvaluator(testRegistry(t, gatewayConstraint()), nil)

	report := e.Evaluate(ChangeRequest{Files: []string{"src/handlers/users.go"}, Components: []string{"api-gateway"}})

	if len(report.Warnings()) != 1 {
		t.Fatalf("got %d warnings, want 1", len(report.Warnings()))
	}
	if report.Warnings()[0].ConstraintID != "arch-001" {
		t.Errorf("ConstraintID = %q, want arch-001", report.Warnings()[0].ConstraintID)
	}
}

func TestEvaluateDecisionOverlap(t *testing.T) {
	e := NewEvaluator(testRegistry(t), []decision.Decision{sessionDecision()})

	report := e.Evaluate(ChangeRequest{Files: []string{"src/auth/session.ts", "src/ui/Button.tsx"}})

	overlaps := report.Overlaps()
	if len(overlaps) != 1 {
		t.Fatalf("got %d overlaps, want 1", len(overlaps))
	}
	o := overlaps[0]
	if o.DecisionID != "decision.20240815.5e6f7a8b" {
		t.Errorf("DecisionID = %q, want the session decision", o.DecisionID)
	}
	if !o.RequiresReview {
		t.Error("RequiresReview = false, want true")
	}
	if len(o.Files) != 1 || o.Files[0] != "src/auth/session.ts" {
		t.Errorf("Files = %v, want the shared file only", o.Files)
	}

	// Overlaps surface for review but never raise risk or block.
	if !report.CanProceed {
		t.Error("CanProceed = false from an overlap alone, want true")
	}
	if report.RiskLevel != constraint.SeverityLow {
		t.Errorf("RiskLevel = %q, want %q", report.RiskLevel, constraint.SeverityLow)
	}
	if !report.HasConflicts {
		t.Error("HasConflicts = false, want true when an overlap is surfaced")
	}
}

func TestEvaluateNormalizesSeparators(t *testing.T) {
	e := NewEvaluator(testRegistry(t, paymentsConstraint()), []decision.Decision{sessionDecision()})

	report := e.Evaluate(ChangeRequest{Files: []string{`src\payments\stripe.ts`, `src\auth\session.ts`}})

	if len(report.Violations()) != 1 {
		t.Errorf("got %d violations, want 1 after separator normalization", len(report.Violations()))
	}
	if len(report.Overlaps()) != 1 {
		t.Errorf("got %d overlaps, want 1 after separator normalization", len(report.Overlaps()))
	}
}

func TestEvaluateRecommendations(t *testing.T) {
	second := paymentsConstraint()
	second.ID = "sec-002"
	second.Name = "Secrets never in source"
	second.Scope = constraint.Scope{Files: []string{"src/payments/**"}}

	e := NewEvaluator(testRegistry(t, paymentsConstraint(), second, renderConstraint()), []decision.Decision{
		{
			ID:            "decision.20240901.9c0d1e2f",
			Title:         "Charge through a single gateway adapter",
			Category:      "architecture",
			Importance:    decision.ImportanceHigh,
			CreatedAt:     time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
			AffectedFiles: []string{"src/payments/stripe.ts"},
		},
	})

	report := e.Evaluate(ChangeRequest{Files: []string{"src/payments/stripe.ts", "src/render/core.ts"}})

	want := []string{
		"Request an explicit security review before merging.",
		"Benchmark the affected paths against the current baselines.",
		"Review the overlapping prior decisions for consistency with this change.",
	}
	if !reflect.DeepEqual(report.Recommendations, want) {
		t.Errorf("Recommendations = %v, want %v", report.Recommendations, want)
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	e := NewEvaluator(
		testRegistry(t, paymentsConstraint(), renderConstraint(), gatewayConstraint(), wildcardConstraint()),
		[]decision.Decision{sessionDecision()},
	)
	req := ChangeRequest{
		Files:      []string{"src/payments/stripe.ts", "src/render/core.ts", "src/auth/session.ts"},
		Components: []string{"api-gateway"},
	}

	first := e.Evaluate(req)
	for i := 0; i < 10; i++ {
		if again := e.Evaluate(req); !reflect.DeepEqual(again, first) {
			t.Fatalf("run %d produced a different report:\n%+v\nvs\n%+v", i, again, first)
		}
	}
}

func TestEvaluateConflictOrdering(t *testing.T) {
	e := NewEvaluator(
		testRegistry(t, renderConstraint(), paymentsConstraint(), wildcardConstraint()),
		[]decision.Decision{sessionDecision()},
	)

	report := e.Evaluate(ChangeRequest{Files: []string{"src/payments/stripe.ts", "src/render/core.ts", "src/auth/token.ts"}})

	// Constraint entries come first in registry order (severity descending),
	// decision overlaps last.
	wantKinds := []Kind{KindViolation, KindWarning, KindWarning, KindDecisionOverlap}
	if len(report.Conflicts) != len(wantKinds) {
		t.Fatalf("got %d conflicts, want %d", len(report.Conflicts), len(wantKinds))
	}
	for i, want := range wantKinds {
		if report.Conflicts[i].Kind != want {
			t.Errorf("Conflicts[%d].Kind = %q, want %q", i, report.Conflicts[i].Kind, want)
		}
	}
	if report.Conflicts[0].ConstraintID != "sec-001" {
		t.Errorf("first conflict = %q, want the critical constraint", report.Conflicts[0].ConstraintID)
	}
}

func TestFormatMarkdown(t *testing.T) {
	e := NewEvaluator(testRegistry(t, paymentsConstraint()), []decision.Decision{
		{
			ID:            "decision.20240901.9c0d1e2f",
			Title:         "Charge through a single gateway adapter",
			Category:      "architecture",
			Importance:    decision.ImportanceHigh,
			CreatedAt:     time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
			AffectedFiles: []string{"src/payments/stripe.ts"},
		},
	})
	report := e.Evaluate(ChangeRequest{Files: []string{"src/payments/stripe.ts"}})

	got := FormatMarkdown(report)

	for _, want := range []string{
		"Risk level: **critical**",
		"Blocked by hard constraints",
		"### Violations",
		"Payment flows require security review",
		"### Prior decisions to review",
		"Charge through a single gateway adapter",
		"### Recommendations",
		"security review",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatMarkdown() missing %q in:\n%s", want, got)
		}
	}
}

func TestFormatMarkdownClean(t *testing.T) {
	got := FormatMarkdown(NewReport())

	if !strings.Contains(got, "No conflicts found.") {
		t.Errorf("FormatMarkdown() = %q, want a clean summary", got)
	}
	if !strings.Contains(got, "Safe to proceed") {
		t.Errorf("FormatMarkdown() = %q, want a proceed line", got)
	}
}
