package constraint

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func registryFixture(t *testing.T) *Registry {
	t.Helper()

	constraints := []Constraint{
		{
			ID:          "perf-001",
			Type:        TypePerformance,
			Name:        "Hot paths stay allocation-free",
			Severity:    SeverityHigh,
			Enforcement: EnforcementSoft,
			Scope:       Scope{Files: []string{"src/render/**"}},
			IsActive:    true,
		},
		{
			ID:          "sec-001",
			Type:        TypeSecurity,
			Name:        "Payment flows require security review",
			Severity:    SeverityCritical,
			Enforcement: EnforcementHard,
			Scope:       Scope{Files: []string{"src/payments/*"}},
			IsActive:    true,
		},
		{
			ID:          "arch-001",
			Type:        TypeArchitecture,
			Name:        "No direct database access from handlers",
			Severity:    SeverityHigh,
			Enforcement: EnforcementSoft,
			Scope:       Scope{Components: []string{"api-gateway"}},
			IsActive:    true,
		},
		{
			ID:          "reg-001",
			Type:        TypeRegulatory,
			Name:        "All changes logged for audit",
			Severity:    SeverityLow,
			Enforcement: EnforcementSoft,
			Scope:       Scope{},
			IsActive:    true,
		},
		{
			ID:          "cost-001",
			Type:        TypeCost,
			Name:        "Retired cloud spend rule",
			Severity:    SeverityCritical,
			Enforcement: EnforcementHard,
			Scope:       Scope{},
			IsActive:    false,
		},
	}

	reg, err := NewRegistry(constraints)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return reg
}

func constraintIDs(constraints []Constraint) []string {
	ids := make([]string, len(constraints))
	for i, c := range constraints {
		ids[i] = c.ID
	}
	return ids
}

func TestRegistryOrdering(t *testing.T) {
	reg := registryFixture(t)

	got := constraintIDs(reg.Active())
	want := []string{"sec-001", "arch-001", "perf-001", "reg-001"}

	if len(got) != len(want) {
		t.Fatalf("Active() returned %d constraints, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Active()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegistryExcludesInactive(t *testing.T) {
	reg := registryFixture(t)

	for _, c := range reg.Active() {
		if c.ID == "cost-001" {
			t.Error("inactive constraint cost-001 should not appear in Active()")
		}
	}
	for _, c := range reg.ActiveFor(nil, nil) {
		if c.ID == "cost-001" {
			t.Error("inactive constraint cost-001 should not match any request")
		}
	}
}

func TestRegistryActiveFor(t *testing.T) {
	reg := registryFixture(t)

	tests := []struct {
		name       string
		files      []string
		components []string
		want       []string
	}{
		{
			name:  "payment file matches single-star glob",
			files: []string{"src/payments/stripe.ts"},
			want:  []string{"sec-001", "reg-001"},
		},
		{
			name:  "nested render file matches doublestar",
			files: []string{"src/render/gl/shader.ts"},
			want:  []string{"perf-001", "reg-001"},
		},
		{
			name:       "component match",
			components: []string{"api-gateway"},
			want:       []string{"arch-001", "reg-001"},
		},
		{
			name:       "file and component together",
			files:      []string{"src/payments/refund.ts"},
			components: []string{"api-gateway"},
			want:       []string{"sec-001", "arch-001", "reg-001"},
		},
		{
			name:  "unrelated file only hits the wildcard",
			files: []string{"docs/readme.md"},
			want:  []string{"reg-001"},
		},
		{
			name: "empty request still hits the wildcard",
			want: []string{"reg-001"},
		},
		{
			name:  "backslash separators are normalized",
			files: []string{`src\payments\stripe.ts`},
			want:  []string{"sec-001", "reg-001"},
		},
		{
			name:  "matching is case sensitive",
			files: []string{"SRC/payments/stripe.ts"},
			want:  []string{"reg-001"},
		},
		{
			name:  "single star does not cross directories",
			files: []string{"src/payments/providers/stripe.ts"},
			want:  []string{"reg-001"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := constraintIDs(reg.ActiveFor(tt.files, tt.components))
			if len(got) != len(tt.want) {
				t.Fatalf("ActiveFor() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("ActiveFor()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRegistryActiveForIsDeterministic(t *testing.T) {
	reg := registryFixture(t)
	files := []string{"src/payments/stripe.ts", "src/render/core.ts"}

	first := constraintIDs(reg.ActiveFor(files, []string{"api-gateway"}))
	for i := 0; i < 10; i++ {
		again := constraintIDs(reg.ActiveFor(files, []string{"api-gateway"}))
		if len(again) != len(first) {
			t.Fatalf("run %d returned %d constraints, want %d", i, len(again), len(first))
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d order differs at %d: %q != %q", i, j, again[j], first[j])
			}
		}
	}
}

func TestNewRegistryRejectsMalformedGlob(t *testing.T) {
	c := validConstraint("sec-bad")
	c.Scope.Files = []string{"src/[payments/**"}

	_, err := NewRegistry([]Constraint{c})
	if err == nil {
		t.Fatal("NewRegistry() accepted a malformed glob")
	}
	if !errors.Is(err, ErrInvalidScope) {
		t.Errorf("errors.Is(err, ErrInvalidScope) = false for %v", err)
	}

	var scopeErr *InvalidScopeError
	if !errors.As(err, &scopeErr) {
		t.Fatalf("NewRegistry() error = %v, want *InvalidScopeError", err)
	}
	if scopeErr.ConstraintID != "sec-bad" {
		t.Errorf("InvalidScopeError.ConstraintID = %q, want %q", scopeErr.ConstraintID, "sec-bad")
	}
	if scopeErr.Pattern != "src/[payments/**" {
		t.Errorf("InvalidScopeError.Pattern = %q, want the original pattern", scopeErr.Pattern)
	}
}

func TestNewRegistryRejectsEmptyPattern(t *testing.T) {
	c := validConstraint("sec-empty")
	c.Scope.Files = []string{"   "}

	_, err := NewRegistry([]Constraint{c})
	if !errors.Is(err, ErrInvalidScope) {
		t.Fatalf("NewRegistry() error = %v, want ErrInvalidScope", err)
	}
}

func TestNewRegistryValidatesInactiveConstraints(t *testing.T) {
	c := validConstraint("sec-off")
	c.IsActive = false
	c.Scope.Files = []string{"src/[bad"}

	if _, err := NewRegistry([]Constraint{c}); !errors.Is(err, ErrInvalidScope) {
		t.Errorf("NewRegistry() error = %v, want ErrInvalidScope even for inactive constraints", err)
	}
}

func TestNewRegistryRejectsDuplicateIDs(t *testing.T) {
	a := validConstraint("sec-001")
	b := validConstraint("sec-001")
	b.Name = "Second rule with the same id"

	if _, err := NewRegistry([]Constraint{a, b}); err == nil {
		t.Fatal("NewRegistry() accepted duplicate constraint ids")
	}
}

func TestLoadRegistry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "constraints.yaml")

	content := `version: "1"
constraints:
  - id: sec-001
    type: security
    name: Payment flows require security review
    description: Changes under src/payments need a sign-off.
    severity: critical
    enforcement: hard
    scope:
      files:
        - "src/payments/**"
    approved_by: security-team
    is_active: true
  - id: perf-001
    type: performance
    name: Keep bundle size in check
    severity: medium
    enforcement: soft
    scope:
      files:
        - "web/**/*.tsx"
    is_active: true
  - id: old-001
    type: cost
    name: Retired rule
    severity: low
    enforcement: soft
    scope: {}
    is_active: false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry() error = %v", err)
	}

	got := constraintIDs(reg.Active())
	want := []string{"sec-001", "perf-001"}
	if len(got) != len(want) {
		t.Fatalf("Active() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Active()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	sec := reg.Active()[0]
	if sec.Enforcement != EnforcementHard {
		t.Errorf("sec-001 enforcement = %q, want %q", sec.Enforcement, EnforcementHard)
	}
	if sec.ApprovedBy != "security-team" {
		t.Errorf("sec-001 approved_by = %q, want %q", sec.ApprovedBy, "security-team")
	}

	matched := reg.ActiveFor([]string{"web/src/Button.tsx"}, nil)
	if len(matched) != 1 || matched[0].ID != "perf-001" {
		t.Errorf("ActiveFor(web/src/Button.tsx) = %v, want [perf-001]", constraintIDs(matched))
	}
}

func TestLoadRegistryMissingFile(t *testing.T) {
	if _, err := LoadRegistry(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("LoadRegistry() on a missing file should fail")
	}
}
