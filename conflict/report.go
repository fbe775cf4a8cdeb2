// Package conflict evaluates proposed changes against active constraints and
// recorded decisions, producing a deterministic conflict report.
package conflict

import (
	"fmt"

	"github.com/c360studio/provgraph/constraint"
	"github.com/c360studio/provgraph/decision"
)

// Kind tags a conflict entry by what produced it.
type Kind string

// Conflict entry kinds.
const (
	// KindViolation is a matched hard constraint. Any violation blocks the
	// change.
	KindViolation Kind = "violation"
	// KindWarning is a matched soft constraint. Warnings never block.
	KindWarning Kind = "warning"
	// KindDecisionOverlap is a prior decision whose affected files intersect
	// the change. Overlaps are surfaced for review only; judging whether the
	// change actually contradicts the decision is left to the reviewer.
	KindDecisionOverlap Kind = "decision_overlap"
)

func (k Kind) String() string { return string(k) }

// IsValid reports whether the kind is one of the known entry kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindViolation, KindWarning, KindDecisionOverlap:
		return true
	default:
		return false
	}
}

// Conflict is a single entry in a conflict report. Constraint-backed entries
// carry the constraint fields; decision overlaps carry the decision fields
// and the shared file paths.
type Conflict struct {
	Kind           Kind                `json:"kind"`
	ConstraintID   string              `json:"constraint_id,omitempty"`
	ConstraintType constraint.Type     `json:"constraint_type,omitempty"`
	Severity       constraint.Severity `json:"severity,omitempty"`
	DecisionID     string              `json:"decision_id,omitempty"`
	RequiresReview bool                `json:"requires_review,omitempty"`
	Message        string              `json:"message"`
	Files          []string            `json:"files,omitempty"`
}

// ConflictReport is the outcome of evaluating a proposed change. A report
// with no conflicts has RiskLevel low and CanProceed true.
type ConflictReport struct {
	HasConflicts    bool                `json:"has_conflicts"`
	Conflicts       []Conflict          `json:"conflicts"`
	RiskLevel       constraint.Severity `json:"risk_level"`
	CanProceed      bool                `json:"can_proceed"`
	Recommendations []string            `json:"recommendations,omitempty"`

	maxHard constraint.Severity
	maxSoft constraint.Severity
}

// NewReport returns a clean report: no conflicts, low risk, free to proceed.
func NewReport() *ConflictReport {
	return &ConflictReport{
		Conflicts:  []Conflict{},
		RiskLevel:  constraint.SeverityLow,
		CanProceed: true,
	}
}

// AddViolation records a matched hard constraint and blocks the change.
func (r *ConflictReport) AddViolation(c constraint.Constraint) {
	r.Conflicts = append(r.Conflicts, Conflict{
		Kind:           KindViolation,
		ConstraintID:   c.ID,
		ConstraintType: c.Type,
		Severity:       c.Severity,
		Message:        constraintMessage(c),
	})
	r.HasConflicts = true
	r.CanProceed = false
	if c.Severity.Rank() > r.maxHard.Rank() {
		r.maxHard = c.Severity
	}
	r.recomputeRisk()
}

// AddWarning records a matched soft constraint. Warnings raise risk but never
// block.
func (r *ConflictReport) AddWarning(c constraint.Constraint) {
	r.Conflicts = append(r.Conflicts, Conflict{
		Kind:           KindWarning,
		ConstraintID:   c.ID,
		ConstraintType: c.Type,
		Severity:       c.Severity,
		Message:        constraintMessage(c),
	})
	r.HasConflicts = true
	if c.Severity.Rank() > r.maxSoft.Rank() {
		r.maxSoft = c.Severity
	}
	r.recomputeRisk()
}

// AddOverlap records a prior decision that touches the same files. Overlaps
// never change RiskLevel or CanProceed.
func (r *ConflictReport) AddOverlap(d decision.Decision, shared []string) {
	r.Conflicts = append(r.Conflicts, Conflict{
		Kind:           KindDecisionOverlap,
		DecisionID:     d.ID,
		RequiresReview: true,
		Message:        fmt.Sprintf("prior decision %q touches the same files; review for consistency", d.Title),
		Files:          shared,
	})
	r.HasConflicts = true
}

// Violations returns the hard-constraint entries.
func (r *ConflictReport) Violations() []Conflict {
	return r.byKind(KindViolation)
}

// Warnings returns the soft-constraint entries.
func (r *ConflictReport) Warnings() []Conflict {
	return r.byKind(KindWarning)
}

// Overlaps returns the decision-overlap entries.
func (r *ConflictReport) Overlaps() []Conflict {
	return r.byKind(KindDecisionOverlap)
}

func (r *ConflictReport) byKind(kind Kind) []Conflict {
	entries := make([]Conflict, 0)
	for _, c := range r.Conflicts {
		if c.Kind == kind {
			entries = append(entries, c)
		}
	}
	return entries
}

// recomputeRisk applies the risk rule: the maximum severity among hard
// violations; failing any, the maximum among soft warnings; failing any, low.
func (r *ConflictReport) recomputeRisk() {
	switch {
	case r.maxHard != "":
		r.RiskLevel = r.maxHard
	case r.maxSoft != "":
		r.RiskLevel = r.maxSoft
	default:
		r.RiskLevel = constraint.SeverityLow
	}
}

func constraintMessage(c constraint.Constraint) string {
	if c.Description == "" {
		return c.Name
	}
	return c.Name + ": " + c.Description
}
