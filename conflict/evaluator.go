package conflict

import (
	"github.com/c360studio/provgraph/constraint"
	"github.com/c360studio/provgraph/decision"
)

// ChangeRequest describes a proposed change to evaluate: the files it
// touches, optionally the components it maps to, and optionally the diff
// text. The diff is carried for downstream reviewers; evaluation itself only
// looks at files and components.
type ChangeRequest struct {
	Files      []string `json:"files"`
	Components []string `json:"components,omitempty"`
	Diff       string   `json:"diff,omitempty"`
}

// Evaluator checks change requests against a constraint registry and a set
// of recorded decisions. Both are supplied at construction; an evaluator
// holds no other state and is safe for concurrent use.
type Evaluator struct {
	registry  *constraint.Registry
	decisions []decision.Decision
}

// NewEvaluator builds an evaluator over the given registry and decisions.
func NewEvaluator(registry *constraint.Registry, decisions []decision.Decision) *Evaluator {
	return &Evaluator{registry: registry, decisions: decisions}
}

// Evaluate produces the conflict report for a change request. The same
// request against the same registry and decisions always yields the same
// report.
//
// A request with no files and no components cannot match anything and gets a
// clean report. Otherwise every matching hard constraint becomes a violation
// and blocks the change, every matching soft constraint becomes a warning,
// and every prior decision touching the same files is surfaced as an overlap
// for review.
func (e *Evaluator) Evaluate(req ChangeRequest) *ConflictReport {
	report := NewReport()
	if len(req.Files) == 0 && len(req.Components) == 0 {
		return report
	}

	matched := e.registry.ActiveFor(req.Files, req.Components)
	for _, c := range matched {
		switch c.Enforcement {
		case constraint.EnforcementHard:
			report.AddViolation(c)
		case constraint.EnforcementSoft:
			report.AddWarning(c)
		}
	}

	overlapping := decision.Overlapping(req.Files, e.decisions)
	for _, d := range overlapping {
		report.AddOverlap(d, d.SharedWith(req.Files))
	}

	report.Recommendations = recommend(matched, len(overlapping) > 0)
	return report
}
