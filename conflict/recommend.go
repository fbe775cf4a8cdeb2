package conflict

import "github.com/c360studio/provgraph/constraint"

// Recommendation text per constraint type. Fixed strings keep reports
// reproducible; no free-text generation happens here.
var recommendationsByType = map[constraint.Type]string{
	constraint.TypeSecurity:     "Request an explicit security review before merging.",
	constraint.TypePerformance:  "Benchmark the affected paths against the current baselines.",
	constraint.TypeCost:         "Estimate the cost impact and get sign-off from the budget owner.",
	constraint.TypeReliability:  "Verify rollback steps and update the runbook for the affected services.",
	constraint.TypeRegulatory:   "Record the change in the audit log and confirm compliance requirements.",
	constraint.TypeArchitecture: "Check the change against the recorded architecture decisions.",
}

const overlapRecommendation = "Review the overlapping prior decisions for consistency with this change."

// recommend derives recommendations from the matched constraint types, one
// per type in registry order, plus a review step when prior decisions
// overlap the change.
func recommend(matched []constraint.Constraint, hasOverlaps bool) []string {
	seen := make(map[constraint.Type]bool)
	recs := make([]string, 0)

	for _, c := range matched {
		if seen[c.Type] {
			continue
		}
		seen[c.Type] = true
		if text, ok := recommendationsByType[c.Type]; ok {
			recs = append(recs, text)
		}
	}

	if hasOverlaps {
		recs = append(recs, overlapRecommendation)
	}
	return recs
}
