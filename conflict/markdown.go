package conflict

import (
	"fmt"
	"strings"
)

// FormatMarkdown renders a conflict report as markdown for terminal output
// and review documents.
func FormatMarkdown(r *ConflictReport) string {
	var b strings.Builder

	b.WriteString("## Change Evaluation\n\n")
	if r.CanProceed {
		fmt.Fprintf(&b, "Risk level: **%s**. Safe to proceed.\n", r.RiskLevel)
	} else {
		fmt.Fprintf(&b, "Risk level: **%s**. Blocked by hard constraints.\n", r.RiskLevel)
	}

	if !r.HasConflicts {
		b.WriteString("\nNo conflicts found.\n")
		return b.String()
	}

	if violations := r.Violations(); len(violations) > 0 {
		b.WriteString("\n### Violations\n\n")
		for _, c := range violations {
			fmt.Fprintf(&b, "- [%s, %s] %s\n", c.ConstraintType, c.Severity, c.Message)
		}
	}

	if warnings := r.Warnings(); len(warnings) > 0 {
		b.WriteString("\n### Warnings\n\n")
		for _, c := range warnings {
			fmt.Fprintf(&b, "- [%s, %s] %s\n", c.ConstraintType, c.Severity, c.Message)
		}
	}

	if overlaps := r.Overlaps(); len(overlaps) > 0 {
		b.WriteString("\n### Prior decisions to review\n\n")
		for _, c := range overlaps {
			if len(c.Files) > 0 {
				fmt.Fprintf(&b, "- %s (files: %s)\n", c.Message, strings.Join(c.Files, ", "))
			} else {
				fmt.Fprintf(&b, "- %s\n", c.Message)
			}
		}
	}

	if len(r.Recommendations) > 0 {
		b.WriteString("\n### Recommendations\n\n")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
	}

	return b.String()
}
