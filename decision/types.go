// Package decision models recorded engineering decisions and answers
// "why does this file look the way it does" via file-scoped traces.
package decision

import (
	"crypto/md5"
	"encoding/hex"
	"sort"
	"strings"
	"time"
)

// Importance grades how consequential a decision was.
type Importance string

// Importance levels, highest first.
const (
	ImportanceCritical Importance = "critical"
	ImportanceHigh     Importance = "high"
	ImportanceMedium   Importance = "medium"
	ImportanceLow      Importance = "low"
)

func (i Importance) String() string { return string(i) }

// IsValid reports whether the importance is one of the known levels.
func (i Importance) IsValid() bool {
	switch i {
	case ImportanceCritical, ImportanceHigh, ImportanceMedium, ImportanceLow:
		return true
	default:
		return false
	}
}

// Alternative is an option that was considered and rejected when the
// decision was made.
type Alternative struct {
	// Title names the rejected option.
	Title string `json:"title" yaml:"title"`
	// Reason explains why it lost.
	Reason string `json:"reason" yaml:"reason"`
}

// Decision is a recorded engineering decision: what was decided, how much it
// mattered, which files it shaped, and what was turned down along the way.
type Decision struct {
	// ID uniquely identifies the decision.
	ID string `json:"id" yaml:"id"`
	// Title is a short statement of what was decided.
	Title string `json:"title" yaml:"title"`
	// Category groups the decision (architecture, security, tooling, ...).
	Category string `json:"category" yaml:"category"`
	// Importance grades how consequential the decision was.
	Importance Importance `json:"importance" yaml:"importance"`
	// DecidedBy names who made the call, when known.
	DecidedBy string `json:"decided_by,omitempty" yaml:"decided_by,omitempty"`
	// CreatedAt is when the decision was recorded.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	// AffectedFiles lists the file paths the decision shaped.
	AffectedFiles []string `json:"affected_files,omitempty" yaml:"affected_files,omitempty"`
	// AlternativesConsidered lists rejected options with reasons.
	AlternativesConsidered []Alternative `json:"alternatives_considered,omitempty" yaml:"alternatives_considered,omitempty"`
}

// ValidationError describes a single invalid decision field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate checks that the decision record is well formed.
func (d *Decision) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return &ValidationError{Field: "id", Message: "is required"}
	}
	if strings.TrimSpace(d.Title) == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if strings.TrimSpace(d.Category) == "" {
		return &ValidationError{Field: "category", Message: "is required"}
	}
	if !d.Importance.IsValid() {
		return &ValidationError{Field: "importance", Message: "must be critical, high, medium, or low"}
	}
	if d.CreatedAt.IsZero() {
		return &ValidationError{Field: "created_at", Message: "is required"}
	}
	return nil
}

// Touches reports whether the decision's affected files intersect the given
// paths. Both sides are compared after separator normalization; matching is
// exact and case sensitive, never glob based.
func (d *Decision) Touches(files []string) bool {
	if len(d.AffectedFiles) == 0 || len(files) == 0 {
		return false
	}

	affected := make(map[string]bool, len(d.AffectedFiles))
	for _, f := range d.AffectedFiles {
		if p := normalizePath(f); p != "" {
			affected[p] = true
		}
	}

	for _, f := range files {
		if affected[normalizePath(f)] {
			return true
		}
	}
	return false
}

// SharedWith returns the affected files that also appear in the given paths,
// normalized and sorted. Empty when nothing overlaps.
func (d *Decision) SharedWith(files []string) []string {
	affected := make(map[string]bool, len(d.AffectedFiles))
	for _, f := range d.AffectedFiles {
		if p := normalizePath(f); p != "" {
			affected[p] = true
		}
	}

	seen := make(map[string]bool)
	shared := make([]string, 0)
	for _, f := range files {
		p := normalizePath(f)
		if affected[p] && !seen[p] {
			seen[p] = true
			shared = append(shared, p)
		}
	}
	sort.Strings(shared)
	return shared
}

// GenerateID creates a stable decision ID from the title and creation date.
// Format: decision.{yyyymmdd}.{title_hash}
func GenerateID(title string, createdAt time.Time) string {
	hash := md5.Sum([]byte(title))
	return "decision." + createdAt.UTC().Format("20060102") + "." + hex.EncodeToString(hash[:])[:8]
}
