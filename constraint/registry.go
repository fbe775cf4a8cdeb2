package constraint

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// ErrInvalidScope is the error kind for malformed scope patterns. Wrapped by
// InvalidScopeError; check with errors.Is.
var ErrInvalidScope = errors.New("invalid scope pattern")

// InvalidScopeError reports a malformed glob in a constraint scope. It is
// raised when a registry is built, never at match time.
type InvalidScopeError struct {
	ConstraintID string
	Pattern      string
	Reason       string
}

func (e *InvalidScopeError) Error() string {
	return fmt.Sprintf("constraint %q: pattern %q: %s", e.ConstraintID, e.Pattern, e.Reason)
}

func (e *InvalidScopeError) Unwrap() error {
	return ErrInvalidScope
}

// Registry holds the active constraints, validated and ordered by severity
// descending with ties broken by ID ascending. A registry is immutable after
// construction; to pick up changed constraints, build a new one.
type Registry struct {
	active []Constraint
}

// NewRegistry validates the supplied constraints and builds a registry over
// the active ones. Every scope glob is validated here with doublestar, so a
// malformed pattern fails the load with an InvalidScopeError instead of
// surfacing mid-match. Duplicate constraint IDs are rejected.
func NewRegistry(constraints []Constraint) (*Registry, error) {
	seen := make(map[string]bool, len(constraints))
	active := make([]Constraint, 0, len(constraints))

	for i := range constraints {
		c := constraints[i]
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("constraint %q: %w", c.ID, err)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("duplicate constraint id %q", c.ID)
		}
		seen[c.ID] = true

		normalized := make([]string, 0, len(c.Scope.Files))
		for _, pattern := range c.Scope.Files {
			p := NormalizePath(strings.TrimSpace(pattern))
			if p == "" {
				return nil, &InvalidScopeError{ConstraintID: c.ID, Pattern: pattern, Reason: "empty pattern"}
			}
			if !doublestar.ValidatePattern(p) {
				return nil, &InvalidScopeError{ConstraintID: c.ID, Pattern: pattern, Reason: "malformed glob"}
			}
			normalized = append(normalized, p)
		}
		c.Scope.Files = normalized

		if !c.IsActive {
			continue
		}
		active = append(active, c)
	}

	sort.SliceStable(active, func(i, j int) bool {
		ri, rj := active[i].Severity.Rank(), active[j].Severity.Rank()
		if ri != rj {
			return ri > rj
		}
		return active[i].ID < active[j].ID
	})

	return &Registry{active: active}, nil
}

// Active returns every active constraint in registry order.
func (r *Registry) Active() []Constraint {
	return append([]Constraint(nil), r.active...)
}

// Len returns the number of active constraints.
func (r *Registry) Len() int {
	return len(r.active)
}

// ActiveFor returns the active constraints whose scope matches any of the
// given files or components, in registry order (severity descending, ID
// ascending). A wildcard-scoped constraint matches every request, including
// one with no files and no components.
func (r *Registry) ActiveFor(files, components []string) []Constraint {
	normFiles := NormalizePaths(files)

	matched := make([]Constraint, 0)
	for _, c := range r.active {
		if scopeMatches(c.Scope, normFiles, components) {
			matched = append(matched, c)
		}
	}
	return matched
}

// scopeMatches reports whether the scope matches any of the pre-normalized
// files or any of the components.
func scopeMatches(s Scope, files, components []string) bool {
	if s.IsWildcard() {
		return true
	}

	for _, pattern := range s.Files {
		for _, f := range files {
			ok, err := doublestar.Match(pattern, f)
			if err != nil {
				continue // patterns are validated at registry construction
			}
			if ok {
				return true
			}
		}
	}

	for _, want := range s.Components {
		for _, got := range components {
			if want == got {
				return true
			}
		}
	}

	return false
}

// ConstraintsFile is the constraints.yaml structure.
type ConstraintsFile struct {
	Version     string       `yaml:"version"`
	Constraints []Constraint `yaml:"constraints"`
}

// LoadFile reads and parses a constraints YAML file.
func LoadFile(path string) (*ConstraintsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read constraints file: %w", err)
	}

	var file ConstraintsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse constraints file: %w", err)
	}

	return &file, nil
}

// LoadRegistry loads a constraints file and builds a registry from it.
func LoadRegistry(path string) (*Registry, error) {
	file, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewRegistry(file.Constraints)
}
