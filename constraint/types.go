// Package constraint provides the standing-rule model and registry: typed
// constraints scoped to files and components, with hard or soft enforcement,
// matched against proposed change scopes.
package constraint

// Type classifies the concern a constraint protects.
type Type string

const (
	// TypeSecurity protects authentication, secrets, and attack surface.
	TypeSecurity Type = "security"
	// TypePerformance protects latency and throughput budgets.
	TypePerformance Type = "performance"
	// TypeCost protects spend budgets.
	TypeCost Type = "cost"
	// TypeReliability protects availability and failure handling.
	TypeReliability Type = "reliability"
	// TypeRegulatory protects compliance obligations.
	TypeRegulatory Type = "regulatory"
	// TypeArchitecture protects structural decisions.
	TypeArchitecture Type = "architecture"
)

// String returns the string representation of the constraint type.
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the type is a known concern.
func (t Type) IsValid() bool {
	switch t {
	case TypeSecurity, TypePerformance, TypeCost, TypeReliability, TypeRegulatory, TypeArchitecture:
		return true
	default:
		return false
	}
}

// Severity orders how serious a constraint hit is. Critical is highest.
type Severity string

const (
	// SeverityCritical blocks everything it touches until resolved.
	SeverityCritical Severity = "critical"
	// SeverityHigh is serious but short of critical.
	SeverityHigh Severity = "high"
	// SeverityMedium is the default working severity.
	SeverityMedium Severity = "medium"
	// SeverityLow is advisory.
	SeverityLow Severity = "low"
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// IsValid returns true if the severity is a known level.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	default:
		return false
	}
}

// Rank maps the severity to an integer for ordering. Higher is more severe;
// unknown severities rank below low.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Enforcement is how a matched constraint affects a proposed change.
type Enforcement string

const (
	// EnforcementHard blocks the change.
	EnforcementHard Enforcement = "hard"
	// EnforcementSoft warns without blocking.
	EnforcementSoft Enforcement = "soft"
)

// String returns the string representation of the enforcement mode.
func (e Enforcement) String() string {
	return string(e)
}

// IsValid returns true if the enforcement mode is known.
func (e Enforcement) IsValid() bool {
	return e == EnforcementHard || e == EnforcementSoft
}

// Scope limits where a constraint applies. Files holds doublestar glob
// patterns matched against changed file paths; Components holds exact
// logical component names. A scope with both lists empty is a wildcard
// and applies everywhere.
type Scope struct {
	// Files are glob patterns over repository-relative paths.
	Files []string `json:"files" yaml:"files"`

	// Components are logical component names.
	Components []string `json:"components" yaml:"components"`
}

// IsWildcard returns true if the scope applies everywhere.
func (s Scope) IsWildcard() bool {
	return len(s.Files) == 0 && len(s.Components) == 0
}

// Constraint is a standing rule limiting how certain files or components
// may change.
type Constraint struct {
	// ID uniquely identifies the constraint.
	ID string `json:"id" yaml:"id"`

	// Type is the concern the constraint protects.
	Type Type `json:"type" yaml:"type"`

	// Name is the short human-readable name.
	Name string `json:"name" yaml:"name"`

	// Description explains what the constraint requires and why.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Severity orders the constraint against others. Critical is highest.
	Severity Severity `json:"severity" yaml:"severity"`

	// Scope limits where the constraint applies.
	Scope Scope `json:"scope" yaml:"scope"`

	// Enforcement is hard (blocks) or soft (warns).
	Enforcement Enforcement `json:"enforcement" yaml:"enforcement"`

	// ApprovedBy optionally records who approved the constraint.
	ApprovedBy string `json:"approved_by,omitempty" yaml:"approved_by,omitempty"`

	// IsActive gates the constraint. Inactive constraints never contribute
	// to any result.
	IsActive bool `json:"is_active" yaml:"is_active"`
}

// Validate checks required fields and enum membership. Glob patterns are
// validated separately when a registry is built, so malformed scopes surface
// at load time with the constraint and pattern named.
func (c *Constraint) Validate() error {
	if c.ID == "" {
		return &FieldError{Field: "id", Message: "id is required"}
	}
	if !c.Type.IsValid() {
		return &FieldError{Field: "type", Message: "unknown constraint type: " + c.Type.String()}
	}
	if c.Name == "" {
		return &FieldError{Field: "name", Message: "name is required"}
	}
	if !c.Severity.IsValid() {
		return &FieldError{Field: "severity", Message: "unknown severity: " + c.Severity.String()}
	}
	if !c.Enforcement.IsValid() {
		return &FieldError{Field: "enforcement", Message: "unknown enforcement: " + c.Enforcement.String()}
	}
	return nil
}

// FieldError reports a constraint field that failed validation.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}
