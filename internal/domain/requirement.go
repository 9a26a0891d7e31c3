package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

// Operator is a comparison in an achievement requirement.
type Operator string

const (
	OpGTE Operator = ">="
	OpLTE Operator = "<="
	OpEQ  Operator = "=="
	OpGT  Operator = ">"
	OpLT  Operator = "<"
)

// Requirement is one compiled achievement predicate: field op value.
// Catalog entries author these as strings ("level >= 5"); they are parsed
// once at catalog load so evaluation never touches the string form.
type Requirement struct {
	Field string   `json:"field"`
	Op    Operator `json:"op"`
	Value float64  `json:"value"`
}

// requirementRe matches "field op value". Two-char operators first so
// ">=" never parses as ">" followed by "=5".
var requirementRe = regexp.MustCompile(`^(\w+)\s*(>=|<=|==|>|<)\s*(.+)$`)

// ParseRequirement compiles a requirement string. A malformed string is a
// configuration error — catalogs are validated at load, never at runtime.
func ParseRequirement(s string) (Requirement, error) {
	m := requirementRe.FindStringSubmatch(s)
	if m == nil {
		return Requirement{}, fmt.Errorf("%w: %q", ErrMalformedRequirement, s)
	}
	value, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return Requirement{}, fmt.Errorf("%w: %q: non-numeric value", ErrMalformedRequirement, s)
	}
	return Requirement{Field: m[1], Op: Operator(m[2]), Value: value}, nil
}

// Holds evaluates the predicate against a resolved field value.
func (r Requirement) Holds(actual float64) bool {
	switch r.Op {
	case OpGTE:
		return actual >= r.Value
	case OpLTE:
		return actual <= r.Value
	case OpEQ:
		return actual == r.Value
	case OpGT:
		return actual > r.Value
	case OpLT:
		return actual < r.Value
	}
	return false
}

// String returns the authoring form of the requirement.
func (r Requirement) String() string {
	return fmt.Sprintf("%s %s %g", r.Field, r.Op, r.Value)
}
