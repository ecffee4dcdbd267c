// Package rules builds and applies the field-validation schema for a claim's
// data section. Each (species, claim type, rule generation) combination is a
// named variant with a fully enumerated rule set, selected by a single
// dispatch in Build; nothing here reads ambient state.
package rules

import (
	"fmt"
	"strings"

	"github.com/agriwelfare/stockclaims/internal/claim/domain"
)

// Violation is one field-level failure, rendered Joi-style as
// "<path>" <constraint>.
type Violation struct {
	Path    string
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("%q %s", v.Path, v.Message)
}

// FieldRule validates a single field of the data section. Present reports
// whether the field was supplied; Check runs only when it was.
type FieldRule struct {
	Path     string
	Required bool
	Present  func(*domain.ClaimData) bool
	Check    func(*domain.ClaimData) []Violation
}

func (r FieldRule) apply(d *domain.ClaimData) []Violation {
	if !r.Present(d) {
		if r.Required {
			return []Violation{{Path: r.Path, Message: "is required"}}
		}
		return nil
	}
	if r.Check == nil {
		return nil
	}
	return r.Check(d)
}

// Schema is the full rule set applicable to one claim.
type Schema struct {
	fields []FieldRule
}

// Apply runs every rule and collects all violations rather than stopping at
// the first, so callers can report the complete list at once.
func (s Schema) Apply(d *domain.ClaimData) []Violation {
	var out []Violation
	for _, f := range s.fields {
		out = append(out, f.apply(d)...)
	}
	return out
}

// RequiredPaths lists the paths of the schema's required fields.
func (s Schema) RequiredPaths() []string {
	var out []string
	for _, f := range s.fields {
		if f.Required {
			out = append(out, f.Path)
		}
	}
	return out
}

func fail(path, message string) []Violation {
	return []Violation{{Path: path, Message: message}}
}

func presence[T any](get func(*domain.ClaimData) *T) func(*domain.ClaimData) bool {
	return func(d *domain.ClaimData) bool { return get(d) != nil }
}

// nonEmpty requires a non-blank string value when present.
func nonEmpty[T ~string](path string, get func(*domain.ClaimData) *T, required bool) FieldRule {
	return FieldRule{
		Path:     path,
		Required: required,
		Present:  presence(get),
		Check: func(d *domain.ClaimData) []Violation {
			if strings.TrimSpace(string(*get(d))) == "" {
				return fail(path, "is not allowed to be empty")
			}
			return nil
		},
	}
}

// oneOf requires the value to be a member of the allowed set.
func oneOf[T ~string](path string, get func(*domain.ClaimData) *T, required bool, allowed ...T) FieldRule {
	return FieldRule{
		Path:     path,
		Required: required,
		Present:  presence(get),
		Check: func(d *domain.ClaimData) []Violation {
			value := *get(d)
			for _, a := range allowed {
				if value == a {
					return nil
				}
			}
			return fail(path, mustBeOneOf(allowed))
		},
	}
}

func intMin(path string, get func(*domain.ClaimData) *int, required bool, min int) FieldRule {
	return FieldRule{
		Path:     path,
		Required: required,
		Present:  presence(get),
		Check: func(d *domain.ClaimData) []Violation {
			if *get(d) < min {
				return fail(path, fmt.Sprintf("must be greater than or equal to %d", min))
			}
			return nil
		},
	}
}

func intExact(path string, get func(*domain.ClaimData) *int, required bool, want int) FieldRule {
	return FieldRule{
		Path:     path,
		Required: required,
		Present:  presence(get),
		Check: func(d *domain.ClaimData) []Violation {
			if *get(d) != want {
				return fail(path, fmt.Sprintf("must be %d", want))
			}
			return nil
		},
	}
}

func intOneOf(path string, get func(*domain.ClaimData) *int, required bool, allowed ...int) FieldRule {
	return FieldRule{
		Path:     path,
		Required: required,
		Present:  presence(get),
		Check: func(d *domain.ClaimData) []Violation {
			value := *get(d)
			for _, a := range allowed {
				if value == a {
					return nil
				}
			}
			parts := make([]string, len(allowed))
			for i, a := range allowed {
				parts[i] = fmt.Sprintf("%d", a)
			}
			return fail(path, fmt.Sprintf("must be one of [%s]", strings.Join(parts, ", ")))
		},
	}
}

func mustBeOneOf[T ~string](allowed []T) string {
	parts := make([]string, len(allowed))
	for i, a := range allowed {
		parts[i] = string(a)
	}
	return fmt.Sprintf("must be one of [%s]", strings.Join(parts, ", "))
}
