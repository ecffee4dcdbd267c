package rules

import (
	"strings"

	applicationdomain "github.com/agriwelfare/stockclaims/internal/application/domain"
	"github.com/agriwelfare/stockclaims/internal/claim/domain"
	"github.com/agriwelfare/stockclaims/internal/rollout"
)

// ValidationError collects every field violation found in a single pass.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return strings.Join(parts, ". ")
}

// Validate checks a claim submission against the wrapper requirements and
// the schema applicable to its data section. All field violations are
// collected before returning; a malformed dateOfVisit or an unsupported
// species/type aborts schema selection and is returned as-is.
func Validate(req domain.SubmitRequest, flags []applicationdomain.Flag, cfg rollout.Config) error {
	var violations []Violation

	if strings.TrimSpace(req.ApplicationReference) == "" {
		violations = append(violations, Violation{Path: "applicationReference", Message: "is required"})
	}
	if strings.TrimSpace(req.Reference) == "" {
		violations = append(violations, Violation{Path: "reference", Message: "is required"})
	}
	if strings.TrimSpace(req.CreatedBy) == "" {
		violations = append(violations, Violation{Path: "createdBy", Message: "is required"})
	}
	if !req.Type.Valid() {
		// No schema can be selected without a claim type; report what was
		// collected so far.
		violations = append(violations, Violation{Path: "type", Message: "must be one of [review, followUp]"})
		return &ValidationError{Violations: violations}
	}
	if req.Data == nil {
		violations = append(violations, Violation{Path: "data", Message: "is required"})
		return &ValidationError{Violations: violations}
	}

	schema, err := Build(req.Type, req.Data, flags, cfg)
	if err != nil {
		return err
	}

	violations = append(violations, schema.Apply(req.Data)...)
	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}
