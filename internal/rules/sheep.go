package rules

import (
	"encoding/json"
	"strings"

	"github.com/agriwelfare/stockclaims/internal/claim/domain"
)

// sheepFollowUpRules is the sheep follow-up variant. testResults is an array
// of disease results; each result is a string or a nested array of the same
// shape, and an empty array is an acceptable submission.
func sheepFollowUpRules() []FieldRule {
	return []FieldRule{
		dateOfTesting(true),
		intMin("data.numberAnimalsTested", numberAnimalsTested, true, 1),
		nonEmpty("data.sheepEndemicsPackage",
			func(d *domain.ClaimData) *string { return d.SheepEndemicsPackage }, true),
		sheepTestResults(),
	}
}

func sheepTestResults() FieldRule {
	return FieldRule{
		Path:     "data.testResults",
		Required: true,
		Present:  func(d *domain.ClaimData) bool { return len(d.TestResults) > 0 },
		Check: func(d *domain.ClaimData) []Violation {
			entries, ok := d.SheepTestResults()
			if !ok {
				return fail("data.testResults", "must be an array of disease results")
			}
			return checkSheepEntries("data.testResults", entries)
		},
	}
}

func checkSheepEntries(path string, entries []domain.SheepTestResult) []Violation {
	var out []Violation
	for _, entry := range entries {
		if strings.TrimSpace(entry.DiseaseType) == "" {
			out = append(out, Violation{Path: path + ".diseaseType", Message: "is required"})
		}
		out = append(out, checkSheepResult(path+".result", entry.Result)...)
	}
	return out
}

// checkSheepResult accepts a plain string or a nested array of disease
// results.
func checkSheepResult(path string, raw json.RawMessage) []Violation {
	if len(raw) == 0 {
		return []Violation{{Path: path, Message: "is required"}}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return nil
	}

	var nested []domain.SheepTestResult
	if err := json.Unmarshal(raw, &nested); err == nil {
		return checkSheepEntries(path, nested)
	}

	return []Violation{{Path: path, Message: "must be a string or an array of disease results"}}
}
