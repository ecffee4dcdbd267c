package rules

import "github.com/agriwelfare/stockclaims/internal/claim/domain"

// reviewRules are the per-species requirements of a review claim beyond the
// common base. Reviews carry no rule-generation branching; the table below
// is static per species.
func reviewRules(species domain.Species) []FieldRule {
	switch species {
	case domain.SpeciesBeef:
		return []FieldRule{
			dateOfTesting(true),
			laboratoryURN(true),
			intMin("data.numberAnimalsTested", numberAnimalsTested, true, 5),
			testResultsEnum(true),
		}
	case domain.SpeciesDairy:
		return []FieldRule{
			dateOfTesting(true),
			laboratoryURN(true),
			testResultsEnum(true),
		}
	case domain.SpeciesPigs:
		return []FieldRule{
			dateOfTesting(true),
			laboratoryURN(true),
			intMin("data.numberAnimalsTested", numberAnimalsTested, true, 30),
			intMin("data.numberOfOralFluidSamples", func(d *domain.ClaimData) *int { return d.NumberOfOralFluidSamples }, true, 5),
			testResultsEnum(true),
		}
	case domain.SpeciesSheep:
		return []FieldRule{
			dateOfTesting(true),
			laboratoryURN(true),
			intMin("data.numberAnimalsTested", numberAnimalsTested, true, 1),
		}
	}
	return nil
}

func numberAnimalsTested(d *domain.ClaimData) *int { return d.NumberAnimalsTested }

func dateOfTesting(required bool) FieldRule {
	return nonEmpty("data.dateOfTesting", func(d *domain.ClaimData) *string { return d.DateOfTesting }, required)
}

func laboratoryURN(required bool) FieldRule {
	return nonEmpty("data.laboratoryURN", func(d *domain.ClaimData) *string { return d.LaboratoryURN }, required)
}

// testResultsEnum validates the plain-string form of testResults used by
// beef, dairy and pigs claims.
func testResultsEnum(required bool) FieldRule {
	return FieldRule{
		Path:     "data.testResults",
		Required: required,
		Present:  func(d *domain.ClaimData) bool { return len(d.TestResults) > 0 },
		Check: func(d *domain.ClaimData) []Violation {
			value, ok := d.StringTestResults()
			if !ok {
				return fail("data.testResults", "must be a string")
			}
			if value != string(domain.ResultPositive) && value != string(domain.ResultNegative) {
				return fail("data.testResults", "must be one of [positive, negative]")
			}
			return nil
		},
	}
}
