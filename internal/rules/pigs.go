package rules

import (
	"regexp"

	"github.com/agriwelfare/stockclaims/internal/claim/domain"
)

const (
	VaccinationStatusVaccinated    = "vaccinated"
	VaccinationStatusNotVaccinated = "notVaccinated"

	PigsTestPCR   = "pcr"
	PigsTestELISA = "elisa"
)

// GeneticSequencingResults enumerates the acceptable outcomes of the
// sequencing carried out after a positive PCR test.
var GeneticSequencingResults = []string{"mlv", "prrs1", "prrs2", "prrs1Plus2", "unknown"}

// pigsFollowUpRules is the pigs follow-up variant. Pigs carry no
// rule-generation branching; the disease-test sub-schema depends on which
// test the vet ran.
func pigsFollowUpRules(d *domain.ClaimData) []FieldRule {
	fields := []FieldRule{
		reviewTestResults(),
		dateOfTesting(true),
		intExact("data.numberAnimalsTested", numberAnimalsTested, true, 30),
		oneOf("data.herdVaccinationStatus",
			func(d *domain.ClaimData) *string { return d.HerdVaccinationStatus },
			true, VaccinationStatusVaccinated, VaccinationStatusNotVaccinated),
		laboratoryURN(true),
		intOneOf("data.numberOfSamplesTested",
			func(d *domain.ClaimData) *int { return d.NumberOfSamplesTested },
			true, 6, 30),
		oneOf("data.pigsFollowUpTest",
			func(d *domain.ClaimData) *string { return d.PigsFollowUpTest },
			true, PigsTestPCR, PigsTestELISA),
		pigsBiosecurity(),
	}

	switch value(d.PigsFollowUpTest) {
	case PigsTestPCR:
		fields = append(fields,
			oneOf("data.pigsPcrTestResult",
				func(d *domain.ClaimData) *string { return d.PigsPcrTestResult },
				true, string(domain.ResultPositive), string(domain.ResultNegative)),
		)
		if value(d.PigsPcrTestResult) == string(domain.ResultPositive) {
			fields = append(fields,
				oneOf("data.pigsGeneticSequencing",
					func(d *domain.ClaimData) *string { return d.PigsGeneticSequencing },
					true, GeneticSequencingResults...),
			)
		}
	case PigsTestELISA:
		fields = append(fields,
			oneOf("data.pigsElisaTestResult",
				func(d *domain.ClaimData) *string { return d.PigsElisaTestResult },
				true, string(domain.ResultPositive), string(domain.ResultNegative)),
		)
	}

	return fields
}

func value(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// 1 to 3 digits, no leading zero
var assessmentPercentageRe = regexp.MustCompile(`^[1-9][0-9]{0,2}$`)

// pigsBiosecurity validates the pigs follow-up biosecurity answer: either
// the literal "no" or an assessment object with a percentage between 1 and
// 100.
func pigsBiosecurity() FieldRule {
	return FieldRule{
		Path:     "data.biosecurity",
		Required: true,
		Present:  func(d *domain.ClaimData) bool { return len(d.Biosecurity) > 0 },
		Check: func(d *domain.ClaimData) []Violation {
			if answer, ok := d.BiosecurityAnswer(); ok {
				if answer == domain.No {
					return nil
				}
				return fail("data.biosecurity", `must be "no" or an assessment object`)
			}

			obj, ok := d.PigsBiosecurityAnswer()
			if !ok || obj.Biosecurity != domain.Yes {
				return fail("data.biosecurity", `must be "no" or an assessment object`)
			}
			if !assessmentPercentageRe.MatchString(obj.AssessmentPercentage) || !percentageInRange(obj.AssessmentPercentage) {
				return fail("data.biosecurity.assessmentPercentage", "must be a number between 1 and 100")
			}
			return nil
		},
	}
}

func percentageInRange(raw string) bool {
	// Regexp already restricts to 1..999 with no leading zero.
	if len(raw) < 3 {
		return true
	}
	return raw == "100"
}
