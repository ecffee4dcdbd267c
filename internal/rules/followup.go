package rules

import "github.com/agriwelfare/stockclaims/internal/claim/domain"

// followUpOriginalPiHuntRules is the beef/dairy follow-up variant for visits
// before the PI-hunt go-live date: a PI hunt is only offered after a
// positive review, and the testing detail fields travel with it.
func followUpOriginalPiHuntRules(d *domain.ClaimData) []FieldRule {
	fields := []FieldRule{
		reviewTestResults(),
		biosecurityYesNo(),
	}
	if IsPositiveReview(d) {
		fields = append(fields,
			dateOfTesting(true),
			laboratoryURN(true),
			testResultsEnum(true),
			oneOf("data.piHunt", piHunt, true, domain.Yes, domain.No),
		)
	}
	return fields
}

// followUpOptionalPiHuntRules is the beef/dairy follow-up variant for visits
// on or after the PI-hunt go-live date. piHunt is always asked, but after a
// positive review the only acceptable answer is "yes" and the hunt must
// cover all animals; after a negative review the vet may instead record a
// recommendation chain.
func followUpOptionalPiHuntRules(d *domain.ClaimData) []FieldRule {
	fields := []FieldRule{
		reviewTestResults(),
		biosecurityYesNo(),
	}

	if IsPositiveReview(d) {
		fields = append(fields,
			oneOf("data.piHunt", piHunt, true, domain.Yes),
		)
		if isYes(d.PiHunt) {
			fields = append(fields,
				oneOf("data.piHuntAllAnimals", piHuntAllAnimals, true, domain.Yes),
			)
		}
	} else {
		fields = append(fields,
			oneOf("data.piHunt", piHunt, true, domain.Yes, domain.No),
		)
		if isYes(d.PiHunt) {
			fields = append(fields,
				oneOf("data.piHuntRecommended", func(d *domain.ClaimData) *domain.YesNo { return d.PiHuntRecommended }, true, domain.Yes, domain.No),
			)
			if isYes(d.PiHuntRecommended) {
				fields = append(fields,
					oneOf("data.piHuntAllAnimals", piHuntAllAnimals, true, domain.Yes, domain.No),
				)
			}
		}
	}

	if piHuntDetailsExpected(d) {
		fields = append(fields,
			dateOfTesting(true),
			laboratoryURN(true),
			testResultsEnum(true),
		)
	}

	return fields
}

func reviewTestResults() FieldRule {
	return oneOf("data.reviewTestResults",
		func(d *domain.ClaimData) *domain.TestResult { return d.ReviewTestResults },
		true, domain.ResultPositive, domain.ResultNegative)
}

func piHunt(d *domain.ClaimData) *domain.YesNo           { return d.PiHunt }
func piHuntAllAnimals(d *domain.ClaimData) *domain.YesNo { return d.PiHuntAllAnimals }

// biosecurityYesNo validates the plain-answer form used by beef and dairy
// follow-ups.
func biosecurityYesNo() FieldRule {
	return FieldRule{
		Path:     "data.biosecurity",
		Required: true,
		Present:  func(d *domain.ClaimData) bool { return len(d.Biosecurity) > 0 },
		Check: func(d *domain.ClaimData) []Violation {
			answer, ok := d.BiosecurityAnswer()
			if !ok || (answer != domain.Yes && answer != domain.No) {
				return fail("data.biosecurity", "must be one of [yes, no]")
			}
			return nil
		},
	}
}
