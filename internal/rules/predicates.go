package rules

import "github.com/agriwelfare/stockclaims/internal/claim/domain"

// The branch predicates below are shared by schema construction and amount
// calculation so the two can never disagree about which journey a claim is
// on.

// IsPositiveReview reports whether the prior review's test result was
// positive.
func IsPositiveReview(d *domain.ClaimData) bool {
	return d.ReviewTestResults != nil && *d.ReviewTestResults == domain.ResultPositive
}

// PiHuntOnAllAnimals reports whether a PI hunt was carried out across the
// whole herd. Only meaningful on or after the PI-hunt go-live date; before
// it the question was never asked.
func PiHuntOnAllAnimals(d *domain.ClaimData, piHuntRulesLive bool) bool {
	return piHuntRulesLive && isYes(d.PiHunt) && isYes(d.PiHuntAllAnimals)
}

// piHuntDetailsExpected reports whether the testing detail fields
// (dateOfTesting, laboratoryURN, testResults) are required: the effective
// recommendation is not an explicit "no" and the hunt covered all animals.
func piHuntDetailsExpected(d *domain.ClaimData) bool {
	if !isYes(d.PiHuntAllAnimals) {
		return false
	}
	return d.PiHuntRecommended == nil || *d.PiHuntRecommended != domain.No
}

func isYes(v *domain.YesNo) bool {
	return v != nil && *v == domain.Yes
}
