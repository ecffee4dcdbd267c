package pricing

import (
	"fmt"

	"github.com/agriwelfare/stockclaims/internal/claim/domain"
	"github.com/agriwelfare/stockclaims/internal/rollout"
	"github.com/agriwelfare/stockclaims/internal/rules"
	"github.com/shopspring/decimal"
)

// ComputeAmount returns the amount payable for a claim. Reviews and
// pigs/sheep follow-ups are flat per species; beef/dairy follow-ups branch
// on the review result and, for negative reviews, on whether a full-herd PI
// hunt was carried out under the reworked rules.
func ComputeAmount(claimType domain.ClaimType, d *domain.ClaimData, table Table) (decimal.Decimal, error) {
	species := d.TypeOfLivestock

	switch claimType {
	case domain.TypeReview:
		amount, ok := table.Review[species]
		if !ok {
			return decimal.Zero, fmt.Errorf("%w: review %s", ErrMissingPrice, species)
		}
		return amount, nil

	case domain.TypeFollowUp:
		entry, ok := table.FollowUp[species]
		if !ok {
			return decimal.Zero, fmt.Errorf("%w: followUp %s", ErrMissingPrice, species)
		}
		if entry.Flat != nil {
			return *entry.Flat, nil
		}
		if rules.IsPositiveReview(d) {
			return entry.Positive, nil
		}
		piHuntRulesLive, err := rollout.VisitOnOrAfterPiHuntGoLive(d.DateOfVisit)
		if err != nil {
			return decimal.Zero, err
		}
		if rules.PiHuntOnAllAnimals(d, piHuntRulesLive) {
			return entry.Negative.YesPiHunt, nil
		}
		return entry.Negative.NoPiHunt, nil
	}

	return decimal.Zero, fmt.Errorf("unsupported claim type %q", claimType)
}
