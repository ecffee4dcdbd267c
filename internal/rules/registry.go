package rules

import (
	"errors"
	"fmt"

	applicationdomain "github.com/agriwelfare/stockclaims/internal/application/domain"
	"github.com/agriwelfare/stockclaims/internal/claim/domain"
	"github.com/agriwelfare/stockclaims/internal/rollout"
)

var (
	// ErrUnsupportedLivestock and ErrUnsupportedClaimType indicate a
	// non-conformant client or misconfiguration, not bad user input; they
	// are propagated as hard failures.
	ErrUnsupportedLivestock = errors.New("unsupported livestock type")
	ErrUnsupportedClaimType = errors.New("unsupported claim type")
)

// Build returns the validation schema applicable to a claim's data section.
// The variant is selected by claim type, species and the rule generation the
// visit date falls under; conditionally required fields inside a variant
// depend on prior answers within the data itself.
func Build(claimType domain.ClaimType, d *domain.ClaimData, flags []applicationdomain.Flag, cfg rollout.Config) (Schema, error) {
	if !d.TypeOfLivestock.Valid() {
		return Schema{}, fmt.Errorf("%w: %q", ErrUnsupportedLivestock, d.TypeOfLivestock)
	}

	piHuntRulesLive, err := rollout.VisitOnOrAfterPiHuntGoLive(d.DateOfVisit)
	if err != nil {
		return Schema{}, err
	}

	fields := commonRules()

	switch claimType {
	case domain.TypeReview:
		fields = append(fields, reviewRules(d.TypeOfLivestock)...)
	case domain.TypeFollowUp:
		switch d.TypeOfLivestock {
		case domain.SpeciesBeef, domain.SpeciesDairy:
			if piHuntRulesLive {
				fields = append(fields, followUpOptionalPiHuntRules(d)...)
			} else {
				fields = append(fields, followUpOriginalPiHuntRules(d)...)
			}
		case domain.SpeciesPigs:
			fields = append(fields, pigsFollowUpRules(d)...)
		case domain.SpeciesSheep:
			fields = append(fields, sheepFollowUpRules()...)
		}
	default:
		return Schema{}, fmt.Errorf("%w: %q", ErrUnsupportedClaimType, claimType)
	}

	multiHerd, err := rollout.MultipleHerdsJourney(d.DateOfVisit, flags, cfg)
	if err != nil {
		return Schema{}, err
	}
	if multiHerd {
		fields = append(fields, herdRules(d)...)
	}

	return Schema{fields: fields}, nil
}

// commonRules apply to every claim regardless of species or type.
func commonRules() []FieldRule {
	return []FieldRule{
		{
			Path:     "data.typeOfLivestock",
			Required: true,
			Present:  func(d *domain.ClaimData) bool { return d.TypeOfLivestock != "" },
		},
		{
			Path:     "data.dateOfVisit",
			Required: true,
			Present:  func(d *domain.ClaimData) bool { return d.DateOfVisit != "" },
		},
		oneOf("data.speciesNumbers", func(d *domain.ClaimData) *domain.YesNo { return d.SpeciesNumbers }, true, domain.Yes, domain.No),
		nonEmpty("data.vetsName", func(d *domain.ClaimData) *string { return d.VetsName }, true),
		nonEmpty("data.vetRCVSNumber", func(d *domain.ClaimData) *string { return d.VetRCVSNumber }, true),
		{
			Path:     "data.amount",
			Required: false,
			Present:  func(d *domain.ClaimData) bool { return d.Amount != nil },
			Check: func(d *domain.ClaimData) []Violation {
				if *d.Amount < 0 {
					return fail("data.amount", "must be greater than or equal to 0")
				}
				return nil
			},
		},
	}
}
