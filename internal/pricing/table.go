// Package pricing computes the amount payable for a claim from the priced
// configuration document. The follow-up branching here must mirror the
// validation branching exactly; both build on the predicates in the rules
// package.
package pricing

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/agriwelfare/stockclaims/internal/claim/domain"
	"github.com/shopspring/decimal"
)

// ErrMissingPrice indicates a species/claim-type combination absent from the
// priced configuration. This is a deployment fault, never a user error, and
// is propagated rather than defaulted.
var ErrMissingPrice = errors.New("priced configuration entry missing")

type NegativeAmounts struct {
	NoPiHunt  decimal.Decimal `json:"noPiHunt"`
	YesPiHunt decimal.Decimal `json:"yesPiHunt"`
}

// FollowUpAmount is either a flat amount (pigs, sheep) or a result tree
// (beef, dairy).
type FollowUpAmount struct {
	Flat     *decimal.Decimal
	Positive decimal.Decimal
	Negative NegativeAmounts
}

func (a *FollowUpAmount) UnmarshalJSON(raw []byte) error {
	var flat decimal.Decimal
	if err := json.Unmarshal(raw, &flat); err == nil {
		a.Flat = &flat
		return nil
	}

	var tree struct {
		Positive decimal.Decimal `json:"positive"`
		Negative NegativeAmounts `json:"negative"`
	}
	if err := json.Unmarshal(raw, &tree); err != nil {
		return fmt.Errorf("follow-up amount must be a number or a result tree: %w", err)
	}
	a.Flat = nil
	a.Positive = tree.Positive
	a.Negative = tree.Negative
	return nil
}

func (a FollowUpAmount) MarshalJSON() ([]byte, error) {
	if a.Flat != nil {
		return json.Marshal(*a.Flat)
	}
	return json.Marshal(struct {
		Positive decimal.Decimal `json:"positive"`
		Negative NegativeAmounts `json:"negative"`
	}{Positive: a.Positive, Negative: a.Negative})
}

// Table is the decoded priced configuration document.
type Table struct {
	Review   map[domain.Species]decimal.Decimal `json:"review"`
	FollowUp map[domain.Species]FollowUpAmount  `json:"followUp"`
}

// Validate rejects documents with missing or non-positive entries so a bad
// deploy fails at load time instead of during a claim.
func (t Table) Validate() error {
	for _, species := range domain.AllSpecies {
		amount, ok := t.Review[species]
		if !ok {
			return fmt.Errorf("%w: review %s", ErrMissingPrice, species)
		}
		if !amount.IsPositive() {
			return fmt.Errorf("review %s amount must be positive", species)
		}

		entry, ok := t.FollowUp[species]
		if !ok {
			return fmt.Errorf("%w: followUp %s", ErrMissingPrice, species)
		}
		switch species {
		case domain.SpeciesBeef, domain.SpeciesDairy:
			if entry.Flat != nil {
				return fmt.Errorf("followUp %s must be a result tree", species)
			}
			if !entry.Positive.IsPositive() || !entry.Negative.NoPiHunt.IsPositive() || !entry.Negative.YesPiHunt.IsPositive() {
				return fmt.Errorf("followUp %s amounts must be positive", species)
			}
		default:
			if entry.Flat == nil {
				return fmt.Errorf("followUp %s must be a flat amount", species)
			}
			if !entry.Flat.IsPositive() {
				return fmt.Errorf("followUp %s amount must be positive", species)
			}
		}
	}
	return nil
}
