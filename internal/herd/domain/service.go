package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrHerdNotFound         = errors.New("herd not found")
	ErrStaleHerdVersion     = errors.New("herd version is no longer current")
	ErrDuplicateHerdVersion = errors.New("herd version already exists")
	ErrInvalidHerdID        = errors.New("herd id is not valid")
)

// Outcome labels what Resolve did with the incoming herd section.
type Outcome string

const (
	OutcomeNone    Outcome = "none"    // no herd section on the claim
	OutcomeCreated Outcome = "created" // version 1 inserted
	OutcomeUpdated Outcome = "updated" // new version inserted, prior superseded
	OutcomeReused  Outcome = "reused"  // answers unchanged, stored version kept
)

// ResolveInput is the herd section of a claim, mapped out of the claim's
// data bag.
type ResolveInput struct {
	HerdID      string
	HerdVersion int
	Name        string
	CPH         string
	Reasons     []string
	Same        bool

	ApplicationReference string
	Species              string
	CreatedBy            string
}

// Resolution reports the herd the claim should reference and whether earlier
// claims for the same application and species must be back-filled with it.
type Resolution struct {
	Outcome        Outcome
	Herd           *Herd
	RetroAssociate bool
}

type Service interface {
	// Resolve runs inside the caller's transaction: herd writes must commit
	// or roll back together with the claim insert.
	Resolve(ctx context.Context, tx *gorm.DB, input *ResolveInput) (Resolution, error)
}
