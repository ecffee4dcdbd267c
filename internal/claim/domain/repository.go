package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, claim *Claim) error
	FindByReference(ctx context.Context, db *gorm.DB, reference string) (*Claim, error)
	ListByApplication(ctx context.Context, db *gorm.DB, applicationReference string) ([]Claim, error)
	ListByApplicationAndSpecies(ctx context.Context, db *gorm.DB, applicationReference string, species Species) ([]Claim, error)
	Update(ctx context.Context, db *gorm.DB, claim *Claim) error
	// BackfillHerd associates a herd with every claim under the application
	// and species that does not yet carry one.
	BackfillHerd(ctx context.Context, db *gorm.DB, applicationReference string, species Species, herdID snowflake.ID, herdVersion int, at time.Time) error
}
