package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	// FindLatestByID returns the highest-version row of a herd lineage, or
	// nil when the lineage does not exist.
	FindLatestByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Herd, error)
	Create(ctx context.Context, db *gorm.DB, herd *Herd) error
	MarkNotCurrent(ctx context.Context, db *gorm.DB, id snowflake.ID, version int) error
}
