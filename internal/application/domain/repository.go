package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindByReference(ctx context.Context, db *gorm.DB, reference string) (*Application, error)
	// ListActiveFlags returns the application's flags that have not been
	// soft-deleted.
	ListActiveFlags(ctx context.Context, db *gorm.DB, reference string) ([]Flag, error)
}
