package repository

import (
	"context"

	"github.com/agriwelfare/stockclaims/internal/application/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByReference(ctx context.Context, db *gorm.DB, reference string) (*domain.Application, error) {
	var application domain.Application
	err := db.WithContext(ctx).
		Where("reference = ?", reference).
		Limit(1).
		Find(&application).Error
	if err != nil {
		return nil, err
	}
	if application.ID == 0 {
		return nil, nil
	}
	return &application, nil
}

func (r *repo) ListActiveFlags(ctx context.Context, db *gorm.DB, reference string) ([]domain.Flag, error) {
	var flags []domain.Flag
	err := db.WithContext(ctx).
		Where("application_reference = ? AND deleted_by IS NULL", reference).
		Order("created_at asc").
		Find(&flags).Error
	if err != nil {
		return nil, err
	}
	return flags, nil
}
