package repository

import (
	"context"
	"time"

	"github.com/agriwelfare/stockclaims/internal/claim/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, claim *domain.Claim) error {
	return db.WithContext(ctx).Create(claim).Error
}

func (r *repo) FindByReference(ctx context.Context, db *gorm.DB, reference string) (*domain.Claim, error) {
	var claim domain.Claim
	err := db.WithContext(ctx).
		Where("reference = ?", reference).
		Limit(1).
		Find(&claim).Error
	if err != nil {
		return nil, err
	}
	if claim.ID == 0 {
		return nil, nil
	}
	return &claim, nil
}

func (r *repo) ListByApplication(ctx context.Context, db *gorm.DB, applicationReference string) ([]domain.Claim, error) {
	var claims []domain.Claim
	err := db.WithContext(ctx).
		Where("application_reference = ?", applicationReference).
		Order("created_at desc, id desc").
		Find(&claims).Error
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func (r *repo) ListByApplicationAndSpecies(ctx context.Context, db *gorm.DB, applicationReference string, species domain.Species) ([]domain.Claim, error) {
	var claims []domain.Claim
	err := db.WithContext(ctx).
		Where("application_reference = ? AND species = ?", applicationReference, species).
		Order("created_at desc, id desc").
		Find(&claims).Error
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, claim *domain.Claim) error {
	return db.WithContext(ctx).Save(claim).Error
}

func (r *repo) BackfillHerd(ctx context.Context, db *gorm.DB, applicationReference string, species domain.Species, herdID snowflake.ID, herdVersion int, at time.Time) error {
	return db.WithContext(ctx).
		Model(&domain.Claim{}).
		Where("application_reference = ? AND species = ? AND herd_id IS NULL", applicationReference, species).
		Updates(map[string]any{
			"herd_id":            herdID,
			"herd_version":       herdVersion,
			"herd_associated_at": at,
		}).Error
}
