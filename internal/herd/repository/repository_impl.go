package repository

import (
	"context"

	"github.com/agriwelfare/stockclaims/internal/herd/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindLatestByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Herd, error) {
	var herd domain.Herd
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Order("version desc").
		Limit(1).
		Find(&herd).Error
	if err != nil {
		return nil, err
	}
	if herd.ID == 0 {
		return nil, nil
	}
	return &herd, nil
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, herd *domain.Herd) error {
	return db.WithContext(ctx).Create(herd).Error
}

func (r *repo) MarkNotCurrent(ctx context.Context, db *gorm.DB, id snowflake.ID, version int) error {
	return db.WithContext(ctx).
		Model(&domain.Herd{}).
		Where("id = ? AND version = ?", id, version).
		Update("is_current", false).Error
}
