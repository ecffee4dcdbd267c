package service

import (
	"context"
	"strings"
	"time"

	"github.com/agriwelfare/stockclaims/internal/application/domain"
	"github.com/agriwelfare/stockclaims/internal/cache"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Application records change rarely; flags gate validation branches, so they
// are read fresh on every call.
const applicationTTL = 5 * time.Minute

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	repo         domain.Repository
	applications cache.Cache[string, *domain.Application]
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("application.service"),
		repo:         p.Repo,
		applications: cache.NewTTLCache[string, *domain.Application](),
	}
}

func (s *Service) Get(ctx context.Context, reference string) (*domain.Application, error) {
	reference = strings.TrimSpace(reference)
	if cached, ok := s.applications.Get(reference); ok {
		return cached, nil
	}

	application, err := s.repo.FindByReference(ctx, s.db, reference)
	if err != nil {
		return nil, err
	}
	if application == nil {
		return nil, domain.ErrApplicationNotFound
	}

	s.applications.Set(reference, application, applicationTTL)
	return application, nil
}

func (s *Service) Flags(ctx context.Context, reference string) ([]domain.Flag, error) {
	return s.repo.ListActiveFlags(ctx, s.db, strings.TrimSpace(reference))
}
