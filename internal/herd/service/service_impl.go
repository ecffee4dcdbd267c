package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/agriwelfare/stockclaims/internal/herd/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("herd.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Resolve(ctx context.Context, tx *gorm.DB, input *domain.ResolveInput) (domain.Resolution, error) {
	if input == nil {
		return domain.Resolution{Outcome: domain.OutcomeNone}, nil
	}
	if input.HerdVersion > 1 {
		return s.update(ctx, tx, input)
	}
	return s.create(ctx, tx, input)
}

// create inserts version 1 of a new lineage. RetroAssociate is set when the
// submitter declared this the same herd as on earlier claims, so those
// claims can be back-filled by the caller.
func (s *Service) create(ctx context.Context, tx *gorm.DB, input *domain.ResolveInput) (domain.Resolution, error) {
	id := s.genID.Generate()
	if raw := strings.TrimSpace(input.HerdID); raw != "" {
		parsed, err := snowflake.ParseString(raw)
		if err != nil {
			return domain.Resolution{}, fmt.Errorf("%w: %q", domain.ErrInvalidHerdID, raw)
		}
		id = parsed
	}

	herd := &domain.Herd{
		ID:                   id,
		Version:              1,
		ApplicationReference: input.ApplicationReference,
		Species:              input.Species,
		Name:                 input.Name,
		CPH:                  input.CPH,
		Reasons:              input.Reasons,
		IsCurrent:            true,
		CreatedBy:            input.CreatedBy,
		CreatedAt:            time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, tx, herd); err != nil {
		return domain.Resolution{}, err
	}

	return domain.Resolution{
		Outcome:        domain.OutcomeCreated,
		Herd:           herd,
		RetroAssociate: input.Same,
	}, nil
}

// update appends a new version to an existing lineage, or reuses the stored
// version when the answers are unchanged.
func (s *Service) update(ctx context.Context, tx *gorm.DB, input *domain.ResolveInput) (domain.Resolution, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(input.HerdID))
	if err != nil {
		return domain.Resolution{}, fmt.Errorf("%w: %q", domain.ErrInvalidHerdID, input.HerdID)
	}

	stored, err := s.repo.FindLatestByID(ctx, tx, id)
	if err != nil {
		return domain.Resolution{}, err
	}
	if stored == nil {
		return domain.Resolution{}, fmt.Errorf("%w: %s", domain.ErrHerdNotFound, id)
	}
	if stored.Version == input.HerdVersion {
		return domain.Resolution{}, fmt.Errorf("%w: %s version %d", domain.ErrDuplicateHerdVersion, id, input.HerdVersion)
	}
	if stored.Version > input.HerdVersion {
		// The submitter is behind the stored lineage.
		return domain.Resolution{}, fmt.Errorf("%w: %s is at version %d", domain.ErrStaleHerdVersion, id, stored.Version)
	}
	if !stored.IsCurrent {
		return domain.Resolution{}, fmt.Errorf("%w: %s version %d is not current", domain.ErrStaleHerdVersion, id, stored.Version)
	}

	if !herdChanged(stored, input) {
		return domain.Resolution{Outcome: domain.OutcomeReused, Herd: stored}, nil
	}

	name := input.Name
	if strings.TrimSpace(name) == "" {
		// No name on an update means the stored name carries over.
		name = stored.Name
	}

	next := &domain.Herd{
		ID:                   stored.ID,
		Version:              input.HerdVersion,
		ApplicationReference: stored.ApplicationReference,
		Species:              stored.Species,
		Name:                 name,
		CPH:                  input.CPH,
		Reasons:              input.Reasons,
		IsCurrent:            true,
		CreatedBy:            input.CreatedBy,
		CreatedAt:            time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, tx, next); err != nil {
		return domain.Resolution{}, err
	}
	if err := s.repo.MarkNotCurrent(ctx, tx, stored.ID, stored.Version); err != nil {
		return domain.Resolution{}, err
	}

	return domain.Resolution{Outcome: domain.OutcomeUpdated, Herd: next}, nil
}

// herdChanged compares the answers that version a herd: the CPH and the
// reasons set, order-insensitive.
func herdChanged(stored *domain.Herd, input *domain.ResolveInput) bool {
	if stored.CPH != input.CPH {
		return true
	}
	storedReasons := slices.Clone([]string(stored.Reasons))
	inputReasons := slices.Clone(input.Reasons)
	slices.Sort(storedReasons)
	slices.Sort(inputReasons)
	return !slices.Equal(storedReasons, inputReasons)
}
