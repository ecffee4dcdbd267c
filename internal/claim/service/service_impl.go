package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	applicationdomain "github.com/agriwelfare/stockclaims/internal/application/domain"
	"github.com/agriwelfare/stockclaims/internal/claim/domain"
	"github.com/agriwelfare/stockclaims/internal/config"
	"github.com/agriwelfare/stockclaims/internal/events"
	herddomain "github.com/agriwelfare/stockclaims/internal/herd/domain"
	"github.com/agriwelfare/stockclaims/internal/pricing"
	"github.com/agriwelfare/stockclaims/internal/rollout"
	"github.com/agriwelfare/stockclaims/internal/rules"
	"github.com/agriwelfare/stockclaims/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Cfg       config.Config
	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      domain.Repository
	Apps      applicationdomain.Service
	Herds     herddomain.Service
	Prices    *pricing.Holder
	Publisher events.Publisher
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	apps      applicationdomain.Service
	herds     herddomain.Service
	prices    *pricing.Holder
	publisher events.Publisher
	rollout   rollout.Config
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("claim.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		apps:      p.Apps,
		herds:     p.Herds,
		prices:    p.Prices,
		publisher: p.Publisher,
		rollout: rollout.Config{
			MultiHerdEnabled: p.Cfg.MultiHerdEnabled,
			MultiHerdGoLive:  p.Cfg.MultiHerdGoLive,
		},
	}
}

// Submit validates a claim, prices it, resolves its herd reference and
// persists it, all inside one transaction with the herd writes. Downstream
// messages go out only after the transaction commits.
func (s *Service) Submit(ctx context.Context, req domain.SubmitRequest) (*domain.Claim, error) {
	req.ApplicationReference = strings.TrimSpace(req.ApplicationReference)
	req.Reference = strings.TrimSpace(req.Reference)

	if req.Data == nil && len(req.RawData) > 0 {
		var data domain.ClaimData
		if err := json.Unmarshal(req.RawData, &data); err != nil {
			return nil, &rules.ValidationError{Violations: []rules.Violation{
				{Path: "data", Message: "must be an object"},
			}}
		}
		req.Data = &data
	}

	if _, err := s.apps.Get(ctx, req.ApplicationReference); err != nil {
		return nil, err
	}
	flags, err := s.apps.Flags(ctx, req.ApplicationReference)
	if err != nil {
		return nil, err
	}

	if err := rules.Validate(req, flags, s.rollout); err != nil {
		return nil, err
	}

	multiHerd, err := rollout.MultipleHerdsJourney(req.Data.DateOfVisit, flags, s.rollout)
	if err != nil {
		return nil, err
	}

	amount, err := pricing.ComputeAmount(req.Type, req.Data, s.prices.Table())
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(req.Data)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	claim := &domain.Claim{
		ID:                   s.genID.Generate(),
		Reference:            req.Reference,
		ApplicationReference: req.ApplicationReference,
		Type:                 req.Type,
		Species:              req.Data.TypeOfLivestock,
		StatusID:             domain.StatusInCheck,
		Data:                 raw,
		PaymentAmount:        amount,
		CreatedBy:            req.CreatedBy,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// A herd section volunteered outside the multiple-herds journey is
		// ignored, not persisted.
		if multiHerd {
			resolution, err := s.herds.Resolve(ctx, tx, herdInput(req))
			if err != nil {
				return err
			}
			if resolution.Herd != nil {
				version := resolution.Herd.Version
				claim.HerdID = &resolution.Herd.ID
				claim.HerdVersion = &version
				claim.HerdAssociatedAt = &now
			}
			if resolution.RetroAssociate {
				err := s.repo.BackfillHerd(ctx, tx,
					req.ApplicationReference, req.Data.TypeOfLivestock,
					resolution.Herd.ID, resolution.Herd.Version, now)
				if err != nil {
					return err
				}
			}
		}

		if err := s.repo.Insert(ctx, tx, claim); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.ErrDuplicateClaim
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.publisher.ClaimSubmitted(ctx, s.event(claim)); err != nil {
		// The claim is committed; a broker outage must not fail it.
		s.log.Warn("claim submitted event not published",
			zap.String("reference", claim.Reference),
			zap.Error(err))
	}

	return claim, nil
}

func (s *Service) Get(ctx context.Context, reference string) (*domain.Claim, error) {
	claim, err := s.repo.FindByReference(ctx, s.db, strings.TrimSpace(reference))
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, domain.ErrClaimNotFound
	}
	return claim, nil
}

func (s *Service) ListByApplication(ctx context.Context, applicationReference string) ([]domain.Claim, error) {
	if _, err := s.apps.Get(ctx, strings.TrimSpace(applicationReference)); err != nil {
		return nil, err
	}
	return s.repo.ListByApplication(ctx, s.db, strings.TrimSpace(applicationReference))
}

func (s *Service) ListByApplicationAndSpecies(ctx context.Context, applicationReference string, species domain.Species) ([]domain.Claim, error) {
	if !species.Valid() {
		return nil, fmt.Errorf("%w: %q", rules.ErrUnsupportedLivestock, species)
	}
	if _, err := s.apps.Get(ctx, strings.TrimSpace(applicationReference)); err != nil {
		return nil, err
	}
	return s.repo.ListByApplicationAndSpecies(ctx, s.db, strings.TrimSpace(applicationReference), species)
}

// Update is the narrow patch path: status moves and small corrections to the
// visit details. The data bag is otherwise immutable after submission.
func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Claim, error) {
	claim, err := s.Get(ctx, req.Reference)
	if err != nil {
		return nil, err
	}

	statusChanged := false
	if req.StatusID != nil && *req.StatusID != claim.StatusID {
		if !domain.CanTransition(claim.StatusID, *req.StatusID) {
			return nil, domain.ErrInvalidTransition
		}
		claim.StatusID = *req.StatusID
		statusChanged = true
	}

	if req.VetsName != nil || req.VetRCVSNumber != nil || req.DateOfVisit != nil {
		data, err := claim.DecodeData()
		if err != nil {
			return nil, err
		}
		if req.VetsName != nil {
			data.VetsName = req.VetsName
		}
		if req.VetRCVSNumber != nil {
			data.VetRCVSNumber = req.VetRCVSNumber
		}
		if req.DateOfVisit != nil {
			if _, err := rollout.ParseVisitDate(*req.DateOfVisit); err != nil {
				return nil, err
			}
			data.DateOfVisit = *req.DateOfVisit
		}
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		claim.Data = raw
	}

	claim.UpdatedBy = req.UpdatedBy
	claim.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, claim); err != nil {
		return nil, err
	}

	if statusChanged {
		event := s.event(claim)
		if claim.StatusID == domain.StatusReadyToPay {
			if err := s.publisher.ClaimReadyToPay(ctx, event); err != nil {
				s.log.Warn("payment event not published",
					zap.String("reference", claim.Reference),
					zap.Error(err))
			}
		}
		if err := s.publisher.ClaimStatusChanged(ctx, event); err != nil {
			s.log.Warn("status event not published",
				zap.String("reference", claim.Reference),
				zap.Error(err))
		}
	}

	return claim, nil
}

func (s *Service) event(claim *domain.Claim) events.ClaimEvent {
	return events.ClaimEvent{
		Reference:            claim.Reference,
		ApplicationReference: claim.ApplicationReference,
		Type:                 claim.Type,
		Species:              claim.Species,
		StatusID:             claim.StatusID,
		Amount:               claim.PaymentAmount,
		OccurredAt:           time.Now().UTC(),
	}
}

func herdInput(req domain.SubmitRequest) *herddomain.ResolveInput {
	h := req.Data.Herd
	if h == nil {
		return nil
	}
	return &herddomain.ResolveInput{
		HerdID:               h.HerdID,
		HerdVersion:          h.HerdVersion,
		Name:                 h.HerdName,
		CPH:                  h.CPH,
		Reasons:              h.HerdReasons,
		Same:                 h.HerdSame != nil && *h.HerdSame == domain.Yes,
		ApplicationReference: req.ApplicationReference,
		Species:              string(req.Data.TypeOfLivestock),
		CreatedBy:            req.CreatedBy,
	}
}
