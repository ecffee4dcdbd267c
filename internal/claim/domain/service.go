package domain

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	ErrClaimNotFound     = errors.New("claim not found")
	ErrDuplicateClaim    = errors.New("claim reference already exists")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// SubmitRequest carries an inbound claim submission. Data is the raw field
// bag exactly as posted.
type SubmitRequest struct {
	ApplicationReference string          `json:"applicationReference"`
	Reference            string          `json:"reference"`
	Type                 ClaimType       `json:"type"`
	CreatedBy            string          `json:"createdBy"`
	Data                 *ClaimData      `json:"-"`
	RawData              json.RawMessage `json:"data"`
}

// UpdateRequest is the narrow patch path: status and the small set of
// correctable visit details. Nil fields are left untouched.
type UpdateRequest struct {
	Reference     string
	UpdatedBy     string
	StatusID      *int
	VetsName      *string
	VetRCVSNumber *string
	DateOfVisit   *string
}

type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*Claim, error)
	Get(ctx context.Context, reference string) (*Claim, error)
	ListByApplication(ctx context.Context, applicationReference string) ([]Claim, error)
	ListByApplicationAndSpecies(ctx context.Context, applicationReference string, species Species) ([]Claim, error)
	Update(ctx context.Context, req UpdateRequest) (*Claim, error)
}
