package domain

import (
	"context"
	"errors"
)

var ErrApplicationNotFound = errors.New("application not found")

type Service interface {
	Get(ctx context.Context, reference string) (*Application, error)
	// Flags returns the live (non-deleted) flags for an application.
	Flags(ctx context.Context, reference string) ([]Flag, error)
}
