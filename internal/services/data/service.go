package data

import (
	"context"
	"errors"

	"dareboard/internal/domain/dare"
	"dareboard/internal/store/postgres"
)

// ErrNotFound is returned when a requested dare does not exist.
var ErrNotFound = errors.New("not found")

// DareRepository is the read side the service depends on.
// *postgres.DareRepository satisfies it.
type DareRepository interface {
	List(ctx context.Context, f dare.Filter, sort dare.SortKey, limit, offset int) ([]dare.Dare, int, error)
	Get(ctx context.Context, id string) (*dare.Dare, error)
	ListActs(ctx context.Context, dareID string, limit, offset int) ([]dare.Act, int, error)
}

// Service handles data retrieval operations
type Service struct {
	dares DareRepository
}

// NewService creates a new data service
func NewService(dares DareRepository) *Service {
	return &Service{dares: dares}
}

// ListDares retrieves one page of dares
func (s *Service) ListDares(ctx context.Context, req ListRequest) (*ListResponse[dare.Dare], error) {
	req.Validate()

	items, total, err := s.dares.List(ctx, req.filter(), req.Sort, req.Limit, req.Offset())
	if err != nil {
		return nil, &ServiceError{Op: "list_dares", Err: err}
	}
	return newListResponse(items, req, total), nil
}

// ListActs retrieves one page of acts, optionally for a single dare
func (s *Service) ListActs(ctx context.Context, req ListRequest) (*ListResponse[dare.Act], error) {
	req.Validate()

	items, total, err := s.dares.ListActs(ctx, req.DareID, req.Limit, req.Offset())
	if err != nil {
		return nil, &ServiceError{Op: "list_acts", Err: err}
	}
	return newListResponse(items, req, total), nil
}

// GetDare retrieves a single dare
func (s *Service) GetDare(ctx context.Context, id string) (*dare.Dare, error) {
	if id == "" {
		return nil, &ServiceError{Op: "get_dare", Err: ErrNotFound}
	}
	d, err := s.dares.Get(ctx, id)
	if errors.Is(err, postgres.ErrNotFound) {
		return nil, &ServiceError{Op: "get_dare", Err: ErrNotFound}
	}
	if err != nil {
		return nil, &ServiceError{Op: "get_dare", Err: err}
	}
	return d, nil
}

// ServiceError represents a data service error
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return "data service " + e.Op + ": " + e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
