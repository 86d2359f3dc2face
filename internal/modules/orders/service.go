package orders

import (
	"context"
	"fmt"

	"funcity/internal/domain"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type Repository interface {
	ListByUser(ctx context.Context, loc domain.Location, userID int64, limit, offset int) ([]domain.Order, error)
	GetByTxnID(ctx context.Context, loc domain.Location, txnID string) (*domain.Order, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListMine returns the caller's orders at location, newest first.
func (s *Service) ListMine(ctx context.Context, userID int64, location string, page, limit int) ([]domain.Order, error) {
	loc, ok := domain.ParseLocation(location)
	if !ok {
		return nil, fmt.Errorf("%w: unknown location %q", domain.ErrInvalidInput, location)
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}
	return s.repo.ListByUser(ctx, loc, userID, limit, (page-1)*limit)
}

// GetMine hides orders owned by someone else behind ErrOrderNotFound.
func (s *Service) GetMine(ctx context.Context, userID int64, location, txnID string) (*domain.Order, error) {
	loc, ok := domain.ParseLocation(location)
	if !ok {
		return nil, fmt.Errorf("%w: unknown location %q", domain.ErrInvalidInput, location)
	}
	o, err := s.repo.GetByTxnID(ctx, loc, txnID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}
