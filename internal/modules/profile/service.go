package profile

import (
	"context"
	"strings"

	"funcity/internal/domain"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.Profile, error)
	Update(ctx context.Context, p *domain.Profile) error
}

type UpdateRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=100"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone" validate:"omitempty,min=10,max=15,numeric"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, userID int64) (*domain.Profile, error) {
	return s.repo.GetByID(ctx, userID)
}

// Update applies only the fields present in req.
func (s *Service) Update(ctx context.Context, userID int64, req UpdateRequest) (*domain.Profile, error) {
	p, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		p.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		p.Phone = strings.TrimSpace(*req.Phone)
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, userID)
}
