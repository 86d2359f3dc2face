package catalog

import (
	"context"
	"fmt"

	"funcity/internal/domain"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func parseLocation(raw string) (domain.Location, error) {
	loc, ok := domain.ParseLocation(raw)
	if !ok {
		return "", fmt.Errorf("%w: unknown location %q", domain.ErrInvalidInput, raw)
	}
	return loc, nil
}

/* ---------- RIDES ---------- */

// ListRides returns the active rides at location, ordered by name.
func (s *Service) ListRides(ctx context.Context, location string) ([]domain.Ride, error) {
	loc, err := parseLocation(location)
	if err != nil {
		return nil, err
	}
	return s.repo.ListRides(ctx, loc)
}

func (s *Service) CreateRide(ctx context.Context, req CreateRideRequest) (*domain.Ride, error) {
	loc, err := parseLocation(req.Location)
	if err != nil {
		return nil, err
	}
	ride := &domain.Ride{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		MinHeightCM: req.MinHeightCM,
		ImageURL:    req.ImageURL,
		Active:      true,
	}
	if err := s.repo.CreateRide(ctx, loc, ride); err != nil {
		return nil, err
	}
	return ride, nil
}

/* ---------- DINE ---------- */

func (s *Service) ListDineItems(ctx context.Context, location string) ([]domain.DineItem, error) {
	loc, err := parseLocation(location)
	if err != nil {
		return nil, err
	}
	return s.repo.ListDineItems(ctx, loc)
}

func (s *Service) CreateDineItem(ctx context.Context, req CreateDineItemRequest) (*domain.DineItem, error) {
	loc, err := parseLocation(req.Location)
	if err != nil {
		return nil, err
	}
	item := &domain.DineItem{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Veg:         req.Veg,
		ImageURL:    req.ImageURL,
		Active:      true,
	}
	if err := s.repo.CreateDineItem(ctx, loc, item); err != nil {
		return nil, err
	}
	return item, nil
}
