package catalog

import (
	"context"

	"funcity/internal/domain"
)

type Repository interface {
	ListRides(ctx context.Context, loc domain.Location) ([]domain.Ride, error)
	ListDineItems(ctx context.Context, loc domain.Location) ([]domain.DineItem, error)
	CreateRide(ctx context.Context, loc domain.Location, ride *domain.Ride) error
	CreateDineItem(ctx context.Context, loc domain.Location, item *domain.DineItem) error
}
