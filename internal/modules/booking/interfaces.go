package booking

import (
	"context"

	"funcity/internal/domain"
)

// OrderReader lists every order stored for a location.
type OrderReader interface {
	ListAll(ctx context.Context, loc domain.Location) ([]domain.Order, error)
}

// SlotCache caches booked hours per (location, date). GetBookedHours reports
// the cache generation it looked at; SetBookedHours only fills that generation.
type SlotCache interface {
	GetBookedHours(ctx context.Context, loc domain.Location, date string) (hours []int, gen int64, hit bool, err error)
	SetBookedHours(ctx context.Context, loc domain.Location, date string, gen int64, hours []int) error
}
