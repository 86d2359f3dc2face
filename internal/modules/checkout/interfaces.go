package checkout

import (
	"context"

	"funcity/internal/domain"
	"funcity/internal/modules/payment"
)

type ProfileReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Profile, error)
}

type OrderCreator interface {
	Create(ctx context.Context, loc domain.Location, o *domain.Order) error
}

// Gateway is satisfied by *payment.Client.
type Gateway interface {
	Initiate(ctx context.Context, req payment.InitiateRequest) (*payment.InitiateResult, error)
	MerchantKey() string
	Env() string
	IframeMode() bool
}

// SlotInvalidator drops cached occupancy for the dates an order books.
type SlotInvalidator interface {
	Invalidate(ctx context.Context, loc domain.Location, dates ...string) error
}
