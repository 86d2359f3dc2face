package reconcile

import (
	"context"

	"funcity/internal/domain"
	"funcity/internal/modules/payment"
	"funcity/internal/repository"
)

type OrderSettler interface {
	Settle(ctx context.Context, loc domain.Location, txnID string, status domain.OrderStatus, paymentID string, entry *domain.PaymentLedgerEntry) (*repository.SettleResult, error)
}

// CallbackVerifier is satisfied by *payment.Client.
type CallbackVerifier interface {
	VerifyCallback(p payment.CallbackPayload) bool
}
