package admin

import (
	"context"
	"strings"

	"funcity/internal/domain"
)

type LedgerRepository interface {
	ListByTxnID(ctx context.Context, txnID string) ([]domain.PaymentLedgerEntry, error)
	ListRecent(ctx context.Context, limit int) ([]domain.PaymentLedgerEntry, error)
}

type Service struct {
	ledger LedgerRepository
}

func NewService(ledger LedgerRepository) *Service {
	return &Service{ledger: ledger}
}

// -------------------- Payments --------------------

// ListPayments returns every callback recorded for txnID, or the most recent
// entries when txnID is empty.
func (s *Service) ListPayments(ctx context.Context, txnID string, limit int) ([]domain.PaymentLedgerEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	txnID = strings.TrimSpace(txnID)
	if txnID == "" {
		return s.ledger.ListRecent(ctx, limit)
	}
	return s.ledger.ListByTxnID(ctx, txnID)
}
