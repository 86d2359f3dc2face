package repository

import (
	"context"

	"funcity/internal/domain"

	"gorm.io/gorm"
)

type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) Append(ctx context.Context, e *domain.PaymentLedgerEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *LedgerRepository) ListByTxnID(ctx context.Context, txnID string) ([]domain.PaymentLedgerEntry, error) {
	var out []domain.PaymentLedgerEntry
	if err := r.db.WithContext(ctx).Where("txn_id = ?", txnID).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListRecent returns the newest ledger entries first.
func (r *LedgerRepository) ListRecent(ctx context.Context, limit int) ([]domain.PaymentLedgerEntry, error) {
	var out []domain.PaymentLedgerEntry
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
