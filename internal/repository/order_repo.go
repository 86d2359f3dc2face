package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"funcity/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// orderModel is stored once per location (orders_e3, orders_e4).
type orderModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	TxnID       string    `gorm:"column:txn_id;type:varchar(32);uniqueIndex;not null"`
	UserID      int64     `gorm:"column:user_id;index;not null"`
	Items       string    `gorm:"column:items;type:text;not null"`
	TotalAmount float64   `gorm:"column:total_amount;not null"`
	Status      string    `gorm:"column:status;type:varchar(20);not null;default:'placed'"`
	PaymentID   *string   `gorm:"column:payment_id;type:varchar(64)"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func toOrderModel(o *domain.Order) (*orderModel, error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}
	m := &orderModel{
		ID:          o.ID,
		TxnID:       o.TxnID,
		UserID:      o.UserID,
		Items:       string(items),
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	if o.PaymentID != "" {
		m.PaymentID = &o.PaymentID
	}
	return m, nil
}

func toDomainOrder(m orderModel, loc domain.Location) *domain.Order {
	var items []domain.OrderItem
	// a malformed items column yields an order without items rather than failing the whole read
	_ = json.Unmarshal([]byte(m.Items), &items)

	var paymentID string
	if m.PaymentID != nil {
		paymentID = *m.PaymentID
	}
	return &domain.Order{
		ID:          m.ID,
		TxnID:       m.TxnID,
		UserID:      m.UserID,
		Location:    loc,
		Items:       items,
		TotalAmount: m.TotalAmount,
		Status:      domain.OrderStatus(m.Status),
		PaymentID:   paymentID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *OrderRepository) table(ctx context.Context, loc domain.Location) *gorm.DB {
	return r.db.WithContext(ctx).Table(loc.OrdersTable())
}

func (r *OrderRepository) Create(ctx context.Context, loc domain.Location, o *domain.Order) error {
	m, err := toOrderModel(o)
	if err != nil {
		return err
	}
	if err := r.table(ctx, loc).Create(m).Error; err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateTxnID, o.TxnID)
		}
		return err
	}
	o.ID = m.ID
	o.Location = loc
	o.CreatedAt = m.CreatedAt
	o.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *OrderRepository) ListAll(ctx context.Context, loc domain.Location) ([]domain.Order, error) {
	var rows []orderModel
	if err := r.table(ctx, loc).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainOrder(m, loc))
	}
	return out, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, loc domain.Location, userID int64, limit, offset int) ([]domain.Order, error) {
	var rows []orderModel
	q := r.table(ctx, loc).Where("user_id = ?", userID).Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainOrder(m, loc))
	}
	return out, nil
}

func (r *OrderRepository) GetByTxnID(ctx context.Context, loc domain.Location, txnID string) (*domain.Order, error) {
	var m orderModel
	if err := r.table(ctx, loc).Where("txn_id = ?", txnID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return toDomainOrder(m, loc), nil
}

// SettleResult reports the outcome of Settle. LedgerErr is set when the status
// update committed but the ledger row could not be written. Refused is set,
// wrapping domain.ErrOrderNotFound or domain.ErrInvalidTransition, when the
// order was left untouched; the ledger row is still appended in that case.
type SettleResult struct {
	Order     *domain.Order
	Changed   bool
	Refused   error
	LedgerErr error
}

// Settle moves the order to status and appends entry in one transaction.
// The ledger insert runs in a savepoint so its failure never undoes the status update.
// Every call appends entry, whether or not the order could be moved.
func (r *OrderRepository) Settle(ctx context.Context, loc domain.Location, txnID string, status domain.OrderStatus, paymentID string, entry *domain.PaymentLedgerEntry) (*SettleResult, error) {
	res := &SettleResult{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m orderModel
		if err := tx.Table(loc.OrdersTable()).Clauses(clause.Locking{Strength: "UPDATE"}).Where("txn_id = ?", txnID).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				res.Refused = domain.ErrOrderNotFound
				return nil
			}
			return err
		}

		current := domain.OrderStatus(m.Status)
		if !current.CanTransition(status) {
			res.Refused = fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current, status)
			res.Order = toDomainOrder(m, loc)
			return nil
		}

		updates := map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		}
		if paymentID != "" {
			updates["payment_id"] = paymentID
		}
		upd := tx.Table(loc.OrdersTable()).Where("txn_id = ?", txnID).Updates(updates)
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			return errors.New("order row not updated")
		}
		res.Changed = current != status

		m.Status = string(status)
		if paymentID != "" {
			m.PaymentID = &paymentID
		}
		res.Order = toDomainOrder(m, loc)

		if entry != nil {
			res.LedgerErr = tx.Transaction(func(sp *gorm.DB) error {
				return sp.Create(entry).Error
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if res.Refused != nil && entry != nil {
		res.LedgerErr = r.db.WithContext(ctx).Create(entry).Error
	}
	return res, nil
}
