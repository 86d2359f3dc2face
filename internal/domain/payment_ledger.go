package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentLedgerEntry is an append-only record of one gateway callback.
type PaymentLedgerEntry struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	PaymentID     string    `json:"payment_id" gorm:"type:varchar(64);index"`
	TxnID         string    `json:"txnid" gorm:"type:varchar(32);index;not null"`
	Location      Location  `json:"location" gorm:"type:varchar(8);not null"`
	Amount        string    `json:"amount" gorm:"type:varchar(32)"`
	Status        string    `json:"status" gorm:"type:varchar(32);not null"`
	PaymentMethod string    `json:"payment_method" gorm:"type:varchar(32)"`
	UserID        string    `json:"user_id" gorm:"type:varchar(64)"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (PaymentLedgerEntry) TableName() string { return "payments" }

func (e *PaymentLedgerEntry) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
