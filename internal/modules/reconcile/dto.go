package reconcile

import (
	"time"

	"funcity/internal/domain"
)

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// PaymentEvent is published after an order reaches a terminal status.
type PaymentEvent struct {
	TxnID     string             `json:"txnid"`
	Location  domain.Location    `json:"location"`
	Status    domain.OrderStatus `json:"status"`
	PaymentID string             `json:"paymentId,omitempty"`
	Amount    string             `json:"amount"`
	UserID    string             `json:"userId,omitempty"`
	At        time.Time          `json:"at"`
}

// Result tells the handler where to send the browser.
type Result struct {
	TxnID       string
	Location    domain.Location
	RedirectURL string
}
