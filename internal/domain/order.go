package domain

import "time"

type OrderStatus string

const (
	OrderPlaced  OrderStatus = "placed"
	OrderSuccess OrderStatus = "success"
	OrderFailed  OrderStatus = "failed"
)

func (s OrderStatus) Terminal() bool {
	return s != OrderPlaced
}

// CanTransition reports whether an order in status s may be written with next.
// Rewriting the same terminal status is allowed so redelivered callbacks stay idempotent.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if s == next {
		return s.Terminal()
	}
	return s == OrderPlaced && next.Terminal()
}

type BookingDetails struct {
	Date       string `json:"date,omitempty"`
	StartTime  string `json:"startTime,omitempty"`
	EndTime    string `json:"endTime,omitempty"`
	GuestCount int    `json:"guestCount,omitempty"`
}

type OrderItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    float64         `json:"price"`
	Quantity int             `json:"quantity"`
	Details  *BookingDetails `json:"details,omitempty"`
}

type Order struct {
	ID          int64       `json:"id"`
	TxnID       string      `json:"txnid"`
	UserID      int64       `json:"user_id"`
	Location    Location    `json:"location"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"total_amount"`
	Status      OrderStatus `json:"status"`
	PaymentID   string      `json:"payment_id,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// BookingDates returns the distinct booking-detail dates of the order's items.
func (o *Order) BookingDates() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, it := range o.Items {
		if it.Details == nil || it.Details.Date == "" {
			continue
		}
		if _, ok := seen[it.Details.Date]; ok {
			continue
		}
		seen[it.Details.Date] = struct{}{}
		out = append(out, it.Details.Date)
	}
	return out
}
