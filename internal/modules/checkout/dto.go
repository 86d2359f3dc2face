package checkout

import "funcity/internal/domain"

const (
	TxnPrefix      = "FC"
	ProductInfo    = "FunCity Order"
	FallbackName   = "Guest"
	FallbackEmail  = "guest@funcity.in"
	FallbackPhone  = "9999999999"
	maxTxnAttempts = 3
)

type Mode string

const (
	ModeIframe Mode = "iframe"
	ModeHosted Mode = "hosted"
)

type ItemRequest struct {
	ID       string                 `json:"id" validate:"required"`
	Name     string                 `json:"name" validate:"required"`
	Price    float64                `json:"price" validate:"gte=0"`
	Quantity int                    `json:"quantity" validate:"gt=0"`
	Details  *domain.BookingDetails `json:"details,omitempty"`
}

type CheckoutRequest struct {
	Location string        `json:"location"`
	Items    []ItemRequest `json:"items" validate:"required,min=1,dive"`
}

type CheckoutResponse struct {
	PaymentURL  string `json:"paymentUrl"`
	AccessKey   string `json:"accessKey"`
	TxnID       string `json:"txnid"`
	Mode        Mode   `json:"mode"`
	MerchantKey string `json:"merchantKey"`
	Env         string `json:"env"`
}
