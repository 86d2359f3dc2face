package payment

import (
	"errors"
	"fmt"

	"funcity/internal/domain"
)

var ErrNotConfigured = errors.New("payment gateway credentials are not configured")

// RejectedError carries the gateway's stated reason for declining an initiation.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s: %s", domain.ErrGatewayRejected, e.Reason)
}

func (e *RejectedError) Unwrap() error { return domain.ErrGatewayRejected }
