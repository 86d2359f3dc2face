package reconcile

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"funcity/internal/domain"
	"funcity/internal/modules/payment"
	"funcity/internal/pkg/mq"

	"go.uber.org/zap"
)

const defaultFailedStatus = "failed"

type Service struct {
	orders      OrderSettler
	verifier    CallbackVerifier
	events      mq.EventPublisher
	frontendURL string
	log         *zap.Logger
	now         func() time.Time
}

func NewService(orders OrderSettler, verifier CallbackVerifier, events mq.EventPublisher, frontendURL string, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if events == nil {
		events = mq.Nop{}
	}
	return &Service{
		orders:      orders,
		verifier:    verifier,
		events:      events,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		log:         log,
		now:         time.Now,
	}
}

// HandleSuccess verifies the callback hash and marks the order paid.
func (s *Service) HandleSuccess(ctx context.Context, p payment.CallbackPayload) (*Result, error) {
	if !s.verifier.VerifyCallback(p) {
		s.log.Warn("callback_auth_failed",
			zap.String("txnid", p.TxnID),
			zap.String("status", p.Status),
			zap.String("udf1", p.UDF1))
		return nil, domain.ErrAuthenticationFailure
	}

	loc := s.location(p)
	if err := s.settle(ctx, loc, p, domain.OrderSuccess, p.Status, mq.KeyPaymentSuccess); err != nil {
		return nil, err
	}
	return s.result(OutcomeSuccess, p.TxnID, loc), nil
}

// HandleFailure records a failed payment. The failure callback carries no
// trustworthy hash, so it can only ever move an order to failed.
func (s *Service) HandleFailure(ctx context.Context, p payment.CallbackPayload) (*Result, error) {
	loc := s.location(p)

	reported := strings.TrimSpace(p.Status)
	if reported == "" {
		reported = defaultFailedStatus
	}
	if strings.EqualFold(reported, string(domain.OrderSuccess)) {
		s.log.Warn("failure_callback_reported_success", zap.String("txnid", p.TxnID))
	}

	if err := s.settle(ctx, loc, p, domain.OrderFailed, reported, mq.KeyPaymentFailed); err != nil {
		return nil, err
	}
	return s.result(OutcomeFailure, p.TxnID, loc), nil
}

func (s *Service) settle(ctx context.Context, loc domain.Location, p payment.CallbackPayload, status domain.OrderStatus, reported, eventKey string) error {
	if strings.TrimSpace(p.TxnID) == "" {
		return fmt.Errorf("%w: missing txnid", domain.ErrInvalidInput)
	}

	entry := &domain.PaymentLedgerEntry{
		PaymentID:     p.EasepayID,
		TxnID:         p.TxnID,
		Location:      loc,
		Amount:        p.Amount,
		Status:        reported,
		PaymentMethod: p.Mode,
		UserID:        p.UDF2,
	}

	res, err := s.orders.Settle(ctx, loc, p.TxnID, status, p.EasepayID, entry)
	if err != nil {
		s.log.Error("order_status_update_failed",
			zap.String("txnid", p.TxnID),
			zap.String("location", string(loc)),
			zap.String("status", string(status)),
			zap.Error(err))
		return fmt.Errorf("%w: settle order: %v", domain.ErrStorage, err)
	}

	if res.LedgerErr != nil {
		s.log.Error("ledger_insert_failed",
			zap.String("txnid", p.TxnID),
			zap.String("location", string(loc)),
			zap.String("payment_id", p.EasepayID),
			zap.Error(res.LedgerErr))
	}

	// the order is left as it is; the callback is already in the ledger
	if res.Refused != nil {
		msg := "callback_invalid_transition"
		if errors.Is(res.Refused, domain.ErrOrderNotFound) {
			msg = "callback_order_not_found"
		}
		s.log.Warn(msg,
			zap.String("txnid", p.TxnID),
			zap.String("location", string(loc)),
			zap.String("reported_status", reported),
			zap.Error(res.Refused))
		return nil
	}

	s.log.Info("order_settled",
		zap.String("txnid", p.TxnID),
		zap.String("location", string(loc)),
		zap.String("status", string(status)),
		zap.Bool("changed", res.Changed))

	if res.Changed {
		ev := PaymentEvent{
			TxnID:     p.TxnID,
			Location:  loc,
			Status:    status,
			PaymentID: p.EasepayID,
			Amount:    p.Amount,
			UserID:    p.UDF2,
			At:        s.now().UTC(),
		}
		if err := s.events.PublishJSON(ctx, eventKey, ev); err != nil {
			s.log.Warn("payment_event_publish_failed", zap.String("txnid", p.TxnID), zap.String("key", eventKey), zap.Error(err))
		}
	}
	return nil
}

// location reads udf1, falling back to the primary location for anything unknown.
func (s *Service) location(p payment.CallbackPayload) domain.Location {
	loc, ok := domain.ParseLocation(p.UDF1)
	if !ok {
		s.log.Warn("udf1_fallback",
			zap.String("txnid", p.TxnID),
			zap.String("udf1", p.UDF1),
			zap.String("location", string(loc)))
	}
	return loc
}

func (s *Service) result(outcome Outcome, txnID string, loc domain.Location) *Result {
	q := url.Values{}
	q.Set("orderId", txnID)
	q.Set("location", string(loc))
	return &Result{
		TxnID:       txnID,
		Location:    loc,
		RedirectURL: fmt.Sprintf("%s/payment/%s?%s", s.frontendURL, outcome, q.Encode()),
	}
}
