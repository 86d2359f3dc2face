package reconcile

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"funcity/internal/domain"
	"funcity/internal/modules/payment"
	"funcity/internal/pkg/mq"
	"funcity/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type MockOrderSettler struct {
	mock.Mock
}

func (m *MockOrderSettler) Settle(ctx context.Context, loc domain.Location, txnID string, status domain.OrderStatus, paymentID string, entry *domain.PaymentLedgerEntry) (*repository.SettleResult, error) {
	args := m.Called(ctx, loc, txnID, status, paymentID, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.SettleResult), args.Error(1)
}

type stubVerifier bool

func (v stubVerifier) VerifyCallback(payment.CallbackPayload) bool { return bool(v) }

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishJSON(ctx context.Context, key string, v any) error {
	args := m.Called(ctx, key, v)
	return args.Error(0)
}

var fixedTime = time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)

func newTestService(orders OrderSettler, verified bool, events mq.EventPublisher, log *zap.Logger) *Service {
	svc := NewService(orders, stubVerifier(verified), events, "https://funcity.in/", log)
	svc.now = func() time.Time { return fixedTime }
	return svc
}

func callback() payment.CallbackPayload {
	return payment.CallbackPayload{
		TxnID:     "FC-123456",
		Amount:    "300.00",
		Status:    "success",
		EasepayID: "E123",
		Mode:      "UPI",
		UDF1:      "e4",
		UDF2:      "7",
	}
}

func TestHandleSuccess_SettlesAndRedirects(t *testing.T) {
	orders := new(MockOrderSettler)
	events := new(MockPublisher)

	orders.On("Settle", mock.Anything, domain.LocationE4, "FC-123456", domain.OrderSuccess, "E123",
		mock.MatchedBy(func(e *domain.PaymentLedgerEntry) bool {
			return e.TxnID == "FC-123456" && e.Amount == "300.00" && e.Status == "success" &&
				e.PaymentMethod == "UPI" && e.UserID == "7" && e.Location == domain.LocationE4
		})).Return(&repository.SettleResult{Changed: true}, nil)
	events.On("PublishJSON", mock.Anything, mq.KeyPaymentSuccess, PaymentEvent{
		TxnID: "FC-123456", Location: domain.LocationE4, Status: domain.OrderSuccess,
		PaymentID: "E123", Amount: "300.00", UserID: "7", At: fixedTime,
	}).Return(nil)

	svc := newTestService(orders, true, events, nil)
	res, err := svc.HandleSuccess(context.Background(), callback())

	require.NoError(t, err)
	assert.Equal(t, "https://funcity.in/payment/success?location=e4&orderId=FC-123456", res.RedirectURL)
	orders.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestHandleSuccess_ForgedHash(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	orders := new(MockOrderSettler)

	svc := newTestService(orders, false, nil, zap.New(core))
	_, err := svc.HandleSuccess(context.Background(), callback())

	assert.ErrorIs(t, err, domain.ErrAuthenticationFailure)
	orders.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 1, logs.FilterMessage("callback_auth_failed").Len())
}

func TestHandleSuccess_RedeliveryDoesNotRepublish(t *testing.T) {
	orders := new(MockOrderSettler)
	events := new(MockPublisher)
	orders.On("Settle", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&repository.SettleResult{Changed: false}, nil)

	svc := newTestService(orders, true, events, nil)
	_, err := svc.HandleSuccess(context.Background(), callback())

	require.NoError(t, err)
	events.AssertNotCalled(t, "PublishJSON", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleSuccess_LedgerFailureStillRedirects(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	orders := new(MockOrderSettler)
	orders.On("Settle", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&repository.SettleResult{Changed: true, LedgerErr: errors.New("payments table locked")}, nil)

	svc := newTestService(orders, true, nil, zap.New(core))
	res, err := svc.HandleSuccess(context.Background(), callback())

	require.NoError(t, err)
	assert.Contains(t, res.RedirectURL, "/payment/success")
	assert.Equal(t, 1, logs.FilterMessage("ledger_insert_failed").Len())
}

func TestHandleSuccess_StoreFailure(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	orders := new(MockOrderSettler)
	orders.On("Settle", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection reset"))

	svc := newTestService(orders, true, nil, zap.New(core))
	_, err := svc.HandleSuccess(context.Background(), callback())

	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Equal(t, 1, logs.FilterMessage("order_status_update_failed").Len())
}

func TestHandleSuccess_RefusedSettleStillRedirects(t *testing.T) {
	tests := []struct {
		name    string
		refused error
		logMsg  string
	}{
		{"unknown order", domain.ErrOrderNotFound, "callback_order_not_found"},
		{"already failed", fmt.Errorf("%w: failed -> success", domain.ErrInvalidTransition), "callback_invalid_transition"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.InfoLevel)
			orders := new(MockOrderSettler)
			events := new(MockPublisher)
			orders.On("Settle", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(&repository.SettleResult{Refused: tt.refused}, nil)

			svc := newTestService(orders, true, events, zap.New(core))
			res, err := svc.HandleSuccess(context.Background(), callback())

			require.NoError(t, err)
			assert.Equal(t, "https://funcity.in/payment/success?location=e4&orderId=FC-123456", res.RedirectURL)
			assert.Equal(t, 1, logs.FilterMessage(tt.logMsg).Len())
			assert.Zero(t, logs.FilterMessage("order_settled").Len())
			events.AssertNotCalled(t, "PublishJSON", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandleSuccess_PublishFailureIgnored(t *testing.T) {
	orders := new(MockOrderSettler)
	events := new(MockPublisher)
	orders.On("Settle", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&repository.SettleResult{Changed: true}, nil)
	events.On("PublishJSON", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("channel closed"))

	svc := newTestService(orders, true, events, nil)
	_, err := svc.HandleSuccess(context.Background(), callback())
	assert.NoError(t, err)
}

func TestUDF1Fallback(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	orders := new(MockOrderSettler)
	orders.On("Settle", mock.Anything, domain.LocationE3, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&repository.SettleResult{}, nil)

	p := callback()
	p.UDF1 = "'; drop table orders_e3; --"

	svc := newTestService(orders, true, nil, zap.New(core))
	res, err := svc.HandleSuccess(context.Background(), p)

	require.NoError(t, err)
	assert.Equal(t, domain.LocationE3, res.Location)
	entries := logs.FilterMessage("udf1_fallback").All()
	require.Len(t, entries, 1)
	assert.Equal(t, p.UDF1, entries[0].ContextMap()["udf1"])
}

func TestUDF1EmptyUsesPrimaryWithoutWarning(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	orders := new(MockOrderSettler)
	orders.On("Settle", mock.Anything, domain.LocationE3, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&repository.SettleResult{}, nil)

	p := callback()
	p.UDF1 = ""

	svc := newTestService(orders, true, nil, zap.New(core))
	_, err := svc.HandleSuccess(context.Background(), p)
	require.NoError(t, err)
	assert.Zero(t, logs.FilterMessage("udf1_fallback").Len())
}

func TestHandleFailure(t *testing.T) {
	orders := new(MockOrderSettler)
	events := new(MockPublisher)

	orders.On("Settle", mock.Anything, domain.LocationE4, "FC-123456", domain.OrderFailed, "E123",
		mock.MatchedBy(func(e *domain.PaymentLedgerEntry) bool { return e.Status == "userCancelled" })).
		Return(&repository.SettleResult{Changed: true}, nil)
	events.On("PublishJSON", mock.Anything, mq.KeyPaymentFailed, mock.Anything).Return(nil)

	p := callback()
	p.Status = "userCancelled"
	p.Hash = "not-checked"

	// verifier would reject; the failure path never consults it
	svc := newTestService(orders, false, events, nil)
	res, err := svc.HandleFailure(context.Background(), p)

	require.NoError(t, err)
	assert.Equal(t, "https://funcity.in/payment/failure?location=e4&orderId=FC-123456", res.RedirectURL)
	orders.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestHandleFailure_ReportedSuccessStaysFailed(t *testing.T) {
	orders := new(MockOrderSettler)
	orders.On("Settle", mock.Anything, mock.Anything, mock.Anything, domain.OrderFailed, mock.Anything, mock.Anything).
		Return(&repository.SettleResult{Changed: true}, nil)

	svc := newTestService(orders, true, nil, nil)
	_, err := svc.HandleFailure(context.Background(), callback())

	require.NoError(t, err)
	orders.AssertExpectations(t)
}

func TestHandleFailure_EmptyStatusDefaultsToFailed(t *testing.T) {
	orders := new(MockOrderSettler)
	orders.On("Settle", mock.Anything, mock.Anything, mock.Anything, domain.OrderFailed, mock.Anything,
		mock.MatchedBy(func(e *domain.PaymentLedgerEntry) bool { return e.Status == "failed" })).
		Return(&repository.SettleResult{}, nil)

	p := callback()
	p.Status = ""

	svc := newTestService(orders, true, nil, nil)
	_, err := svc.HandleFailure(context.Background(), p)

	require.NoError(t, err)
	orders.AssertExpectations(t)
}

func TestMissingTxnID(t *testing.T) {
	orders := new(MockOrderSettler)
	p := callback()
	p.TxnID = " "

	svc := newTestService(orders, true, nil, nil)
	_, err := svc.HandleFailure(context.Background(), p)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
