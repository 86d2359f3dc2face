package checkout

import (
	"context"
	"errors"
	"strings"
	"testing"

	"funcity/internal/domain"
	"funcity/internal/modules/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type MockProfileReader struct {
	mock.Mock
}

func (m *MockProfileReader) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

type MockOrderCreator struct {
	mock.Mock
}

func (m *MockOrderCreator) Create(ctx context.Context, loc domain.Location, o *domain.Order) error {
	args := m.Called(ctx, loc, o)
	if args.Error(0) == nil {
		o.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Initiate(ctx context.Context, req payment.InitiateRequest) (*payment.InitiateResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.InitiateResult), args.Error(1)
}

func (m *MockGateway) MerchantKey() string { return "KEY" }
func (m *MockGateway) Env() string         { return "test" }
func (m *MockGateway) IframeMode() bool    { return m.Called().Bool(0) }

type MockSlotInvalidator struct {
	mock.Mock
}

func (m *MockSlotInvalidator) Invalidate(ctx context.Context, loc domain.Location, dates ...string) error {
	args := m.Called(ctx, loc, dates)
	return args.Error(0)
}

func newTestService(profiles *MockProfileReader, orders *MockOrderCreator, gw *MockGateway, slots SlotInvalidator) *Service {
	svc := NewService(profiles, orders, gw, slots, zap.NewNop())
	svc.newTxnID = func() string { return "FC-123456" }
	return svc
}

func TestCheckout_ScenarioA(t *testing.T) {
	profiles := new(MockProfileReader)
	orders := new(MockOrderCreator)
	gw := new(MockGateway)

	profiles.On("GetByID", mock.Anything, int64(7)).Return(&domain.Profile{ID: 7, Name: "Asha", Email: "asha@example.com"}, nil)
	orders.On("Create", mock.Anything, domain.LocationE3, mock.MatchedBy(func(o *domain.Order) bool {
		return o.TotalAmount == 300 && o.Status == domain.OrderPlaced && o.TxnID == "FC-123456" && o.UserID == 7
	})).Return(nil)
	gw.On("Initiate", mock.Anything, mock.MatchedBy(func(r payment.InitiateRequest) bool {
		return r.HashFields().Amount == "300.00" &&
			r.TxnID == "FC-123456" &&
			r.ProductInfo == ProductInfo &&
			r.FirstName == "Asha" &&
			r.Email == "asha@example.com" &&
			r.Phone == FallbackPhone &&
			r.UDF[0] == "e3" && r.UDF[1] == "7"
	})).Return(&payment.InitiateResult{AccessKey: "ak_1", PaymentURL: "https://testpay.easebuzz.in/pay/ak_1"}, nil)
	gw.On("IframeMode").Return(false)

	svc := newTestService(profiles, orders, gw, nil)
	resp, err := svc.Checkout(context.Background(), 7, CheckoutRequest{
		Location: "e3",
		Items:    []ItemRequest{{ID: "r1", Name: "Bumper Cars", Price: 150, Quantity: 2}},
	})

	require.NoError(t, err)
	assert.Equal(t, "FC-123456", resp.TxnID)
	assert.Equal(t, "ak_1", resp.AccessKey)
	assert.Equal(t, "https://testpay.easebuzz.in/pay/ak_1", resp.PaymentURL)
	assert.Equal(t, ModeHosted, resp.Mode)
	assert.Equal(t, "KEY", resp.MerchantKey)
	assert.Equal(t, "test", resp.Env)

	profiles.AssertExpectations(t)
	orders.AssertExpectations(t)
	gw.AssertExpectations(t)
}

func TestCheckout_IframeModeAndFallbacks(t *testing.T) {
	profiles := new(MockProfileReader)
	orders := new(MockOrderCreator)
	gw := new(MockGateway)

	profiles.On("GetByID", mock.Anything, int64(8)).Return(&domain.Profile{ID: 8}, nil)
	orders.On("Create", mock.Anything, domain.LocationE4, mock.Anything).Return(nil)
	gw.On("Initiate", mock.Anything, mock.MatchedBy(func(r payment.InitiateRequest) bool {
		return r.FirstName == FallbackName && r.Email == FallbackEmail && r.Phone == FallbackPhone && r.UDF[0] == "e4"
	})).Return(&payment.InitiateResult{AccessKey: "ak_2"}, nil)
	gw.On("IframeMode").Return(true)

	svc := newTestService(profiles, orders, gw, nil)
	resp, err := svc.Checkout(context.Background(), 8, CheckoutRequest{
		Location: " E4 ",
		Items:    []ItemRequest{{ID: "d1", Name: "Fries", Price: 0, Quantity: 1}},
	})

	require.NoError(t, err)
	assert.Equal(t, ModeIframe, resp.Mode)
	gw.AssertExpectations(t)
}

func TestCheckout_UserNotFound(t *testing.T) {
	profiles := new(MockProfileReader)
	orders := new(MockOrderCreator)
	gw := new(MockGateway)
	profiles.On("GetByID", mock.Anything, int64(1)).Return(nil, domain.ErrUserNotFound)

	svc := newTestService(profiles, orders, gw, nil)
	_, err := svc.Checkout(context.Background(), 1, CheckoutRequest{
		Items: []ItemRequest{{ID: "r1", Name: "Ride", Price: 10, Quantity: 1}},
	})

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	gw.AssertNotCalled(t, "Initiate", mock.Anything, mock.Anything)
}

func TestCheckout_InsertFailureSkipsGateway(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	profiles := new(MockProfileReader)
	orders := new(MockOrderCreator)
	gw := new(MockGateway)

	profiles.On("GetByID", mock.Anything, int64(7)).Return(&domain.Profile{ID: 7, Name: "Asha"}, nil)
	orders.On("Create", mock.Anything, domain.LocationE3, mock.Anything).Return(errors.New("disk full"))

	svc := NewService(profiles, orders, gw, nil, zap.New(core))
	_, err := svc.Checkout(context.Background(), 7, CheckoutRequest{
		Items: []ItemRequest{{ID: "r1", Name: "Ride", Price: 10, Quantity: 1}},
	})

	assert.ErrorIs(t, err, domain.ErrStorage)
	gw.AssertNotCalled(t, "Initiate", mock.Anything, mock.Anything)
	assert.Equal(t, 1, logs.FilterMessage("order_insert_failed").Len())
}

func TestCheckout_RetriesTxnIDCollision(t *testing.T) {
	profiles := new(MockProfileReader)
	orders := new(MockOrderCreator)
	gw := new(MockGateway)

	profiles.On("GetByID", mock.Anything, int64(7)).Return(&domain.Profile{ID: 7}, nil)
	orders.On("Create", mock.Anything, domain.LocationE3, mock.MatchedBy(func(o *domain.Order) bool { return o.TxnID == "FC-000001" })).
		Return(domain.ErrDuplicateTxnID).Once()
	orders.On("Create", mock.Anything, domain.LocationE3, mock.MatchedBy(func(o *domain.Order) bool { return o.TxnID == "FC-000002" })).
		Return(nil).Once()
	gw.On("Initiate", mock.Anything, mock.MatchedBy(func(r payment.InitiateRequest) bool { return r.TxnID == "FC-000002" })).
		Return(&payment.InitiateResult{AccessKey: "ak"}, nil)
	gw.On("IframeMode").Return(false)

	svc := newTestService(profiles, orders, gw, nil)
	ids := []string{"FC-000001", "FC-000002"}
	svc.newTxnID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	resp, err := svc.Checkout(context.Background(), 7, CheckoutRequest{
		Items: []ItemRequest{{ID: "r1", Name: "Ride", Price: 10, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "FC-000002", resp.TxnID)
	orders.AssertExpectations(t)
}

func TestCheckout_GatewayRejectedKeepsOrder(t *testing.T) {
	profiles := new(MockProfileReader)
	orders := new(MockOrderCreator)
	gw := new(MockGateway)

	profiles.On("GetByID", mock.Anything, int64(7)).Return(&domain.Profile{ID: 7}, nil)
	orders.On("Create", mock.Anything, domain.LocationE3, mock.Anything).Return(nil)
	gw.On("Initiate", mock.Anything, mock.Anything).Return(nil, &payment.RejectedError{Reason: "Invalid amount"})

	svc := newTestService(profiles, orders, gw, nil)
	_, err := svc.Checkout(context.Background(), 7, CheckoutRequest{
		Items: []ItemRequest{{ID: "r1", Name: "Ride", Price: 10, Quantity: 1}},
	})

	var rejected *payment.RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "Invalid amount", rejected.Reason)
	assert.ErrorIs(t, err, domain.ErrGatewayRejected)
	orders.AssertNumberOfCalls(t, "Create", 1)
}

func TestCheckout_GatewayUnavailable(t *testing.T) {
	profiles := new(MockProfileReader)
	orders := new(MockOrderCreator)
	gw := new(MockGateway)

	profiles.On("GetByID", mock.Anything, int64(7)).Return(&domain.Profile{ID: 7}, nil)
	orders.On("Create", mock.Anything, domain.LocationE3, mock.Anything).Return(nil)
	gw.On("Initiate", mock.Anything, mock.Anything).Return(nil, domain.ErrGatewayUnavailable)

	svc := newTestService(profiles, orders, gw, nil)
	_, err := svc.Checkout(context.Background(), 7, CheckoutRequest{
		Items: []ItemRequest{{ID: "r1", Name: "Ride", Price: 10, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
}

func TestCheckout_InvalidatesBookedDates(t *testing.T) {
	profiles := new(MockProfileReader)
	orders := new(MockOrderCreator)
	gw := new(MockGateway)
	slots := new(MockSlotInvalidator)

	profiles.On("GetByID", mock.Anything, int64(7)).Return(&domain.Profile{ID: 7}, nil)
	orders.On("Create", mock.Anything, domain.LocationE3, mock.Anything).Return(nil)
	slots.On("Invalidate", mock.Anything, domain.LocationE3, []string{"2026-02-20"}).Return(errors.New("redis down"))
	gw.On("Initiate", mock.Anything, mock.Anything).Return(&payment.InitiateResult{AccessKey: "ak"}, nil)
	gw.On("IframeMode").Return(false)

	svc := newTestService(profiles, orders, gw, slots)
	_, err := svc.Checkout(context.Background(), 7, CheckoutRequest{
		Items: []ItemRequest{
			{ID: "slot", Name: "Play slot", Price: 1000, Quantity: 1, Details: &domain.BookingDetails{Date: "2026-02-20", StartTime: "14:00", EndTime: "15:00", GuestCount: 3}},
			{ID: "slot", Name: "Play slot", Price: 1000, Quantity: 1, Details: &domain.BookingDetails{Date: "2026-02-20", StartTime: "15:00", EndTime: "16:00", GuestCount: 3}},
		},
	})
	require.NoError(t, err)
	slots.AssertExpectations(t)
}

func TestCheckout_InvalidInput(t *testing.T) {
	cases := []struct {
		name  string
		req   CheckoutRequest
		field string
	}{
		{"empty cart", CheckoutRequest{}, "items"},
		{"zero quantity", CheckoutRequest{Items: []ItemRequest{{ID: "a", Name: "A", Price: 1, Quantity: 0}}}, "items[0].quantity"},
		{"negative price", CheckoutRequest{Items: []ItemRequest{{ID: "a", Name: "A", Price: -1, Quantity: 1}}}, "items[0].price"},
		{"missing name", CheckoutRequest{Items: []ItemRequest{{ID: "a", Price: 1, Quantity: 1}}}, "items[0].name"},
		{"bad date", CheckoutRequest{Items: []ItemRequest{{ID: "a", Name: "A", Price: 1, Quantity: 1, Details: &domain.BookingDetails{Date: "20/02/2026"}}}}, "items[0].details.date"},
		{"bad time", CheckoutRequest{Items: []ItemRequest{{ID: "a", Name: "A", Price: 1, Quantity: 1, Details: &domain.BookingDetails{Date: "2026-02-20", StartTime: "2pm"}}}}, "items[0].details.startTime"},
		{"unknown location", CheckoutRequest{Location: "e9", Items: []ItemRequest{{ID: "a", Name: "A", Price: 1, Quantity: 1}}}, "location"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			profiles := new(MockProfileReader)
			svc := newTestService(profiles, new(MockOrderCreator), new(MockGateway), nil)

			_, err := svc.Checkout(context.Background(), 7, tc.req)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			profiles.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		})
	}
}

func TestTotal(t *testing.T) {
	assert.Equal(t, 300.0, Total([]ItemRequest{{Price: 150, Quantity: 2}}))
	assert.Equal(t, 0.0, Total(nil))
	assert.Equal(t, 1250.5, Total([]ItemRequest{{Price: 1000, Quantity: 1}, {Price: 125.25, Quantity: 2}}))

	// stored total and charged amount agree to the paisa
	small := Total([]ItemRequest{{Price: 0.1, Quantity: 3}})
	assert.Equal(t, 0.3, small)
	assert.Equal(t, "0.30", payment.FormatAmount(small))
	assert.Equal(t, 0.6, Total([]ItemRequest{{Price: 0.1, Quantity: 1}, {Price: 0.2, Quantity: 1}, {Price: 0.3, Quantity: 1}}))
}

func TestRandomTxnID(t *testing.T) {
	for i := 0; i < 50; i++ {
		id := randomTxnID()
		assert.Len(t, id, len("FC-123456"))
		assert.True(t, strings.HasPrefix(id, "FC-"))
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"items[0].quantity": "gt", "items": "min"}}
	assert.Equal(t, "invalid input: items: min, items[0].quantity: gt", err.Error())
}
