package checkout

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"

	"funcity/internal/domain"
	"funcity/internal/modules/booking"
	"funcity/internal/modules/payment"
	"funcity/internal/pkg/validator"

	"go.uber.org/zap"
)

type Service struct {
	profiles ProfileReader
	orders   OrderCreator
	gateway  Gateway
	slots    SlotInvalidator
	log      *zap.Logger
	newTxnID func() string
}

func NewService(profiles ProfileReader, orders OrderCreator, gateway Gateway, slots SlotInvalidator, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		profiles: profiles,
		orders:   orders,
		gateway:  gateway,
		slots:    slots,
		log:      log,
		newTxnID: randomTxnID,
	}
}

func randomTxnID() string {
	return fmt.Sprintf("%s-%06d", TxnPrefix, rand.IntN(1_000_000))
}

// Checkout persists a placed order for userID and asks the gateway for a payment link.
// The order is written before the gateway is contacted and is left placed if initiation fails.
func (s *Service) Checkout(ctx context.Context, userID int64, req CheckoutRequest) (*CheckoutResponse, error) {
	loc, ok := domain.ParseLocation(req.Location)
	if !ok {
		return nil, &ValidationError{Fields: map[string]string{"location": "oneof"}}
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		s.log.Error("profile_lookup_failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("%w: load profile: %v", domain.ErrStorage, err)
	}

	order := &domain.Order{
		UserID:      userID,
		Location:    loc,
		Items:       toOrderItems(req.Items),
		TotalAmount: Total(req.Items),
		Status:      domain.OrderPlaced,
	}
	if err := s.insertOrder(ctx, loc, order); err != nil {
		return nil, err
	}

	if s.slots != nil {
		if dates := order.BookingDates(); len(dates) > 0 {
			if err := s.slots.Invalidate(ctx, loc, dates...); err != nil {
				s.log.Warn("slot_cache_invalidate_failed", zap.String("txnid", order.TxnID), zap.Error(err))
			}
		}
	}

	result, err := s.gateway.Initiate(ctx, payment.InitiateRequest{
		TxnID:       order.TxnID,
		Amount:      order.TotalAmount,
		ProductInfo: ProductInfo,
		FirstName:   fallback(profile.Name, FallbackName),
		Email:       fallback(profile.Email, FallbackEmail),
		Phone:       fallback(profile.Phone, FallbackPhone),
		UDF:         [10]string{string(loc), strconv.FormatInt(userID, 10)},
	})
	if err != nil {
		if errors.Is(err, domain.ErrGatewayRejected) {
			return nil, err
		}
		s.log.Error("gateway_initiate_failed",
			zap.String("txnid", order.TxnID),
			zap.String("location", string(loc)),
			zap.Int64("user_id", userID),
			zap.Error(err))
		return nil, err
	}

	mode := ModeHosted
	if s.gateway.IframeMode() {
		mode = ModeIframe
	}

	s.log.Info("checkout_initiated",
		zap.String("txnid", order.TxnID),
		zap.String("location", string(loc)),
		zap.Int64("user_id", userID),
		zap.Float64("total", order.TotalAmount))

	return &CheckoutResponse{
		PaymentURL:  result.PaymentURL,
		AccessKey:   result.AccessKey,
		TxnID:       order.TxnID,
		Mode:        mode,
		MerchantKey: s.gateway.MerchantKey(),
		Env:         s.gateway.Env(),
	}, nil
}

// insertOrder draws a fresh txnid when the random one is already taken.
func (s *Service) insertOrder(ctx context.Context, loc domain.Location, order *domain.Order) error {
	var err error
	for attempt := 0; attempt < maxTxnAttempts; attempt++ {
		order.TxnID = s.newTxnID()
		err = s.orders.Create(ctx, loc, order)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrDuplicateTxnID) {
			break
		}
		s.log.Warn("txnid_collision", zap.String("txnid", order.TxnID), zap.Int("attempt", attempt+1))
	}
	s.log.Error("order_insert_failed",
		zap.String("txnid", order.TxnID),
		zap.String("location", string(loc)),
		zap.Int64("user_id", order.UserID),
		zap.Error(err))
	return fmt.Errorf("%w: insert order: %v", domain.ErrStorage, err)
}

// Total is Σ price×quantity over items. It sums whole paise so the stored
// amount is exactly the two-decimal amount the gateway is asked to charge.
func Total(items []ItemRequest) float64 {
	var paise int64
	for _, it := range items {
		paise += int64(math.Round(it.Price*100)) * int64(it.Quantity)
	}
	return float64(paise) / 100
}

func validateRequest(req CheckoutRequest) error {
	fields := validator.Validate(req)
	if fields == nil {
		fields = map[string]string{}
	}
	for i, it := range req.Items {
		if it.Details == nil {
			continue
		}
		prefix := fmt.Sprintf("items[%d].details.", i)
		if it.Details.Date != "" {
			if err := booking.ValidateDate(it.Details.Date); err != nil {
				fields[prefix+"date"] = "date"
			}
		}
		if it.Details.StartTime != "" {
			if _, ok := booking.ParseHour(it.Details.StartTime); !ok {
				fields[prefix+"startTime"] = "time"
			}
		}
		if it.Details.EndTime != "" {
			if _, ok := booking.ParseHour(it.Details.EndTime); !ok {
				fields[prefix+"endTime"] = "time"
			}
		}
		if it.Details.GuestCount < 0 {
			fields[prefix+"guestCount"] = "gte"
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func toOrderItems(items []ItemRequest) []domain.OrderItem {
	out := make([]domain.OrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, domain.OrderItem{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
			Details:  it.Details,
		})
	}
	return out
}

func fallback(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
