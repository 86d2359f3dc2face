package booking

import (
	"context"
	"fmt"
	"sort"
	"time"

	"funcity/internal/domain"

	"go.uber.org/zap"
)

// ReferenceZone decides what "today" and "current hour" mean for slot status.
var ReferenceZone = time.FixedZone("IST", 5*60*60+30*60)

type Service struct {
	orders OrderReader
	cache  SlotCache
	log    *zap.Logger
	now    func() time.Time
}

func NewService(orders OrderReader, cache SlotCache, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{orders: orders, cache: cache, log: log, now: time.Now}
}

// GetSlots computes the status of every hourly slot at loc on date.
// Store failures degrade to baseline-only occupancy instead of failing.
func (s *Service) GetSlots(ctx context.Context, date, location string) (*SlotsResponse, error) {
	if err := ValidateDate(date); err != nil {
		return nil, err
	}
	loc, ok := domain.ParseLocation(location)
	if !ok {
		return nil, fmt.Errorf("%w: unknown location %q", domain.ErrInvalidInput, location)
	}

	booked, mode := s.bookedHours(ctx, loc, date)
	occupied := BaselineHours(date, loc)
	for _, h := range booked {
		occupied[h] = struct{}{}
	}

	now := s.now().In(ReferenceZone)
	isToday := now.Format(dateLayout) == date

	slots := make([]Slot, 0, SlotEndHour-SlotStartHour)
	for h := SlotStartHour; h < SlotEndHour; h++ {
		status := SlotAvailable
		if _, taken := occupied[h]; taken {
			status = SlotBooked
		}
		if isToday && h <= now.Hour() {
			status = SlotPast
		}
		slots = append(slots, Slot{
			Hour:      h,
			StartTime: fmt.Sprintf("%02d:00", h),
			EndTime:   fmt.Sprintf("%02d:00", h+1),
			Label:     slotLabel(h),
			Status:    status,
			Price:     PricePerHour,
		})
	}

	return &SlotsResponse{
		Date:         date,
		Location:     loc,
		PricePerHour: PricePerHour,
		Slots:        slots,
		Degraded:     mode == ModeDegraded,
		Mode:         mode,
	}, nil
}

// IsAvailable checks a single start time against the baseline pattern only.
// Live orders are not consulted, so it can disagree with GetSlots.
func (s *Service) IsAvailable(date, startTime, location string) (bool, error) {
	if err := ValidateDate(date); err != nil {
		return false, err
	}
	hour, ok := ParseHour(startTime)
	if !ok {
		return false, fmt.Errorf("%w: startTime must be HH:MM", domain.ErrInvalidInput)
	}
	loc, ok := domain.ParseLocation(location)
	if !ok {
		return false, fmt.Errorf("%w: unknown location %q", domain.ErrInvalidInput, location)
	}
	if hour < SlotStartHour || hour >= SlotEndHour {
		return false, nil
	}
	_, taken := BaselineHours(date, loc)[hour]
	return !taken, nil
}

func (s *Service) bookedHours(ctx context.Context, loc domain.Location, date string) ([]int, Mode) {
	var (
		gen  int64
		fill bool
	)
	if s.cache != nil {
		hours, g, hit, err := s.cache.GetBookedHours(ctx, loc, date)
		switch {
		case err != nil:
			s.log.Warn("slot_cache_read_failed", zap.String("location", string(loc)), zap.String("date", date), zap.Error(err))
		case hit:
			return hours, ModeNormal
		default:
			gen, fill = g, true
		}
	}

	orders, err := s.orders.ListAll(ctx, loc)
	if err != nil {
		s.log.Warn("slots_degraded_mode",
			zap.String("location", string(loc)),
			zap.String("date", date),
			zap.Error(err))
		return nil, ModeDegraded
	}

	hours := BookedHours(orders, date)
	if fill {
		if err := s.cache.SetBookedHours(ctx, loc, date, gen, hours); err != nil {
			s.log.Warn("slot_cache_write_failed", zap.String("location", string(loc)), zap.String("date", date), zap.Error(err))
		}
	}
	return hours, ModeNormal
}

// BookedHours extracts the start hours of items booked on date, ascending.
// Items with an unparseable startTime are skipped.
func BookedHours(orders []domain.Order, date string) []int {
	set := make(map[int]struct{})
	for _, o := range orders {
		for _, it := range o.Items {
			if it.Details == nil || it.Details.Date != date {
				continue
			}
			if h, ok := ParseHour(it.Details.StartTime); ok {
				set[h] = struct{}{}
			}
		}
	}
	out := make([]int, 0, len(set))
	for h := range set {
		out = append(out, h)
	}
	sort.Ints(out)
	return out
}

const dateLayout = "2006-01-02"

// ValidateDate rejects anything that is not a real YYYY-MM-DD date.
func ValidateDate(date string) error {
	if len(date) != len(dateLayout) {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	return nil
}

// ParseHour returns the hour of an HH:MM time.
func ParseHour(hhmm string) (int, bool) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, false
	}
	return t.Hour(), true
}

func slotLabel(h int) string {
	start := time.Date(2000, 1, 1, h, 0, 0, 0, time.UTC)
	return start.Format("3:04 PM") + " - " + start.Add(time.Hour).Format("3:04 PM")
}
