package booking

import "funcity/internal/domain"

const (
	SlotStartHour = 10
	SlotEndHour   = 22
	PricePerHour  = 1000
)

var baselineHours = map[domain.Location][]int{
	domain.LocationE3: {11, 13, 16, 19},
	domain.LocationE4: {12, 15, 17, 20},
}

// dateHash sums the character codes of the date string.
func dateHash(date string) int {
	sum := 0
	for _, r := range date {
		sum += int(r)
	}
	return sum
}

// BaselineHours returns the demo occupancy for (date, loc): the location's
// fixed hours rotated by dateHash(date)%3 inside the operating window.
// The rotation wraps, so every result already lies in [SlotStartHour, SlotEndHour).
// It depends on nothing but its inputs.
func BaselineHours(date string, loc domain.Location) map[int]struct{} {
	base, ok := baselineHours[loc]
	if !ok {
		base = baselineHours[domain.PrimaryLocation]
	}

	shift := dateHash(date) % 3
	window := SlotEndHour - SlotStartHour
	out := make(map[int]struct{}, len(base))
	for _, h := range base {
		out[SlotStartHour+((h-SlotStartHour+shift)%window+window)%window] = struct{}{}
	}
	return out
}
