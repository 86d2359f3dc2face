package domain

import "strings"

type Location string

const (
	LocationE3 Location = "e3"
	LocationE4 Location = "e4"

	PrimaryLocation = LocationE3
)

func Locations() []Location {
	return []Location{LocationE3, LocationE4}
}

// ParseLocation normalises raw input. ok is false when raw was non-empty but
// not a known location; the primary location is returned in that case too.
func ParseLocation(raw string) (loc Location, ok bool) {
	v := Location(strings.ToLower(strings.TrimSpace(raw)))
	switch v {
	case LocationE3, LocationE4:
		return v, true
	case "":
		return PrimaryLocation, true
	default:
		return PrimaryLocation, false
	}
}

func (l Location) OrdersTable() string    { return "orders_" + string(l) }
func (l Location) RidesTable() string     { return "rides_" + string(l) }
func (l Location) DineItemsTable() string { return "dine_items_" + string(l) }
