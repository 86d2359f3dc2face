package booking

import "funcity/internal/domain"

type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
	SlotPast      SlotStatus = "past"
)

// Mode tells whether live orders were consulted.
type Mode string

const (
	ModeNormal   Mode = "normal"
	ModeDegraded Mode = "degraded"
)

type Slot struct {
	Hour      int        `json:"hour"`
	StartTime string     `json:"startTime"`
	EndTime   string     `json:"endTime"`
	Label     string     `json:"label"`
	Status    SlotStatus `json:"status"`
	Price     float64    `json:"price"`
}

type SlotsResponse struct {
	Date         string          `json:"date"`
	Location     domain.Location `json:"location"`
	PricePerHour float64         `json:"pricePerHour"`
	Slots        []Slot          `json:"slots"`
	Degraded     bool            `json:"degraded,omitempty"`
	Mode         Mode            `json:"-"`
}

type SlotsQuery struct {
	Date     string `form:"date" binding:"required"`
	Location string `form:"location"`
}

type CheckQuery struct {
	Date      string `form:"date" binding:"required"`
	StartTime string `form:"startTime" binding:"required"`
	Location  string `form:"location"`
}
