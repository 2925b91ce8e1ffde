package calendar

import "eventhire/internal/domain"

// DayAvailability lists the location slots of one day.
type DayAvailability struct {
	Date      string `json:"data"`
	Used      []int  `json:"used"`
	Free      []int  `json:"free"`
	Suggested *int   `json:"suggested"`
}

type SlotBooking struct {
	EventID    int64              `json:"evento_id"`
	Date       string             `json:"date"`
	Slot       int                `json:"slot"`
	Count      int                `json:"count"`
	Status     domain.EventStatus `json:"stato"`
	Title      string             `json:"titolo"`
	ClientName string             `json:"cliente_nome"`
	VenueName  string             `json:"luogo_nome"`
}

// YearGrid is the location calendar of a whole year.
type YearGrid struct {
	Year     int           `json:"year"`
	Days     []string      `json:"days"`
	Slots    []int         `json:"slots"`
	Bookings []SlotBooking `json:"bookings"`
}
