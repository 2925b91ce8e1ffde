package warehouse

import (
	"eventhire/internal/availability"
	"eventhire/internal/domain"
)

// NoCategory labels materials without a category in the year calendar.
const NoCategory = "— Senza categoria —"

type MaterialStatus struct {
	ID    int64                   `json:"id"`
	Name  string                  `json:"nome"`
	Stock int                     `json:"stock"`
	ByDay []availability.DayUsage `json:"by_day"`
}

type StatusGrid struct {
	Days      []string         `json:"days"`
	Materials []MaterialStatus `json:"materials"`
}

// BookingRow is one event line drawing on a material within the window.
type BookingRow struct {
	EventID       int64              `json:"evento_id"`
	Title         string             `json:"titolo"`
	Status        domain.EventStatus `json:"stato"`
	ClientName    string             `json:"cliente"`
	From          string             `json:"data_evento_da"`
	To            string             `json:"data_evento_a"`
	Qty           int                `json:"qta"`
	LocationIndex int                `json:"location_index"`
}

type MaterialBookings struct {
	MaterialID int64 `json:"materiale"`
	availability.Summary
	PerDay map[string]int `json:"per_day"`
	Rows   []BookingRow   `json:"rows"`
}

type CalendarMaterial struct {
	ID       int64  `json:"id"`
	Name     string `json:"nome"`
	Category string `json:"categoria"`
	Stock    int    `json:"scorta"`
}

type CalendarBooking struct {
	MaterialID int64  `json:"materiale"`
	Date       string `json:"date"`
	Qty        int    `json:"qta"`
}

type YearCalendar struct {
	Year      int                `json:"year"`
	Days      []string           `json:"days"`
	Materials []CalendarMaterial `json:"materials"`
	Bookings  []CalendarBooking  `json:"bookings"`
}

type DetailMaterial struct {
	ID    int64  `json:"id"`
	Name  string `json:"nome"`
	Stock int    `json:"scorta"`
}

type DetailItem struct {
	EventID       int64              `json:"id"`
	Title         string             `json:"titolo"`
	ClientName    string             `json:"cliente_nome"`
	VenueName     string             `json:"luogo_nome"`
	LocationIndex int                `json:"loc"`
	Status        domain.EventStatus `json:"stato"`
	From          string             `json:"dal"`
	To            string             `json:"al"`
	Qty           int                `json:"qta_giorno"`
}

type DayDetail struct {
	Material DetailMaterial `json:"materiale"`
	Day      string         `json:"giorno"`
	Items    []DetailItem   `json:"items"`
}
