package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"eventhire/internal/pkg/dates"
)

type EventStatus string

const (
	EventDraft     EventStatus = "bozza"
	EventConfirmed EventStatus = "confermato"
	EventCancelled EventStatus = "annullato"
	EventInvoiced  EventStatus = "fatturato"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventDraft, EventConfirmed, EventCancelled, EventInvoiced:
		return true
	}
	return false
}

type OfferStatus string

const (
	OfferPending   OfferStatus = "da_eseguire"
	OfferSent      OfferStatus = "inviato"
	OfferCancelled OfferStatus = "annullato"
)

type PayState string

const (
	PayNone   PayState = "none"
	PayToSend PayState = "to_send"
	PaySent   PayState = "sent"
	PayPaid   PayState = "paid"
)

// Event is a booking (evento). DateFrom/DateTo describe multi-day events;
// older single-day events only carry Date.
type Event struct {
	ID            int64             `json:"id"`
	GroupUID      string            `json:"gruppo_uid" gorm:"size:36;index"`
	Version       int               `json:"versione" gorm:"not null;default:0"`
	Title         string            `json:"titolo" gorm:"size:200;not null;default:Offerta"`
	Date          dates.Date        `json:"data_evento" gorm:"column:event_date;type:date;not null;index:idx_event_date_location"`
	DateFrom      *dates.Date       `json:"data_evento_da" gorm:"type:date"`
	DateTo        *dates.Date       `json:"data_evento_a" gorm:"type:date"`
	LocationIndex int               `json:"location_index" gorm:"not null;default:1;index:idx_event_date_location"`
	Status        EventStatus       `json:"stato" gorm:"size:20;not null;default:bozza;index"`
	OfferStatus   OfferStatus       `json:"offerta_stato" gorm:"size:12;not null;default:da_eseguire"`
	DepositAmount decimal.Decimal   `json:"acconto_importo" gorm:"type:decimal(9,2);not null;default:0"`
	DepositDate   *dates.Date       `json:"acconto_data" gorm:"type:date"`
	DepositState  PayState          `json:"acconto_state" gorm:"size:8;not null;default:none"`
	BalanceState  PayState          `json:"saldo_state" gorm:"size:8;not null;default:to_send"`
	ClientID      int64             `json:"cliente" gorm:"not null;index"`
	VenueID       int64             `json:"luogo" gorm:"not null;index"`
	Notes         *string           `json:"note" gorm:"type:text"`
	CategoryNotes map[string]string `json:"categoria_notes" gorm:"type:text;serializer:json"`
	DistanceKm    *decimal.Decimal  `json:"distanza_km" gorm:"type:decimal(8,2)"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`

	Client *Client     `json:"-" gorm:"foreignKey:ClientID;constraint:OnDelete:RESTRICT"`
	Venue  *Venue      `json:"-" gorm:"foreignKey:VenueID;constraint:OnDelete:RESTRICT"`
	Lines  []EventLine `json:"-" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

// Span returns the first and last day the event occupies, before any
// per-line coverage is applied.
func (e *Event) Span() (dates.Date, dates.Date) {
	start := e.Date
	if e.DateFrom != nil && !e.DateFrom.IsZero() {
		start = *e.DateFrom
	}
	end := start
	if e.DateTo != nil && !e.DateTo.IsZero() && !e.DateTo.Before(start) {
		end = *e.DateTo
	}
	return start, end
}

// RelevantDistanceKm prefers the distance set on the event, then the venue's.
func (e *Event) RelevantDistanceKm() decimal.Decimal {
	if e.DistanceKm != nil {
		return *e.DistanceKm
	}
	if e.Venue != nil {
		return e.Venue.DistanceKm
	}
	return decimal.Zero
}

func (e *Event) IsCancelled() bool {
	return e.Status == EventCancelled
}

// EventLine is one material on an event (riga evento).
type EventLine struct {
	ID           int64           `json:"id"`
	EventID      int64           `json:"evento" gorm:"not null;index"`
	MaterialID   int64           `json:"materiale" gorm:"not null;index"`
	Qty          int             `json:"qta" gorm:"not null;default:1"`
	Price        decimal.Decimal `json:"prezzo" gorm:"type:decimal(10,2);not null;default:0"`
	Amount       decimal.Decimal `json:"importo" gorm:"type:decimal(12,2);not null;default:0"`
	IsTechnician bool            `json:"is_tecnico" gorm:"not null;default:false"`
	IsTransport  bool            `json:"is_trasporto" gorm:"not null;default:false"`
	CoverageDays int             `json:"copertura_giorni" gorm:"not null;default:1"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	Material *Material `json:"-" gorm:"foreignKey:MaterialID;constraint:OnDelete:RESTRICT"`
}

// CalendarSlot holds one location on one day for a single event.
type CalendarSlot struct {
	ID            int64      `json:"id"`
	Date          dates.Date `json:"data" gorm:"column:slot_date;type:date;not null;uniqueIndex:idx_slot_date_location"`
	LocationIndex int        `json:"location_index" gorm:"not null;uniqueIndex:idx_slot_date_location"`
	EventID       int64      `json:"evento" gorm:"not null;uniqueIndex"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Event *Event `json:"-" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

// EventRevision is a JSON snapshot of an event taken after a change.
type EventRevision struct {
	ID        int64     `json:"-"`
	EventID   int64     `json:"-" gorm:"not null;uniqueIndex:idx_revision_ref"`
	Ref       int       `json:"ref" gorm:"not null;uniqueIndex:idx_revision_ref"`
	Note      string    `json:"note" gorm:"type:text"`
	Payload   string    `json:"-" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`

	Event *Event `json:"-" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}
