package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client is a customer record (cliente).
type Client struct {
	ID         int64     `json:"id"`
	UID        string    `json:"uid" gorm:"size:36;uniqueIndex"`
	ExternalID string    `json:"external_id" gorm:"size:32;uniqueIndex"`
	Name       string    `json:"nome" gorm:"size:200;not null" validate:"required,max=200"`
	Email      *string   `json:"email" validate:"omitempty,email"`
	Phone      *string   `json:"telefono" gorm:"size:50"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Venue is an event location (luogo). Distances feed the logistics costs.
type Venue struct {
	ID              int64           `json:"id"`
	UID             string          `json:"uid" gorm:"size:36;uniqueIndex"`
	ExternalID      string          `json:"external_id" gorm:"size:32;uniqueIndex"`
	Name            string          `json:"nome" gorm:"size:200;not null" validate:"required,max=200"`
	Address         *string         `json:"indirizzo" gorm:"size:300"`
	City            *string         `json:"citta" gorm:"size:120"`
	PostalCode      *string         `json:"cap" gorm:"size:20"`
	Province        *string         `json:"provincia" gorm:"size:50"`
	DistanceKm      decimal.Decimal `json:"distanza_km" gorm:"type:decimal(8,2);not null;default:0"`
	DistanceKmRound decimal.Decimal `json:"distanza_km_ar" gorm:"type:decimal(8,2);not null;default:0"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

const (
	ClientIDPrefix = "CLT"
	VenueIDPrefix  = "LUG"
)
