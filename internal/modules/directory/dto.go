package directory

import "github.com/shopspring/decimal"

type ClientRequest struct {
	Name  string  `json:"nome" validate:"required,max=200"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"telefono" validate:"omitempty,max=50"`
}

type VenueRequest struct {
	Name            string           `json:"nome" validate:"required,max=200"`
	Address         *string          `json:"indirizzo" validate:"omitempty,max=300"`
	City            *string          `json:"citta" validate:"omitempty,max=120"`
	PostalCode      *string          `json:"cap" validate:"omitempty,max=20"`
	Province        *string          `json:"provincia" validate:"omitempty,max=50"`
	DistanceKm      *decimal.Decimal `json:"distanza_km"`
	DistanceKmRound *decimal.Decimal `json:"distanza_km_ar"`
}
