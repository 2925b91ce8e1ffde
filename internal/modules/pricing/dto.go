package pricing

import (
	"github.com/shopspring/decimal"

	"eventhire/internal/pkg/dates"
)

type QuoteLineRequest struct {
	MaterialID int64            `json:"materiale"`
	Qty        *decimal.Decimal `json:"qta"`
	BasePrice  *decimal.Decimal `json:"pu_base"`
	Name       *string          `json:"nome"`
}

type QuoteRequest struct {
	Date       *dates.Date        `json:"data" validate:"required"`
	VenueID    *int64             `json:"luogo"`
	DistanceKm *decimal.Decimal   `json:"distanza_km_ar"`
	VehicleID  *int64             `json:"mezzo"`
	Lines      []QuoteLineRequest `json:"righe"`
}

type SimpleRequest struct {
	MaterialID int64       `json:"materiale_id" validate:"required,gt=0"`
	VenueID    int64       `json:"luogo_id" validate:"required,gt=0"`
	Qty        int         `json:"qta" validate:"gte=0"`
	Date       *dates.Date `json:"data" validate:"required"`
}

type SimpleQuote struct {
	Total decimal.Decimal `json:"totale"`
}

type LineFactors struct {
	Season   decimal.Decimal `json:"stagione"`
	Weekday  decimal.Decimal `json:"giorno"`
	Quantity decimal.Decimal `json:"quantita"`
}

type DayFactors struct {
	Season  decimal.Decimal `json:"stagione"`
	Weekday decimal.Decimal `json:"giorno"`
}

type QuoteLine struct {
	MaterialID     int64           `json:"materiale"`
	Name           string          `json:"nome"`
	Qty            decimal.Decimal `json:"qta"`
	BasePrice      decimal.Decimal `json:"pu_base"`
	SuggestedPrice decimal.Decimal `json:"pu_suggerito"`
	Factors        LineFactors     `json:"fattori"`
	Amount         decimal.Decimal `json:"importo"`
}

type Totals struct {
	Materials decimal.Decimal `json:"subtotale_materiali"`
	Logistics decimal.Decimal `json:"logistica"`
	Total     decimal.Decimal `json:"totale"`
}

type Quote struct {
	Lines   []QuoteLine `json:"lines"`
	Totals  Totals      `json:"totali"`
	Factors DayFactors  `json:"fattori"`
}
