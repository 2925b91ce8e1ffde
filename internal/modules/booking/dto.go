package booking

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"eventhire/internal/domain"
	"eventhire/internal/pkg/dates"
)

// LineRequest is one riga. Qty and coverage default to 1; the amount
// defaults to qty × price.
type LineRequest struct {
	MaterialID   int64            `json:"materiale" validate:"required,gt=0"`
	Qty          int              `json:"qta" validate:"omitempty,gte=1"`
	Price        *decimal.Decimal `json:"prezzo"`
	Amount       *decimal.Decimal `json:"importo"`
	IsTechnician bool             `json:"is_tecnico"`
	IsTransport  bool             `json:"is_trasporto"`
	CoverageDays int              `json:"copertura_giorni" validate:"omitempty,gte=1,lte=366"`
}

// EventRequest creates or updates an event. Lines left nil keep the current
// righe on update; an empty list clears them.
type EventRequest struct {
	Title         string             `json:"titolo" validate:"max=200"`
	Date          *dates.Date        `json:"data_evento" validate:"required"`
	DateFrom      *dates.Date        `json:"data_evento_da"`
	DateTo        *dates.Date        `json:"data_evento_a"`
	LocationIndex int                `json:"location_index" validate:"omitempty,gte=1"`
	Status        domain.EventStatus `json:"stato" validate:"omitempty,oneof=bozza confermato annullato fatturato"`
	OfferStatus   domain.OfferStatus `json:"offerta_stato" validate:"omitempty,oneof=da_eseguire inviato annullato"`
	DepositAmount *decimal.Decimal   `json:"acconto_importo"`
	DepositDate   *dates.Date        `json:"acconto_data"`
	DepositState  domain.PayState    `json:"acconto_state" validate:"omitempty,oneof=none to_send sent paid"`
	BalanceState  domain.PayState    `json:"saldo_state" validate:"omitempty,oneof=none to_send sent paid"`
	ClientID      int64              `json:"cliente" validate:"required,gt=0"`
	VenueID       int64              `json:"luogo" validate:"required,gt=0"`
	Notes         *string            `json:"note"`
	CategoryNotes map[string]string  `json:"categoria_notes"`
	DistanceKm    *decimal.Decimal   `json:"distanza_km"`
	Lines         []LineRequest      `json:"righe" validate:"dive"`
}

type ReplaceLinesRequest struct {
	Lines []LineRequest `json:"righe" validate:"dive"`
}

type RevisionRequest struct {
	Note string `json:"note"`
}

type LineView struct {
	ID           int64           `json:"id"`
	MaterialID   int64           `json:"materiale"`
	MaterialName *string         `json:"materiale_nome"`
	Qty          int             `json:"qta"`
	Price        decimal.Decimal `json:"prezzo"`
	Amount       decimal.Decimal `json:"importo"`
	IsTechnician bool            `json:"is_tecnico"`
	IsTransport  bool            `json:"is_trasporto"`
	CoverageDays int             `json:"copertura_giorni"`
}

// EventView is the JSON shape of an event, also stored as revision payload.
type EventView struct {
	ID             int64              `json:"id"`
	GroupUID       string             `json:"gruppo_uid"`
	Title          string             `json:"titolo"`
	Date           dates.Date         `json:"data_evento"`
	DateFrom       *dates.Date        `json:"data_evento_da"`
	DateTo         *dates.Date        `json:"data_evento_a"`
	LocationIndex  int                `json:"location_index"`
	Status         domain.EventStatus `json:"stato"`
	OfferStatus    domain.OfferStatus `json:"offerta_stato"`
	DepositAmount  decimal.Decimal    `json:"acconto_importo"`
	DepositState   domain.PayState    `json:"acconto_state"`
	BalanceState   domain.PayState    `json:"saldo_state"`
	DepositDate    *dates.Date        `json:"acconto_data"`
	ClientID       int64              `json:"cliente"`
	ClientName     *string            `json:"cliente_nome"`
	VenueID        int64              `json:"luogo"`
	VenueName      *string            `json:"luogo_nome"`
	Notes          *string            `json:"note"`
	CategoryNotes  map[string]string  `json:"categoria_notes"`
	DistanceKm     *decimal.Decimal   `json:"distanza_km"`
	Version        int                `json:"versione"`
	Lines          []LineView         `json:"righe"`
	StockTotal     *int               `json:"stock_tot_scorta"`
	StockAvailable *int               `json:"stock_tot_dispon"`
}

// MonthItem is the compact row of the monthly calendar list.
type MonthItem struct {
	ID            int64              `json:"id"`
	Title         string             `json:"titolo"`
	Date          dates.Date         `json:"data_evento"`
	DateFrom      *dates.Date        `json:"data_evento_da"`
	DateTo        *dates.Date        `json:"data_evento_a"`
	LocationIndex int                `json:"location_index"`
	Status        domain.EventStatus `json:"stato"`
	ClientName    *string            `json:"cliente_nome"`
	OfferStatus   domain.OfferStatus `json:"offerta_stato"`
	BalanceState  domain.PayState    `json:"saldo_state"`
}

type RevisionView struct {
	Ref       int             `json:"ref"`
	CreatedAt time.Time       `json:"created_at"`
	Note      string          `json:"note"`
	Payload   json.RawMessage `json:"payload"`
}

type DiffView struct {
	EventID int64        `json:"evento"`
	From    RevisionView `json:"from"`
	To      RevisionView `json:"to"`
	Changed []string     `json:"campi_modificati"`
}
