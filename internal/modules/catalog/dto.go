package catalog

import (
	"github.com/shopspring/decimal"

	"eventhire/internal/availability"
	"eventhire/internal/domain"
	"eventhire/internal/pkg/dates"
)

type MaterialRequest struct {
	Name             string           `json:"nome" validate:"required,max=200"`
	Category         *string          `json:"categoria" validate:"omitempty,max=100"`
	Subcategory      *string          `json:"sottocategoria" validate:"omitempty,max=100"`
	ImageURL         *string          `json:"image_url" validate:"omitempty,url"`
	BasePrice        *decimal.Decimal `json:"prezzo_base"`
	UnitLabel        domain.UnitLabel `json:"unit_label" validate:"omitempty,oneof=pz h km"`
	Stock            *int             `json:"scorta" validate:"omitempty,gte=0"`
	IsTechnician     bool             `json:"is_tecnico"`
	IsVehicle        bool             `json:"is_messo"`
	IsDefaultService bool             `json:"is_default_service"`
	IsArchived       bool             `json:"is_archived"`
}

type SuggestionLinkRequest struct {
	SuggestedID int64  `json:"suggested" validate:"required,gt=0"`
	QtyDefault  int    `json:"qty_default" validate:"omitempty,gte=1"`
	Label       string `json:"label" validate:"max=120"`
}

type RuleRequest struct {
	TriggerCategory    string `json:"trigger_categoria" validate:"required,max=120"`
	TriggerSubcategory string `json:"trigger_sottocategoria" validate:"max=120"`
	SuggestCategory    string `json:"suggest_categoria" validate:"required,max=120"`
	SuggestSubcategory string `json:"suggest_sottocategoria" validate:"max=120"`
	QtyDefault         int    `json:"qty_default" validate:"omitempty,gte=1"`
	Label              string `json:"label" validate:"max=120"`
}

// SearchParams filters the catalog search. Dates are optional; when only
// one is given it is used for both ends.
type SearchParams struct {
	Term        string
	Category    string
	Subcategory string
	VenueID     int64
	From        *dates.Date
	To          *dates.Date
}

type SearchItem struct {
	ID           int64               `json:"id"`
	Category     string              `json:"categoria"`
	Subcategory  string              `json:"sottocategoria"`
	Name         string              `json:"nome"`
	Price        decimal.Decimal     `json:"prezzo"`
	Stock        int                 `json:"scorta"`
	Booked       int                 `json:"prenotato"`
	Available    int                 `json:"disponibilita"`
	Status       availability.Status `json:"status"`
	UnitLabel    domain.UnitLabel    `json:"unit_label"`
	IsTechnician bool                `json:"is_tecnico"`
	IsVehicle    bool                `json:"is_messo"`
}

type SuggestionItem struct {
	MaterialID   int64           `json:"materiale_id"`
	Name         string          `json:"nome"`
	Price        decimal.Decimal `json:"prezzo"`
	QtyDefault   int             `json:"qty_default"`
	Label        string          `json:"label"`
	IsTechnician bool            `json:"is_tecnico"`
	IsVehicle    bool            `json:"is_messo"`
	Booked       int             `json:"prenotato"`
	Available    int             `json:"disponibilita"`
}

type GuestParams struct {
	Guests int     `json:"guests"`
	Km     int     `json:"km"`
	Hours  float64 `json:"ore"`
	Setups int     `json:"allestimenti"`
}

type GuestSuggestion struct {
	Category   string `json:"categoria"`
	MaterialID int64  `json:"materiale_id"`
	Name       string `json:"nome"`
	Qty        int    `json:"qta"`
}

type GuestSuggestions struct {
	Params      GuestParams       `json:"params"`
	Technicians int               `json:"tecnici"`
	Chiefs      int               `json:"caposquadra"`
	Vehicles    int               `json:"mezzi"`
	Drivers     int               `json:"autisti"`
	Items       []GuestSuggestion `json:"suggerimenti"`
}
