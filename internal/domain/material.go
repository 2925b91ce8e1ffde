package domain

import (
	"github.com/shopspring/decimal"
)

type UnitLabel string

const (
	UnitPiece UnitLabel = "pz"
	UnitHour  UnitLabel = "h"
	UnitKm    UnitLabel = "km"
)

// Material is a catalog item: equipment priced per piece, a technician priced
// per hour, or a vehicle priced per km. Stock only matters for equipment.
type Material struct {
	ID               int64           `json:"id"`
	Name             string          `json:"nome" gorm:"size:200;not null" validate:"required,max=200"`
	Category         *string         `json:"categoria" gorm:"size:100;index"`
	Subcategory      *string         `json:"sottocategoria" gorm:"size:100"`
	ImageURL         *string         `json:"image_url" validate:"omitempty,url"`
	BasePrice        decimal.Decimal `json:"prezzo_base" gorm:"type:decimal(10,2);not null;default:0"`
	UnitLabel        UnitLabel       `json:"unit_label" gorm:"size:8;not null;default:pz" validate:"omitempty,oneof=pz h km"`
	Stock            int             `json:"scorta" gorm:"not null;default:0" validate:"gte=0"`
	IsTechnician     bool            `json:"is_tecnico" gorm:"not null;default:false"`
	IsVehicle        bool            `json:"is_messo" gorm:"not null;default:false"`
	IsDefaultService bool            `json:"is_default_service" gorm:"not null;default:false"`
	IsArchived       bool            `json:"is_archived" gorm:"not null;default:false;index"`
}

func (m *Material) CategoryName() string {
	if m.Category == nil {
		return ""
	}
	return *m.Category
}

func (m *Material) SubcategoryName() string {
	if m.Subcategory == nil {
		return ""
	}
	return *m.Subcategory
}

// MaterialSuggestion proposes Suggested whenever Trigger is added to a quote.
type MaterialSuggestion struct {
	ID          int64     `json:"id"`
	TriggerID   int64     `json:"trigger" gorm:"not null;uniqueIndex:idx_suggestion_pair"`
	SuggestedID int64     `json:"suggested" gorm:"not null;uniqueIndex:idx_suggestion_pair"`
	QtyDefault  int       `json:"qty_default" gorm:"not null;default:1"`
	Label       string    `json:"label" gorm:"size:120"`
	Active      bool      `json:"active" gorm:"not null"`
	Trigger     *Material `json:"-" gorm:"foreignKey:TriggerID;constraint:OnDelete:CASCADE"`
	Suggested   *Material `json:"-" gorm:"foreignKey:SuggestedID;constraint:OnDelete:CASCADE"`
}

// SuggestionRule proposes every material of one category/subcategory when a
// material of another category/subcategory is added.
type SuggestionRule struct {
	ID                 int64  `json:"id"`
	TriggerCategory    string `json:"trigger_categoria" gorm:"size:120"`
	TriggerSubcategory string `json:"trigger_sottocategoria" gorm:"size:120"`
	SuggestCategory    string `json:"suggest_categoria" gorm:"size:120"`
	SuggestSubcategory string `json:"suggest_sottocategoria" gorm:"size:120"`
	QtyDefault         int    `json:"qty_default" gorm:"not null;default:1"`
	Label              string `json:"label" gorm:"size:120"`
	Active             bool   `json:"active" gorm:"not null"`
}
