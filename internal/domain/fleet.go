package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vehicle is a van or truck (mezzo) charged per km plus a fixed call-out.
type Vehicle struct {
	ID          int64           `json:"id"`
	Plate       string          `json:"targa" gorm:"size:32;not null;uniqueIndex" validate:"required,max=32"`
	Description string          `json:"descrizione" gorm:"size:200"`
	CostPerKm   decimal.Decimal `json:"costo_km" gorm:"type:decimal(7,2);not null;default:0"`
	CallOutCost decimal.Decimal `json:"costo_uscita" gorm:"type:decimal(8,2);not null;default:0"`
	Active      bool            `json:"attivo" gorm:"not null"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TripCost is the per-km cost over km, without the call-out fee.
func (v *Vehicle) TripCost(km decimal.Decimal) decimal.Decimal {
	return v.CostPerKm.Mul(km)
}

// Technician is crew staff with an hourly rate and a travel refund per km.
type Technician struct {
	ID         int64           `json:"id"`
	Name       string          `json:"nome" gorm:"size:120;not null" validate:"required,max=120"`
	Role       string          `json:"ruolo" gorm:"size:120"`
	Email      *string         `json:"email" validate:"omitempty,email"`
	Phone      *string         `json:"telefono" gorm:"size:50"`
	Notes      *string         `json:"note" gorm:"type:text"`
	HourlyRate decimal.Decimal `json:"tariffa_oraria" gorm:"type:decimal(8,2);not null;default:0"`
	CostPerKm  decimal.Decimal `json:"costo_km" gorm:"type:decimal(7,2);not null;default:0"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (t *Technician) TravelCost(km decimal.Decimal) decimal.Decimal {
	return t.CostPerKm.Mul(km)
}
