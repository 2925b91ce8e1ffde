package logistics

import "github.com/shopspring/decimal"

type VehicleRequest struct {
	Plate       string           `json:"targa" validate:"required,max=32"`
	Description string           `json:"descrizione" validate:"max=200"`
	CostPerKm   *decimal.Decimal `json:"costo_km"`
	CallOutCost *decimal.Decimal `json:"costo_uscita"`
	Active      *bool            `json:"attivo"`
}

type TechnicianRequest struct {
	Name       string           `json:"nome" validate:"required,max=120"`
	Role       string           `json:"ruolo" validate:"max=120"`
	Email      *string          `json:"email" validate:"omitempty,email"`
	Phone      *string          `json:"telefono" validate:"omitempty,max=50"`
	Notes      *string          `json:"note"`
	HourlyRate *decimal.Decimal `json:"tariffa_oraria"`
	CostPerKm  *decimal.Decimal `json:"costo_km"`
}

// CostRow is the travel cost of one vehicle or technician.
type CostRow struct {
	ID        int64           `json:"id"`
	Name      string          `json:"nome"`
	Role      string          `json:"ruolo,omitempty"`
	CostPerKm decimal.Decimal `json:"costo_km"`
	Km        decimal.Decimal `json:"n_km"`
	Total     decimal.Decimal `json:"costo_totale"`
}

type Preview struct {
	EventID          int64           `json:"evento"`
	DistanceKm       decimal.Decimal `json:"distanza_km"`
	Vehicles         []CostRow       `json:"mezzi"`
	Technicians      []CostRow       `json:"tecnici"`
	VehiclesTotal    decimal.Decimal `json:"totale_mezzi"`
	TechniciansTotal decimal.Decimal `json:"totale_tecnici"`
	Total            decimal.Decimal `json:"totale_logistica"`
}
