package stats

import "github.com/shopspring/decimal"

type KPIs struct {
	Events        int             `json:"eventi"`
	Lines         int             `json:"linee"`
	Revenue       decimal.Decimal `json:"ricavo_totale"`
	Conversion    float64         `json:"conversione"`
	LogisticsCost decimal.Decimal `json:"costo_logistica"`
	TotalCost     decimal.Decimal `json:"costo_totale"`
}

type DayRevenue struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"ricavo"`
}

type StatusCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type MaterialQty struct {
	Name string `json:"nome"`
	Qty  int    `json:"qta"`
}

type CategoryRevenue struct {
	Category string          `json:"categoria"`
	Revenue  decimal.Decimal `json:"ricavo"`
}

type Month struct {
	Month             string            `json:"mese"`
	KPIs              KPIs              `json:"kpis"`
	RevenueByDay      []DayRevenue      `json:"ricavo_per_giorno"`
	Statuses          []StatusCount     `json:"stati"`
	TopMaterials      []MaterialQty     `json:"top_materiali"`
	RevenueByCategory []CategoryRevenue `json:"ricavo_per_categoria"`
}
