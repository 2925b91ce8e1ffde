package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"eventhire/internal/domain"
	"eventhire/internal/pkg/dates"
)

type StatsLine struct {
	EventID      int64
	StartDate    dates.Date
	MaterialID   int64
	MaterialName string
	Category     string
	Qty          int
	Amount       decimal.Decimal
}

type StatsEvent struct {
	ID          int64
	StartDate   dates.Date
	Status      domain.EventStatus
	OfferStatus domain.OfferStatus
}

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Events returns every event starting in [from, to], cancelled included.
func (r *StatsRepository) Events(ctx context.Context, from, to dates.Date) ([]StatsEvent, error) {
	var rows []StatsEvent
	err := r.db.WithContext(ctx).
		Table("events").
		Select("id, COALESCE(date_from, event_date) AS start_date, status, offer_status").
		Where("COALESCE(date_from, event_date) BETWEEN ? AND ?", from, to).
		Order("start_date").
		Scan(&rows).Error
	return rows, err
}

// Lines returns the lines of non-cancelled events starting in [from, to].
func (r *StatsRepository) Lines(ctx context.Context, from, to dates.Date) ([]StatsLine, error) {
	var rows []StatsLine
	err := r.db.WithContext(ctx).
		Table("event_lines").
		Select(`event_lines.event_id, COALESCE(events.date_from, events.event_date) AS start_date,
			event_lines.material_id, materials.name AS material_name,
			COALESCE(materials.category, '') AS category,
			event_lines.qty, event_lines.amount`).
		Joins("JOIN events ON events.id = event_lines.event_id").
		Joins("JOIN materials ON materials.id = event_lines.material_id").
		Where("events.status <> ?", domain.EventCancelled).
		Where("COALESCE(events.date_from, events.event_date) BETWEEN ? AND ?", from, to).
		Order("event_lines.id").
		Scan(&rows).Error
	return rows, err
}
