package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"eventhire/internal/domain"
	"eventhire/internal/pkg/dates"
)

// SlotBooking is a held slot joined with its event.
type SlotBooking struct {
	Date          dates.Date
	LocationIndex int
	EventID       int64
	Status        domain.EventStatus
	Title         string
	ClientName    string
	VenueName     string
}

type SlotRepository struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

// Holder returns the id of the event holding (day, loc), or 0 if free.
// Slots held by excludeEventID are skipped so an event never conflicts with itself.
func (r *SlotRepository) Holder(ctx context.Context, day dates.Date, loc int, excludeEventID int64) (int64, error) {
	var slot domain.CalendarSlot
	err := r.db.WithContext(ctx).
		Joins("JOIN events ON events.id = calendar_slots.event_id").
		Where("calendar_slots.slot_date = ? AND calendar_slots.location_index = ?", day, loc).
		Where("calendar_slots.event_id <> ?", excludeEventID).
		Where("events.status <> ?", domain.EventCancelled).
		First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return slot.EventID, nil
}

// Between returns held slots in [from, to] ordered by date and index.
func (r *SlotRepository) Between(ctx context.Context, from, to dates.Date) ([]SlotBooking, error) {
	var rows []SlotBooking
	err := r.db.WithContext(ctx).
		Table("calendar_slots").
		Select(`calendar_slots.slot_date AS date, calendar_slots.location_index, calendar_slots.event_id,
			events.status, events.title,
			COALESCE(clients.name, '') AS client_name, COALESCE(venues.name, '') AS venue_name`).
		Joins("JOIN events ON events.id = calendar_slots.event_id").
		Joins("LEFT JOIN clients ON clients.id = events.client_id").
		Joins("LEFT JOIN venues ON venues.id = events.venue_id").
		Where("calendar_slots.slot_date BETWEEN ? AND ?", from, to).
		Where("events.status <> ?", domain.EventCancelled).
		Order("calendar_slots.slot_date").
		Order("calendar_slots.location_index").
		Scan(&rows).Error
	return rows, err
}

// UsedOn lists the location indexes held on day.
func (r *SlotRepository) UsedOn(ctx context.Context, day dates.Date) ([]int, error) {
	var used []int
	err := r.db.WithContext(ctx).
		Table("calendar_slots").
		Joins("JOIN events ON events.id = calendar_slots.event_id").
		Where("calendar_slots.slot_date = ?", day).
		Where("events.status <> ?", domain.EventCancelled).
		Order("calendar_slots.location_index").
		Pluck("calendar_slots.location_index", &used).Error
	return used, err
}
