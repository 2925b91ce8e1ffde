package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"eventhire/internal/availability"
	"eventhire/internal/database"
	"eventhire/internal/domain"
	"eventhire/internal/pkg/dates"
)

// MaxCoverageDays bounds copertura_giorni so that booked-line queries can
// pre-filter open-ended lines by start date.
const MaxCoverageDays = 366

type EventFilter struct {
	From   *dates.Date
	To     *dates.Date
	Status domain.EventStatus
	// IncludeCancelled keeps annullato events in the result.
	IncludeCancelled bool
}

// BookedLine is one event line joined with the event fields the
// availability views need.
type BookedLine struct {
	EventID       int64
	Title         string
	Status        domain.EventStatus
	ClientName    string
	VenueID       int64
	VenueName     string
	EventDate     dates.Date
	DateFrom      *dates.Date
	DateTo        *dates.Date
	LocationIndex int
	MaterialID    int64
	MaterialName  string
	Category      string
	Qty           int
	CoverageDays  int
}

// Span is the inclusive range this line keeps the material busy.
func (b BookedLine) Span() (dates.Date, dates.Date) {
	return availability.Resolve(b.EventDate, b.DateFrom, b.DateTo, b.CoverageDays)
}

func (b BookedLine) Interval() availability.Interval {
	start, end := b.Span()
	return availability.Interval{Start: start, End: end, Qty: b.Qty}
}

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// List returns events whose span touches [From, To], ordered by date and slot.
func (r *EventRepository) List(ctx context.Context, f EventFilter) ([]domain.Event, error) {
	q := r.db.WithContext(ctx).Model(&domain.Event{}).Preload("Client").Preload("Venue")

	if !f.IncludeCancelled {
		q = q.Where("events.status <> ?", domain.EventCancelled)
	}
	if f.Status != "" {
		q = q.Where("events.status = ?", f.Status)
	}
	if f.To != nil {
		q = q.Where("COALESCE(events.date_from, events.event_date) <= ?", *f.To)
	}
	if f.From != nil {
		q = q.Where("COALESCE(events.date_to, events.date_from, events.event_date) >= ?", *f.From)
	}

	var out []domain.Event
	err := q.Order("events.event_date").Order("events.location_index").Order("events.id").Find(&out).Error
	return out, err
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	var e domain.Event
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Venue").
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("event_lines.id") }).
		Preload("Lines.Material").
		First(&e, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}

// Save inserts or updates e in one transaction. When lines is non-nil the
// event's lines are replaced. The calendar slot follows the event: it is
// moved to (date, location_index) or released when the event is cancelled.
func (r *EventRepository) Save(ctx context.Context, e *domain.Event, lines []domain.EventLine) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if e.ID == 0 {
			if err := tx.Omit("Client", "Venue", "Lines").Create(e).Error; err != nil {
				return err
			}
		} else {
			res := tx.Model(e).Select("*").Omit("Client", "Venue", "Lines", "CreatedAt").Updates(e)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrNotFound
			}
		}

		if lines != nil {
			if err := replaceLines(tx, e.ID, lines); err != nil {
				return err
			}
		}

		return syncSlot(tx, e)
	})
}

// ReplaceLines swaps every line of an event for lines.
func (r *EventRepository) ReplaceLines(ctx context.Context, eventID int64, lines []domain.EventLine) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return replaceLines(tx, eventID, lines)
	})
}

func replaceLines(tx *gorm.DB, eventID int64, lines []domain.EventLine) error {
	if err := tx.Where("event_id = ?", eventID).Delete(&domain.EventLine{}).Error; err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}
	for i := range lines {
		lines[i].ID = 0
		lines[i].EventID = eventID
	}
	return tx.Omit("Material").Create(&lines).Error
}

func syncSlot(tx *gorm.DB, e *domain.Event) error {
	if e.IsCancelled() {
		return tx.Where("event_id = ?", e.ID).Delete(&domain.CalendarSlot{}).Error
	}

	var slot domain.CalendarSlot
	err := tx.Where("event_id = ?", e.ID).First(&slot).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		slot = domain.CalendarSlot{Date: e.Date, LocationIndex: e.LocationIndex, EventID: e.ID}
		err = tx.Omit("Event").Create(&slot).Error
	case err != nil:
		return err
	default:
		err = tx.Model(&slot).Updates(map[string]any{
			"slot_date":      e.Date,
			"location_index": e.LocationIndex,
		}).Error
	}
	if database.IsUniqueViolation(err, "slot_date", "idx_slot_date_location") {
		return ErrSlotTaken
	}
	return err
}

func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&domain.CalendarSlot{}, &domain.EventLine{}, &domain.EventRevision{}} {
			if err := tx.Where("event_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&domain.Event{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// GroupMaxVersion returns the highest version within an event group.
func (r *EventRepository) GroupMaxVersion(ctx context.Context, groupUID string) (int, error) {
	var v *int
	err := r.db.WithContext(ctx).Model(&domain.Event{}).
		Select("MAX(version)").
		Where("group_uid = ?", groupUID).
		Scan(&v).Error
	if err != nil || v == nil {
		return 0, err
	}
	return *v, nil
}

// BookedLines returns lines of non-cancelled events whose span touches
// [from, to]. An empty materialIDs means every material.
func (r *EventRepository) BookedLines(ctx context.Context, from, to dates.Date, materialIDs []int64) ([]BookedLine, error) {
	earliestStart := from.AddDays(-(MaxCoverageDays - 1))

	q := r.db.WithContext(ctx).
		Table("event_lines").
		Select(`events.id AS event_id, events.title, events.status,
			COALESCE(clients.name, '') AS client_name, events.venue_id, COALESCE(venues.name, '') AS venue_name,
			events.event_date, events.date_from, events.date_to, events.location_index,
			event_lines.material_id, materials.name AS material_name,
			COALESCE(materials.category, '') AS category,
			event_lines.qty, event_lines.coverage_days`).
		Joins("JOIN events ON events.id = event_lines.event_id").
		Joins("JOIN materials ON materials.id = event_lines.material_id").
		Joins("LEFT JOIN clients ON clients.id = events.client_id").
		Joins("LEFT JOIN venues ON venues.id = events.venue_id").
		Where("events.status <> ?", domain.EventCancelled).
		Where("event_lines.qty > 0").
		Where("COALESCE(events.date_from, events.event_date) <= ?", to).
		Where(`(events.date_to IS NOT NULL AND events.date_to >= COALESCE(events.date_from, events.event_date) AND events.date_to >= ?)
			OR ((events.date_to IS NULL OR events.date_to < COALESCE(events.date_from, events.event_date))
				AND COALESCE(events.date_from, events.event_date) >= ?)`, from, earliestStart)

	if len(materialIDs) > 0 {
		q = q.Where("event_lines.material_id IN ?", materialIDs)
	}

	var rows []BookedLine
	err := q.Order("COALESCE(events.date_from, events.event_date)").Order("events.title").Order("event_lines.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	// open-ended lines were only bounded by MaxCoverageDays above
	out := rows[:0]
	for _, row := range rows {
		start, end := row.Span()
		if availability.Overlaps(start, end, from, to) {
			out = append(out, row)
		}
	}
	return out, nil
}

// LineMaterials returns the lines of each event with their material loaded.
func (r *EventRepository) LineMaterials(ctx context.Context, eventIDs []int64) (map[int64][]domain.EventLine, error) {
	out := make(map[int64][]domain.EventLine, len(eventIDs))
	if len(eventIDs) == 0 {
		return out, nil
	}
	var lines []domain.EventLine
	err := r.db.WithContext(ctx).
		Preload("Material").
		Where("event_id IN ?", eventIDs).
		Order("id").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		out[l.EventID] = append(out[l.EventID], l)
	}
	return out, nil
}
