package booking

import (
	"context"

	"eventhire/internal/domain"
	"eventhire/internal/pkg/dates"
	"eventhire/internal/repository"
)

// EventRepository defines the storage operations on events and their lines.
type EventRepository interface {
	List(ctx context.Context, f repository.EventFilter) ([]domain.Event, error)
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	Save(ctx context.Context, e *domain.Event, lines []domain.EventLine) error
	ReplaceLines(ctx context.Context, eventID int64, lines []domain.EventLine) error
	Delete(ctx context.Context, id int64) error
	GroupMaxVersion(ctx context.Context, groupUID string) (int, error)
	LineMaterials(ctx context.Context, eventIDs []int64) (map[int64][]domain.EventLine, error)
}

type SlotRepository interface {
	Holder(ctx context.Context, day dates.Date, loc int, excludeEventID int64) (int64, error)
	UsedOn(ctx context.Context, day dates.Date) ([]int, error)
}

type RevisionRepository interface {
	List(ctx context.Context, eventID int64) ([]domain.EventRevision, error)
	Latest(ctx context.Context, eventID int64) (*domain.EventRevision, error)
	GetByRef(ctx context.Context, eventID int64, ref int) (*domain.EventRevision, error)
	Append(ctx context.Context, rev *domain.EventRevision) (bool, error)
}

type MaterialReader interface {
	GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.Material, error)
}

type ClientReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
}

type VenueReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}
