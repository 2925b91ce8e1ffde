package pricing

import (
	"context"

	"eventhire/internal/domain"
)

type MaterialReader interface {
	GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.Material, error)
}

type VenueReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}

type VehicleReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}
