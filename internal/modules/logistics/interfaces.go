package logistics

import (
	"context"

	"eventhire/internal/domain"
)

type VehicleRepository interface {
	List(ctx context.Context, activeOnly bool) ([]domain.Vehicle, error)
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	Create(ctx context.Context, v *domain.Vehicle) error
	Update(ctx context.Context, v *domain.Vehicle) error
	Delete(ctx context.Context, id int64) error
}

type TechnicianRepository interface {
	List(ctx context.Context) ([]domain.Technician, error)
	GetByID(ctx context.Context, id int64) (*domain.Technician, error)
	Create(ctx context.Context, t *domain.Technician) error
	Update(ctx context.Context, t *domain.Technician) error
	Delete(ctx context.Context, id int64) error
}

type EventReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
}
