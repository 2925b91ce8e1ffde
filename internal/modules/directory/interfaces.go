package directory

import (
	"context"

	"eventhire/internal/domain"
)

type ClientRepository interface {
	List(ctx context.Context, search string) ([]domain.Client, error)
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	Create(ctx context.Context, c *domain.Client, year int) error
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id int64) error
}

type VenueRepository interface {
	List(ctx context.Context, search string) ([]domain.Venue, error)
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
	Create(ctx context.Context, v *domain.Venue, year int) error
	Update(ctx context.Context, v *domain.Venue) error
	Delete(ctx context.Context, id int64) error
}
