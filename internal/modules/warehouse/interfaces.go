package warehouse

import (
	"context"

	"eventhire/internal/domain"
	"eventhire/internal/pkg/dates"
	"eventhire/internal/repository"
)

type MaterialRepository interface {
	List(ctx context.Context, f repository.MaterialFilter) ([]domain.Material, error)
	GetByID(ctx context.Context, id int64) (*domain.Material, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.Material, error)
}

type BookingReader interface {
	BookedLines(ctx context.Context, from, to dates.Date, materialIDs []int64) ([]repository.BookedLine, error)
}
