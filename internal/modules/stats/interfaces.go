package stats

import (
	"context"

	"eventhire/internal/pkg/dates"
	"eventhire/internal/repository"
)

type Repository interface {
	Events(ctx context.Context, from, to dates.Date) ([]repository.StatsEvent, error)
	Lines(ctx context.Context, from, to dates.Date) ([]repository.StatsLine, error)
}
