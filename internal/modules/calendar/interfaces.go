package calendar

import (
	"context"

	"eventhire/internal/pkg/dates"
	"eventhire/internal/repository"
)

type SlotRepository interface {
	UsedOn(ctx context.Context, day dates.Date) ([]int, error)
	Between(ctx context.Context, from, to dates.Date) ([]repository.SlotBooking, error)
}
