package catalog

import (
	"context"

	"eventhire/internal/domain"
	"eventhire/internal/pkg/dates"
	"eventhire/internal/repository"
)

type MaterialRepository interface {
	List(ctx context.Context, f repository.MaterialFilter) ([]domain.Material, error)
	GetByID(ctx context.Context, id int64) (*domain.Material, error)
	Create(ctx context.Context, m *domain.Material) error
	Update(ctx context.Context, m *domain.Material) error
	Delete(ctx context.Context, id int64) error
	Siblings(ctx context.Context, excludeID int64, category, subcategory string, limit int) ([]domain.Material, error)
	ActiveSuggestions(ctx context.Context, triggerID int64) ([]domain.MaterialSuggestion, error)
	CreateSuggestion(ctx context.Context, s *domain.MaterialSuggestion) error
	MatchingRules(ctx context.Context, category, subcategory string) ([]domain.SuggestionRule, error)
	CreateRule(ctx context.Context, rule *domain.SuggestionRule) error
	Categories(ctx context.Context) ([]repository.CategoryNode, error)
}

// BookingReader supplies booked lines for availability figures.
type BookingReader interface {
	BookedLines(ctx context.Context, from, to dates.Date, materialIDs []int64) ([]repository.BookedLine, error)
}
