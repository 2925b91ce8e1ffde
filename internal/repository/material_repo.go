package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"eventhire/internal/domain"
)

// MaterialKind narrows a material query to one catalog view.
type MaterialKind int

const (
	KindAny MaterialKind = iota
	KindEquipment
	KindTechnician
	KindVehicle
)

type MaterialFilter struct {
	Search          string
	Category        string
	Subcategory     string
	Kind            MaterialKind
	IncludeArchived bool
	Limit           int
}

type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) List(ctx context.Context, f MaterialFilter) ([]domain.Material, error) {
	q := r.db.WithContext(ctx).Model(&domain.Material{})

	if !f.IncludeArchived {
		q = q.Where("is_archived = ?", false)
	}
	switch f.Kind {
	case KindEquipment:
		q = q.Where("is_technician = ? AND is_vehicle = ?", false, false)
	case KindTechnician:
		q = q.Where("is_technician = ?", true)
	case KindVehicle:
		q = q.Where("is_vehicle = ?", true)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(COALESCE(category, '')) LIKE ? OR LOWER(COALESCE(subcategory, '')) LIKE ?", like, like, like)
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		q = q.Where("LOWER(category) = ?", strings.ToLower(c))
	}
	if s := strings.TrimSpace(f.Subcategory); s != "" {
		q = q.Where("LOWER(subcategory) = ?", strings.ToLower(s))
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var out []domain.Material
	err := q.Order("COALESCE(category, '')").Order("COALESCE(subcategory, '')").Order("name").Find(&out).Error
	return out, err
}

func (r *MaterialRepository) GetByID(ctx context.Context, id int64) (*domain.Material, error) {
	var m domain.Material
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

// GetByIDs returns the materials found, keyed by id. Unknown ids are absent.
func (r *MaterialRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.Material, error) {
	out := make(map[int64]domain.Material, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []domain.Material
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, m := range rows {
		out[m.ID] = m
	}
	return out, nil
}

func (r *MaterialRepository) Create(ctx context.Context, m *domain.Material) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MaterialRepository) Update(ctx context.Context, m *domain.Material) error {
	res := r.db.WithContext(ctx).Model(m).
		Select("name", "category", "subcategory", "image_url", "base_price", "unit_label",
			"stock", "is_technician", "is_vehicle", "is_default_service", "is_archived").
		Updates(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MaterialRepository) Delete(ctx context.Context, id int64) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&domain.Material{}, id))
}

// Siblings lists other non-archived materials sharing category and, when
// given, subcategory with the trigger.
func (r *MaterialRepository) Siblings(ctx context.Context, excludeID int64, category, subcategory string, limit int) ([]domain.Material, error) {
	q := r.db.WithContext(ctx).
		Where("id <> ? AND is_archived = ?", excludeID, false).
		Where("category = ?", category)
	if subcategory != "" {
		q = q.Where("subcategory = ?", subcategory)
	}
	var out []domain.Material
	err := q.Order("name").Limit(limit).Find(&out).Error
	return out, err
}

// ActiveSuggestions returns the curated suggestions for trigger, with the
// suggested material preloaded.
func (r *MaterialRepository) ActiveSuggestions(ctx context.Context, triggerID int64) ([]domain.MaterialSuggestion, error) {
	var out []domain.MaterialSuggestion
	err := r.db.WithContext(ctx).
		Preload("Suggested").
		Where("trigger_id = ? AND active = ?", triggerID, true).
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *MaterialRepository) CreateSuggestion(ctx context.Context, s *domain.MaterialSuggestion) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// MatchingRules returns active category rules whose trigger matches the
// given category and, when set on the rule, subcategory.
func (r *MaterialRepository) MatchingRules(ctx context.Context, category, subcategory string) ([]domain.SuggestionRule, error) {
	var out []domain.SuggestionRule
	err := r.db.WithContext(ctx).
		Where("active = ? AND trigger_category = ?", true, category).
		Where("trigger_subcategory = '' OR trigger_subcategory = ?", subcategory).
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *MaterialRepository) CreateRule(ctx context.Context, rule *domain.SuggestionRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

type CategoryNode struct {
	Category      string   `json:"categoria"`
	Subcategories []string `json:"sottocategorie"`
}

// Categories returns the category tree of non-archived materials.
func (r *MaterialRepository) Categories(ctx context.Context) ([]CategoryNode, error) {
	var rows []struct {
		Category    string
		Subcategory string
	}
	err := r.db.WithContext(ctx).Model(&domain.Material{}).
		Select("DISTINCT COALESCE(category, '') AS category, COALESCE(subcategory, '') AS subcategory").
		Where("is_archived = ?", false).
		Order("category").Order("subcategory").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	var out []CategoryNode
	for _, row := range rows {
		if len(out) == 0 || out[len(out)-1].Category != row.Category {
			out = append(out, CategoryNode{Category: row.Category, Subcategories: []string{}})
		}
		if row.Subcategory != "" {
			last := &out[len(out)-1]
			last.Subcategories = append(last.Subcategories, row.Subcategory)
		}
	}
	return out, nil
}
