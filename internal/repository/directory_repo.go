package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"eventhire/internal/database"
	"eventhire/internal/domain"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) List(ctx context.Context, search string) ([]domain.Client, error) {
	var out []domain.Client
	q := r.db.WithContext(ctx).Model(&domain.Client{})
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(COALESCE(email, '')) LIKE ? OR external_id LIKE ?", like, like, like)
	}
	err := q.Order("name").Find(&out).Error
	return out, err
}

func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	var c domain.Client
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// Create assigns the next CLT-YYYY-NNNN id inside the insert transaction.
func (r *ClientRepository) Create(ctx context.Context, c *domain.Client, year int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextExternalID(tx, "clients", domain.ClientIDPrefix, year)
		if err != nil {
			return err
		}
		c.ExternalID = id
		if err := tx.Create(c).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return ErrDuplicate
			}
			return err
		}
		return nil
	})
}

func (r *ClientRepository) Update(ctx context.Context, c *domain.Client) error {
	res := r.db.WithContext(ctx).Model(c).Select("name", "email", "phone").Updates(c)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&domain.Client{}, id))
}

type VenueRepository struct {
	db *gorm.DB
}

func NewVenueRepository(db *gorm.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

func (r *VenueRepository) List(ctx context.Context, search string) ([]domain.Venue, error) {
	var out []domain.Venue
	q := r.db.WithContext(ctx).Model(&domain.Venue{})
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(COALESCE(city, '')) LIKE ? OR external_id LIKE ?", like, like, like)
	}
	err := q.Order("name").Find(&out).Error
	return out, err
}

func (r *VenueRepository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	var v domain.Venue
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &v, nil
}

func (r *VenueRepository) Create(ctx context.Context, v *domain.Venue, year int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextExternalID(tx, "venues", domain.VenueIDPrefix, year)
		if err != nil {
			return err
		}
		v.ExternalID = id
		if err := tx.Create(v).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return ErrDuplicate
			}
			return err
		}
		return nil
	})
}

func (r *VenueRepository) Update(ctx context.Context, v *domain.Venue) error {
	res := r.db.WithContext(ctx).Model(v).
		Select("name", "address", "city", "postal_code", "province", "distance_km", "distance_km_round").
		Updates(v)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *VenueRepository) Delete(ctx context.Context, id int64) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&domain.Venue{}, id))
}

// nextExternalID returns PREFIX-YEAR-NNNN following the highest id issued
// for that year.
func nextExternalID(tx *gorm.DB, table, prefix string, year int) (string, error) {
	base := fmt.Sprintf("%s-%04d-", prefix, year)

	var last string
	err := tx.Table(table).
		Select("external_id").
		Where("external_id LIKE ?", base+"%").
		Order("external_id DESC").
		Limit(1).
		Scan(&last).Error
	if err != nil {
		return "", err
	}

	n := 0
	if last != "" {
		n, err = strconv.Atoi(strings.TrimPrefix(last, base))
		if err != nil {
			return "", fmt.Errorf("malformed external id %q: %w", last, err)
		}
	}
	return fmt.Sprintf("%s%04d", base, n+1), nil
}
