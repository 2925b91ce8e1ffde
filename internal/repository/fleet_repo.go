package repository

import (
	"context"

	"gorm.io/gorm"

	"eventhire/internal/database"
	"eventhire/internal/domain"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) List(ctx context.Context, activeOnly bool) ([]domain.Vehicle, error) {
	q := r.db.WithContext(ctx).Model(&domain.Vehicle{})
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var out []domain.Vehicle
	err := q.Order("plate").Find(&out).Error
	return out, err
}

func (r *VehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	var v domain.Vehicle
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &v, nil
}

func (r *VehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	if err := r.db.WithContext(ctx).Create(v).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *VehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	res := r.db.WithContext(ctx).Model(v).
		Select("plate", "description", "cost_per_km", "call_out_cost", "active").
		Updates(v)
	if res.Error != nil {
		if database.IsUniqueViolation(res.Error) {
			return ErrDuplicate
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *VehicleRepository) Delete(ctx context.Context, id int64) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&domain.Vehicle{}, id))
}

type TechnicianRepository struct {
	db *gorm.DB
}

func NewTechnicianRepository(db *gorm.DB) *TechnicianRepository {
	return &TechnicianRepository{db: db}
}

func (r *TechnicianRepository) List(ctx context.Context) ([]domain.Technician, error) {
	var out []domain.Technician
	err := r.db.WithContext(ctx).Order("name").Find(&out).Error
	return out, err
}

func (r *TechnicianRepository) GetByID(ctx context.Context, id int64) (*domain.Technician, error) {
	var t domain.Technician
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *TechnicianRepository) Create(ctx context.Context, t *domain.Technician) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TechnicianRepository) Update(ctx context.Context, t *domain.Technician) error {
	res := r.db.WithContext(ctx).Model(t).
		Select("name", "role", "email", "phone", "notes", "hourly_rate", "cost_per_km").
		Updates(t)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TechnicianRepository) Delete(ctx context.Context, id int64) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&domain.Technician{}, id))
}
