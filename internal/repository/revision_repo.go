package repository

import (
	"context"

	"gorm.io/gorm"

	"eventhire/internal/database"
	"eventhire/internal/domain"
)

type RevisionRepository struct {
	db *gorm.DB
}

func NewRevisionRepository(db *gorm.DB) *RevisionRepository {
	return &RevisionRepository{db: db}
}

func (r *RevisionRepository) List(ctx context.Context, eventID int64) ([]domain.EventRevision, error) {
	var out []domain.EventRevision
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("ref DESC").
		Find(&out).Error
	return out, err
}

func (r *RevisionRepository) Latest(ctx context.Context, eventID int64) (*domain.EventRevision, error) {
	var rev domain.EventRevision
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("ref DESC").
		First(&rev).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &rev, nil
}

func (r *RevisionRepository) GetByRef(ctx context.Context, eventID int64, ref int) (*domain.EventRevision, error) {
	var rev domain.EventRevision
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND ref = ?", eventID, ref).
		First(&rev).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &rev, nil
}

// Append stores rev with the next ref for its event, starting at 0. It
// returns false without writing when payload equals the latest revision.
func (r *RevisionRepository) Append(ctx context.Context, rev *domain.EventRevision) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last domain.EventRevision
		res := tx.Where("event_id = ?", rev.EventID).Order("ref DESC").Limit(1).Find(&last)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			if last.Payload == rev.Payload {
				return nil
			}
			rev.Ref = last.Ref + 1
		} else {
			rev.Ref = 0
		}
		if err := tx.Omit("Event").Create(rev).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return ErrDuplicate
			}
			return err
		}
		created = true
		return nil
	})
	return created, err
}
