package repository

import (
	"errors"

	"gorm.io/gorm"

	"eventhire/internal/database"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrSlotTaken = errors.New("calendar slot already taken")
	ErrDuplicate = errors.New("duplicate record")
	ErrInUse     = errors.New("record still referenced")
)

func deleteResult(res *gorm.DB) error {
	if res.Error != nil {
		if database.IsForeignKeyViolation(res.Error) {
			return ErrInUse
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
