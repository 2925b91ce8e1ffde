package catalog

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("material not found")
	ErrInUse      = errors.New("material used by events")
)
