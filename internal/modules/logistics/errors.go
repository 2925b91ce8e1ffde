package logistics

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrEventNotFound  = errors.New("event not found")
	ErrDuplicatePlate = errors.New("plate already registered")
)
