package directory

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrInUse    = errors.New("still referenced by events")
)
