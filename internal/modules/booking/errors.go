package booking

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("event not found")
	ErrSlotTaken  = errors.New("location already taken on this date")
	ErrNoRevision = errors.New("revision not found")
	ErrNoChanges  = errors.New("nothing to save")
)
