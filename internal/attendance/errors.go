package attendance

import "errors"

var (
	ErrNotFound     = errors.New("registration not found")
	ErrDuplicate    = errors.New("shift already registered for this date")
	ErrUnknownShift = errors.New("unknown shift")
)
