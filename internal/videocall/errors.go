package videocall

import "errors"

var (
	ErrNotFound     = errors.New("call session not found")
	ErrSessionEnded = errors.New("call session already ended")
	ErrNotOnline    = errors.New("appointment is not an online appointment")
	ErrNotConfirmed = errors.New("appointment is not confirmed")
)
