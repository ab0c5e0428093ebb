package services

import (
	"errors"
	"fmt"
)

// Failure classes. Every error returned by HotelManager matches exactly one
// of these with errors.Is.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrPersistence = errors.New("persistence failure")
)

var (
	ErrRoomNotFound        = fmt.Errorf("room %w", ErrNotFound)
	ErrReservationNotFound = fmt.Errorf("reservation %w", ErrNotFound)
	ErrRoomExists          = fmt.Errorf("room id already exists: %w", ErrConflict)
	ErrRoomInUse           = fmt.Errorf("room has reservations: %w", ErrConflict)
	ErrRoomUnavailable     = fmt.Errorf("room not available: %w", ErrConflict)
)
