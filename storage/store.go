// Package storage persists the room and reservation collections.
//
// Every backend saves a whole collection at once; callers hand over the
// complete, insertion-ordered slice after each mutation.
package storage

import (
	"context"
	"errors"

	"hotel-tracker/models"
)

// ErrNotExist is returned by a Load method when the collection has never been saved.
var ErrNotExist = errors.New("storage: collection does not exist")

type Store interface {
	LoadRooms(ctx context.Context) ([]models.Room, error)
	SaveRooms(ctx context.Context, rooms []models.Room) error
	LoadReservations(ctx context.Context) ([]models.Reservation, error)
	SaveReservations(ctx context.Context, reservations []models.Reservation) error
	Close() error
}
