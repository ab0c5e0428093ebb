package storage

import (
	"context"
	"slices"
	"sync"

	"hotel-tracker/models"
)

// MemoryStore keeps collections in process memory. A collection that was
// never saved loads as ErrNotExist, same as an absent file.
type MemoryStore struct {
	mu           sync.Mutex
	rooms        []models.Room
	reservations []models.Reservation
	roomsSaved   bool
	resSaved     bool
	saves        int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) LoadRooms(ctx context.Context) ([]models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.roomsSaved {
		return nil, ErrNotExist
	}
	return slices.Clone(s.rooms), nil
}

func (s *MemoryStore) SaveRooms(ctx context.Context, rooms []models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms = slices.Clone(rooms)
	s.roomsSaved = true
	s.saves++
	return nil
}

func (s *MemoryStore) LoadReservations(ctx context.Context) ([]models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.resSaved {
		return nil, ErrNotExist
	}
	return slices.Clone(s.reservations), nil
}

func (s *MemoryStore) SaveReservations(ctx context.Context, reservations []models.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservations = slices.Clone(reservations)
	s.resSaved = true
	s.saves++
	return nil
}

// Saves counts successful Save calls across both collections.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *MemoryStore) Close() error { return nil }
