// services/hotel_manager.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"hotel-tracker/models"
	"hotel-tracker/storage"
)

const (
	ReservationIDPrefix = "RES-"
	ReservationIDBase   = 1000
)

var tracer = otel.Tracer("hotel-tracker/services")

// DefaultSeedRooms is the inventory installed on first run.
func DefaultSeedRooms() []models.Room {
	return []models.Room{
		{RoomID: "R101", Category: "Single", Price: 1200, Available: true},
		{RoomID: "R102", Category: "Single", Price: 1200, Available: true},
		{RoomID: "R201", Category: "Double", Price: 2000, Available: true},
		{RoomID: "R202", Category: "Double", Price: 2000, Available: true},
		{RoomID: "R301", Category: "Suite", Price: 4500, Available: true},
	}
}

type Options struct {
	Logger *slog.Logger

	// SeedRooms replaces DefaultSeedRooms when the store has no room collection.
	SeedRooms []models.Room

	// StrictPersistence returns save failures to the caller wrapped in
	// ErrPersistence. Otherwise they are only logged. The in-memory change
	// is kept either way.
	StrictPersistence bool
}

// HotelManager owns the room and reservation collections. A room is booked
// exactly when one reservation references it; only BookRoom and
// CancelReservation change that. Each public method is one critical section.
type HotelManager struct {
	mu     sync.Mutex
	store  storage.Store
	logger *slog.Logger
	strict bool

	rooms        []models.Room
	reservations []models.Reservation
	nextSeq      int
}

type Stats struct {
	Rooms             int    `json:"rooms"`
	AvailableRooms    int    `json:"availableRooms"`
	Reservations      int    `json:"reservations"`
	NextReservationID string `json:"nextReservationId"`
}

// NewHotelManager loads both collections from store. A missing room
// collection is seeded and written immediately; a missing reservation
// collection starts empty and is written on the first booking.
func NewHotelManager(ctx context.Context, store storage.Store, opts Options) (*HotelManager, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	m := &HotelManager{
		store:  store,
		logger: logger,
		strict: opts.StrictPersistence,
	}
	if err := m.load(ctx, opts.SeedRooms); err != nil {
		return nil, err
	}
	m.observe()
	return m, nil
}

func (m *HotelManager) load(ctx context.Context, seed []models.Room) error {
	rooms, err := m.store.LoadRooms(ctx)
	switch {
	case errors.Is(err, storage.ErrNotExist):
		if seed == nil {
			seed = DefaultSeedRooms()
		}
		m.rooms = slices.Clone(seed)
		m.logger.Info("no room inventory found, seeding sample rooms", "count", len(m.rooms))
		if err := m.persist(ctx, "rooms", m.saveRooms); err != nil {
			return err
		}
	case err != nil:
		return fmt.Errorf("load rooms: %w", err)
	default:
		m.rooms = rooms
	}

	reservations, err := m.store.LoadReservations(ctx)
	switch {
	case errors.Is(err, storage.ErrNotExist):
		m.reservations = nil
	case err != nil:
		return fmt.Errorf("load reservations: %w", err)
	default:
		m.reservations = reservations
	}

	m.nextSeq = m.recomputeSequence()
	m.warnInconsistencies()
	return nil
}

// recomputeSequence returns one past the largest stored suffix, or the base.
// Identifiers that do not parse are skipped.
func (m *HotelManager) recomputeSequence() int {
	seq := ReservationIDBase
	for _, r := range m.reservations {
		n, ok := parseReservationSeq(r.ReservationID)
		if !ok {
			m.logger.Warn("ignoring malformed reservation id", "reservation_id", r.ReservationID)
			continue
		}
		if n+1 > seq {
			seq = n + 1
		}
	}
	return seq
}

func (m *HotelManager) warnInconsistencies() {
	referenced := make(map[string]int, len(m.reservations))
	for _, r := range m.reservations {
		referenced[r.RoomID]++
	}
	for _, room := range m.rooms {
		n := referenced[room.RoomID]
		switch {
		case n > 1:
			m.logger.Warn("room referenced by several reservations", "room_id", room.RoomID, "count", n)
		case n == 1 && room.Available:
			m.logger.Warn("reserved room flagged available", "room_id", room.RoomID)
		case n == 0 && !room.Available:
			m.logger.Warn("room flagged booked without a reservation", "room_id", room.RoomID)
		}
		delete(referenced, room.RoomID)
	}
	for roomID := range referenced {
		m.logger.Warn("reservation references unknown room", "room_id", roomID)
	}
}

func parseReservationSeq(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, ReservationIDPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func formatReservationID(seq int) string {
	return ReservationIDPrefix + strconv.Itoa(seq)
}

// ----- Rooms -----

func (m *HotelManager) ListRooms() []models.Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Room, len(m.rooms))
	copy(out, m.rooms)
	return out
}

func (m *HotelManager) ListAvailableRooms() []models.Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		if r.Available {
			out = append(out, r)
		}
	}
	return out
}

func (m *HotelManager) FindRoom(roomID string) (models.Room, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.roomIndex(roomID); i >= 0 {
		return m.rooms[i], true
	}
	return models.Room{}, false
}

// AddRoom appends room unless its id is taken. Price and category are not checked.
func (m *HotelManager) AddRoom(ctx context.Context, room models.Room) (err error) {
	ctx, span := tracer.Start(ctx, "HotelManager.AddRoom", trace.WithAttributes(attribute.String("room.id", room.RoomID)))
	defer func() { endSpan(span, err) }()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.roomIndex(room.RoomID) >= 0 {
		return fmt.Errorf("%w: %s", ErrRoomExists, room.RoomID)
	}
	m.rooms = append(m.rooms, room)
	m.observe()
	m.logger.Info("room added", "room_id", room.RoomID, "category", room.Category, "price", room.Price)
	return m.persist(ctx, "rooms", m.saveRooms)
}

// RemoveRoom deletes a room that no reservation references, whatever its flag says.
func (m *HotelManager) RemoveRoom(ctx context.Context, roomID string) (err error) {
	ctx, span := tracer.Start(ctx, "HotelManager.RemoveRoom", trace.WithAttributes(attribute.String("room.id", roomID)))
	defer func() { endSpan(span, err) }()

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.roomIndex(roomID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}
	for _, r := range m.reservations {
		if r.RoomID == roomID {
			return fmt.Errorf("%w: %s held by %s", ErrRoomInUse, roomID, r.ReservationID)
		}
	}
	m.rooms = slices.Delete(m.rooms, i, i+1)
	m.observe()
	m.logger.Info("room removed", "room_id", roomID)
	return m.persist(ctx, "rooms", m.saveRooms)
}

// ----- Reservations -----

func (m *HotelManager) ListReservations() []models.Reservation {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Reservation, len(m.reservations))
	copy(out, m.reservations)
	return out
}

func (m *HotelManager) FindReservation(reservationID string) (models.Reservation, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.reservationIndex(reservationID); i >= 0 {
		return m.reservations[i], true
	}
	return models.Reservation{}, false
}

// GenerateReservationID returns the id the next successful booking will get.
func (m *HotelManager) GenerateReservationID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, _ := m.peekReservationID()
	return id
}

// peekReservationID never collides with a stored id: any id of the form
// RES-<n> was counted by recomputeSequence, so nextSeq is past it.
func (m *HotelManager) peekReservationID() (string, int) {
	return formatReservationID(m.nextSeq), m.nextSeq
}

// BookRoom reserves an available room. The caller is responsible for
// checkOut being after checkIn. On a persistence error in strict mode the
// reservation is still returned, since it exists in memory.
func (m *HotelManager) BookRoom(ctx context.Context, roomID, customerName, phone string, checkIn, checkOut models.Date) (res models.Reservation, err error) {
	ctx, span := tracer.Start(ctx, "HotelManager.BookRoom", trace.WithAttributes(attribute.String("room.id", roomID)))
	defer func() { endSpan(span, err) }()

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.roomIndex(roomID)
	if i < 0 {
		return models.Reservation{}, fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}
	if !m.rooms[i].Available {
		return models.Reservation{}, fmt.Errorf("%w: %s", ErrRoomUnavailable, roomID)
	}

	id, seq := m.peekReservationID()
	res = models.Reservation{
		ReservationID: id,
		RoomID:        roomID,
		CustomerName:  customerName,
		Phone:         phone,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
	}
	m.reservations = append(m.reservations, res)
	m.rooms[i].Available = false
	m.nextSeq = seq + 1

	bookingsTotal.Inc()
	m.observe()
	span.SetAttributes(attribute.String("reservation.id", id))
	m.logger.Info("room booked", "reservation_id", id, "room_id", roomID, "check_in", checkIn.String(), "check_out", checkOut.String())

	err = errors.Join(
		m.persist(ctx, "reservations", m.saveReservations),
		m.persist(ctx, "rooms", m.saveRooms),
	)
	return res, err
}

// CancelReservation drops the reservation and frees its room. A room that
// has disappeared meanwhile is skipped.
func (m *HotelManager) CancelReservation(ctx context.Context, reservationID string) (err error) {
	ctx, span := tracer.Start(ctx, "HotelManager.CancelReservation", trace.WithAttributes(attribute.String("reservation.id", reservationID)))
	defer func() { endSpan(span, err) }()

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.reservationIndex(reservationID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrReservationNotFound, reservationID)
	}
	res := m.reservations[i]
	if j := m.roomIndex(res.RoomID); j >= 0 {
		m.rooms[j].Available = true
	} else {
		m.logger.Warn("cancelled reservation for missing room", "reservation_id", reservationID, "room_id", res.RoomID)
	}
	m.reservations = slices.Delete(m.reservations, i, i+1)

	cancellationsTotal.Inc()
	m.observe()
	m.logger.Info("reservation cancelled", "reservation_id", reservationID, "room_id", res.RoomID)

	return errors.Join(
		m.persist(ctx, "reservations", m.saveReservations),
		m.persist(ctx, "rooms", m.saveRooms),
	)
}

func (m *HotelManager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := Stats{Rooms: len(m.rooms), Reservations: len(m.reservations)}
	for _, r := range m.rooms {
		if r.Available {
			s.AvailableRooms++
		}
	}
	s.NextReservationID, _ = m.peekReservationID()
	return s
}

// ----- internals, callers hold mu -----

func (m *HotelManager) roomIndex(roomID string) int {
	for i, r := range m.rooms {
		if r.RoomID == roomID {
			return i
		}
	}
	return -1
}

func (m *HotelManager) reservationIndex(reservationID string) int {
	for i, r := range m.reservations {
		if r.ReservationID == reservationID {
			return i
		}
	}
	return -1
}

func (m *HotelManager) saveRooms(ctx context.Context) error {
	return m.store.SaveRooms(ctx, m.rooms)
}

func (m *HotelManager) saveReservations(ctx context.Context) error {
	return m.store.SaveReservations(ctx, m.reservations)
}

func (m *HotelManager) persist(ctx context.Context, collection string, save func(context.Context) error) error {
	if err := save(ctx); err != nil {
		persistenceFailures.WithLabelValues(collection).Inc()
		m.logger.Error("failed to save collection", "collection", collection, "error", err)
		if m.strict {
			return fmt.Errorf("save %s: %w: %w", collection, ErrPersistence, err)
		}
	}
	return nil
}

func (m *HotelManager) observe() {
	available := 0
	for _, r := range m.rooms {
		if r.Available {
			available++
		}
	}
	roomsGauge.WithLabelValues("available").Set(float64(available))
	roomsGauge.WithLabelValues("booked").Set(float64(len(m.rooms) - available))
	reservationsGauge.Set(float64(len(m.reservations)))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
