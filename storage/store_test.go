package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-tracker/models"
)

var (
	sampleRooms = []models.Room{
		{RoomID: "R201", Category: "Double", Price: 2000, Available: true},
		{RoomID: "R101", Category: "Single", Price: 1200, Available: false},
		{RoomID: "R301", Category: "Suite", Price: 4500.5, Available: true},
	}
	sampleReservations = []models.Reservation{
		{
			ReservationID: "RES-1000",
			RoomID:        "R101",
			CustomerName:  "Doe, Jane",
			Phone:         "0812345678",
			CheckIn:       models.NewDate(2025, time.January, 1),
			CheckOut:      models.NewDate(2025, time.January, 2),
		},
	}
)

// runStoreContract exercises the behaviour every backend must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("missing collections", func(t *testing.T) {
		s := newStore(t)
		_, err := s.LoadRooms(ctx)
		assert.ErrorIs(t, err, ErrNotExist)
		_, err = s.LoadReservations(ctx)
		assert.ErrorIs(t, err, ErrNotExist)
	})

	t.Run("round trip keeps insertion order", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.SaveRooms(ctx, sampleRooms))
		require.NoError(t, s.SaveReservations(ctx, sampleReservations))

		rooms, err := s.LoadRooms(ctx)
		require.NoError(t, err)
		assert.Equal(t, sampleRooms, rooms)

		res, err := s.LoadReservations(ctx)
		require.NoError(t, err)
		assert.Equal(t, sampleReservations, res)
	})

	t.Run("save replaces previous contents", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.SaveRooms(ctx, sampleRooms))
		require.NoError(t, s.SaveRooms(ctx, sampleRooms[:1]))

		rooms, err := s.LoadRooms(ctx)
		require.NoError(t, err)
		assert.Equal(t, sampleRooms[:1], rooms)
	})

	t.Run("saved empty is not missing", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.SaveReservations(ctx, nil))

		res, err := s.LoadReservations(ctx)
		require.NoError(t, err)
		assert.Empty(t, res)
	})
}

func TestCSVStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T) Store {
		s, err := NewCSVStore(t.TempDir(), "", "")
		require.NoError(t, err)
		return s
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T) Store {
		return NewMemoryStore()
	})
}

func TestBadgerStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T) Store {
		s, err := OpenBadger(BadgerConfig{InMemory: true})
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		return s
	})
}

func TestBadgerStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := OpenBadger(BadgerConfig{Path: dir, SyncWrites: true})
	require.NoError(t, err)
	require.NoError(t, s.SaveRooms(ctx, sampleRooms))
	require.NoError(t, s.Close())

	s2, err := OpenBadger(BadgerConfig{Path: dir})
	require.NoError(t, err)
	defer s2.Close()
	rooms, err := s2.LoadRooms(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleRooms, rooms)
}

func TestOpenBadgerRequiresPath(t *testing.T) {
	_, err := OpenBadger(BadgerConfig{})
	assert.Error(t, err)
}

// Runs only when a scratch MySQL database is provided.
func TestGormStore(t *testing.T) {
	dsn := os.Getenv("HOTEL_TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("HOTEL_TEST_MYSQL_DSN not set")
	}
	runStoreContract(t, func(t *testing.T) Store {
		db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		require.NoError(t, err)
		require.NoError(t, db.Migrator().DropTable(&roomRow{}, &reservationRow{}, &storeMeta{}))
		s, err := NewGormStore(db)
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		return s
	})
}

func TestCSVStoreFileLayout(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewCSVStore(dir, "", "")
	require.NoError(t, err)

	require.NoError(t, s.SaveRooms(ctx, sampleRooms[:2]))
	b, err := os.ReadFile(filepath.Join(dir, DefaultRoomsFile))
	require.NoError(t, err)
	assert.Equal(t, "R201,Double,2000,true\nR101,Single,1200,false\n", string(b))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestCSVStoreSkipsBlankLinesAndReportsBadLine(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultRoomsFile)
	require.NoError(t, os.WriteFile(path, []byte("R101,Single,1200.0,true\n\nR102,Single,1200,true\n"), 0o644))

	s, err := NewCSVStore(dir, "", "")
	require.NoError(t, err)
	rooms, err := s.LoadRooms(ctx)
	require.NoError(t, err)
	assert.Len(t, rooms, 2)

	require.NoError(t, os.WriteFile(path, []byte("R101,Single,1200,true\nR102,Single,cheap,true\n"), 0o644))
	_, err = s.LoadRooms(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrMalformedRecord)
	assert.Contains(t, err.Error(), ":2:")
}
