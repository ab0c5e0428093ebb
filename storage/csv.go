package storage

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"hotel-tracker/models"
)

const (
	DefaultRoomsFile        = "rooms.csv"
	DefaultReservationsFile = "reservations.csv"
)

// CSVStore keeps each collection in its own comma-delimited file, one record per line.
type CSVStore struct {
	roomsPath        string
	reservationsPath string
}

func NewCSVStore(dir, roomsFile, reservationsFile string) (*CSVStore, error) {
	if roomsFile == "" {
		roomsFile = DefaultRoomsFile
	}
	if reservationsFile == "" {
		reservationsFile = DefaultReservationsFile
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir %s: %w", dir, err)
		}
	}
	return &CSVStore{
		roomsPath:        filepath.Join(dir, roomsFile),
		reservationsPath: filepath.Join(dir, reservationsFile),
	}, nil
}

func (s *CSVStore) RoomsPath() string        { return s.roomsPath }
func (s *CSVStore) ReservationsPath() string { return s.reservationsPath }

func (s *CSVStore) LoadRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	err := readRecords(s.roomsPath, func(line int, rec []string) error {
		room, err := models.RoomFromRecord(rec)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", s.roomsPath, line, err)
		}
		rooms = append(rooms, room)
		return nil
	})
	return rooms, err
}

func (s *CSVStore) SaveRooms(ctx context.Context, rooms []models.Room) error {
	records := make([][]string, 0, len(rooms))
	for _, r := range rooms {
		records = append(records, r.Record())
	}
	return writeRecords(s.roomsPath, records)
}

func (s *CSVStore) LoadReservations(ctx context.Context) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := readRecords(s.reservationsPath, func(line int, rec []string) error {
		res, err := models.ReservationFromRecord(rec)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", s.reservationsPath, line, err)
		}
		reservations = append(reservations, res)
		return nil
	})
	return reservations, err
}

func (s *CSVStore) SaveReservations(ctx context.Context, reservations []models.Reservation) error {
	records := make([][]string, 0, len(reservations))
	for _, r := range reservations {
		records = append(records, r.Record())
	}
	return writeRecords(s.reservationsPath, records)
}

func (s *CSVStore) Close() error { return nil }

// readRecords skips blank lines; a missing file maps to ErrNotExist.
func readRecords(path string, fn func(line int, rec []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotExist
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s: %w: %v", path, models.ErrMalformedRecord, err)
		}
		line, _ := r.FieldPos(0)
		if err := fn(line, rec); err != nil {
			return err
		}
	}
}

// writeRecords replaces path atomically: records go to a temp file in the
// same directory which is then renamed over the target.
func writeRecords(path string, records [][]string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("chmod temp for %s: %w", path, err)
	}
	w := csv.NewWriter(tmp)
	if err = w.WriteAll(records); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
