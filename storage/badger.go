package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"

	"hotel-tracker/models"
)

const (
	roomsKind        = "room"
	reservationsKind = "reservation"
)

// BadgerConfig holds configuration for the embedded store.
type BadgerConfig struct {
	// Path is the database directory. Ignored when InMemory is true.
	Path string

	// InMemory keeps everything in RAM; used by tests.
	InMemory bool

	SyncWrites bool

	// Logger receives Badger's internal logs. Nil disables them.
	Logger *slog.Logger
}

// BadgerStore keeps one key per record plus an ordered id list per
// collection. Key layout:
//
//	order/<kind>       JSON []string of ids in insertion order
//	<kind>/<id>        JSON record
type BadgerStore struct {
	db *badger.DB
}

type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func OpenBadger(cfg BadgerConfig) (*BadgerStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("badger: path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) LoadRooms(ctx context.Context) ([]models.Room, error) {
	return loadKind[models.Room](s.db, roomsKind)
}

func (s *BadgerStore) SaveRooms(ctx context.Context, rooms []models.Room) error {
	ids := make([]string, len(rooms))
	for i, r := range rooms {
		ids[i] = r.RoomID
	}
	return saveKind(s.db, roomsKind, ids, rooms)
}

func (s *BadgerStore) LoadReservations(ctx context.Context) ([]models.Reservation, error) {
	return loadKind[models.Reservation](s.db, reservationsKind)
}

func (s *BadgerStore) SaveReservations(ctx context.Context, reservations []models.Reservation) error {
	ids := make([]string, len(reservations))
	for i, r := range reservations {
		ids[i] = r.ReservationID
	}
	return saveKind(s.db, reservationsKind, ids, reservations)
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func orderKey(kind string) []byte { return []byte("order/" + kind) }

func recordKey(kind, id string) []byte { return []byte(kind + "/" + id) }

func loadKind[T any](db *badger.DB, kind string) ([]T, error) {
	var out []T
	err := db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(orderKey(kind))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotExist
		}
		if err != nil {
			return err
		}
		var ids []string
		if err := item.Value(func(val []byte) error { return json.Unmarshal(val, &ids) }); err != nil {
			return fmt.Errorf("decode %s order: %w", kind, err)
		}

		out = make([]T, 0, len(ids))
		for _, id := range ids {
			item, err := txn.Get(recordKey(kind, id))
			if err != nil {
				return fmt.Errorf("%w: %s %s listed but not stored: %v", models.ErrMalformedRecord, kind, id, err)
			}
			var v T
			if err := item.Value(func(val []byte) error { return json.Unmarshal(val, &v) }); err != nil {
				return fmt.Errorf("%w: %s %s: %v", models.ErrMalformedRecord, kind, id, err)
			}
			out = append(out, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// saveKind replaces the whole collection in one transaction.
func saveKind[T any](db *badger.DB, kind string, ids []string, values []T) error {
	return db.Update(func(txn *badger.Txn) error {
		prefix := []byte(kind + "/")
		var stale [][]byte
		it := txn.NewIterator(badger.IteratorOptions{Prefix: prefix})
		for it.Rewind(); it.Valid(); it.Next() {
			stale = append(stale, it.Item().KeyCopy(nil))
		}
		it.Close()
		for _, k := range stale {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}

		for i, v := range values {
			b, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("encode %s %s: %w", kind, ids[i], err)
			}
			if err := txn.Set(recordKey(kind, ids[i]), b); err != nil {
				return err
			}
		}
		order, err := json.Marshal(ids)
		if err != nil {
			return err
		}
		return txn.Set(orderKey(kind), order)
	})
}
