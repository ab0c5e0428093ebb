package config

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"hotel-tracker/storage"
)

// OpenStore builds the storage backend named by c.Backend.
func OpenStore(c Config, log *slog.Logger) (storage.Store, error) {
	switch c.Backend {
	case BackendCSV:
		s, err := storage.NewCSVStore(c.DataDir, c.RoomsFile, c.ReservationsFile)
		if err != nil {
			return nil, err
		}
		log.Debug("csv store", "rooms", s.RoomsPath(), "reservations", s.ReservationsPath())
		return s, nil
	case BackendBadger:
		dir := c.BadgerDir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(c.DataDir, dir)
		}
		return storage.OpenBadger(storage.BadgerConfig{
			Path:       dir,
			SyncWrites: true,
			Logger:     log.With("component", "badger"),
		})
	case BackendMySQL:
		db, err := ConnectDatabase(c, log.With("component", "gorm"))
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		return storage.NewGormStore(db)
	case BackendMemory:
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.Backend)
	}
}
