package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"hotel-tracker/models"
)

// SeedFile is the YAML layout of SEED_FILE:
//
//	rooms:
//	  - roomId: R101
//	    category: Single
//	    price: 1200
//	    available: true
type SeedFile struct {
	Rooms []models.Room `yaml:"rooms"`
}

// LoadSeedRooms returns nil when path is empty so the built-in inventory is used.
func LoadSeedRooms(path string) ([]models.Room, error) {
	if path == "" {
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var f SeedFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	seen := make(map[string]bool, len(f.Rooms))
	for _, r := range f.Rooms {
		if r.RoomID == "" {
			return nil, fmt.Errorf("seed file %s: room without roomId", path)
		}
		if seen[r.RoomID] {
			return nil, fmt.Errorf("seed file %s: duplicate room %s", path, r.RoomID)
		}
		if r.Price < 0 || math.IsNaN(r.Price) || math.IsInf(r.Price, 0) {
			return nil, fmt.Errorf("seed file %s: room %s: price must be a non-negative number", path, r.RoomID)
		}
		seen[r.RoomID] = true
	}
	if f.Rooms == nil {
		f.Rooms = []models.Room{}
	}
	return f.Rooms, nil
}
