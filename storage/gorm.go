package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hotel-tracker/models"
)

type roomRow struct {
	RoomID    string  `gorm:"column:room_id;primaryKey;type:varchar(50)"`
	Position  int     `gorm:"column:position;index"`
	Category  string  `gorm:"column:category;type:varchar(50)"`
	Price     float64 `gorm:"column:price"`
	Available bool    `gorm:"column:available"`
}

func (roomRow) TableName() string { return "rooms" }

type reservationRow struct {
	ReservationID string         `gorm:"column:reservation_id;primaryKey;type:varchar(50)"`
	Position      int            `gorm:"column:position;index"`
	RoomID        string         `gorm:"column:room_id;index;type:varchar(50)"`
	CustomerName  string         `gorm:"column:customer_name;size:255"`
	Phone         string         `gorm:"column:phone;size:50"`
	CheckIn       datatypes.Date `gorm:"column:check_in"`
	CheckOut      datatypes.Date `gorm:"column:check_out"`
}

func (reservationRow) TableName() string { return "reservations" }

// storeMeta marks a collection as saved at least once, so an empty table
// after a save is not mistaken for a first run.
type storeMeta struct {
	Collection string    `gorm:"column:collection;primaryKey;size:50"`
	SavedAt    time.Time `gorm:"column:saved_at"`
}

func (storeMeta) TableName() string { return "store_meta" }

type GormStore struct {
	db *gorm.DB
}

// NewGormStore migrates the schema and wraps db.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&roomRow{}, &reservationRow{}, &storeMeta{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) LoadRooms(ctx context.Context) ([]models.Room, error) {
	if err := s.checkSaved(ctx, roomsKind); err != nil {
		return nil, err
	}
	var rows []roomRow
	if err := s.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load rooms: %w", err)
	}
	rooms := make([]models.Room, 0, len(rows))
	for _, r := range rows {
		rooms = append(rooms, models.Room{RoomID: r.RoomID, Category: r.Category, Price: r.Price, Available: r.Available})
	}
	return rooms, nil
}

func (s *GormStore) SaveRooms(ctx context.Context, rooms []models.Room) error {
	rows := make([]roomRow, 0, len(rooms))
	for i, r := range rooms {
		rows = append(rows, roomRow{RoomID: r.RoomID, Position: i, Category: r.Category, Price: r.Price, Available: r.Available})
	}
	return s.replace(ctx, roomsKind, &roomRow{}, &rows, len(rows))
}

func (s *GormStore) LoadReservations(ctx context.Context) ([]models.Reservation, error) {
	if err := s.checkSaved(ctx, reservationsKind); err != nil {
		return nil, err
	}
	var rows []reservationRow
	if err := s.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load reservations: %w", err)
	}
	out := make([]models.Reservation, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.Reservation{
			ReservationID: r.ReservationID,
			RoomID:        r.RoomID,
			CustomerName:  r.CustomerName,
			Phone:         r.Phone,
			CheckIn:       models.DateOf(time.Time(r.CheckIn)),
			CheckOut:      models.DateOf(time.Time(r.CheckOut)),
		})
	}
	return out, nil
}

func (s *GormStore) SaveReservations(ctx context.Context, reservations []models.Reservation) error {
	rows := make([]reservationRow, 0, len(reservations))
	for i, r := range reservations {
		rows = append(rows, reservationRow{
			ReservationID: r.ReservationID,
			Position:      i,
			RoomID:        r.RoomID,
			CustomerName:  r.CustomerName,
			Phone:         r.Phone,
			CheckIn:       datatypes.Date(r.CheckIn.Time),
			CheckOut:      datatypes.Date(r.CheckOut.Time),
		})
	}
	return s.replace(ctx, reservationsKind, &reservationRow{}, &rows, len(rows))
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *GormStore) checkSaved(ctx context.Context, kind string) error {
	var meta storeMeta
	err := s.db.WithContext(ctx).Where("collection = ?", kind).First(&meta).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotExist
	}
	if err != nil {
		return fmt.Errorf("check %s saved: %w", kind, err)
	}
	return nil
}

func (s *GormStore) replace(ctx context.Context, kind string, model, rows any, n int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("clear %s: %w", kind, err)
		}
		if n > 0 {
			if err := tx.CreateInBatches(rows, 100).Error; err != nil {
				return fmt.Errorf("insert %s: %w", kind, err)
			}
		}
		return tx.Save(&storeMeta{Collection: kind, SavedAt: time.Now().UTC()}).Error
	})
}
