package models

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	roomFieldCount        = 4
	reservationFieldCount = 6
)

// ErrMalformedRecord is returned when a stored record cannot be decoded.
var ErrMalformedRecord = errors.New("malformed record")

// Record returns the room fields in file order: roomId, category, price, available.
func (r Room) Record() []string {
	return []string{
		r.RoomID,
		r.Category,
		strconv.FormatFloat(r.Price, 'f', -1, 64),
		strconv.FormatBool(r.Available),
	}
}

func RoomFromRecord(rec []string) (Room, error) {
	if len(rec) != roomFieldCount {
		return Room{}, fmt.Errorf("%w: room has %d fields, want %d", ErrMalformedRecord, len(rec), roomFieldCount)
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
	if err != nil {
		return Room{}, fmt.Errorf("%w: room %s price %q", ErrMalformedRecord, rec[0], rec[2])
	}
	available, err := strconv.ParseBool(strings.TrimSpace(rec[3]))
	if err != nil {
		return Room{}, fmt.Errorf("%w: room %s available %q", ErrMalformedRecord, rec[0], rec[3])
	}
	return Room{RoomID: rec[0], Category: rec[1], Price: price, Available: available}, nil
}

// Record returns the reservation fields in file order:
// reservationId, roomId, customerName, phone, checkIn, checkOut.
func (r Reservation) Record() []string {
	return []string{
		r.ReservationID,
		r.RoomID,
		r.CustomerName,
		r.Phone,
		r.CheckIn.String(),
		r.CheckOut.String(),
	}
}

func ReservationFromRecord(rec []string) (Reservation, error) {
	if len(rec) != reservationFieldCount {
		return Reservation{}, fmt.Errorf("%w: reservation has %d fields, want %d", ErrMalformedRecord, len(rec), reservationFieldCount)
	}
	checkIn, err := ParseDate(strings.TrimSpace(rec[4]))
	if err != nil {
		return Reservation{}, fmt.Errorf("%w: reservation %s check-in: %v", ErrMalformedRecord, rec[0], err)
	}
	checkOut, err := ParseDate(strings.TrimSpace(rec[5]))
	if err != nil {
		return Reservation{}, fmt.Errorf("%w: reservation %s check-out: %v", ErrMalformedRecord, rec[0], err)
	}
	return Reservation{
		ReservationID: rec[0],
		RoomID:        rec[1],
		CustomerName:  rec[2],
		Phone:         rec[3],
		CheckIn:       checkIn,
		CheckOut:      checkOut,
	}, nil
}

// MarshalCSV encodes the room as one comma-delimited line without a trailing newline.
func (r Room) MarshalCSV() (string, error) {
	return encodeLine(r.Record())
}

func (r Reservation) MarshalCSV() (string, error) {
	return encodeLine(r.Record())
}

func ParseRoomCSV(line string) (Room, error) {
	rec, err := decodeLine(line)
	if err != nil {
		return Room{}, err
	}
	return RoomFromRecord(rec)
}

func ParseReservationCSV(line string) (Reservation, error) {
	rec, err := decodeLine(line)
	if err != nil {
		return Reservation{}, err
	}
	return ReservationFromRecord(rec)
}

// Fields containing the delimiter or quotes are quoted, plain values are written as-is.
func encodeLine(rec []string) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(rec); err != nil {
		return "", err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\r\n"), nil
}

func decodeLine(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	rec, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrMalformedRecord, line, err)
	}
	return rec, nil
}
