package models

import (
	"fmt"
	"strconv"
)

// Room is one bookable unit of the hotel inventory.
type Room struct {
	RoomID    string  `json:"roomId" yaml:"roomId"`
	Category  string  `json:"category" yaml:"category"`
	Price     float64 `json:"price" yaml:"price"`
	Available bool    `json:"available" yaml:"available"`
}

// Status is the label shown to staff for the availability flag.
func (r Room) Status() string {
	if r.Available {
		return "Available"
	}
	return "Booked"
}

func (r Room) String() string {
	return fmt.Sprintf("%s - %s - ₹%s - %s", r.RoomID, r.Category, strconv.FormatFloat(r.Price, 'f', -1, 64), r.Status())
}
