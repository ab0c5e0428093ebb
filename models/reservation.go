package models

// Reservation holds a room for one customer between two calendar dates.
// RoomID references a Room; the room itself is never copied here.
type Reservation struct {
	ReservationID string `json:"reservationId"`
	RoomID        string `json:"roomId"`
	CustomerName  string `json:"customerName"`
	Phone         string `json:"phone"`
	CheckIn       Date   `json:"checkIn"`
	CheckOut      Date   `json:"checkOut"`
}

// Nights is the number of nights between check-in and check-out.
func (r Reservation) Nights() int {
	return r.CheckIn.DaysUntil(r.CheckOut)
}
