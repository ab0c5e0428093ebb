package cli

import (
	"errors"

	"hotel-tracker/services"
)

// userMessage turns a manager error into the line shown at the desk.
func userMessage(err error) string {
	switch {
	case errors.Is(err, errNoAvailableRooms):
		return "No available rooms."
	case errors.Is(err, services.ErrRoomExists):
		return "Room ID already exists."
	case errors.Is(err, services.ErrRoomInUse):
		return "Cannot remove room (it may have reservations)."
	case errors.Is(err, services.ErrRoomUnavailable):
		return "Booking failed. Room not available."
	case errors.Is(err, services.ErrReservationNotFound):
		return "Cancellation failed."
	case errors.Is(err, services.ErrRoomNotFound):
		return "Room not found."
	default:
		return "Error: " + err.Error()
	}
}
