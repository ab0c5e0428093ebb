package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-tracker/services"
	"hotel-tracker/utils"
)

// userMessage is the text shown to front-desk staff for a manager failure.
func userMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrRoomExists):
		return "Room ID already exists."
	case errors.Is(err, services.ErrRoomInUse):
		return "Cannot remove room (it has reservations)."
	case errors.Is(err, services.ErrRoomUnavailable):
		return "Booking failed. Room not available."
	case errors.Is(err, services.ErrRoomNotFound):
		return "Room not found."
	case errors.Is(err, services.ErrReservationNotFound):
		return "Reservation not found."
	case errors.Is(err, services.ErrPersistence):
		return "Change applied in memory but could not be saved."
	default:
		return "Internal error."
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	utils.JSONError(c, statusFor(err), userMessage(err))
}

func respondBindError(c *gin.Context, err error, message string) {
	_ = c.Error(err).SetType(gin.ErrorTypeBind)
	utils.JSONErrorDetails(c, http.StatusBadRequest, message, err.Error())
}
