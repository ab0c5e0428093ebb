package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hotel-tracker/models"
	"hotel-tracker/services"
	"hotel-tracker/utils"
)

type ReservationController struct {
	Manager *services.HotelManager
}

func NewReservationController(manager *services.HotelManager) *ReservationController {
	return &ReservationController{Manager: manager}
}

// BookRoomRequest is the body of POST /api/reservations.
type BookRoomRequest struct {
	RoomID       string `json:"roomId" binding:"required"`
	CustomerName string `json:"customerName" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	CheckIn      string `json:"checkIn" binding:"required,isodate"`
	CheckOut     string `json:"checkOut" binding:"required,isodate"`
}

func (r BookRoomRequest) trimmed() BookRoomRequest {
	r.RoomID = strings.TrimSpace(r.RoomID)
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.Phone = strings.TrimSpace(r.Phone)
	return r
}

// ----------------------------------------------------
// GET /api/reservations
// ----------------------------------------------------

func (rc *ReservationController) GetReservations(c *gin.Context) {
	utils.JSONSuccess(c, http.StatusOK, rc.Manager.ListReservations())
}

// ----------------------------------------------------
// GET /api/reservations/:id
// ----------------------------------------------------

func (rc *ReservationController) GetReservation(c *gin.Context) {
	res, ok := rc.Manager.FindReservation(c.Param("id"))
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "Reservation not found.")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res)
}

// ----------------------------------------------------
// GET /api/reservations/next-id
// ----------------------------------------------------

// NextReservationID previews the id the next booking will receive.
func (rc *ReservationController) NextReservationID(c *gin.Context) {
	utils.JSONSuccess(c, http.StatusOK, gin.H{"reservationId": rc.Manager.GenerateReservationID()})
}

// ----------------------------------------------------
// POST /api/reservations
// ----------------------------------------------------

func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req BookRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Please fill all fields. Dates must be YYYY-MM-DD.")
		return
	}
	req = req.trimmed()
	if req.RoomID == "" || req.CustomerName == "" || req.Phone == "" {
		utils.JSONError(c, http.StatusBadRequest, "Please fill all fields. Dates must be YYYY-MM-DD.")
		return
	}

	// isodate already accepted both, so these parse.
	checkIn, _ := models.ParseDate(req.CheckIn)
	checkOut, _ := models.ParseDate(req.CheckOut)
	if !checkIn.Before(checkOut) {
		utils.JSONError(c, http.StatusBadRequest, "Check-out must be after check-in.")
		return
	}

	res, err := rc.Manager.BookRoom(c.Request.Context(), req.RoomID, req.CustomerName, req.Phone, checkIn, checkOut)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Booked! Reservation ID: " + res.ReservationID,
		"data":    res,
	})
}

// ----------------------------------------------------
// DELETE /api/reservations/:id
// ----------------------------------------------------

func (rc *ReservationController) CancelReservation(c *gin.Context) {
	if err := rc.Manager.CancelReservation(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"reservationId": c.Param("id"), "message": "Reservation cancelled."})
}

// ----------------------------------------------------
// GET /api/stats
// ----------------------------------------------------

// GetStats reports occupancy counts for dashboards.
func (rc *ReservationController) GetStats(c *gin.Context) {
	utils.JSONSuccess(c, http.StatusOK, rc.Manager.Stats())
}
