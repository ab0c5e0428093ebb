package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hotel-tracker/models"
	"hotel-tracker/services"
	"hotel-tracker/utils"
)

type RoomController struct {
	Manager *services.HotelManager
}

func NewRoomController(manager *services.HotelManager) *RoomController {
	return &RoomController{Manager: manager}
}

// CreateRoomRequest is the body of POST /api/rooms. Price is a pointer so
// that a missing price is told apart from a free room.
type CreateRoomRequest struct {
	RoomID    string   `json:"roomId" binding:"required"`
	Category  string   `json:"category" binding:"required"`
	Price     *float64 `json:"price" binding:"required,gte=0"`
	Available *bool    `json:"available"`
}

// ----------------------------------------------------
// GET /api/rooms[?available=true]
// ----------------------------------------------------

func (rc *RoomController) GetRooms(c *gin.Context) {
	if c.Query("available") == "true" {
		utils.JSONSuccess(c, http.StatusOK, rc.Manager.ListAvailableRooms())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rc.Manager.ListRooms())
}

// ----------------------------------------------------
// GET /api/rooms/:id
// ----------------------------------------------------

func (rc *RoomController) GetRoom(c *gin.Context) {
	room, ok := rc.Manager.FindRoom(c.Param("id"))
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "Room not found.")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// ----------------------------------------------------
// POST /api/rooms
// ----------------------------------------------------

func (rc *RoomController) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Please enter Room ID, category and a valid price.")
		return
	}

	room := models.Room{
		RoomID:    strings.TrimSpace(req.RoomID),
		Category:  strings.TrimSpace(req.Category),
		Price:     *req.Price,
		Available: true,
	}
	if room.RoomID == "" || room.Category == "" {
		utils.JSONError(c, http.StatusBadRequest, "Please enter Room ID, category and a valid price.")
		return
	}
	if req.Available != nil {
		room.Available = *req.Available
	}

	if err := rc.Manager.AddRoom(c.Request.Context(), room); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

// ----------------------------------------------------
// DELETE /api/rooms/:id
// ----------------------------------------------------

func (rc *RoomController) DeleteRoom(c *gin.Context) {
	if err := rc.Manager.RemoveRoom(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"roomId": c.Param("id"), "message": "Room removed."})
}
