package controllers

import (
	"net/http"

	"hotel-management/models"
	"hotel-management/services"
	"hotel-management/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	Rooms *services.RoomService
}

func NewRoomController(rooms *services.RoomService) *RoomController {
	return &RoomController{Rooms: rooms}
}

// CreateRoomRequest has no status fields: rooms start Available and only
// reservations change that.
type CreateRoomRequest struct {
	HotelID    uint    `json:"hotelId" binding:"required"`
	RoomNumber string  `json:"roomNumber" binding:"required"`
	RoomType   string  `json:"roomType"`
	Price      float64 `json:"price"`
	Capacity   int     `json:"capacity"`
	Size       float64 `json:"size"`
	ImageURL   string  `json:"imageUrl"`
}

// POST /api/rooms
func (rc *RoomController) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}

	room := models.Room{
		HotelID:    req.HotelID,
		RoomNumber: req.RoomNumber,
		RoomType:   req.RoomType,
		Price:      req.Price,
		Capacity:   req.Capacity,
		Size:       req.Size,
		ImageURL:   req.ImageURL,
	}
	if err := rc.Rooms.Create(c.Request.Context(), &room); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

// GET /api/rooms/:id
func (rc *RoomController) GetRoom(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	room, err := rc.Rooms.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// PATCH /api/rooms/:id
func (rc *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var upd services.RoomUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}
	room, err := rc.Rooms.Update(c.Request.Context(), id, upd)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// DELETE /api/rooms/:id
func (rc *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := rc.Rooms.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
