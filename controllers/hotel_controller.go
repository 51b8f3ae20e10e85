package controllers

import (
	"net/http"

	"hotel-management/models"
	"hotel-management/services"
	"hotel-management/utils"

	"github.com/gin-gonic/gin"
)

type HotelController struct {
	Hotels       *services.HotelService
	Availability *services.AvailabilityService
}

func NewHotelController(hotels *services.HotelService, availability *services.AvailabilityService) *HotelController {
	return &HotelController{Hotels: hotels, Availability: availability}
}

// GET /api/hotels?q=
func (hc *HotelController) ListHotels(c *gin.Context) {
	hotels, err := hc.Hotels.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotels)
}

// POST /api/hotels
func (hc *HotelController) CreateHotel(c *gin.Context) {
	var hotel models.Hotel
	if err := c.ShouldBindJSON(&hotel); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}
	if err := hc.Hotels.Create(c.Request.Context(), &hotel); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, hotel)
}

// GET /api/hotels/:id
func (hc *HotelController) GetHotel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	hotel, err := hc.Hotels.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotel)
}

// PATCH /api/hotels/:id
func (hc *HotelController) UpdateHotel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var upd services.HotelUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}
	hotel, err := hc.Hotels.Update(c.Request.Context(), id, upd)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotel)
}

// DELETE /api/hotels/:id
func (hc *HotelController) DeleteHotel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := hc.Hotels.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/hotels/:id/rooms
func (hc *HotelController) GetHotelRooms(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	rooms, err := hc.Hotels.Rooms(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// GET /api/hotels/:id/availability?check_in=2026-03-01&check_out=2026-03-03
func (hc *HotelController) GetAvailability(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	stay, err := services.ParseDateRange(c.Query("check_in"), c.Query("check_out"))
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if _, err := hc.Hotels.GetByID(ctx, id); err != nil {
		respondError(c, err)
		return
	}
	rooms, err := hc.Availability.FindAvailableRooms(ctx, id, stay)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"hotelId":  id,
		"checkIn":  stay.CheckIn.Format("2006-01-02"),
		"checkOut": stay.CheckOut.Format("2006-01-02"),
		"nights":   stay.Nights(),
		"rooms":    rooms,
	})
}
