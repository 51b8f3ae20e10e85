package controllers

import (
	"net/http"

	"hotel-management/models"
	"hotel-management/services"
	"hotel-management/utils"

	"github.com/gin-gonic/gin"
)

type GuestController struct {
	Guests *services.GuestService
}

func NewGuestController(guests *services.GuestService) *GuestController {
	return &GuestController{Guests: guests}
}

// POST /api/guests
func (gc *GuestController) CreateGuest(c *gin.Context) {
	var guest models.Guest
	if err := c.ShouldBindJSON(&guest); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}
	if err := gc.Guests.Create(c.Request.Context(), &guest); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, guest)
}

// GET /api/guests/:id
func (gc *GuestController) GetGuest(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	guest, err := gc.Guests.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}
