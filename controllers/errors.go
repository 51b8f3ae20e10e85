package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"hotel-management/services"
	"hotel-management/utils"

	"github.com/gin-gonic/gin"
)

type errorKind struct {
	target error
	status int
	code   string
}

var errorKinds = []errorKind{
	{services.ErrInvalidDateRange, http.StatusBadRequest, "error.invalidDateRange"},
	{services.ErrNoRoomsSelected, http.StatusBadRequest, "error.noRoomsSelected"},
	{services.ErrInvalidGuestCount, http.StatusBadRequest, "error.invalidGuestCount"},
	{services.ErrValidation, http.StatusBadRequest, "error.validation"},
	{services.ErrNotFound, http.StatusNotFound, "error.notFound"},
	{services.ErrRoomUnavailable, http.StatusConflict, "error.roomUnavailable"},
	{services.ErrDateConflict, http.StatusConflict, "error.dateConflict"},
	{services.ErrInvalidTransition, http.StatusConflict, "error.invalidTransition"},
	{services.ErrRoomOccupied, http.StatusConflict, "error.roomOccupied"},
	{services.ErrDuplicate, http.StatusConflict, "error.duplicate"},
}

// respondError maps a service error onto the JSON error envelope. Storage
// failures are logged and reported without their details.
func respondError(c *gin.Context, err error) {
	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			utils.JSONError(c, k.status, k.code, err.Error())
			return
		}
	}
	log.Printf("❌ %s %s: %v", c.Request.Method, c.FullPath(), err)
	utils.JSONError(c, http.StatusInternalServerError, "error.persistence", "internal error, please retry")
}

func badRequest(c *gin.Context, message string) {
	utils.JSONError(c, http.StatusBadRequest, "error.badRequest", message)
}

// paramID reads a positive numeric path parameter, answering 400 otherwise.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
