package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"hotel-management/middleware"
	"hotel-management/models"
	"hotel-management/services"
	"hotel-management/utils"

	"github.com/gin-gonic/gin"
)

// maxGuestsPerReservation matches the booking form limit.
const maxGuestsPerReservation = 20

type ReservationController struct {
	Reservations *services.ReservationService
	Guests       services.GuestResolver

	now func() time.Time
}

func NewReservationController(reservations *services.ReservationService, guests services.GuestResolver) *ReservationController {
	return &ReservationController{Reservations: reservations, Guests: guests, now: time.Now}
}

// WithClock replaces the clock used for "today".
func (rc *ReservationController) WithClock(now func() time.Time) *ReservationController {
	rc.now = now
	return rc
}

// today is the current UTC calendar day.
func (rc *ReservationController) today() time.Time {
	y, m, d := rc.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CreateReservationRequest accepts either room_ids or a single room_id.
type CreateReservationRequest struct {
	GuestID     uint   `json:"guest_id"`
	CheckIn     string `json:"check_in" binding:"required"`
	CheckOut    string `json:"check_out" binding:"required"`
	RoomID      uint   `json:"room_id"`
	RoomIDs     []uint `json:"room_ids"`
	NumGuests   int    `json:"num_guests"`
	StaffID     *uint  `json:"staff_id"`
	BookingDate string `json:"booking_date"`
}

func (r CreateReservationRequest) roomIDs() []uint {
	ids := append([]uint(nil), r.RoomIDs...)
	if r.RoomID != 0 {
		ids = append(ids, r.RoomID)
	}
	return ids
}

func (r CreateReservationRequest) draft(guestID uint, today time.Time) (services.ReservationDraft, error) {
	in, err := services.ParseDate(r.CheckIn)
	if err != nil {
		return services.ReservationDraft{}, err
	}
	if y, m, d := in.Date(); time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Before(today) {
		return services.ReservationDraft{}, fmt.Errorf("check-in date %s cannot be in the past: %w", r.CheckIn, services.ErrInvalidDateRange)
	}
	out, err := services.ParseDate(r.CheckOut)
	if err != nil {
		return services.ReservationDraft{}, err
	}
	if r.NumGuests > maxGuestsPerReservation {
		return services.ReservationDraft{}, fmt.Errorf("at most %d guests: %w", maxGuestsPerReservation, services.ErrInvalidGuestCount)
	}

	d := services.ReservationDraft{
		GuestID:          guestID,
		CheckIn:          in,
		CheckOut:         out,
		NumGuests:        r.NumGuests,
		CreatedByStaffID: r.StaffID,
	}
	if r.BookingDate != "" {
		bd, err := time.Parse(time.RFC3339, r.BookingDate)
		if err != nil {
			return services.ReservationDraft{}, fmt.Errorf("booking_date %q: %w", r.BookingDate, services.ErrValidation)
		}
		d.BookingDate = bd
	}
	return d, nil
}

// POST /api/reservations
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}
	if req.GuestID == 0 {
		badRequest(c, "guest_id is required")
		return
	}
	rc.create(c, req, req.GuestID)
}

// POST /api/me/reservations books for the caller's own guest profile.
func (rc *ReservationController) CreateMyReservation(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}
	guestID, err := rc.Guests.ResolveGuestID(c.Request.Context(), c.GetUint(middleware.UserIDKey))
	if err != nil {
		respondError(c, err)
		return
	}
	req.StaffID = nil
	rc.create(c, req, guestID)
}

func (rc *ReservationController) create(c *gin.Context, req CreateReservationRequest, guestID uint) {
	draft, err := req.draft(guestID, rc.today())
	if err != nil {
		respondError(c, err)
		return
	}
	res, err := rc.Reservations.CreateReservation(c.Request.Context(), draft, req.roomIDs())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, res)
}

// GET /api/reservations?guest_id=
func (rc *ReservationController) ListReservations(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		list []models.Reservation
		err  error
	)
	if raw := c.Query("guest_id"); raw != "" {
		guestID, perr := strconv.ParseUint(raw, 10, 64)
		if perr != nil {
			badRequest(c, "invalid guest_id")
			return
		}
		list, err = rc.Reservations.ListByGuest(ctx, uint(guestID))
	} else {
		list, err = rc.Reservations.ListReservations(ctx)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// GET /api/hotels/:id/reservations?active=true
func (rc *ReservationController) ListHotelReservations(c *gin.Context) {
	hotelID, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var (
		list []models.Reservation
		err  error
	)
	if active, _ := strconv.ParseBool(c.Query("active")); active {
		list, err = rc.Reservations.ListActiveByHotel(ctx, hotelID, rc.now())
	} else {
		list, err = rc.Reservations.ListByHotel(ctx, hotelID)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// GET /api/reservations/:id
func (rc *ReservationController) GetReservation(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	res, err := rc.Reservations.GetReservation(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res)
}

// POST /api/reservations/:id/cancel
func (rc *ReservationController) CancelReservation(c *gin.Context) {
	rc.transition(c, rc.Reservations.CancelReservation)
}

// POST /api/reservations/:id/checkout
func (rc *ReservationController) CheckOutReservation(c *gin.Context) {
	rc.transition(c, rc.Reservations.CheckOutReservation)
}

func (rc *ReservationController) transition(c *gin.Context, apply func(ctx context.Context, id uint) error) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := apply(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	res, err := rc.Reservations.GetReservation(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res)
}

// GET /api/me/reservations
func (rc *ReservationController) ListMyReservations(c *gin.Context) {
	ctx := c.Request.Context()
	guestID, err := rc.Guests.ResolveGuestID(ctx, c.GetUint(middleware.UserIDKey))
	if err != nil {
		respondError(c, err)
		return
	}
	list, err := rc.Reservations.ListByGuest(ctx, guestID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// POST /api/me/reservations/:id/cancel only cancels the caller's own
// reservations.
func (rc *ReservationController) CancelMyReservation(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	guestID, err := rc.Guests.ResolveGuestID(ctx, c.GetUint(middleware.UserIDKey))
	if err != nil {
		respondError(c, err)
		return
	}
	res, err := rc.Reservations.GetReservation(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if res.GuestID != guestID {
		utils.JSONError(c, http.StatusForbidden, "error.forbidden", "reservation belongs to another guest")
		return
	}
	rc.transition(c, rc.Reservations.CancelReservation)
}
