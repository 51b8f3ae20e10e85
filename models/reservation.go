package models

import (
	"time"
)

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "Pending"
	ReservationConfirmed ReservationStatus = "Confirmed"
	ReservationCancelled ReservationStatus = "Cancelled"
	ReservationCompleted ReservationStatus = "Completed"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCancelled, ReservationCompleted:
		return true
	}
	return false
}

// Terminal reports whether no further lifecycle transition is expected.
func (s ReservationStatus) Terminal() bool {
	return s == ReservationCancelled || s == ReservationCompleted
}

type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ReferenceCode    string `gorm:"column:reference_code;size:64;uniqueIndex" json:"referenceCode"`
	GuestID          uint   `gorm:"column:guest_id;not null;index" json:"guestId"`
	CreatedByStaffID *uint  `gorm:"column:created_by_staff_id" json:"createdByStaffId,omitempty"`

	BookingDate  time.Time `gorm:"column:booking_date" json:"bookingDate"`
	CheckInDate  time.Time `gorm:"column:check_in_date;not null;index" json:"checkInDate"`
	CheckOutDate time.Time `gorm:"column:check_out_date;not null;index" json:"checkOutDate"`
	NumGuests    int       `gorm:"column:num_guests" json:"numGuests"`

	Status ReservationStatus `gorm:"column:status;size:20;not null;default:Pending;index" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Rooms []ReservationRoom `gorm:"foreignKey:ReservationID" json:"rooms"`
}

// RoomIDs lists the ids of the attached rooms in attachment order.
func (r Reservation) RoomIDs() []uint {
	ids := make([]uint, 0, len(r.Rooms))
	for _, rr := range r.Rooms {
		ids = append(ids, rr.RoomID)
	}
	return ids
}

func (r Reservation) Nights() int {
	if !r.CheckOutDate.After(r.CheckInDate) {
		return 0
	}
	return int(r.CheckOutDate.Sub(r.CheckInDate).Hours() / 24)
}
