package models

import (
	"gorm.io/gorm"
)

// RoomStatus is the occupancy state of a room.
type RoomStatus string

const (
	RoomAvailable RoomStatus = "Available"
	RoomOccupied  RoomStatus = "Occupied"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomOccupied:
		return true
	}
	return false
}

// Room belongs to exactly one hotel. Status and ReservationID change together:
// a room is Occupied exactly when ReservationID is set.
type Room struct {
	gorm.Model

	HotelID    uint   `json:"hotelId" gorm:"column:hotel_id;not null;uniqueIndex:idx_hotel_room_number"`
	RoomNumber string `json:"roomNumber" gorm:"column:room_number;type:varchar(20);not null;uniqueIndex:idx_hotel_room_number"`
	RoomType   string `json:"roomType" gorm:"column:room_type;type:varchar(50)"`

	Price    float64 `json:"price" gorm:"column:price"`
	Capacity int     `json:"capacity" gorm:"column:capacity"`
	Size     float64 `json:"size" gorm:"column:size"`
	ImageURL string  `json:"imageUrl" gorm:"column:image_url;type:text"`

	Status        RoomStatus `json:"status" gorm:"column:status;size:20;not null;default:Available;index"`
	ReservationID *uint      `json:"reservationId,omitempty" gorm:"column:reservation_id;index"`
}

// Consistent reports whether the status/reservation pair holds its invariant.
func (r Room) Consistent() bool {
	return (r.Status == RoomOccupied) == (r.ReservationID != nil)
}
