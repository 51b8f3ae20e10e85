package models

import "time"

// ReservationRoom attaches a room to a reservation and keeps a snapshot of the
// room as it was when booked. Rows live as long as the reservation.
type ReservationRoom struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	ReservationID uint `gorm:"column:reservation_id;not null;uniqueIndex:idx_reservation_room" json:"reservationId"`
	RoomID        uint `gorm:"column:room_id;not null;uniqueIndex:idx_reservation_room;index" json:"roomId"`

	HotelID    uint    `gorm:"column:hotel_id;index" json:"hotelId"`
	RoomNumber string  `gorm:"column:room_number;size:20" json:"roomNumber"`
	RoomType   string  `gorm:"column:room_type;size:50" json:"roomType"`
	Price      float64 `gorm:"column:price" json:"price"`

	CreatedAt time.Time `json:"createdAt"`
}
