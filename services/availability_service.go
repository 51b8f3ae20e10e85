package services

import (
	"context"

	"hotel-management/metrics"
	"hotel-management/models"

	"gorm.io/gorm"
)

// AvailabilityService answers "which rooms of this hotel are free for these
// dates". It never writes.
type AvailabilityService struct {
	DB      *gorm.DB
	Metrics *metrics.Metrics
}

func NewAvailabilityService(db *gorm.DB, m *metrics.Metrics) *AvailabilityService {
	return &AvailabilityService{DB: db, Metrics: m}
}

// FindAvailableRooms returns rooms of hotelID that are marked Available and
// are not attached to a Confirmed reservation overlapping stay. The range is
// not re-validated; build it with NewDateRange.
func (s *AvailabilityService) FindAvailableRooms(ctx context.Context, hotelID uint, stay DateRange) ([]models.Room, error) {
	db := s.DB.WithContext(ctx)

	var rooms []models.Room
	if err := db.
		Where("hotel_id = ? AND status = ?", hotelID, models.RoomAvailable).
		Where("id NOT IN (?)", bookedRoomIDs(db, stay)).
		Order("room_number").
		Find(&rooms).Error; err != nil {
		return nil, persistence("find available rooms", err)
	}

	s.Metrics.AvailabilitySearch(len(rooms))
	return rooms, nil
}

// bookedRoomIDs selects the ids of rooms attached to Confirmed reservations
// whose stay overlaps the given range.
func bookedRoomIDs(db *gorm.DB, stay DateRange) *gorm.DB {
	return overlappingAttachments(db, stay).Select("reservation_rooms.room_id")
}

// overlappingAttachments is the single overlap predicate shared by the
// availability query and the booking conflict check:
// existing.check_in < stay.check_out AND existing.check_out > stay.check_in.
func overlappingAttachments(db *gorm.DB, stay DateRange) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Table("reservation_rooms").
		Joins("JOIN reservations ON reservations.id = reservation_rooms.reservation_id").
		Where("reservations.status = ?", models.ReservationConfirmed).
		Where("reservations.check_in_date < ? AND reservations.check_out_date > ?", stay.CheckOut, stay.CheckIn)
}
