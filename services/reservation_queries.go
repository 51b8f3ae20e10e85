package services

import (
	"context"
	"time"

	"hotel-management/models"

	"gorm.io/gorm"
)

// withRooms preloads the attachment set in a stable order.
func withRooms(db *gorm.DB) *gorm.DB {
	return db.Preload("Rooms", func(db *gorm.DB) *gorm.DB {
		return db.Order("reservation_rooms.room_id")
	})
}

func (s *ReservationService) GetReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	var res models.Reservation
	if err := withRooms(s.DB.WithContext(ctx)).First(&res, id).Error; err != nil {
		return nil, lookup("reservation", id, err)
	}
	return &res, nil
}

// ListReservations returns every reservation, newest booking first.
func (s *ReservationService) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	var list []models.Reservation
	if err := withRooms(s.DB.WithContext(ctx)).
		Order("booking_date DESC, id DESC").
		Find(&list).Error; err != nil {
		return nil, persistence("list reservations", err)
	}
	return list, nil
}

func (s *ReservationService) ListByGuest(ctx context.Context, guestID uint) ([]models.Reservation, error) {
	var list []models.Reservation
	if err := withRooms(s.DB.WithContext(ctx)).
		Where("guest_id = ?", guestID).
		Order("booking_date DESC, id DESC").
		Find(&list).Error; err != nil {
		return nil, persistence("list reservations by guest", err)
	}
	return list, nil
}

// ListByHotel returns reservations with at least one room in the hotel,
// latest check-in first.
func (s *ReservationService) ListByHotel(ctx context.Context, hotelID uint) ([]models.Reservation, error) {
	var list []models.Reservation
	if err := withRooms(s.DB.WithContext(ctx)).
		Where("id IN (?)", s.hotelReservationIDs(ctx, hotelID)).
		Order("check_in_date DESC, id DESC").
		Find(&list).Error; err != nil {
		return nil, persistence("list reservations by hotel", err)
	}
	return list, nil
}

// ListActiveByHotel returns Confirmed reservations of the hotel that have not
// checked out before today, soonest check-out first.
func (s *ReservationService) ListActiveByHotel(ctx context.Context, hotelID uint, today time.Time) ([]models.Reservation, error) {
	var list []models.Reservation
	if err := withRooms(s.DB.WithContext(ctx)).
		Where("id IN (?)", s.hotelReservationIDs(ctx, hotelID)).
		Where("status = ? AND check_out_date >= ?", models.ReservationConfirmed, dateOnly(today)).
		Order("check_out_date, id").
		Find(&list).Error; err != nil {
		return nil, persistence("list active reservations", err)
	}
	return list, nil
}

func (s *ReservationService) hotelReservationIDs(ctx context.Context, hotelID uint) *gorm.DB {
	return s.DB.WithContext(ctx).
		Model(&models.ReservationRoom{}).
		Distinct("reservation_id").
		Where("hotel_id = ?", hotelID)
}
