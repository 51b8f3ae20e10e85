package services

import (
	"context"
	"fmt"
	"log"

	"hotel-management/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CancelReservation marks a reservation Cancelled and releases its rooms.
// Cancelling an already cancelled reservation succeeds and changes nothing.
// A Completed reservation cannot be cancelled: ErrInvalidTransition.
func (s *ReservationService) CancelReservation(ctx context.Context, id uint) error {
	return s.finish(ctx, id, models.ReservationCancelled)
}

// CheckOutReservation marks a reservation Completed and releases its rooms.
// Repeating it is harmless. A Cancelled reservation cannot be checked out:
// ErrInvalidTransition.
func (s *ReservationService) CheckOutReservation(ctx context.Context, id uint) error {
	return s.finish(ctx, id, models.ReservationCompleted)
}

func (s *ReservationService) finish(ctx context.Context, id uint, to models.ReservationStatus) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var res models.Reservation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Rooms").
			First(&res, id).Error; err != nil {
			return lookup("reservation", id, err)
		}

		if res.Status.Terminal() && res.Status != to {
			return fmt.Errorf("reservation %d is %s, cannot become %s: %w", id, res.Status, to, ErrInvalidTransition)
		}

		if res.Status != to {
			if err := tx.Model(&models.Reservation{}).Where("id = ?", res.ID).Update("status", to).Error; err != nil {
				return persistence("update reservation status", err)
			}
		}

		return releaseRooms(tx, res.RoomIDs(), res.ID)
	})
	if err != nil {
		return classify("finish reservation", err)
	}

	s.Metrics.Transition(string(to))
	log.Printf("✅ reservation %d -> %s", id, to)
	return nil
}
