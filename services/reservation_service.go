package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"hotel-management/metrics"
	"hotel-management/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReservationService creates reservations and moves them through their
// lifecycle. Every write runs inside a single gorm transaction.
type ReservationService struct {
	DB       *gorm.DB
	Metrics  *metrics.Metrics
	Notifier Notifier

	now func() time.Time
}

func NewReservationService(db *gorm.DB, m *metrics.Metrics, n Notifier) *ReservationService {
	return &ReservationService{DB: db, Metrics: m, Notifier: n, now: time.Now}
}

// ReservationDraft is what a caller supplies to book rooms.
type ReservationDraft struct {
	GuestID          uint
	CheckIn          time.Time
	CheckOut         time.Time
	NumGuests        int
	CreatedByStaffID *uint
	// BookingDate defaults to the current time when zero.
	BookingDate time.Time
}

// CreateReservation books roomIDs for the draft's guest and stay. Rooms are
// re-checked inside the transaction: they must still be Available and free of
// overlapping Confirmed reservations. Either the reservation, its room
// attachments and the room status changes all commit, or nothing does.
func (s *ReservationService) CreateReservation(ctx context.Context, draft ReservationDraft, roomIDs []uint) (*models.Reservation, error) {
	res, err := s.createReservation(ctx, draft, roomIDs)
	if err != nil {
		s.Metrics.ReservationFailed(failureReason(err))
		return nil, err
	}
	s.Metrics.ReservationCreated(len(res.Rooms))
	s.notify(ctx, res)
	return res, nil
}

func (s *ReservationService) createReservation(ctx context.Context, draft ReservationDraft, roomIDs []uint) (*models.Reservation, error) {
	stay, err := NewDateRange(draft.CheckIn, draft.CheckOut)
	if err != nil {
		return nil, err
	}
	ids := uniqueRoomIDs(roomIDs)
	if len(ids) == 0 {
		return nil, ErrNoRoomsSelected
	}
	if draft.NumGuests < 1 {
		return nil, ErrInvalidGuestCount
	}

	reservation := models.Reservation{
		ReferenceCode:    newReferenceCode(),
		GuestID:          draft.GuestID,
		CreatedByStaffID: draft.CreatedByStaffID,
		BookingDate:      draft.BookingDate,
		CheckInDate:      stay.CheckIn,
		CheckOutDate:     stay.CheckOut,
		NumGuests:        draft.NumGuests,
		Status:           models.ReservationConfirmed,
	}
	if reservation.BookingDate.IsZero() {
		reservation.BookingDate = s.clock().UTC()
	}

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var guest models.Guest
		if err := tx.Select("id").First(&guest, draft.GuestID).Error; err != nil {
			return lookup("guest", draft.GuestID, err)
		}

		rooms, err := lockAvailableRooms(tx, ids)
		if err != nil {
			return err
		}
		if len(rooms) != len(ids) {
			return fmt.Errorf("rooms %v: %w", missingRoomIDs(ids, rooms), ErrRoomUnavailable)
		}

		var conflicts int64
		if err := overlappingAttachments(tx, stay).
			Where("reservation_rooms.room_id IN ?", ids).
			Count(&conflicts).Error; err != nil {
			return persistence("check date conflicts", err)
		}
		if conflicts > 0 {
			return fmt.Errorf("%s: %w", stay, ErrDateConflict)
		}

		if err := tx.Omit("Rooms").Create(&reservation).Error; err != nil {
			return writeErr("create reservation", err)
		}

		attachments := make([]models.ReservationRoom, 0, len(rooms))
		for _, rm := range rooms {
			attachments = append(attachments, models.ReservationRoom{
				ReservationID: reservation.ID,
				RoomID:        rm.ID,
				HotelID:       rm.HotelID,
				RoomNumber:    rm.RoomNumber,
				RoomType:      rm.RoomType,
				Price:         rm.Price,
			})
		}
		if err := tx.Create(&attachments).Error; err != nil {
			return writeErr("attach rooms", err)
		}

		return occupyRooms(tx, ids, reservation.ID)
	})
	if txErr != nil {
		return nil, classify("create reservation", txErr)
	}

	created, err := s.GetReservation(ctx, reservation.ID)
	if err != nil {
		return nil, err
	}
	log.Printf("✅ reservation %s created: guest=%d rooms=%v stay=%s", created.ReferenceCode, created.GuestID, ids, stay)
	return created, nil
}

func (s *ReservationService) notify(ctx context.Context, res *models.Reservation) {
	if s.Notifier == nil {
		return
	}
	var guest models.Guest
	if err := s.DB.WithContext(ctx).First(&guest, res.GuestID).Error; err != nil {
		log.Printf("⚠️  reservation %s: cannot load guest for notification: %v", res.ReferenceCode, err)
		return
	}
	if err := s.Notifier.ReservationConfirmed(ctx, guest, *res); err != nil {
		log.Printf("⚠️  reservation %s: confirmation not sent: %v", res.ReferenceCode, err)
	}
}

func (s *ReservationService) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// failureReason is the metrics label for a failed booking.
func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidDateRange):
		return "invalid_date_range"
	case errors.Is(err, ErrRoomUnavailable):
		return "room_unavailable"
	case errors.Is(err, ErrDateConflict):
		return "date_conflict"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrNoRoomsSelected), errors.Is(err, ErrInvalidGuestCount):
		return "invalid_request"
	}
	return "persistence"
}

// uniqueRoomIDs drops zeros and duplicates and sorts the ids so concurrent
// bookings lock rows in the same order.
func uniqueRoomIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func missingRoomIDs(want []uint, got []models.Room) []uint {
	have := make(map[uint]struct{}, len(got))
	for _, r := range got {
		have[r.ID] = struct{}{}
	}
	var missing []uint
	for _, id := range want {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

func newReferenceCode() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "RSV-" + id[:12]
}
