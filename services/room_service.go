package services

import (
	"context"
	"fmt"
	"strings"

	"hotel-management/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RoomService owns the room inventory. Status and reservation fields are only
// changed by the reservation transaction and lifecycle operations.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// RoomUpdate carries the descriptive fields a room may change. Nil fields are
// left untouched.
type RoomUpdate struct {
	RoomNumber *string  `json:"roomNumber"`
	RoomType   *string  `json:"roomType"`
	Price      *float64 `json:"price"`
	Capacity   *int     `json:"capacity"`
	Size       *float64 `json:"size"`
	ImageURL   *string  `json:"imageUrl"`
}

func (u RoomUpdate) columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if u.RoomNumber != nil {
		cols["room_number"] = strings.TrimSpace(*u.RoomNumber)
	}
	if u.RoomType != nil {
		cols["room_type"] = strings.TrimSpace(*u.RoomType)
	}
	if u.Price != nil {
		cols["price"] = *u.Price
	}
	if u.Capacity != nil {
		cols["capacity"] = *u.Capacity
	}
	if u.Size != nil {
		cols["size"] = *u.Size
	}
	if u.ImageURL != nil {
		cols["image_url"] = *u.ImageURL
	}
	return cols
}

// Create adds a room to an existing hotel. New rooms are always Available.
func (s *RoomService) Create(ctx context.Context, room *models.Room) error {
	room.RoomNumber = strings.TrimSpace(room.RoomNumber)
	if room.RoomNumber == "" {
		return fmt.Errorf("room number is required: %w", ErrValidation)
	}

	db := s.DB.WithContext(ctx)
	var hotel models.Hotel
	if err := db.Select("id").First(&hotel, room.HotelID).Error; err != nil {
		return lookup("hotel", room.HotelID, err)
	}

	room.ID = 0
	room.Status = models.RoomAvailable
	room.ReservationID = nil
	if err := db.Create(room).Error; err != nil {
		return writeErr("create room", err)
	}
	return nil
}

func (s *RoomService) GetByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, lookup("room", id, err)
	}
	return &room, nil
}

// ListByHotel returns every room of a hotel ordered by room number.
func (s *RoomService) ListByHotel(ctx context.Context, hotelID uint) ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.WithContext(ctx).
		Where("hotel_id = ?", hotelID).
		Order("room_number").
		Find(&rooms).Error; err != nil {
		return nil, persistence("list rooms", err)
	}
	return rooms, nil
}

func (s *RoomService) Update(ctx context.Context, id uint, upd RoomUpdate) (*models.Room, error) {
	db := s.DB.WithContext(ctx)
	var room models.Room
	if err := db.First(&room, id).Error; err != nil {
		return nil, lookup("room", id, err)
	}

	cols := upd.columns()
	if len(cols) > 0 {
		if err := db.Model(&room).Updates(cols).Error; err != nil {
			return nil, writeErr("update room", err)
		}
	}
	return s.GetByID(ctx, id)
}

// Delete soft-deletes a room. Occupied rooms cannot be deleted.
func (s *RoomService) Delete(ctx context.Context, id uint) error {
	return classify("delete room", s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, id).Error; err != nil {
			return lookup("room", id, err)
		}
		if room.Status == models.RoomOccupied || room.ReservationID != nil {
			return fmt.Errorf("room %d: %w", id, ErrRoomOccupied)
		}
		if err := tx.Delete(&room).Error; err != nil {
			return persistence("delete room", err)
		}
		return nil
	}))
}

// ---------------------------
// Transaction helpers
// ---------------------------

// lockAvailableRooms re-reads the requested rooms under a row lock, keeping
// only those still Available.
func lockAvailableRooms(tx *gorm.DB, ids []uint) ([]models.Room, error) {
	var rooms []models.Room
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ? AND status = ?", ids, models.RoomAvailable).
		Order("id").
		Find(&rooms).Error; err != nil {
		return nil, persistence("lock rooms", err)
	}
	return rooms, nil
}

// occupyRooms binds rooms to a reservation. The update only matches rooms
// that are still free, so a short row count means another booking got there
// first.
func occupyRooms(tx *gorm.DB, ids []uint, reservationID uint) error {
	res := tx.Model(&models.Room{}).
		Where("id IN ? AND status = ? AND reservation_id IS NULL", ids, models.RoomAvailable).
		Updates(map[string]interface{}{
			"status":         models.RoomOccupied,
			"reservation_id": reservationID,
		})
	if res.Error != nil {
		return persistence("occupy rooms", res.Error)
	}
	if res.RowsAffected != int64(len(ids)) {
		return fmt.Errorf("occupied %d of %d rooms: %w", res.RowsAffected, len(ids), ErrRoomUnavailable)
	}
	return nil
}

// releaseRooms frees the rooms still held by the given reservation. Rooms
// already released, or since taken by another reservation, are left alone.
func releaseRooms(tx *gorm.DB, ids []uint, reservationID uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Model(&models.Room{}).
		Where("id IN ? AND reservation_id = ?", ids, reservationID).
		Updates(map[string]interface{}{
			"status":         models.RoomAvailable,
			"reservation_id": nil,
		}).Error; err != nil {
		return persistence("release rooms", err)
	}
	return nil
}
