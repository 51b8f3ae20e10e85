package services

import (
	"context"
	"fmt"
	"strings"

	"hotel-management/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HotelService struct {
	DB *gorm.DB
}

func NewHotelService(db *gorm.DB) *HotelService {
	return &HotelService{DB: db}
}

func (s *HotelService) Create(ctx context.Context, hotel *models.Hotel) error {
	hotel.Name = strings.TrimSpace(hotel.Name)
	if hotel.Name == "" {
		return fmt.Errorf("hotel name is required: %w", ErrValidation)
	}
	if hotel.Rating < 0 || hotel.Rating > 5 {
		return fmt.Errorf("rating %.1f outside 0..5: %w", hotel.Rating, ErrValidation)
	}
	hotel.ID = 0
	hotel.Rooms = nil
	if err := s.DB.WithContext(ctx).Create(hotel).Error; err != nil {
		return writeErr("create hotel", err)
	}
	return nil
}

// HotelUpdate carries the hotel fields that may change. Nil fields are left
// untouched.
type HotelUpdate struct {
	Name        *string         `json:"name"`
	Address     *string         `json:"address"`
	City        *string         `json:"city"`
	Country     *string         `json:"country"`
	PostalCode  *string         `json:"postalCode"`
	Phone       *string         `json:"phone"`
	Rating      *float64        `json:"rating"`
	ImageURL    *string         `json:"imageUrl"`
	Description *string         `json:"description"`
	Amenities   *datatypes.JSON `json:"amenities"`
}

func (u HotelUpdate) columns() (map[string]interface{}, error) {
	cols := map[string]interface{}{}
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			return nil, fmt.Errorf("hotel name is required: %w", ErrValidation)
		}
		cols["name"] = name
	}
	if u.Rating != nil {
		if *u.Rating < 0 || *u.Rating > 5 {
			return nil, fmt.Errorf("rating %.1f outside 0..5: %w", *u.Rating, ErrValidation)
		}
		cols["rating"] = *u.Rating
	}
	for col, v := range map[string]*string{
		"address": u.Address, "city": u.City, "country": u.Country, "postal_code": u.PostalCode,
		"phone": u.Phone, "image_url": u.ImageURL, "description": u.Description,
	} {
		if v != nil {
			cols[col] = strings.TrimSpace(*v)
		}
	}
	if u.Amenities != nil {
		cols["amenities"] = *u.Amenities
	}
	return cols, nil
}

func (s *HotelService) Update(ctx context.Context, id uint, upd HotelUpdate) (*models.Hotel, error) {
	cols, err := upd.columns()
	if err != nil {
		return nil, err
	}
	hotel, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(cols) > 0 {
		if err := s.DB.WithContext(ctx).Model(&models.Hotel{}).Where("id = ?", hotel.ID).Updates(cols).Error; err != nil {
			return nil, writeErr("update hotel", err)
		}
	}
	return s.GetByID(ctx, id)
}

// Delete soft-deletes a hotel together with its rooms. It is refused while any
// room of the hotel is occupied.
func (s *HotelService) Delete(ctx context.Context, id uint) error {
	return classify("delete hotel", s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var hotel models.Hotel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&hotel, id).Error; err != nil {
			return lookup("hotel", id, err)
		}

		var rooms []models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("hotel_id = ?", id).
			Find(&rooms).Error; err != nil {
			return persistence("lock hotel rooms", err)
		}
		for _, room := range rooms {
			if room.Status == models.RoomOccupied || room.ReservationID != nil {
				return fmt.Errorf("hotel %d room %s: %w", id, room.RoomNumber, ErrRoomOccupied)
			}
		}

		if err := tx.Where("hotel_id = ?", id).Delete(&models.Room{}).Error; err != nil {
			return persistence("delete hotel rooms", err)
		}
		if err := tx.Delete(&hotel).Error; err != nil {
			return persistence("delete hotel", err)
		}
		return nil
	}))
}

// List returns all hotels, best rated first.
func (s *HotelService) List(ctx context.Context) ([]models.Hotel, error) {
	var hotels []models.Hotel
	if err := s.DB.WithContext(ctx).Order("rating DESC, name").Find(&hotels).Error; err != nil {
		return nil, persistence("list hotels", err)
	}
	return hotels, nil
}

// Search matches term against name, city and country. An empty term lists
// everything.
func (s *HotelService) Search(ctx context.Context, term string) ([]models.Hotel, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return s.List(ctx)
	}
	like := "%" + term + "%"

	var hotels []models.Hotel
	if err := s.DB.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(city) LIKE ? OR LOWER(country) LIKE ?", like, like, like).
		Order("rating DESC, name").
		Find(&hotels).Error; err != nil {
		return nil, persistence("search hotels", err)
	}
	return hotels, nil
}

func (s *HotelService) GetByID(ctx context.Context, id uint) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := s.DB.WithContext(ctx).First(&hotel, id).Error; err != nil {
		return nil, lookup("hotel", id, err)
	}
	return &hotel, nil
}

// Rooms returns the rooms of an existing hotel ordered by room number.
func (s *HotelService) Rooms(ctx context.Context, hotelID uint) ([]models.Room, error) {
	if _, err := s.GetByID(ctx, hotelID); err != nil {
		return nil, err
	}
	var rooms []models.Room
	if err := s.DB.WithContext(ctx).
		Where("hotel_id = ?", hotelID).
		Order("room_number").
		Find(&rooms).Error; err != nil {
		return nil, persistence("list hotel rooms", err)
	}
	return rooms, nil
}
