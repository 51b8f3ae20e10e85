package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"hotel-management/models"

	"gorm.io/gorm"
)

// GuestResolver maps an authenticated user to their guest profile.
type GuestResolver interface {
	ResolveGuestID(ctx context.Context, userID uint) (uint, error)
}

type GuestService struct {
	DB *gorm.DB
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db}
}

// Create stores a guest. The pointer gets its ID filled in.
func (s *GuestService) Create(ctx context.Context, guest *models.Guest) error {
	guest.FirstName = strings.TrimSpace(guest.FirstName)
	guest.LastName = strings.TrimSpace(guest.LastName)
	guest.Email = strings.TrimSpace(guest.Email)
	if guest.FirstName == "" && guest.LastName == "" {
		return fmt.Errorf("guest name is required: %w", ErrValidation)
	}
	if guest.Email == "" {
		log.Printf("⚠️ guest %s has no email, confirmations will be skipped", guest.FullName())
	}

	guest.ID = 0
	if err := s.DB.WithContext(ctx).Create(guest).Error; err != nil {
		return writeErr("create guest", err)
	}
	return nil
}

func (s *GuestService) GetByID(ctx context.Context, id uint) (*models.Guest, error) {
	var guest models.Guest
	if err := s.DB.WithContext(ctx).First(&guest, id).Error; err != nil {
		return nil, lookup("guest", id, err)
	}
	return &guest, nil
}

// ResolveGuestID returns the guest profile linked to userID.
func (s *GuestService) ResolveGuestID(ctx context.Context, userID uint) (uint, error) {
	var guest models.Guest
	err := s.DB.WithContext(ctx).Select("id").Where("user_id = ?", userID).First(&guest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("guest profile for user %d: %w", userID, ErrNotFound)
	}
	if err != nil {
		return 0, persistence("resolve guest", err)
	}
	return guest.ID, nil
}
