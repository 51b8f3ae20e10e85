package models

import (
	"time"
)

// Guest is the person a reservation is made for. UserID links the guest to
// the authenticated principal when one exists.
type Guest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	UserID *uint `gorm:"uniqueIndex" json:"userId,omitempty"`

	FirstName   string `gorm:"size:100;not null" json:"firstName"`
	LastName    string `gorm:"size:100;not null" json:"lastName"`
	Email       string `gorm:"size:255" json:"email"`
	Nationality string `gorm:"size:100" json:"nationality"`
	LoyaltyID   string `gorm:"size:50" json:"loyaltyId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (g Guest) FullName() string {
	switch {
	case g.FirstName == "":
		return g.LastName
	case g.LastName == "":
		return g.FirstName
	}
	return g.FirstName + " " + g.LastName
}
