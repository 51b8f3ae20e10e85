package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Hotel struct {
	gorm.Model

	Name        string  `gorm:"size:255;not null" json:"name"`
	Address     string  `gorm:"size:500" json:"address"`
	City        string  `gorm:"size:100;index" json:"city"`
	Country     string  `gorm:"size:100;index" json:"country"`
	PostalCode  string  `gorm:"size:20" json:"postalCode"`
	Phone       string  `gorm:"size:20" json:"phone"`
	Rating      float64 `json:"rating"`
	ImageURL    string  `gorm:"type:text" json:"imageUrl"`
	Description string  `gorm:"type:text" json:"description"`

	// list of strings, e.g. ["Free WiFi","Spa"]
	Amenities datatypes.JSON `json:"amenities,omitempty"`

	Rooms []Room `gorm:"foreignKey:HotelID" json:"rooms,omitempty"`
}
