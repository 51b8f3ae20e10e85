package config

import (
	"log"

	"hotel-management/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func uintPtr(v uint) *uint { return &v }

// SeedDemoData inserts a couple of hotels with rooms and a demo guest. It does
// nothing once any hotel exists.
func SeedDemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Hotel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Demo data already seeded")
		return nil
	}

	hotels := []models.Hotel{
		{
			Name: "Riverside Grand", Address: "1 Charoen Krung Rd", City: "Bangkok", Country: "Thailand",
			PostalCode: "10500", Phone: "+66 2 000 0000", Rating: 4.6,
			Description: "Riverside hotel close to the old town.",
			Amenities:   datatypes.JSON(`["Free WiFi","Pool","Spa"]`),
			Rooms: []models.Room{
				{RoomNumber: "101", RoomType: "Standard", Price: 1800, Capacity: 2, Size: 24},
				{RoomNumber: "102", RoomType: "Standard", Price: 1800, Capacity: 2, Size: 24},
				{RoomNumber: "201", RoomType: "Deluxe", Price: 2900, Capacity: 3, Size: 32},
				{RoomNumber: "301", RoomType: "Suite", Price: 5200, Capacity: 4, Size: 55},
			},
		},
		{
			Name: "Mountain View Lodge", Address: "88 Nimman Rd", City: "Chiang Mai", Country: "Thailand",
			PostalCode: "50200", Phone: "+66 53 000 000", Rating: 4.2,
			Description: "Quiet lodge with mountain views.",
			Amenities:   datatypes.JSON(`["Free WiFi","Breakfast"]`),
			Rooms: []models.Room{
				{RoomNumber: "A1", RoomType: "Superior", Price: 1500, Capacity: 2, Size: 28},
				{RoomNumber: "A2", RoomType: "Connecting", Price: 2600, Capacity: 5, Size: 45},
			},
		},
	}
	for i := range hotels {
		for j := range hotels[i].Rooms {
			hotels[i].Rooms[j].Status = models.RoomAvailable
		}
	}

	guests := []models.Guest{
		{UserID: uintPtr(1), FirstName: "Demo", LastName: "Guest", Email: "guest@hotel.local", Nationality: "Thai"},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&hotels).Error; err != nil {
			return err
		}
		if err := tx.Create(&guests).Error; err != nil {
			return err
		}
		log.Println("Demo hotels, rooms and guest seeded")
		return nil
	})
}
