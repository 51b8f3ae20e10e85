package services

import (
	"fmt"
	"testing"
	"time"

	"hotel-management/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, models.AutoMigrate(db))
	return db
}

func day(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

type fixture struct {
	db     *gorm.DB
	hotel  models.Hotel
	rooms  map[string]models.Room
	guests []models.Guest
}

// newFixture creates one hotel with rooms 101..103 and two guests.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupTestDB(t)

	hotel := models.Hotel{Name: "Test Hotel", City: "Bangkok", Country: "Thailand", Rating: 4}
	require.NoError(t, db.Create(&hotel).Error)

	f := &fixture{db: db, hotel: hotel, rooms: map[string]models.Room{}}
	for _, number := range []string{"101", "102", "103"} {
		room := models.Room{HotelID: hotel.ID, RoomNumber: number, RoomType: "Standard", Price: 1000, Capacity: 2, Status: models.RoomAvailable}
		require.NoError(t, db.Create(&room).Error)
		f.rooms[number] = room
	}

	f.guests = []models.Guest{
		{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		{FirstName: "Alan", LastName: "Turing"},
	}
	require.NoError(t, db.Create(&f.guests).Error)
	return f
}

func (f *fixture) roomID(number string) uint { return f.rooms[number].ID }

func (f *fixture) reload(t *testing.T, number string) models.Room {
	t.Helper()
	var room models.Room
	require.NoError(t, f.db.First(&room, f.roomID(number)).Error)
	return room
}

// insertConfirmed writes a Confirmed reservation and its attachment without
// touching the room row, leaving the room marked Available.
func (f *fixture) insertConfirmed(t *testing.T, number, in, out string) models.Reservation {
	t.Helper()
	room := f.rooms[number]
	res := models.Reservation{
		ReferenceCode: newReferenceCode(),
		GuestID:       f.guests[1].ID,
		BookingDate:   day(in),
		CheckInDate:   day(in),
		CheckOutDate:  day(out),
		NumGuests:     1,
		Status:        models.ReservationConfirmed,
	}
	require.NoError(t, f.db.Omit("Rooms").Create(&res).Error)
	require.NoError(t, f.db.Create(&models.ReservationRoom{
		ReservationID: res.ID, RoomID: room.ID, HotelID: room.HotelID, RoomNumber: room.RoomNumber,
	}).Error)
	return res
}

type counts struct {
	reservations, attachments, occupied int64
}

func (f *fixture) counts(t *testing.T) counts {
	t.Helper()
	var c counts
	require.NoError(t, f.db.Model(&models.Reservation{}).Count(&c.reservations).Error)
	require.NoError(t, f.db.Model(&models.ReservationRoom{}).Count(&c.attachments).Error)
	require.NoError(t, f.db.Model(&models.Room{}).Where("status = ?", models.RoomOccupied).Count(&c.occupied).Error)
	return c
}

func (f *fixture) assertRoomsConsistent(t *testing.T) {
	t.Helper()
	var rooms []models.Room
	require.NoError(t, f.db.Find(&rooms).Error)
	for _, r := range rooms {
		require.Truef(t, r.Consistent(), "room %s: status=%s reservation=%v", r.RoomNumber, r.Status, r.ReservationID)
	}
}
