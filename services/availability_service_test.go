package services

import (
	"context"
	"testing"

	"hotel-management/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roomNumbers(rooms []models.Room) []string {
	out := make([]string, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.RoomNumber)
	}
	return out
}

func mustRange(t *testing.T, in, out string) DateRange {
	t.Helper()
	r, err := NewDateRange(day(in), day(out))
	require.NoError(t, err)
	return r
}

func TestFindAvailableRoomsHalfOpenBoundary(t *testing.T) {
	f := newFixture(t)
	svc := NewAvailabilityService(f.db, nil)
	ctx := context.Background()
	f.insertConfirmed(t, "102", "2024-07-01", "2024-07-10")

	rooms, err := svc.FindAvailableRooms(ctx, f.hotel.ID, mustRange(t, "2024-07-05", "2024-07-08"))
	require.NoError(t, err)
	assert.Equal(t, []string{"101", "103"}, roomNumbers(rooms))

	rooms, err = svc.FindAvailableRooms(ctx, f.hotel.ID, mustRange(t, "2024-07-10", "2024-07-15"))
	require.NoError(t, err)
	assert.Equal(t, []string{"101", "102", "103"}, roomNumbers(rooms))

	rooms, err = svc.FindAvailableRooms(ctx, f.hotel.ID, mustRange(t, "2024-06-25", "2024-07-01"))
	require.NoError(t, err)
	assert.Contains(t, roomNumbers(rooms), "102")
}

func TestFindAvailableRoomsExcludesOccupied(t *testing.T) {
	f := newFixture(t)
	avail := NewAvailabilityService(f.db, nil)
	reservations := NewReservationService(f.db, nil, nil)
	ctx := context.Background()

	_, err := reservations.CreateReservation(ctx, draftFor(f.guests[0].ID, "2024-06-01", "2024-06-05"), []uint{f.roomID("101")})
	require.NoError(t, err)

	// dates far from the stay still exclude the occupied room
	rooms, err := avail.FindAvailableRooms(ctx, f.hotel.ID, mustRange(t, "2025-01-01", "2025-01-02"))
	require.NoError(t, err)
	assert.Equal(t, []string{"102", "103"}, roomNumbers(rooms))
	for _, r := range rooms {
		assert.Equal(t, models.RoomAvailable, r.Status)
	}
}

func TestFindAvailableRoomsIgnoresInactiveReservations(t *testing.T) {
	f := newFixture(t)
	svc := NewAvailabilityService(f.db, nil)
	res := f.insertConfirmed(t, "103", "2024-07-01", "2024-07-10")
	require.NoError(t, f.db.Model(&models.Reservation{}).Where("id = ?", res.ID).
		Update("status", models.ReservationCancelled).Error)

	rooms, err := svc.FindAvailableRooms(context.Background(), f.hotel.ID, mustRange(t, "2024-07-02", "2024-07-03"))
	require.NoError(t, err)
	assert.Equal(t, []string{"101", "102", "103"}, roomNumbers(rooms))
}

func TestFindAvailableRoomsOtherHotel(t *testing.T) {
	f := newFixture(t)
	other := models.Hotel{Name: "Other"}
	require.NoError(t, f.db.Create(&other).Error)

	rooms, err := NewAvailabilityService(f.db, nil).FindAvailableRooms(context.Background(), other.ID, mustRange(t, "2024-07-02", "2024-07-03"))
	require.NoError(t, err)
	assert.Empty(t, rooms)
}
