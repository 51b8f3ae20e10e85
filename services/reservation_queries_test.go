package services

import (
	"context"
	"testing"

	"hotel-management/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reservationIDs(list []models.Reservation) []uint {
	ids := make([]uint, 0, len(list))
	for _, r := range list {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestReservationQueries(t *testing.T) {
	f := newFixture(t)
	svc := NewReservationService(f.db, nil, nil)
	ctx := context.Background()

	other := models.Hotel{Name: "Annex"}
	require.NoError(t, f.db.Create(&other).Error)
	annexRoom := models.Room{HotelID: other.ID, RoomNumber: "A1", Status: models.RoomAvailable}
	require.NoError(t, f.db.Create(&annexRoom).Error)

	past, err := svc.CreateReservation(ctx, draftFor(f.guests[0].ID, "2024-05-01", "2024-05-03"), []uint{f.roomID("101")})
	require.NoError(t, err)
	require.NoError(t, svc.CheckOutReservation(ctx, past.ID))

	current, err := svc.CreateReservation(ctx, draftFor(f.guests[0].ID, "2024-06-01", "2024-06-10"), []uint{f.roomID("101")})
	require.NoError(t, err)
	soon, err := svc.CreateReservation(ctx, draftFor(f.guests[1].ID, "2024-06-02", "2024-06-04"), []uint{f.roomID("102")})
	require.NoError(t, err)
	annex, err := svc.CreateReservation(ctx, draftFor(f.guests[1].ID, "2024-06-02", "2024-06-04"), []uint{annexRoom.ID})
	require.NoError(t, err)

	all, err := svc.ListReservations(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	for _, r := range all {
		assert.NotEmpty(t, r.Rooms)
	}

	byGuest, err := svc.ListByGuest(ctx, f.guests[0].ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{past.ID, current.ID}, reservationIDs(byGuest))

	byHotel, err := svc.ListByHotel(ctx, f.hotel.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{soon.ID, current.ID, past.ID}, reservationIDs(byHotel))

	annexList, err := svc.ListByHotel(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{annex.ID}, reservationIDs(annexList))

	active, err := svc.ListActiveByHotel(ctx, f.hotel.ID, day("2024-06-04"))
	require.NoError(t, err)
	assert.Equal(t, []uint{soon.ID, current.ID}, reservationIDs(active))

	active, err = svc.ListActiveByHotel(ctx, f.hotel.ID, day("2024-06-05"))
	require.NoError(t, err)
	assert.Equal(t, []uint{current.ID}, reservationIDs(active))
}

func TestGetReservationNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := NewReservationService(f.db, nil, nil).GetReservation(context.Background(), 77)
	assert.ErrorIs(t, err, ErrNotFound)
}
