package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"hotel-management/metrics"
	"hotel-management/models"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingNotifier struct {
	mu    sync.Mutex
	sent  []string
	fails bool
}

func (n *recordingNotifier) ReservationConfirmed(_ context.Context, guest models.Guest, res models.Reservation) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, guest.Email+":"+res.ReferenceCode)
	if n.fails {
		return errors.New("smtp down")
	}
	return nil
}

func draftFor(guestID uint, in, out string) ReservationDraft {
	return ReservationDraft{GuestID: guestID, CheckIn: day(in), CheckOut: day(out), NumGuests: 2}
}

func TestCreateReservationConfirmsAndOccupiesRooms(t *testing.T) {
	f := newFixture(t)
	m := metrics.New("test")
	n := &recordingNotifier{}
	svc := NewReservationService(f.db, m, n)

	res, err := svc.CreateReservation(context.Background(),
		draftFor(f.guests[0].ID, "2024-06-01", "2024-06-05"),
		[]uint{f.roomID("102"), f.roomID("101"), f.roomID("101")})
	require.NoError(t, err)

	assert.Equal(t, models.ReservationConfirmed, res.Status)
	assert.True(t, strings.HasPrefix(res.ReferenceCode, "RSV-"))
	assert.Equal(t, []uint{f.roomID("101"), f.roomID("102")}, res.RoomIDs())
	assert.Equal(t, "101", res.Rooms[0].RoomNumber)
	assert.Equal(t, f.hotel.ID, res.Rooms[0].HotelID)
	assert.Equal(t, 4, res.Nights())
	assert.False(t, res.BookingDate.IsZero())

	for _, number := range []string{"101", "102"} {
		room := f.reload(t, number)
		assert.Equal(t, models.RoomOccupied, room.Status)
		require.NotNil(t, room.ReservationID)
		assert.Equal(t, res.ID, *room.ReservationID)
	}
	assert.Equal(t, models.RoomAvailable, f.reload(t, "103").Status)
	f.assertRoomsConsistent(t)

	assert.Equal(t, []string{"ada@example.com:" + res.ReferenceCode}, n.sent)

	expected := `
# HELP test_rooms_booked_total Rooms attached to committed reservations.
# TYPE test_rooms_booked_total counter
test_rooms_booked_total 2
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "test_rooms_booked_total"))
}

func TestCreateReservationRejectsOccupiedRoom(t *testing.T) {
	f := newFixture(t)
	svc := NewReservationService(f.db, nil, nil)
	ctx := context.Background()

	_, err := svc.CreateReservation(ctx, draftFor(f.guests[0].ID, "2024-06-01", "2024-06-05"), []uint{f.roomID("101")})
	require.NoError(t, err)
	before := f.counts(t)

	_, err = svc.CreateReservation(ctx, draftFor(f.guests[1].ID, "2024-06-03", "2024-06-04"), []uint{f.roomID("101")})
	assert.ErrorIs(t, err, ErrRoomUnavailable)
	assert.Equal(t, before, f.counts(t))
}

func TestCreateReservationIsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	svc := NewReservationService(f.db, nil, nil)
	ctx := context.Background()

	_, err := svc.CreateReservation(ctx, draftFor(f.guests[0].ID, "2024-06-01", "2024-06-05"), []uint{f.roomID("102")})
	require.NoError(t, err)
	before := f.counts(t)

	// 101 is free, 102 is not: nothing may change
	_, err = svc.CreateReservation(ctx, draftFor(f.guests[1].ID, "2024-06-10", "2024-06-12"),
		[]uint{f.roomID("101"), f.roomID("102")})
	assert.ErrorIs(t, err, ErrRoomUnavailable)

	assert.Equal(t, before, f.counts(t))
	room := f.reload(t, "101")
	assert.Equal(t, models.RoomAvailable, room.Status)
	assert.Nil(t, room.ReservationID)
	f.assertRoomsConsistent(t)
}

func TestCreateReservationDateConflictOnAvailableRoom(t *testing.T) {
	f := newFixture(t)
	svc := NewReservationService(f.db, nil, nil)
	ctx := context.Background()
	f.insertConfirmed(t, "102", "2024-07-01", "2024-07-10")
	before := f.counts(t)

	_, err := svc.CreateReservation(ctx, draftFor(f.guests[0].ID, "2024-07-05", "2024-07-08"), []uint{f.roomID("102")})
	assert.ErrorIs(t, err, ErrDateConflict)
	assert.Equal(t, before, f.counts(t))

	res, err := svc.CreateReservation(ctx, draftFor(f.guests[0].ID, "2024-07-10", "2024-07-15"), []uint{f.roomID("102")})
	require.NoError(t, err)
	assert.Equal(t, models.ReservationConfirmed, res.Status)
}

func TestCreateReservationValidation(t *testing.T) {
	f := newFixture(t)
	m := metrics.New("test")
	svc := NewReservationService(f.db, m, nil)
	ctx := context.Background()
	room := []uint{f.roomID("101")}

	tests := []struct {
		name    string
		draft   ReservationDraft
		rooms   []uint
		wantErr error
	}{
		{"checkout equals checkin", draftFor(f.guests[0].ID, "2024-06-05", "2024-06-05"), room, ErrInvalidDateRange},
		{"checkout before checkin", draftFor(f.guests[0].ID, "2024-06-05", "2024-06-01"), room, ErrInvalidDateRange},
		{"no rooms", draftFor(f.guests[0].ID, "2024-06-01", "2024-06-05"), nil, ErrNoRoomsSelected},
		{"zero room id", draftFor(f.guests[0].ID, "2024-06-01", "2024-06-05"), []uint{0}, ErrNoRoomsSelected},
		{"unknown guest", draftFor(9999, "2024-06-01", "2024-06-05"), room, ErrNotFound},
		{"unknown room", draftFor(f.guests[0].ID, "2024-06-01", "2024-06-05"), []uint{9999}, ErrRoomUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateReservation(ctx, tt.draft, tt.rooms)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	d := draftFor(f.guests[0].ID, "2024-06-01", "2024-06-05")
	d.NumGuests = 0
	_, err := svc.CreateReservation(ctx, d, room)
	assert.ErrorIs(t, err, ErrInvalidGuestCount)

	assert.Equal(t, counts{}, f.counts(t))

	expected := `
# HELP test_reservation_failures_total Reservation attempts that were rejected or rolled back.
# TYPE test_reservation_failures_total counter
test_reservation_failures_total{reason="invalid_date_range"} 2
test_reservation_failures_total{reason="invalid_request"} 3
test_reservation_failures_total{reason="not_found"} 1
test_reservation_failures_total{reason="room_unavailable"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "test_reservation_failures_total"))
}

func TestCreateReservationRollsBackOnStorageFailure(t *testing.T) {
	f := newFixture(t)
	svc := NewReservationService(f.db, nil, nil)

	// the reservation and attachment rows are written before rooms are
	// updated, so this fails in the middle of the transaction
	require.NoError(t, f.db.Callback().Update().Before("gorm:update").
		Register("test:fail_room_updates", func(tx *gorm.DB) {
			if tx.Statement.Table == "rooms" {
				_ = tx.AddError(errors.New("disk full"))
			}
		}))

	_, err := svc.CreateReservation(context.Background(),
		draftFor(f.guests[0].ID, "2024-06-01", "2024-06-05"), []uint{f.roomID("101"), f.roomID("102")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)
	var perr *PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "occupy rooms", perr.Op)

	assert.Equal(t, counts{}, f.counts(t))
	f.assertRoomsConsistent(t)
}

func TestCreateReservationKeepsGivenBookingDate(t *testing.T) {
	f := newFixture(t)
	svc := NewReservationService(f.db, nil, nil)

	d := draftFor(f.guests[0].ID, "2024-06-01", "2024-06-02")
	d.BookingDate = day("2024-05-01")
	staff := uint(7)
	d.CreatedByStaffID = &staff

	res, err := svc.CreateReservation(context.Background(), d, []uint{f.roomID("103")})
	require.NoError(t, err)
	assert.True(t, res.BookingDate.Equal(day("2024-05-01")))
	require.NotNil(t, res.CreatedByStaffID)
	assert.Equal(t, uint(7), *res.CreatedByStaffID)
}

func TestCreateReservationNotifierFailureDoesNotFail(t *testing.T) {
	f := newFixture(t)
	n := &recordingNotifier{fails: true}
	svc := NewReservationService(f.db, nil, n)

	res, err := svc.CreateReservation(context.Background(),
		draftFor(f.guests[0].ID, "2024-06-01", "2024-06-02"), []uint{f.roomID("101")})
	require.NoError(t, err)
	assert.NotZero(t, res.ID)
	assert.Len(t, n.sent, 1)
}

func TestConcurrentReservationsForOneRoom(t *testing.T) {
	f := newFixture(t)
	svc := NewReservationService(f.db, nil, nil)

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		failures  []error
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateReservation(context.Background(),
				draftFor(f.guests[0].ID, "2024-09-01", "2024-09-03"), []uint{f.roomID("101")})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
				return
			}
			failures = append(failures, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	for _, err := range failures {
		assert.True(t, errors.Is(err, ErrRoomUnavailable) || errors.Is(err, ErrDateConflict), err.Error())
	}
	c := f.counts(t)
	assert.Equal(t, int64(1), c.reservations)
	assert.Equal(t, int64(1), c.occupied)
	f.assertRoomsConsistent(t)
}
