package services

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrInvalidDateRange  = errors.New("check-out date must be after check-in date")
	ErrRoomUnavailable   = errors.New("one or more selected rooms are not available")
	ErrDateConflict      = errors.New("one or more rooms are already booked for the selected dates")
	ErrNotFound          = errors.New("not found")
	ErrPersistence       = errors.New("persistence failure")
	ErrNoRoomsSelected   = errors.New("at least one room must be selected")
	ErrInvalidGuestCount = errors.New("number of guests must be at least 1")
	ErrInvalidTransition = errors.New("reservation cannot move to the requested status")
	ErrRoomOccupied      = errors.New("room is occupied by a reservation")
	ErrDuplicate         = errors.New("record already exists")
	ErrValidation        = errors.New("validation failed")
)

// PersistenceError wraps a storage failure. It matches ErrPersistence and
// unwraps to the driver error.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

func persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

// notFound wraps ErrNotFound with the kind of entity that was missing.
func notFound(what string, id uint) error {
	return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
}

// lookup turns gorm.ErrRecordNotFound into ErrNotFound and anything else into
// a persistence failure.
func lookup(what string, id uint, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(what, id)
	}
	return persistence("load "+what, err)
}

// classify leaves engine errors untouched and labels anything else as a
// persistence failure. Used on errors coming back from a transaction.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{
		ErrInvalidDateRange, ErrRoomUnavailable, ErrDateConflict, ErrNotFound,
		ErrPersistence, ErrNoRoomsSelected, ErrInvalidGuestCount,
		ErrInvalidTransition, ErrRoomOccupied, ErrDuplicate, ErrValidation,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return persistence(op, err)
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1062
	}
	return false
}

// writeErr classifies a failed insert/update: duplicate keys become
// ErrDuplicate, everything else a persistence failure.
func writeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if isDuplicateKey(err) {
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	}
	return persistence(op, err)
}
