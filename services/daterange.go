package services

import (
	"fmt"
	"strings"
	"time"
)

// DateRange is a half-open stay [CheckIn, CheckOut) in whole calendar days.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// NewDateRange normalises both ends to UTC midnight and rejects ranges whose
// check-out is not after check-in.
func NewDateRange(checkIn, checkOut time.Time) (DateRange, error) {
	r := DateRange{CheckIn: dateOnly(checkIn), CheckOut: dateOnly(checkOut)}
	if !r.CheckOut.After(r.CheckIn) {
		return DateRange{}, fmt.Errorf("%s..%s: %w",
			r.CheckIn.Format(dateLayout), r.CheckOut.Format(dateLayout), ErrInvalidDateRange)
	}
	return r, nil
}

// Overlaps is the half-open interval intersection test. A stay that starts on
// the day another ends does not overlap it.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.CheckIn.Before(other.CheckOut) && r.CheckOut.After(other.CheckIn)
}

func (r DateRange) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

func (r DateRange) String() string {
	return r.CheckIn.Format(dateLayout) + ".." + r.CheckOut.Format(dateLayout)
}

const dateLayout = "2006-01-02"

// ParseDate accepts "2006-01-02" or RFC3339.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, ErrInvalidDateRange)
	}
	return t, nil
}

// ParseDateRange parses both ends and validates the range.
func ParseDateRange(checkIn, checkOut string) (DateRange, error) {
	in, err := ParseDate(checkIn)
	if err != nil {
		return DateRange{}, err
	}
	out, err := ParseDate(checkOut)
	if err != nil {
		return DateRange{}, err
	}
	return NewDateRange(in, out)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
