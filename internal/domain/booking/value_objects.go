package booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidStayPeriod = errors.New("check-out must be after check-in")
	ErrNegativeMoney     = errors.New("money cannot be negative")
)

// StayPeriod is a half-open date range [checkIn, checkOut). The check-out
// day itself is not occupied, so back-to-back stays on the same calendar
// day do not conflict.
type StayPeriod struct {
	checkIn  time.Time
	checkOut time.Time
}

// NewStayPeriod normalizes both dates to UTC midnight and rejects ranges
// with fewer than one night. Invalid ranges are never clamped.
func NewStayPeriod(checkIn, checkOut time.Time) (StayPeriod, error) {
	in := toDate(checkIn)
	out := toDate(checkOut)
	if !out.After(in) {
		return StayPeriod{}, ErrInvalidStayPeriod
	}
	return StayPeriod{checkIn: in, checkOut: out}, nil
}

func (p StayPeriod) CheckIn() time.Time  { return p.checkIn }
func (p StayPeriod) CheckOut() time.Time { return p.checkOut }

func (p StayPeriod) Nights() int {
	return int(p.checkOut.Sub(p.checkIn) / (24 * time.Hour))
}

// Overlaps reports half-open interval intersection: aIn < bOut && bIn < aOut.
func (p StayPeriod) Overlaps(other StayPeriod) bool {
	return p.checkIn.Before(other.checkOut) && other.checkIn.Before(p.checkOut)
}

func (p StayPeriod) String() string {
	return fmt.Sprintf("[%s,%s)", p.checkIn.Format(time.DateOnly), p.checkOut.Format(time.DateOnly))
}

func toDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeMoney
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

type Note struct {
	value string
}

func NewNote(value string) Note {
	return Note{value: value}
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}
