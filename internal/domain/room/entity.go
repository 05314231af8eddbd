package room

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyRoomName    = errors.New("room name cannot be empty")
	ErrRoomNameTooLong  = errors.New("room name is too long (max 255 characters)")
	ErrNegativeRate     = errors.New("nightly rate cannot be negative")
	ErrNegativeQuantity = errors.New("quantity cannot be negative")
	ErrInvalidCapacity  = errors.New("capacity must be positive")
)

const MaxRoomNameLength = 255

// Room is one bookable unit type with a fixed total quantity. It is
// read-only to the booking engine; staff manage inventory out of band.
type Room struct {
	id               uuid.UUID
	name             string
	nightlyRateCents int64
	quantity         int32
	capacity         int32
	createdAt        time.Time
	updatedAt        time.Time
}

func NewRoom(id uuid.UUID, name string, nightlyRateCents int64, quantity, capacity int32) (*Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyRoomName
	}
	if len(name) > MaxRoomNameLength {
		return nil, ErrRoomNameTooLong
	}
	if nightlyRateCents < 0 {
		return nil, ErrNegativeRate
	}
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	return &Room{
		id:               id,
		name:             name,
		nightlyRateCents: nightlyRateCents,
		quantity:         quantity,
		capacity:         capacity,
	}, nil
}

func (r *Room) CanAccommodate(guests int32) bool {
	return guests > 0 && guests <= r.capacity
}

func (r *Room) ID() uuid.UUID           { return r.id }
func (r *Room) Name() string            { return r.name }
func (r *Room) NightlyRateCents() int64 { return r.nightlyRateCents }
func (r *Room) Quantity() int32         { return r.quantity }
func (r *Room) Capacity() int32         { return r.capacity }
func (r *Room) CreatedAt() time.Time    { return r.createdAt }
func (r *Room) UpdatedAt() time.Time    { return r.updatedAt }
