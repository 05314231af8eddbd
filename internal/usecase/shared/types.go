package shared

import (
	"time"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on read-side query types (CQRS separation)
type RoomSnapshot struct {
	ID               uuid.UUID
	Name             string
	NightlyRateCents int64
	Quantity         int32
	Capacity         int32
}

type BookingSnapshot struct {
	ID            uuid.UUID
	RoomID        uuid.UUID
	GuestID       uuid.UUID
	CheckIn       time.Time
	CheckOut      time.Time
	Status        string
	PaymentStatus string
}

type IdempotencyRecord struct {
	Key             uuid.UUID
	UserID          uuid.UUID
	Status          string
	RequestHash     string
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time
}
