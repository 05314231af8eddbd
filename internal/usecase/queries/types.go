package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type RoomView struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	NightlyRateCents int64     `json:"nightly_rate_cents"`
	Quantity         int32     `json:"quantity"`
	Capacity         int32     `json:"capacity"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type BookingView struct {
	ID              uuid.UUID `json:"id"`
	RoomID          uuid.UUID `json:"room_id"`
	RoomName        string    `json:"room_name"`
	GuestID         uuid.UUID `json:"guest_id"`
	GuestEmail      string    `json:"guest_email"`
	CheckIn         time.Time `json:"check_in"`
	CheckOut        time.Time `json:"check_out"`
	GuestCount      int32     `json:"guest_count"`
	Nights          int32     `json:"nights"`
	SubtotalCents   int64     `json:"subtotal_cents"`
	ServiceFeeCents int64     `json:"service_fee_cents"`
	TotalCents      int64     `json:"total_cents"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"payment_status"`
	Note            *string   `json:"note,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type BookingListItem struct {
	ID            uuid.UUID `json:"id"`
	RoomID        uuid.UUID `json:"room_id"`
	RoomName      string    `json:"room_name"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	TotalCents    int64     `json:"total_cents"`
	CreatedAt     time.Time `json:"created_at"`
}

type AvailabilityView struct {
	RoomID         uuid.UUID  `json:"room_id"`
	CheckIn        *time.Time `json:"check_in,omitempty"`
	CheckOut       *time.Time `json:"check_out,omitempty"`
	TotalQuantity  int32      `json:"total_quantity"`
	RemainingUnits int32      `json:"remaining_units"`
}

type PriceQuoteView struct {
	RoomID          uuid.UUID `json:"room_id"`
	Nights          int       `json:"nights"`
	SubtotalCents   int64     `json:"subtotal_cents"`
	ServiceFeeCents int64     `json:"service_fee_cents"`
	TotalCents      int64     `json:"total_cents"`
}

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}

// CredentialsView carries the password hash and never leaves the auth flow.
type CredentialsView struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
}
