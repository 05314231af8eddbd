package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type RoomReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	List(ctx context.Context) ([]*RoomView, error)
	// CountOverlapping counts non-cancelled bookings whose half-open stay
	// period intersects [checkIn, checkOut).
	CountOverlapping(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (int64, error)
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByGuestID(ctx context.Context, guestID uuid.UUID) ([]*BookingListItem, error)
	FindByStatus(ctx context.Context, status string) ([]*BookingListItem, error)
}

type UserReadStore interface {
	FindByEmail(ctx context.Context, email string) (*CredentialsView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
}
