package queries

import (
	"context"

	"resort-booking/internal/domain/booking"
	"resort-booking/internal/domain/user"
	"resort-booking/internal/infra"
	"resort-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrForbidden       = errs.New("actor may not view this booking")
)

type BookingQueries interface {
	// GetByID returns a booking to its owning guest or to staff.
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*BookingView, error)
	// GetByIDSystem bypasses the ownership check for internal flows
	// (idempotency replay, read-after-write).
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByGuest(ctx context.Context, guestID uuid.UUID) ([]*BookingListItem, error)
	// ListPending lists bookings awaiting staff approval.
	ListPending(ctx context.Context) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	bookings BookingReadStore
}

func NewBookingQueries(bookings BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{bookings: bookings}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*BookingView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}

	if view.GuestID != actorID && !actorRole.IsStaff() {
		return nil, ErrForbidden
	}

	return view, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.bookings.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Wrap(err, "failed to find booking")
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByGuest(ctx context.Context, guestID uuid.UUID) ([]*BookingListItem, error) {
	items, err := q.bookings.FindByGuestID(ctx, guestID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list guest bookings")
	}
	return items, nil
}

func (q *bookingQueriesImpl) ListPending(ctx context.Context) ([]*BookingListItem, error) {
	items, err := q.bookings.FindByStatus(ctx, booking.StatusPending.String())
	if err != nil {
		return nil, errs.Wrap(err, "failed to list pending bookings")
	}
	return items, nil
}
