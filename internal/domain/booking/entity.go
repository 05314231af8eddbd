package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition = errors.New("illegal booking state transition")
	ErrInvalidGuestCount = errors.New("guest count must be positive")
	ErrNotOwner          = errors.New("booking is owned by another guest")
)

// Booking is a guest's reservation of one unit of a room type for a stay
// period. The availability engine only ever reads bookings; every
// mutation goes through the transition methods below, which reject
// illegal moves without touching state.
type Booking struct {
	id            uuid.UUID
	roomID        uuid.UUID
	guestID       uuid.UUID
	period        StayPeriod
	guestCount    int32
	price         Quote
	status        Status
	paymentStatus PaymentStatus
	note          Note
	createdAt     time.Time
	updatedAt     time.Time
}

// NewBooking creates a pending booking with payment not yet settled.
func NewBooking(roomID, guestID uuid.UUID, period StayPeriod, guestCount int32, price Quote, note Note) (*Booking, error) {
	if guestCount <= 0 {
		return nil, ErrInvalidGuestCount
	}

	return &Booking{
		id:            uuid.New(),
		roomID:        roomID,
		guestID:       guestID,
		period:        period,
		guestCount:    guestCount,
		price:         price,
		status:        StatusPending,
		paymentStatus: PaymentPending,
		note:          note,
	}, nil
}

func ReconstructBooking(
	id, roomID, guestID uuid.UUID,
	period StayPeriod,
	guestCount int32,
	price Quote,
	status Status,
	paymentStatus PaymentStatus,
	note Note,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		roomID:        roomID,
		guestID:       guestID,
		period:        period,
		guestCount:    guestCount,
		price:         price,
		status:        status,
		paymentStatus: paymentStatus,
		note:          note,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Approve is the staff transition gating payment eligibility.
func (b *Booking) Approve() error {
	return b.transition(StatusConfirmed)
}

// Decline cancels a booking that was never approved.
func (b *Booking) Decline() error {
	if b.status != StatusPending {
		return ErrInvalidTransition
	}
	return b.transition(StatusCancelled)
}

// CancelBy cancels on behalf of the owning guest. Staff cancellation goes
// through Cancel directly.
func (b *Booking) CancelBy(actorID uuid.UUID) error {
	if b.guestID != actorID {
		return ErrNotOwner
	}
	return b.Cancel()
}

func (b *Booking) Cancel() error {
	return b.transition(StatusCancelled)
}

func (b *Booking) Complete() error {
	return b.transition(StatusCompleted)
}

func (b *Booking) transition(next Status) error {
	if !b.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	b.status = next
	return nil
}

// MarkPaid settles payment. It requires prior staff approval and exactly
// one settlement attempt.
func (b *Booking) MarkPaid() error {
	if !b.IsApproved() || b.paymentStatus != PaymentPending {
		return ErrInvalidTransition
	}
	b.paymentStatus = PaymentPaid
	return nil
}

func (b *Booking) MarkPaymentFailed() error {
	if !b.IsApproved() || b.paymentStatus != PaymentPending {
		return ErrInvalidTransition
	}
	b.paymentStatus = PaymentFailed
	return nil
}

// IsApproved reports whether staff approval has happened; it survives
// completion so a completed stay remains payable in arrears.
func (b *Booking) IsApproved() bool {
	return b.status == StatusConfirmed || b.status == StatusCompleted
}

func (b *Booking) IsActive() bool {
	return b.status != StatusCancelled
}

// OccupiesDuring reports whether this booking consumes a unit for any
// night of the given period. Cancelled bookings never occupy inventory.
func (b *Booking) OccupiesDuring(period StayPeriod) bool {
	return b.IsActive() && b.period.Overlaps(period)
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) RoomID() uuid.UUID            { return b.roomID }
func (b *Booking) GuestID() uuid.UUID           { return b.guestID }
func (b *Booking) Period() StayPeriod           { return b.period }
func (b *Booking) GuestCount() int32            { return b.guestCount }
func (b *Booking) Price() Quote                 { return b.price }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }
func (b *Booking) Note() Note                   { return b.note }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }
