package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"resort-booking/internal/domain/booking"
	"resort-booking/internal/domain/user"
	reqdto "resort-booking/internal/handler/dto/request"
	"resort-booking/internal/infra"
	"resort-booking/internal/pkg/clock"
	"resort-booking/internal/pkg/errs"
	"resort-booking/internal/usecase/queries"
	"resort-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound            = errs.New("room not found")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrInvalidStayPeriod       = errs.New("invalid stay period")
	ErrRoomOverCapacity        = errs.New("guest count exceeds room capacity")
	ErrNoAvailability          = errs.New("no units available for stay period")
	ErrInvalidTransition       = errs.New("illegal booking state transition")
	ErrNotBookingOwner         = errs.New("booking is owned by another guest")
	ErrDuplicateBooking        = errs.New("duplicate booking request")
	ErrIdempotencyInProgress   = errs.New("request is already being processed")
	ErrIdempotencyCheckFailed  = errs.New("idempotency check failed")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

const bookingEndpoint = "POST /bookings"

type CreateBookingResult struct {
	Booking    *queries.BookingView
	IsReplayed bool
}

type BookingCommands interface {
	// RequestBooking creates a pending booking, holding one unit of the room
	// for the stay period. The availability check and the insert are a single
	// atomic operation, so two racing requests for the last unit resolve into
	// exactly one booking and one ErrNoAvailability.
	RequestBooking(ctx context.Context, req reqdto.CreateBookingRequest, guestID uuid.UUID, idempotencyKey uuid.UUID) (*CreateBookingResult, error)
	ApproveBooking(ctx context.Context, id uuid.UUID) error
	DeclineBooking(ctx context.Context, id uuid.UUID) error
	// CancelBooking frees the held unit. Guests may cancel only their own
	// bookings; staff may cancel any.
	CancelBooking(ctx context.Context, id uuid.UUID, actorID uuid.UUID, actorRole user.Role) error
	CompleteBooking(ctx context.Context, id uuid.UUID) error
	MarkPaid(ctx context.Context, id uuid.UUID) error
	MarkPaymentFailed(ctx context.Context, id uuid.UUID) error
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	bookingQueries queries.BookingQueries
	calculator     booking.PriceCalculator
	clock          clock.Clock
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	bookingQueries queries.BookingQueries,
	calculator booking.PriceCalculator,
	clock clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		bookingQueries: bookingQueries,
		calculator:     calculator,
		clock:          clock,
	}
}

func (c *bookingCommandsImpl) RequestBooking(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	guestID uuid.UUID,
	idempotencyKey uuid.UUID,
) (*CreateBookingResult, error) {
	requestHash := calculateRequestHash(req)
	expiresAt := c.clock.Now().Add(24 * time.Hour)

	replayed, err := c.handleIdempotency(ctx, idempotencyKey, guestID, requestHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		return &CreateBookingResult{Booking: replayed, IsReplayed: true}, nil
	}

	bookingView, err := c.createNewBooking(ctx, req, guestID, idempotencyKey)
	if err != nil {
		return nil, err
	}
	return &CreateBookingResult{Booking: bookingView, IsReplayed: false}, nil
}

// handleIdempotency claims the key or resolves what happened to the request
// that claimed it first. A non-nil view means a completed replay.
func (c *bookingCommandsImpl) handleIdempotency(
	ctx context.Context,
	idempotencyKey, guestID uuid.UUID,
	requestHash string,
	expiresAt time.Time,
) (*queries.BookingView, error) {
	var (
		claimed  bool
		existing *shared.IdempotencyRecord
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		inserted, err := tx.Idempotency().TryInsert(ctx, tx.DB(), idempotencyKey, guestID, bookingEndpoint, requestHash, expiresAt)
		if err != nil {
			return err
		}
		claimed = inserted
		if inserted {
			return nil
		}
		record, err := tx.Reads().IdempotencyByKey(ctx, idempotencyKey, guestID)
		if err != nil {
			return err
		}
		existing = record
		return nil
	})
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	if claimed {
		return nil, nil
	}

	switch existing.Status {
	case "completed":
		if existing.ResultBookingID != nil {
			// Use system-level access for idempotency replay
			return c.bookingQueries.GetByIDSystem(ctx, *existing.ResultBookingID)
		}
		return nil, errs.New("completed request missing result booking ID")

	case "processing":
		if existing.RequestHash != requestHash {
			return nil, ErrDuplicateBooking
		}
		return nil, ErrIdempotencyInProgress

	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

func (c *bookingCommandsImpl) createNewBooking(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	guestID, idempotencyKey uuid.UUID,
) (*queries.BookingView, error) {
	room, err := c.uow.CommandReads().RoomByID(ctx, req.RoomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if req.GuestCount > room.Capacity {
		return nil, ErrRoomOverCapacity
	}

	period, err := req.StayPeriod()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidStayPeriod)
	}

	quote, err := c.calculator.Quote(room.NightlyRateCents, period)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	bookingEntity, err := booking.NewBooking(req.RoomID, guestID, period, req.GuestCount, quote, req.TrimmedNote())
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	return c.executeBookingTransaction(ctx, bookingEntity, idempotencyKey, guestID)
}

// executeBookingTransaction commits the atomic reserve: availability check,
// insert, notification job, and idempotency completion in one transaction.
func (c *bookingCommandsImpl) executeBookingTransaction(
	ctx context.Context,
	bookingEntity *booking.Booking,
	idempotencyKey, guestID uuid.UUID,
) (*queries.BookingView, error) {
	var bookingID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, err := tx.Bookings().CreateIfAvailable(ctx, tx.DB(), bookingEntity)
		if err != nil {
			return err
		}
		bookingID = id

		if err := c.enqueueBookingNotification(ctx, tx, bookingID, "booking_requested"); err != nil {
			return err
		}

		return tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), idempotencyKey, guestID, calculateIDHash(bookingID), bookingID)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, ErrNoAvailability
		}
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// Read-after-write: return the complete view from the read store
	bookingView, err := c.bookingQueries.GetByIDSystem(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return bookingView, nil
}

func (c *bookingCommandsImpl) ApproveBooking(ctx context.Context, id uuid.UUID) error {
	return c.transitionBooking(ctx, id, booking.StatusConfirmed, "booking_approved")
}

func (c *bookingCommandsImpl) DeclineBooking(ctx context.Context, id uuid.UUID) error {
	return c.transitionBooking(ctx, id, booking.StatusCancelled, "booking_declined")
}

func (c *bookingCommandsImpl) CompleteBooking(ctx context.Context, id uuid.UUID) error {
	return c.transitionBooking(ctx, id, booking.StatusCompleted, "booking_completed")
}

// transitionBooking applies a lifecycle move for flows where the expected
// prior status follows from the target. The UPDATE is guarded by that prior
// status, so a concurrent transition loses cleanly instead of overwriting.
func (c *bookingCommandsImpl) transitionBooking(ctx context.Context, id uuid.UUID, next booking.Status, topic string) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snapshot, err := tx.Reads().BookingByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		prior := booking.Status(snapshot.Status)
		if !prior.CanTransitionTo(next) {
			return ErrInvalidTransition
		}

		if err := tx.Bookings().UpdateStatus(ctx, tx.DB(), id, next, prior); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrInvalidTransition
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		return c.enqueueBookingNotification(ctx, tx, id, topic)
	})
}

func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, id uuid.UUID, actorID uuid.UUID, actorRole user.Role) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snapshot, err := tx.Reads().BookingByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if !actorRole.IsStaff() && snapshot.GuestID != actorID {
			return ErrNotBookingOwner
		}

		prior := booking.Status(snapshot.Status)
		if !prior.CanTransitionTo(booking.StatusCancelled) {
			return ErrInvalidTransition
		}

		if err := tx.Bookings().UpdateStatus(ctx, tx.DB(), id, booking.StatusCancelled, prior); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrInvalidTransition
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		return c.enqueueBookingNotification(ctx, tx, id, "booking_cancelled")
	})
}

func (c *bookingCommandsImpl) MarkPaid(ctx context.Context, id uuid.UUID) error {
	return c.settlePayment(ctx, id, booking.PaymentPaid, "payment_confirmed")
}

func (c *bookingCommandsImpl) MarkPaymentFailed(ctx context.Context, id uuid.UUID) error {
	return c.settlePayment(ctx, id, booking.PaymentFailed, "payment_failed")
}

// settlePayment settles exactly once: the UPDATE itself requires a confirmed
// booking with payment still pending, so approval and single settlement are
// enforced by the same guarded write that performs them.
func (c *bookingCommandsImpl) settlePayment(ctx context.Context, id uuid.UUID, next booking.PaymentStatus, topic string) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().BookingByID(ctx, id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := tx.Bookings().UpdatePaymentStatus(ctx, tx.DB(), id, next); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrInvalidTransition
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		return c.enqueueBookingNotification(ctx, tx, id, topic)
	})
}

func (c *bookingCommandsImpl) enqueueBookingNotification(ctx context.Context, tx shared.Tx, bookingID uuid.UUID, topic string) error {
	payload, err := json.Marshal(map[string]any{
		"booking_id": bookingID,
		"type":       topic,
	})
	if err != nil {
		return err
	}

	return tx.Notifications().CreateJob(ctx, tx.DB(), "email", topic, payload, c.clock.Now())
}

func calculateRequestHash(req reqdto.CreateBookingRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func calculateIDHash(id uuid.UUID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(hash[:])
}
