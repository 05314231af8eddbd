package queries

import (
	"context"
	"log/slog"
	"time"

	"resort-booking/internal/domain/booking"
	"resort-booking/internal/infra"
	"resort-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound      = errs.New("room not found")
	ErrInvalidStayPeriod = errs.New("invalid stay period")
)

type AvailabilityQueries interface {
	// RemainingUnits answers "how many units of this room type are free for
	// this date range?". An absent check-out means no date filtering and
	// returns the full inventory quantity. An empty or inverted range is
	// rejected, never clamped.
	RemainingUnits(ctx context.Context, roomID uuid.UUID, checkIn, checkOut *time.Time) (*AvailabilityView, error)
}

type availabilityQueriesImpl struct {
	rooms RoomReadStore
}

func NewAvailabilityQueries(rooms RoomReadStore) AvailabilityQueries {
	return &availabilityQueriesImpl{rooms: rooms}
}

func (q *availabilityQueriesImpl) RemainingUnits(ctx context.Context, roomID uuid.UUID, checkIn, checkOut *time.Time) (*AvailabilityView, error) {
	room, err := q.rooms.FindByID(ctx, roomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Wrap(err, "failed to find room")
	}

	if checkOut == nil {
		// No check-out means no date filtering: the full inventory quantity,
		// whether or not a check-in was supplied.
		return &AvailabilityView{
			RoomID:         room.ID,
			TotalQuantity:  room.Quantity,
			RemainingUnits: room.Quantity,
		}, nil
	}
	if checkIn == nil {
		return nil, ErrInvalidStayPeriod
	}

	period, err := booking.NewStayPeriod(*checkIn, *checkOut)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidStayPeriod)
	}

	reserved, err := q.rooms.CountOverlapping(ctx, roomID, period.CheckIn(), period.CheckOut())
	if err != nil {
		return nil, errs.Wrap(err, "failed to count overlapping bookings")
	}

	remaining := int64(room.Quantity) - reserved
	if remaining < 0 {
		// Pre-existing data drift, not a caller error: clamp and warn.
		slog.Warn("room is overbooked",
			"room_id", roomID, "quantity", room.Quantity, "reserved", reserved)
		remaining = 0
	}

	in := period.CheckIn()
	out := period.CheckOut()
	return &AvailabilityView{
		RoomID:         room.ID,
		CheckIn:        &in,
		CheckOut:       &out,
		TotalQuantity:  room.Quantity,
		RemainingUnits: int32(remaining),
	}, nil
}
