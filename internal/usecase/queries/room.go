package queries

import (
	"context"
	"time"

	"resort-booking/internal/domain/booking"
	"resort-booking/internal/infra"
	"resort-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type RoomQueries interface {
	List(ctx context.Context) ([]*RoomView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	// QuotePrice derives the displayable price breakdown for a stay without
	// touching any booking state.
	QuotePrice(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (*PriceQuoteView, error)
}

type roomQueriesImpl struct {
	rooms      RoomReadStore
	calculator booking.PriceCalculator
}

func NewRoomQueries(rooms RoomReadStore, calculator booking.PriceCalculator) RoomQueries {
	return &roomQueriesImpl{rooms: rooms, calculator: calculator}
}

func (q *roomQueriesImpl) List(ctx context.Context) ([]*RoomView, error) {
	rooms, err := q.rooms.List(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list rooms")
	}
	return rooms, nil
}

func (q *roomQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error) {
	room, err := q.rooms.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Wrap(err, "failed to find room")
	}
	return room, nil
}

func (q *roomQueriesImpl) QuotePrice(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (*PriceQuoteView, error) {
	room, err := q.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	period, err := booking.NewStayPeriod(checkIn, checkOut)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidStayPeriod)
	}

	quote, err := q.calculator.Quote(room.NightlyRateCents, period)
	if err != nil {
		return nil, errs.Wrap(err, "failed to compute quote")
	}

	return &PriceQuoteView{
		RoomID:          room.ID,
		Nights:          quote.Nights,
		SubtotalCents:   quote.SubtotalCents,
		ServiceFeeCents: quote.ServiceFeeCents,
		TotalCents:      quote.TotalCents,
	}, nil
}
