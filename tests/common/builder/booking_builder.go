//go:build unit || e2e

package builder

import (
	"time"

	dombooking "resort-booking/internal/domain/booking"
	reqdto "resort-booking/internal/handler/dto/request"
	"resort-booking/internal/usecase/queries"
	"resort-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	RoomID           uuid.UUID
	RoomName         string
	GuestID          uuid.UUID
	GuestEmail       string
	CheckIn          time.Time
	CheckOut         time.Time
	GuestCount       int32
	NightlyRateCents int64
	Quantity         int32
	Capacity         int32
	Status           dombooking.Status
	PaymentStatus    dombooking.PaymentStatus
	Note             string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now()
	return &BookingBuilder{
		RoomID:           uuid.New(),
		RoomName:         "Garden Villa",
		GuestID:          uuid.New(),
		GuestEmail:       "guest@resort.example",
		CheckIn:          time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:         time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
		GuestCount:       2,
		NightlyRateCents: 120000,
		Quantity:         4,
		Capacity:         2,
		Status:           dombooking.StatusPending,
		PaymentStatus:    dombooking.PaymentPending,
		Note:             "",
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	period, err := dombooking.NewStayPeriod(b.CheckIn, b.CheckOut)
	if err != nil {
		return nil, err
	}

	calc := dombooking.NewStandardPriceCalculator(dombooking.DefaultServiceFeePercent)
	quote, err := calc.Quote(b.NightlyRateCents, period)
	if err != nil {
		return nil, err
	}

	return dombooking.NewBooking(b.RoomID, b.GuestID, period, b.GuestCount, quote, dombooking.NewNote(b.Note))
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		RoomID:     b.RoomID,
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		GuestCount: b.GuestCount,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	nights := int32(b.CheckOut.Sub(b.CheckIn) / (24 * time.Hour))
	subtotal := int64(nights) * b.NightlyRateCents
	fee := subtotal * dombooking.DefaultServiceFeePercent / 100
	return &queries.BookingView{
		ID:              uuid.New(),
		RoomID:          b.RoomID,
		RoomName:        b.RoomName,
		GuestID:         b.GuestID,
		GuestEmail:      b.GuestEmail,
		CheckIn:         b.CheckIn,
		CheckOut:        b.CheckOut,
		GuestCount:      b.GuestCount,
		Nights:          nights,
		SubtotalCents:   subtotal,
		ServiceFeeCents: fee,
		TotalCents:      subtotal + fee,
		Status:          b.Status.String(),
		PaymentStatus:   b.PaymentStatus.String(),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func (b *BookingBuilder) BuildListItem() *queries.BookingListItem {
	view := b.BuildView()
	return &queries.BookingListItem{
		ID:            view.ID,
		RoomID:        view.RoomID,
		RoomName:      view.RoomName,
		CheckIn:       view.CheckIn,
		CheckOut:      view.CheckOut,
		Status:        view.Status,
		PaymentStatus: view.PaymentStatus,
		TotalCents:    view.TotalCents,
		CreatedAt:     view.CreatedAt,
	}
}

func (b *BookingBuilder) BuildRoomSnapshot() *shared.RoomSnapshot {
	return &shared.RoomSnapshot{
		ID:               b.RoomID,
		Name:             b.RoomName,
		NightlyRateCents: b.NightlyRateCents,
		Quantity:         b.Quantity,
		Capacity:         b.Capacity,
	}
}

func (b *BookingBuilder) BuildBookingSnapshot(id uuid.UUID) *shared.BookingSnapshot {
	return &shared.BookingSnapshot{
		ID:            id,
		RoomID:        b.RoomID,
		GuestID:       b.GuestID,
		CheckIn:       b.CheckIn,
		CheckOut:      b.CheckOut,
		Status:        b.Status.String(),
		PaymentStatus: b.PaymentStatus.String(),
	}
}

func (b *BookingBuilder) BuildRoomView() *queries.RoomView {
	return &queries.RoomView{
		ID:               b.RoomID,
		Name:             b.RoomName,
		NightlyRateCents: b.NightlyRateCents,
		Quantity:         b.Quantity,
		Capacity:         b.Capacity,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithRoomID(id uuid.UUID) *BookingBuilder {
	b.RoomID = id
	return b
}

func (b *BookingBuilder) WithGuestID(id uuid.UUID) *BookingBuilder {
	b.GuestID = id
	return b
}

func (b *BookingBuilder) WithStay(checkIn, checkOut time.Time) *BookingBuilder {
	b.CheckIn = checkIn
	b.CheckOut = checkOut
	return b
}

func (b *BookingBuilder) WithGuestCount(n int32) *BookingBuilder {
	b.GuestCount = n
	return b
}

func (b *BookingBuilder) WithNightlyRateCents(cents int64) *BookingBuilder {
	b.NightlyRateCents = cents
	return b
}

func (b *BookingBuilder) WithQuantity(n int32) *BookingBuilder {
	b.Quantity = n
	return b
}

func (b *BookingBuilder) WithStatus(s dombooking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) WithPaymentStatus(s dombooking.PaymentStatus) *BookingBuilder {
	b.PaymentStatus = s
	return b
}

func (b *BookingBuilder) WithNote(note string) *BookingBuilder {
	b.Note = note
	return b
}
