package response

import (
	"time"

	"resort-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type RoomResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	NightlyRateCents int64     `json:"nightlyRateCents"`
	Quantity         int32     `json:"quantity"`
	Capacity         int32     `json:"capacity"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type AvailabilityResponse struct {
	RoomID         uuid.UUID  `json:"roomId"`
	CheckIn        *time.Time `json:"checkIn,omitempty"`
	CheckOut       *time.Time `json:"checkOut,omitempty"`
	TotalQuantity  int32      `json:"totalQuantity"`
	RemainingUnits int32      `json:"remainingUnits"`
}

type QuoteResponse struct {
	RoomID          uuid.UUID `json:"roomId"`
	Nights          int       `json:"nights"`
	SubtotalCents   int64     `json:"subtotalCents"`
	ServiceFeeCents int64     `json:"serviceFeeCents"`
	TotalCents      int64     `json:"totalCents"`
}

func FromRoomView(rm *queries.RoomView) *RoomResponse {
	var resp RoomResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromRoomViews(rms []*queries.RoomView) []*RoomResponse {
	result := make([]*RoomResponse, 0, len(rms))
	for _, rm := range rms {
		result = append(result, FromRoomView(rm))
	}
	return result
}

func FromAvailabilityView(rm *queries.AvailabilityView) *AvailabilityResponse {
	var resp AvailabilityResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromPriceQuoteView(rm *queries.PriceQuoteView) *QuoteResponse {
	var resp QuoteResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}
