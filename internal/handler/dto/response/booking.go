package response

import (
	"time"

	"resort-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID              uuid.UUID `json:"id"`
	RoomID          uuid.UUID `json:"roomId"`
	RoomName        string    `json:"roomName"`
	GuestID         uuid.UUID `json:"guestId"`
	GuestEmail      string    `json:"guestEmail"`
	CheckIn         time.Time `json:"checkIn"`
	CheckOut        time.Time `json:"checkOut"`
	GuestCount      int32     `json:"guestCount"`
	Nights          int32     `json:"nights"`
	SubtotalCents   int64     `json:"subtotalCents"`
	ServiceFeeCents int64     `json:"serviceFeeCents"`
	TotalCents      int64     `json:"totalCents"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"paymentStatus"`
	Note            *string   `json:"note,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type BookingListResponse struct {
	ID            uuid.UUID `json:"id"`
	RoomID        uuid.UUID `json:"roomId"`
	RoomName      string    `json:"roomName"`
	CheckIn       time.Time `json:"checkIn"`
	CheckOut      time.Time `json:"checkOut"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	TotalCents    int64     `json:"totalCents"`
	CreatedAt     time.Time `json:"createdAt"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromBookingListItems(rms []*queries.BookingListItem) []*BookingListResponse {
	result := make([]*BookingListResponse, 0, len(rms))
	for _, rm := range rms {
		var resp BookingListResponse
		_ = copier.Copy(&resp, rm)
		result = append(result, &resp)
	}
	return result
}
