package request

import (
	"strings"
	"time"

	"resort-booking/internal/domain/booking"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RoomID     uuid.UUID `json:"room_id" binding:"required"`
	CheckIn    time.Time `json:"check_in" binding:"required"`
	CheckOut   time.Time `json:"check_out" binding:"required"`
	GuestCount int32     `json:"guest_count" binding:"required,min=1"`
	Note       *string   `json:"note,omitempty"`
}

// StayPeriod validates the half-open date range; check-in day only for
// zero-night requests is rejected here, before any storage access.
func (r CreateBookingRequest) StayPeriod() (booking.StayPeriod, error) {
	return booking.NewStayPeriod(r.CheckIn, r.CheckOut)
}

func (r CreateBookingRequest) TrimmedNote() booking.Note {
	if r.Note == nil {
		return booking.NewNote("")
	}
	return booking.NewNote(strings.TrimSpace(*r.Note))
}

type AvailabilityQuery struct {
	CheckIn  *time.Time `form:"check_in" time_format:"2006-01-02"`
	CheckOut *time.Time `form:"check_out" time_format:"2006-01-02"`
}

type QuoteQuery struct {
	CheckIn  time.Time `form:"check_in" binding:"required" time_format:"2006-01-02"`
	CheckOut time.Time `form:"check_out" binding:"required" time_format:"2006-01-02"`
}
