//go:build unit

package booking_test

import (
	"testing"

	"resort-booking/internal/domain/booking"
	"resort-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingBooking(t *testing.T) *booking.Booking {
	t.Helper()
	b, err := builder.NewBookingBuilder().BuildDomain()
	require.NoError(t, err)
	return b
}

func TestNewBooking(t *testing.T) {
	t.Run("starts pending with payment pending", func(t *testing.T) {
		b := newPendingBooking(t)

		assert.NotEqual(t, uuid.Nil, b.ID())
		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Equal(t, booking.PaymentPending, b.PaymentStatus())
		assert.False(t, b.IsApproved())
	})

	t.Run("rejects non-positive guest count", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().WithGuestCount(0).BuildDomain()
		require.ErrorIs(t, err, booking.ErrInvalidGuestCount)

		_, err = builder.NewBookingBuilder().WithGuestCount(-1).BuildDomain()
		require.ErrorIs(t, err, booking.ErrInvalidGuestCount)
	})
}

func TestBookingLifecycle(t *testing.T) {
	t.Run("pending can be approved", func(t *testing.T) {
		b := newPendingBooking(t)

		require.NoError(t, b.Approve())
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.True(t, b.IsApproved())
	})

	t.Run("pending can be cancelled", func(t *testing.T) {
		b := newPendingBooking(t)

		require.NoError(t, b.Cancel())
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("pending cannot be completed", func(t *testing.T) {
		b := newPendingBooking(t)

		require.ErrorIs(t, b.Complete(), booking.ErrInvalidTransition)
		assert.Equal(t, booking.StatusPending, b.Status())
	})

	t.Run("confirmed can be completed or cancelled", func(t *testing.T) {
		b := newPendingBooking(t)
		require.NoError(t, b.Approve())
		require.NoError(t, b.Complete())
		assert.Equal(t, booking.StatusCompleted, b.Status())

		b2 := newPendingBooking(t)
		require.NoError(t, b2.Approve())
		require.NoError(t, b2.Cancel())
		assert.Equal(t, booking.StatusCancelled, b2.Status())
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		b := newPendingBooking(t)
		require.NoError(t, b.Cancel())

		require.ErrorIs(t, b.Approve(), booking.ErrInvalidTransition)
		require.ErrorIs(t, b.Complete(), booking.ErrInvalidTransition)
		require.ErrorIs(t, b.Cancel(), booking.ErrInvalidTransition)
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("completed is terminal", func(t *testing.T) {
		b := newPendingBooking(t)
		require.NoError(t, b.Approve())
		require.NoError(t, b.Complete())

		require.ErrorIs(t, b.Approve(), booking.ErrInvalidTransition)
		require.ErrorIs(t, b.Cancel(), booking.ErrInvalidTransition)
		assert.Equal(t, booking.StatusCompleted, b.Status())
	})

	t.Run("decline only applies to pending", func(t *testing.T) {
		b := newPendingBooking(t)
		require.NoError(t, b.Decline())
		assert.Equal(t, booking.StatusCancelled, b.Status())

		b2 := newPendingBooking(t)
		require.NoError(t, b2.Approve())
		require.ErrorIs(t, b2.Decline(), booking.ErrInvalidTransition)
		assert.Equal(t, booking.StatusConfirmed, b2.Status())
	})

	t.Run("failed transition does not mutate state", func(t *testing.T) {
		b := newPendingBooking(t)

		require.ErrorIs(t, b.Complete(), booking.ErrInvalidTransition)
		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Equal(t, booking.PaymentPending, b.PaymentStatus())
	})
}

func TestBookingPayment(t *testing.T) {
	t.Run("cannot mark paid before approval", func(t *testing.T) {
		b := newPendingBooking(t)

		require.ErrorIs(t, b.MarkPaid(), booking.ErrInvalidTransition)
		assert.Equal(t, booking.PaymentPending, b.PaymentStatus())
		assert.Equal(t, booking.StatusPending, b.Status())
	})

	t.Run("confirmed booking can be marked paid", func(t *testing.T) {
		b := newPendingBooking(t)
		require.NoError(t, b.Approve())

		require.NoError(t, b.MarkPaid())
		assert.Equal(t, booking.PaymentPaid, b.PaymentStatus())
	})

	t.Run("payment settles exactly once", func(t *testing.T) {
		b := newPendingBooking(t)
		require.NoError(t, b.Approve())
		require.NoError(t, b.MarkPaid())

		require.ErrorIs(t, b.MarkPaid(), booking.ErrInvalidTransition)
		require.ErrorIs(t, b.MarkPaymentFailed(), booking.ErrInvalidTransition)
		assert.Equal(t, booking.PaymentPaid, b.PaymentStatus())
	})

	t.Run("payment can fail after approval", func(t *testing.T) {
		b := newPendingBooking(t)
		require.NoError(t, b.Approve())

		require.NoError(t, b.MarkPaymentFailed())
		assert.Equal(t, booking.PaymentFailed, b.PaymentStatus())
	})

	t.Run("completed stay remains payable", func(t *testing.T) {
		b := newPendingBooking(t)
		require.NoError(t, b.Approve())
		require.NoError(t, b.Complete())

		require.NoError(t, b.MarkPaid())
		assert.Equal(t, booking.PaymentPaid, b.PaymentStatus())
	})

	t.Run("cancelled booking cannot settle payment", func(t *testing.T) {
		b := newPendingBooking(t)
		require.NoError(t, b.Cancel())

		require.ErrorIs(t, b.MarkPaid(), booking.ErrInvalidTransition)
		assert.Equal(t, booking.PaymentPending, b.PaymentStatus())
	})
}

func TestBookingOwnership(t *testing.T) {
	t.Run("owner can cancel", func(t *testing.T) {
		owner := uuid.New()
		b, err := builder.NewBookingBuilder().WithGuestID(owner).BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.CancelBy(owner))
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("another guest cannot cancel", func(t *testing.T) {
		b := newPendingBooking(t)

		require.ErrorIs(t, b.CancelBy(uuid.New()), booking.ErrNotOwner)
		assert.Equal(t, booking.StatusPending, b.Status())
	})
}

func TestBookingOccupiesDuring(t *testing.T) {
	b := newPendingBooking(t)
	// Default builder stay is [2024-06-01, 2024-06-04)

	overlapping := mustPeriod(t, date(2024, 6, 3), date(2024, 6, 7))
	backToBack := mustPeriod(t, date(2024, 6, 4), date(2024, 6, 6))

	assert.True(t, b.OccupiesDuring(overlapping))
	assert.False(t, b.OccupiesDuring(backToBack))

	require.NoError(t, b.Cancel())
	assert.False(t, b.OccupiesDuring(overlapping))
}
