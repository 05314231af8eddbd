package readstore

import (
	"context"

	"resort-booking/internal/infra"
	"resort-booking/internal/infra/db"
	"resort-booking/internal/pkg/pgconv"
	"resort-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const findBookingByIDQuery = `
SELECT b.id, b.room_id, r.name, b.guest_id, u.email,
       b.check_in, b.check_out, b.guest_count, b.nights,
       b.subtotal_cents, b.service_fee_cents, b.total_cents,
       b.status, b.payment_status, b.note, b.created_at, b.updated_at
FROM bookings b
JOIN rooms r ON r.id = b.room_id
JOIN users u ON u.id = b.guest_id
WHERE b.id = $1`

const findBookingsByGuestQuery = `
SELECT b.id, b.room_id, r.name, b.check_in, b.check_out,
       b.status, b.payment_status, b.total_cents, b.created_at
FROM bookings b
JOIN rooms r ON r.id = b.room_id
WHERE b.guest_id = $1
ORDER BY b.created_at DESC`

const findBookingsByStatusQuery = `
SELECT b.id, b.room_id, r.name, b.check_in, b.check_out,
       b.status, b.payment_status, b.total_cents, b.created_at
FROM bookings b
JOIN rooms r ON r.id = b.room_id
WHERE b.status = $1
ORDER BY b.created_at`

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var (
		view      queries.BookingView
		checkIn   pgtype.Date
		checkOut  pgtype.Date
		note      pgtype.Text
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	err := s.db.QueryRow(ctx, findBookingByIDQuery, id).Scan(
		&view.ID,
		&view.RoomID,
		&view.RoomName,
		&view.GuestID,
		&view.GuestEmail,
		&checkIn,
		&checkOut,
		&view.GuestCount,
		&view.Nights,
		&view.SubtotalCents,
		&view.ServiceFeeCents,
		&view.TotalCents,
		&view.Status,
		&view.PaymentStatus,
		&note,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	view.CheckIn = pgconv.DateFromPgtype(checkIn)
	view.CheckOut = pgconv.DateFromPgtype(checkOut)
	view.Note = pgconv.StringPtrFromPgtype(note)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}

func (s *BookingReadStore) FindByGuestID(ctx context.Context, guestID uuid.UUID) ([]*queries.BookingListItem, error) {
	return s.listBookings(ctx, findBookingsByGuestQuery, guestID)
}

func (s *BookingReadStore) FindByStatus(ctx context.Context, status string) ([]*queries.BookingListItem, error) {
	return s.listBookings(ctx, findBookingsByStatusQuery, status)
}

func (s *BookingReadStore) listBookings(ctx context.Context, query string, arg any) ([]*queries.BookingListItem, error) {
	rows, err := s.db.Query(ctx, query, arg)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var result []*queries.BookingListItem
	for rows.Next() {
		var (
			item      queries.BookingListItem
			checkIn   pgtype.Date
			checkOut  pgtype.Date
			createdAt pgtype.Timestamptz
		)
		err := rows.Scan(
			&item.ID,
			&item.RoomID,
			&item.RoomName,
			&checkIn,
			&checkOut,
			&item.Status,
			&item.PaymentStatus,
			&item.TotalCents,
			&createdAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		item.CheckIn = pgconv.DateFromPgtype(checkIn)
		item.CheckOut = pgconv.DateFromPgtype(checkOut)
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}

	return result, nil
}
