package readstore

import (
	"context"
	"time"

	"resort-booking/internal/infra"
	"resort-booking/internal/infra/db"
	"resort-booking/internal/pkg/pgconv"
	"resort-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const findRoomByIDQuery = `
SELECT id, name, nightly_rate_cents, quantity, capacity, created_at, updated_at
FROM rooms
WHERE id = $1`

const listRoomsQuery = `
SELECT id, name, nightly_rate_cents, quantity, capacity, created_at, updated_at
FROM rooms
ORDER BY name`

const countOverlappingQuery = `
SELECT COUNT(*)
FROM bookings
WHERE room_id = $1
  AND status <> 'cancelled'
  AND check_in < $3
  AND $2 < check_out`

type RoomReadStore struct {
	db db.DBTX
}

func NewRoomReadStore(dbtx db.DBTX) *RoomReadStore {
	return &RoomReadStore{db: dbtx}
}

func (s *RoomReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	row := s.db.QueryRow(ctx, findRoomByIDQuery, id)
	view, err := scanRoomView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room by ID", err)
	}
	return view, nil
}

func (s *RoomReadStore) List(ctx context.Context) ([]*queries.RoomView, error) {
	rows, err := s.db.Query(ctx, listRoomsQuery)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}
	defer rows.Close()

	var result []*queries.RoomView
	for rows.Next() {
		view, err := scanRoomView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan room row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate room rows", err)
	}

	return result, nil
}

func (s *RoomReadStore) CountOverlapping(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (int64, error) {
	var count int64
	err := s.db.QueryRow(ctx, countOverlappingQuery,
		roomID, pgconv.DateToPgtype(checkIn), pgconv.DateToPgtype(checkOut)).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count overlapping bookings", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoomView(row rowScanner) (*queries.RoomView, error) {
	var (
		view      queries.RoomView
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&view.ID,
		&view.Name,
		&view.NightlyRateCents,
		&view.Quantity,
		&view.Capacity,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}
