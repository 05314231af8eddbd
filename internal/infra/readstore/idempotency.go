package readstore

import (
	"context"

	"resort-booking/internal/infra"
	"resort-booking/internal/infra/db"
	"resort-booking/internal/pkg/pgconv"
	"resort-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const findIdempotencyKeyQuery = `
SELECT key, user_id, status, request_hash, result_booking_id, expires_at
FROM idempotency_keys
WHERE key = $1 AND user_id = $2`

type IdempotencyReadStore struct {
	db db.DBTX
}

func NewIdempotencyReadStore(dbtx db.DBTX) *IdempotencyReadStore {
	return &IdempotencyReadStore{db: dbtx}
}

func (s *IdempotencyReadStore) FindByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	var (
		rec             shared.IdempotencyRecord
		resultBookingID pgtype.UUID
		expiresAt       pgtype.Timestamptz
	)
	err := s.db.QueryRow(ctx, findIdempotencyKeyQuery, key, userID).Scan(
		&rec.Key,
		&rec.UserID,
		&rec.Status,
		&rec.RequestHash,
		&resultBookingID,
		&expiresAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find idempotency key", err)
	}
	rec.ResultBookingID = pgconv.UUIDPtrFromPgtype(resultBookingID)
	rec.ExpiresAt = pgconv.TimeFromPgtype(expiresAt)
	return &rec, nil
}
