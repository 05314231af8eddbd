package repository

import (
	"context"

	"resort-booking/internal/infra"
	"resort-booking/internal/infra/db"

	"github.com/google/uuid"
)

const updateLastLoginQuery = `
UPDATE users
SET last_login = now(), updated_at = now()
WHERE id = $1`

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, updateLastLoginQuery, userID)
	if err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}
