package readstore

import (
	"context"

	"resort-booking/internal/infra"
	"resort-booking/internal/infra/db"
	"resort-booking/internal/pkg/pgconv"
	"resort-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

const findUserByEmailQuery = `
SELECT id, email, password_hash, role, is_active
FROM users
WHERE email = $1`

const findUserByIDQuery = `
SELECT id, email, role, is_active
FROM users
WHERE id = $1`

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (s *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.CredentialsView, error) {
	var view queries.CredentialsView
	err := s.db.QueryRow(ctx, findUserByEmailQuery, email).Scan(
		&view.ID,
		&view.Email,
		&view.PasswordHash,
		&view.Role,
		&view.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}
	return &view, nil
}

func (s *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var view queries.AuthorizedUserView
	err := s.db.QueryRow(ctx, findUserByIDQuery, id).Scan(
		&view.ID,
		&view.Email,
		&view.Role,
		&view.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &view, nil
}
