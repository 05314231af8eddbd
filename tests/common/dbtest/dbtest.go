//go:build e2e

package dbtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Reference rows shared by every e2e suite. IDs are fixed so tests can
// address rooms and users without querying for them first.
var (
	AdminUserID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	StaffUserID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	GuestUserID = uuid.MustParse("33333333-3333-3333-3333-333333333333")

	GardenVillaRoomID   = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
	OceanSuiteRoomID    = uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")
	BeachBungalowRoomID = uuid.MustParse("cccccccc-cccc-cccc-cccc-cccccccccccc")
)

const (
	AdminEmail = "admin@resort.example"
	StaffEmail = "staff@resort.example"
	GuestEmail = "guest@resort.example"

	TestPassword = "password123"
)

func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("failed to hash test password: %w", err)
	}

	users := []struct {
		id    uuid.UUID
		email string
		role  string
	}{
		{AdminUserID, AdminEmail, "admin"},
		{StaffUserID, StaffEmail, "staff"},
		{GuestUserID, GuestEmail, "guest"},
	}
	for _, u := range users {
		_, err := pool.Exec(ctx, `
			INSERT INTO users (id, email, password_hash, role, is_active)
			VALUES ($1, $2, $3, $4, true)
			ON CONFLICT (id) DO NOTHING`,
			u.id, u.email, string(hash), u.role)
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.email, err)
		}
	}

	rooms := []struct {
		id        uuid.UUID
		name      string
		rateCents int64
		quantity  int32
		capacity  int32
	}{
		{GardenVillaRoomID, "Garden Villa", 120000, 4, 2},
		{OceanSuiteRoomID, "Ocean Suite", 250000, 2, 4},
		{BeachBungalowRoomID, "Beach Bungalow", 180000, 1, 3},
	}
	for _, r := range rooms {
		_, err := pool.Exec(ctx, `
			INSERT INTO rooms (id, name, nightly_rate_cents, quantity, capacity)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO NOTHING`,
			r.id, r.name, r.rateCents, r.quantity, r.capacity)
		if err != nil {
			return fmt.Errorf("failed to seed room %s: %w", r.name, err)
		}
	}

	return nil
}

// CreateTestUser inserts an additional user with TestPassword and returns
// its ID. Survives until the database is dropped, not just until ResetDB.
func CreateTestUser(t *testing.T, pool *pgxpool.Pool, email, role string) uuid.UUID {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(t, err, "failed to hash test password")

	id := uuid.New()
	_, err = pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, true)
		ON CONFLICT (email) DO NOTHING`,
		id, email, string(hash), role)
	require.NoError(t, err, "failed to create test user")

	var actualID uuid.UUID
	err = pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&actualID)
	require.NoError(t, err, "failed to read back test user")
	return actualID
}

// ResetDB truncates all mutable state between subtests. Reference rows
// (users, rooms) stay in place.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, "TRUNCATE bookings, idempotency_keys, notification_jobs")
	if err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	return nil
}
