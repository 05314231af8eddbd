package shared

import (
	"context"
	"time"

	"resort-booking/internal/domain/booking"
	"resort-booking/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	RoomByID(ctx context.Context, id uuid.UUID) (*RoomSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type BookingRepository interface {
	// CreateIfAvailable performs the availability check and the insert as one
	// atomic operation: it locks the room row, recounts overlapping active
	// bookings, and inserts only when a unit remains. A lost race surfaces as
	// a CONFLICT repository error, never as a double booking.
	CreateIfAvailable(ctx context.Context, db db.DBTX, b *booking.Booking) (uuid.UUID, error)
	// UpdateStatus is a conditional write guarded by the expected prior
	// status; zero rows affected means the guard failed.
	UpdateStatus(ctx context.Context, db db.DBTX, id uuid.UUID, next, expectedPrior booking.Status) error
	// UpdatePaymentStatus settles payment only for a confirmed booking whose
	// payment is still pending.
	UpdatePaymentStatus(ctx context.Context, db db.DBTX, id uuid.UUID, next booking.PaymentStatus) error
}

type IdempotencyRepository interface {
	// TryInsert reports whether the key was freshly claimed. false means a
	// record already exists and the caller must read it back to decide
	// between replay and duplicate.
	TryInsert(ctx context.Context, db db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	UpdateStatusCompleted(ctx context.Context, db db.DBTX, key, userID uuid.UUID, responseBodyHash string, resultBookingID uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, db db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, db db.DBTX, userID uuid.UUID) error
}
