//go:build unit

package commands_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"testing"
	"time"

	dombooking "resort-booking/internal/domain/booking"
	"resort-booking/internal/domain/user"
	reqdto "resort-booking/internal/handler/dto/request"
	"resort-booking/internal/infra"
	"resort-booking/internal/infra/db"
	"resort-booking/internal/usecase/commands"
	"resort-booking/internal/usecase/queries"
	"resort-booking/internal/usecase/shared"
	"resort-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type storedBooking struct {
	id              uuid.UUID
	roomID          uuid.UUID
	guestID         uuid.UUID
	checkIn         time.Time
	checkOut        time.Time
	guestCount      int32
	nights          int32
	subtotalCents   int64
	serviceFeeCents int64
	totalCents      int64
	status          string
	paymentStatus   string
}

type idempotencyKey struct {
	key    uuid.UUID
	userID uuid.UUID
}

type notificationJob struct {
	kind    string
	topic   string
	payload []byte
}

// fakeStore is an in-memory stand-in for the postgres unit of work. A single
// mutex held across Within serializes transactions, which matches the
// atomicity CreateIfAvailable gets from the room row lock in production.
type fakeStore struct {
	mu            sync.Mutex
	rooms         map[uuid.UUID]*shared.RoomSnapshot
	bookings      map[uuid.UUID]*storedBooking
	idempotency   map[idempotencyKey]*shared.IdempotencyRecord
	notifications []notificationJob
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rooms:       make(map[uuid.UUID]*shared.RoomSnapshot),
		bookings:    make(map[uuid.UUID]*storedBooking),
		idempotency: make(map[idempotencyKey]*shared.IdempotencyRecord),
	}
}

func (s *fakeStore) addRoom(quantity, capacity int32, rateCents int64) uuid.UUID {
	id := uuid.New()
	s.rooms[id] = &shared.RoomSnapshot{
		ID:               id,
		Name:             "Ocean Suite",
		NightlyRateCents: rateCents,
		Quantity:         quantity,
		Capacity:         capacity,
	}
	return id
}

// UnitOfWork

func (s *fakeStore) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx, &fakeTx{store: s})
}

func (s *fakeStore) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (s *fakeStore) CommandReads() shared.CommandReads {
	return &lockedReads{store: s}
}

type fakeTx struct{ store *fakeStore }

func (t *fakeTx) Bookings() shared.BookingRepository { return &fakeBookingRepo{store: t.store} }

func (t *fakeTx) Idempotency() shared.IdempotencyRepository {
	return &fakeIdempotencyRepo{store: t.store}
}

func (t *fakeTx) Notifications() shared.NotificationRepository {
	return &fakeNotificationRepo{store: t.store}
}

func (t *fakeTx) Users() shared.UserRepository { return nil }
func (t *fakeTx) Reads() shared.CommandReads   { return &txReads{store: t.store} }
func (t *fakeTx) DB() db.DBTX                  { return nil }

// lockedReads serves CommandReads outside a transaction; txReads serves the
// same data inside Within, where the store mutex is already held.

type lockedReads struct{ store *fakeStore }

func (r *lockedReads) RoomByID(ctx context.Context, id uuid.UUID) (*shared.RoomSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.roomByID(id)
}

func (r *lockedReads) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.bookingByID(id)
}

func (r *lockedReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.idempotencyByKey(key, userID)
}

type txReads struct{ store *fakeStore }

func (r *txReads) RoomByID(_ context.Context, id uuid.UUID) (*shared.RoomSnapshot, error) {
	return r.store.roomByID(id)
}

func (r *txReads) BookingByID(_ context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	return r.store.bookingByID(id)
}

func (r *txReads) IdempotencyByKey(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	return r.store.idempotencyByKey(key, userID)
}

func (s *fakeStore) roomByID(id uuid.UUID) (*shared.RoomSnapshot, error) {
	room, ok := s.rooms[id]
	if !ok {
		return nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	snapshot := *room
	return &snapshot, nil
}

func (s *fakeStore) bookingByID(id uuid.UUID) (*shared.BookingSnapshot, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return &shared.BookingSnapshot{
		ID:            b.id,
		RoomID:        b.roomID,
		GuestID:       b.guestID,
		CheckIn:       b.checkIn,
		CheckOut:      b.checkOut,
		Status:        b.status,
		PaymentStatus: b.paymentStatus,
	}, nil
}

func (s *fakeStore) idempotencyByKey(key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	record, ok := s.idempotency[idempotencyKey{key: key, userID: userID}]
	if !ok {
		return nil, infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	copied := *record
	return &copied, nil
}

type fakeBookingRepo struct{ store *fakeStore }

func (r *fakeBookingRepo) CreateIfAvailable(_ context.Context, _ db.DBTX, b *dombooking.Booking) (uuid.UUID, error) {
	room, ok := r.store.rooms[b.RoomID()]
	if !ok {
		return uuid.Nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}

	var reserved int32
	for _, existing := range r.store.bookings {
		if existing.roomID != b.RoomID() || existing.status == "cancelled" {
			continue
		}
		if existing.checkIn.Before(b.Period().CheckOut()) && b.Period().CheckIn().Before(existing.checkOut) {
			reserved++
		}
	}
	if reserved >= room.Quantity {
		return uuid.Nil, infra.WrapRepoErr("no units available", nil, infra.KindConflict)
	}

	price := b.Price()
	r.store.bookings[b.ID()] = &storedBooking{
		id:              b.ID(),
		roomID:          b.RoomID(),
		guestID:         b.GuestID(),
		checkIn:         b.Period().CheckIn(),
		checkOut:        b.Period().CheckOut(),
		guestCount:      b.GuestCount(),
		nights:          int32(price.Nights),
		subtotalCents:   price.SubtotalCents,
		serviceFeeCents: price.ServiceFeeCents,
		totalCents:      price.TotalCents,
		status:          b.Status().String(),
		paymentStatus:   b.PaymentStatus().String(),
	}
	return b.ID(), nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, _ db.DBTX, id uuid.UUID, next, expectedPrior dombooking.Status) error {
	b, ok := r.store.bookings[id]
	if !ok || b.status != expectedPrior.String() {
		return infra.WrapRepoErr("status guard failed", nil, infra.KindConflict)
	}
	b.status = next.String()
	return nil
}

func (r *fakeBookingRepo) UpdatePaymentStatus(_ context.Context, _ db.DBTX, id uuid.UUID, next dombooking.PaymentStatus) error {
	b, ok := r.store.bookings[id]
	if !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	approved := b.status == "confirmed" || b.status == "completed"
	if !approved || b.paymentStatus != "pending" {
		return infra.WrapRepoErr("payment guard failed", nil, infra.KindConflict)
	}
	b.paymentStatus = next.String()
	return nil
}

type fakeIdempotencyRepo struct{ store *fakeStore }

func (r *fakeIdempotencyRepo) TryInsert(_ context.Context, _ db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	k := idempotencyKey{key: key, userID: userID}
	if _, exists := r.store.idempotency[k]; exists {
		return false, nil
	}
	r.store.idempotency[k] = &shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Status:      "processing",
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (r *fakeIdempotencyRepo) UpdateStatusCompleted(_ context.Context, _ db.DBTX, key, userID uuid.UUID, responseBodyHash string, resultBookingID uuid.UUID) error {
	record, ok := r.store.idempotency[idempotencyKey{key: key, userID: userID}]
	if !ok {
		return infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	record.Status = "completed"
	record.ResultBookingID = &resultBookingID
	return nil
}

type fakeNotificationRepo struct{ store *fakeStore }

func (r *fakeNotificationRepo) CreateJob(_ context.Context, _ db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	r.store.notifications = append(r.store.notifications, notificationJob{kind: kind, topic: topic, payload: payload})
	return nil
}

type fakeBookingQueries struct{ store *fakeStore }

func (q *fakeBookingQueries) GetByID(ctx context.Context, _ uuid.UUID, _ user.Role, id uuid.UUID) (*queries.BookingView, error) {
	return q.GetByIDSystem(ctx, id)
}

func (q *fakeBookingQueries) GetByIDSystem(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	q.store.mu.Lock()
	defer q.store.mu.Unlock()
	b, ok := q.store.bookings[id]
	if !ok {
		return nil, commands.ErrBookingNotFound
	}
	return &queries.BookingView{
		ID:              b.id,
		RoomID:          b.roomID,
		GuestID:         b.guestID,
		CheckIn:         b.checkIn,
		CheckOut:        b.checkOut,
		GuestCount:      b.guestCount,
		Nights:          b.nights,
		SubtotalCents:   b.subtotalCents,
		ServiceFeeCents: b.serviceFeeCents,
		TotalCents:      b.totalCents,
		Status:          b.status,
		PaymentStatus:   b.paymentStatus,
	}, nil
}

func (q *fakeBookingQueries) ListByGuest(_ context.Context, _ uuid.UUID) ([]*queries.BookingListItem, error) {
	return nil, nil
}

func (q *fakeBookingQueries) ListPending(_ context.Context) ([]*queries.BookingListItem, error) {
	return nil, nil
}

func newBookingCommands(store *fakeStore) commands.BookingCommands {
	return commands.NewBookingCommands(
		store,
		&fakeBookingQueries{store: store},
		dombooking.NewStandardPriceCalculator(dombooking.DefaultServiceFeePercent),
		fixedClock{now: date(2024, 5, 1)},
	)
}

func requestHashOf(t *testing.T, req reqdto.CreateBookingRequest) string {
	t.Helper()
	data, err := json.Marshal(req)
	require.NoError(t, err)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func TestRequestBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending booking with full price breakdown", func(t *testing.T) {
		store := newFakeStore()
		roomID := store.addRoom(4, 2, 120000)
		cmds := newBookingCommands(store)

		req := builder.NewBookingBuilder().WithRoomID(roomID).BuildCreateRequestDTO()

		result, err := cmds.RequestBooking(ctx, req, uuid.New(), uuid.New())
		require.NoError(t, err)

		assert.False(t, result.IsReplayed)
		assert.Equal(t, "pending", result.Booking.Status)
		assert.Equal(t, "pending", result.Booking.PaymentStatus)
		assert.Equal(t, int32(3), result.Booking.Nights)
		assert.Equal(t, int64(360000), result.Booking.SubtotalCents)
		assert.Equal(t, int64(36000), result.Booking.ServiceFeeCents)
		assert.Equal(t, int64(396000), result.Booking.TotalCents)

		require.Len(t, store.notifications, 1)
		assert.Equal(t, "booking_requested", store.notifications[0].topic)
	})

	t.Run("unknown room", func(t *testing.T) {
		store := newFakeStore()
		cmds := newBookingCommands(store)

		req := builder.NewBookingBuilder().BuildCreateRequestDTO()

		_, err := cmds.RequestBooking(ctx, req, uuid.New(), uuid.New())
		require.ErrorIs(t, err, commands.ErrRoomNotFound)
	})

	t.Run("guest count over capacity", func(t *testing.T) {
		store := newFakeStore()
		roomID := store.addRoom(4, 2, 120000)
		cmds := newBookingCommands(store)

		req := builder.NewBookingBuilder().WithRoomID(roomID).WithGuestCount(3).BuildCreateRequestDTO()

		_, err := cmds.RequestBooking(ctx, req, uuid.New(), uuid.New())
		require.ErrorIs(t, err, commands.ErrRoomOverCapacity)
	})

	t.Run("zero night stay", func(t *testing.T) {
		store := newFakeStore()
		roomID := store.addRoom(4, 2, 120000)
		cmds := newBookingCommands(store)

		req := builder.NewBookingBuilder().
			WithRoomID(roomID).
			WithStay(date(2024, 6, 1), date(2024, 6, 1)).
			BuildCreateRequestDTO()

		_, err := cmds.RequestBooking(ctx, req, uuid.New(), uuid.New())
		require.ErrorIs(t, err, commands.ErrInvalidStayPeriod)
	})

	t.Run("last unit taken by overlapping booking", func(t *testing.T) {
		store := newFakeStore()
		roomID := store.addRoom(1, 2, 120000)
		cmds := newBookingCommands(store)

		first := builder.NewBookingBuilder().
			WithRoomID(roomID).
			WithStay(date(2024, 6, 1), date(2024, 6, 5)).
			BuildCreateRequestDTO()
		_, err := cmds.RequestBooking(ctx, first, uuid.New(), uuid.New())
		require.NoError(t, err)

		overlapping := builder.NewBookingBuilder().
			WithRoomID(roomID).
			WithStay(date(2024, 6, 3), date(2024, 6, 7)).
			BuildCreateRequestDTO()
		_, err = cmds.RequestBooking(ctx, overlapping, uuid.New(), uuid.New())
		require.ErrorIs(t, err, commands.ErrNoAvailability)
	})

	t.Run("back to back stay on the last unit succeeds", func(t *testing.T) {
		store := newFakeStore()
		roomID := store.addRoom(1, 2, 120000)
		cmds := newBookingCommands(store)

		first := builder.NewBookingBuilder().
			WithRoomID(roomID).
			WithStay(date(2024, 6, 1), date(2024, 6, 5)).
			BuildCreateRequestDTO()
		_, err := cmds.RequestBooking(ctx, first, uuid.New(), uuid.New())
		require.NoError(t, err)

		backToBack := builder.NewBookingBuilder().
			WithRoomID(roomID).
			WithStay(date(2024, 6, 5), date(2024, 6, 8)).
			BuildCreateRequestDTO()
		_, err = cmds.RequestBooking(ctx, backToBack, uuid.New(), uuid.New())
		require.NoError(t, err)
	})

	t.Run("cancelled booking frees its unit", func(t *testing.T) {
		store := newFakeStore()
		roomID := store.addRoom(1, 2, 120000)
		cmds := newBookingCommands(store)
		guestID := uuid.New()

		req := builder.NewBookingBuilder().WithRoomID(roomID).BuildCreateRequestDTO()
		result, err := cmds.RequestBooking(ctx, req, guestID, uuid.New())
		require.NoError(t, err)

		require.NoError(t, cmds.CancelBooking(ctx, result.Booking.ID, guestID, user.RoleGuest))

		retry := builder.NewBookingBuilder().WithRoomID(roomID).BuildCreateRequestDTO()
		_, err = cmds.RequestBooking(ctx, retry, uuid.New(), uuid.New())
		require.NoError(t, err)
	})
}

func TestRequestBookingIdempotency(t *testing.T) {
	ctx := context.Background()

	t.Run("same key replays the original booking", func(t *testing.T) {
		store := newFakeStore()
		roomID := store.addRoom(1, 2, 120000)
		cmds := newBookingCommands(store)
		guestID := uuid.New()
		key := uuid.New()

		req := builder.NewBookingBuilder().WithRoomID(roomID).BuildCreateRequestDTO()

		first, err := cmds.RequestBooking(ctx, req, guestID, key)
		require.NoError(t, err)
		require.False(t, first.IsReplayed)

		// The only unit is held, so a non-replayed retry would conflict.
		second, err := cmds.RequestBooking(ctx, req, guestID, key)
		require.NoError(t, err)
		assert.True(t, second.IsReplayed)
		assert.Equal(t, first.Booking.ID, second.Booking.ID)
	})

	t.Run("same key with different payload while processing is a duplicate", func(t *testing.T) {
		store := newFakeStore()
		roomID := store.addRoom(4, 2, 120000)
		cmds := newBookingCommands(store)
		guestID := uuid.New()
		key := uuid.New()

		store.idempotency[idempotencyKey{key: key, userID: guestID}] = &shared.IdempotencyRecord{
			Key:         key,
			UserID:      guestID,
			Status:      "processing",
			RequestHash: "some-other-request",
		}

		req := builder.NewBookingBuilder().WithRoomID(roomID).BuildCreateRequestDTO()

		_, err := cmds.RequestBooking(ctx, req, guestID, key)
		require.ErrorIs(t, err, commands.ErrDuplicateBooking)
	})

	t.Run("same key with same payload while processing reports in progress", func(t *testing.T) {
		store := newFakeStore()
		roomID := store.addRoom(4, 2, 120000)
		cmds := newBookingCommands(store)
		guestID := uuid.New()
		key := uuid.New()

		req := builder.NewBookingBuilder().WithRoomID(roomID).BuildCreateRequestDTO()

		store.idempotency[idempotencyKey{key: key, userID: guestID}] = &shared.IdempotencyRecord{
			Key:         key,
			UserID:      guestID,
			Status:      "processing",
			RequestHash: requestHashOf(t, req),
		}

		_, err := cmds.RequestBooking(ctx, req, guestID, key)
		require.ErrorIs(t, err, commands.ErrIdempotencyInProgress)
	})
}

func TestRequestBookingRace(t *testing.T) {
	ctx := context.Background()

	store := newFakeStore()
	roomID := store.addRoom(1, 2, 120000)
	cmds := newBookingCommands(store)

	results := make([]error, 2)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := builder.NewBookingBuilder().
				WithRoomID(roomID).
				WithStay(date(2024, 6, 1), date(2024, 6, 5)).
				BuildCreateRequestDTO()
			_, err := cmds.RequestBooking(ctx, req, uuid.New(), uuid.New())
			results[i] = err
		}(i)
	}
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, commands.ErrNoAvailability):
			conflicted++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)
	assert.Len(t, store.bookings, 1)
}

func TestBookingTransitions(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fakeStore, commands.BookingCommands, uuid.UUID, uuid.UUID) {
		t.Helper()
		store := newFakeStore()
		roomID := store.addRoom(4, 2, 120000)
		cmds := newBookingCommands(store)
		guestID := uuid.New()

		req := builder.NewBookingBuilder().WithRoomID(roomID).BuildCreateRequestDTO()
		result, err := cmds.RequestBooking(ctx, req, guestID, uuid.New())
		require.NoError(t, err)
		return store, cmds, result.Booking.ID, guestID
	}

	t.Run("approve then complete", func(t *testing.T) {
		store, cmds, id, _ := setup(t)

		require.NoError(t, cmds.ApproveBooking(ctx, id))
		assert.Equal(t, "confirmed", store.bookings[id].status)

		require.NoError(t, cmds.CompleteBooking(ctx, id))
		assert.Equal(t, "completed", store.bookings[id].status)
	})

	t.Run("approve twice fails without mutating", func(t *testing.T) {
		store, cmds, id, _ := setup(t)
		require.NoError(t, cmds.ApproveBooking(ctx, id))

		require.ErrorIs(t, cmds.ApproveBooking(ctx, id), commands.ErrInvalidTransition)
		assert.Equal(t, "confirmed", store.bookings[id].status)
	})

	t.Run("decline pending booking", func(t *testing.T) {
		store, cmds, id, _ := setup(t)

		require.NoError(t, cmds.DeclineBooking(ctx, id))
		assert.Equal(t, "cancelled", store.bookings[id].status)
	})

	t.Run("complete requires approval first", func(t *testing.T) {
		store, cmds, id, _ := setup(t)

		require.ErrorIs(t, cmds.CompleteBooking(ctx, id), commands.ErrInvalidTransition)
		assert.Equal(t, "pending", store.bookings[id].status)
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, cmds, _, _ := setup(t)

		require.ErrorIs(t, cmds.ApproveBooking(ctx, uuid.New()), commands.ErrBookingNotFound)
	})

	t.Run("owner cancels own booking", func(t *testing.T) {
		store, cmds, id, guestID := setup(t)

		require.NoError(t, cmds.CancelBooking(ctx, id, guestID, user.RoleGuest))
		assert.Equal(t, "cancelled", store.bookings[id].status)
	})

	t.Run("another guest cannot cancel", func(t *testing.T) {
		store, cmds, id, _ := setup(t)

		err := cmds.CancelBooking(ctx, id, uuid.New(), user.RoleGuest)
		require.ErrorIs(t, err, commands.ErrNotBookingOwner)
		assert.Equal(t, "pending", store.bookings[id].status)
	})

	t.Run("staff can cancel any booking", func(t *testing.T) {
		store, cmds, id, _ := setup(t)

		require.NoError(t, cmds.CancelBooking(ctx, id, uuid.New(), user.RoleStaff))
		assert.Equal(t, "cancelled", store.bookings[id].status)
	})

	t.Run("cancelled booking is terminal", func(t *testing.T) {
		_, cmds, id, guestID := setup(t)
		require.NoError(t, cmds.CancelBooking(ctx, id, guestID, user.RoleGuest))

		require.ErrorIs(t, cmds.ApproveBooking(ctx, id), commands.ErrInvalidTransition)
		require.ErrorIs(t, cmds.CancelBooking(ctx, id, guestID, user.RoleGuest), commands.ErrInvalidTransition)
	})
}

func TestPaymentSettlement(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fakeStore, commands.BookingCommands, uuid.UUID) {
		t.Helper()
		store := newFakeStore()
		roomID := store.addRoom(4, 2, 120000)
		cmds := newBookingCommands(store)

		req := builder.NewBookingBuilder().WithRoomID(roomID).BuildCreateRequestDTO()
		result, err := cmds.RequestBooking(ctx, req, uuid.New(), uuid.New())
		require.NoError(t, err)
		return store, cmds, result.Booking.ID
	}

	t.Run("cannot mark paid before approval", func(t *testing.T) {
		store, cmds, id := setup(t)

		require.ErrorIs(t, cmds.MarkPaid(ctx, id), commands.ErrInvalidTransition)
		assert.Equal(t, "pending", store.bookings[id].paymentStatus)
	})

	t.Run("paid after approval", func(t *testing.T) {
		store, cmds, id := setup(t)
		require.NoError(t, cmds.ApproveBooking(ctx, id))

		require.NoError(t, cmds.MarkPaid(ctx, id))
		assert.Equal(t, "paid", store.bookings[id].paymentStatus)
	})

	t.Run("settles exactly once", func(t *testing.T) {
		store, cmds, id := setup(t)
		require.NoError(t, cmds.ApproveBooking(ctx, id))
		require.NoError(t, cmds.MarkPaid(ctx, id))

		require.ErrorIs(t, cmds.MarkPaid(ctx, id), commands.ErrInvalidTransition)
		require.ErrorIs(t, cmds.MarkPaymentFailed(ctx, id), commands.ErrInvalidTransition)
		assert.Equal(t, "paid", store.bookings[id].paymentStatus)
	})

	t.Run("failed settlement after approval", func(t *testing.T) {
		store, cmds, id := setup(t)
		require.NoError(t, cmds.ApproveBooking(ctx, id))

		require.NoError(t, cmds.MarkPaymentFailed(ctx, id))
		assert.Equal(t, "failed", store.bookings[id].paymentStatus)
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, cmds, _ := setup(t)

		require.ErrorIs(t, cmds.MarkPaid(ctx, uuid.New()), commands.ErrBookingNotFound)
	})
}
