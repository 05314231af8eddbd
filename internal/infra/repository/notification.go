package repository

import (
	"context"
	"time"

	"resort-booking/internal/infra"
	"resort-booking/internal/infra/db"
	"resort-booking/internal/pkg/pgconv"
)

const createNotificationJobQuery = `
INSERT INTO notification_jobs (id, kind, topic, payload, run_at, status)
VALUES (gen_random_uuid(), $1, $2, $3, $4, 'queued')`

// NotificationRepository queues outbound email/notification work in the
// same transaction as the booking mutation it announces, so a committed
// booking always has its notification and a rolled-back one never does.
type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, dbtx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := dbtx.Exec(ctx, createNotificationJobQuery, kind, topic, payload, pgconv.TimeToPgtype(runAt))
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}
