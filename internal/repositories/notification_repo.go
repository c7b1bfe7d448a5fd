package repositories

import (
	"context"
	"fmt"

	"github.com/geekplay/platform/internal/database"
	"github.com/geekplay/platform/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(db *database.DB) *NotificationRepository {
	return &NotificationRepository{pool: db.Pool}
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.BanNotification) (*models.BanNotification, error) {
	query := `
		INSERT INTO ban_notifications (user_id, reason, duration, appeal_guide, timestamp, is_read)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, reason, duration, appeal_guide, timestamp, is_read
	`

	var created models.BanNotification
	err := r.pool.QueryRow(ctx, query,
		n.UserID, n.Reason, n.Duration, n.AppealGuide, n.Timestamp, n.IsRead,
	).Scan(
		&created.ID, &created.UserID, &created.Reason, &created.Duration,
		&created.AppealGuide, &created.Timestamp, &created.IsRead,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &created, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64) ([]*models.BanNotification, error) {
	query := `
		SELECT id, user_id, reason, duration, appeal_guide, timestamp, is_read
		FROM ban_notifications WHERE user_id = $1 ORDER BY timestamp DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]*models.BanNotification, 0)

	for rows.Next() {
		var n models.BanNotification
		err := rows.Scan(&n.ID, &n.UserID, &n.Reason, &n.Duration, &n.AppealGuide, &n.Timestamp, &n.IsRead)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return notifications, nil
}

// Delete removes a notification by id. Deleting a missing id is a no-op.
func (r *NotificationRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM ban_notifications WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return database.MapPostgresError(err)
	}

	return nil
}
