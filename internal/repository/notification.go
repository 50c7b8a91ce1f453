package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"skillswap_22520060/internal/model"
)

// notificationRepository implements NotificationRepository using sqlx
type notificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

const notificationColumns = `id, user_id, type, title, body, related_model, related_id, is_read, read_at, created_at`

// Create inserts a new notification row
func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	query := `
		INSERT INTO notifications (user_id, type, title, body, related_model, related_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, is_read, created_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		n.UserID,
		n.Type,
		n.Title,
		n.Body,
		n.RelatedModel,
		n.RelatedID,
	)

	if err := row.Scan(&n.ID, &n.IsRead, &n.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	return nil
}

// GetByID retrieves a notification by its ID
func (r *notificationRepository) GetByID(ctx context.Context, id int64) (*model.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`

	var n model.Notification
	err := r.db.GetContext(ctx, &n, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}

	return &n, nil
}

// ListByUser returns all of a user's notifications, newest first
func (r *notificationRepository) ListByUser(ctx context.Context, userID int64) ([]model.Notification, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	notifications := []model.Notification{}
	err := r.db.SelectContext(ctx, &notifications, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	return notifications, nil
}

// CountUnread returns the number of unread notifications for a user
func (r *notificationRepository) CountUnread(ctx context.Context, userID int64) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`

	var count int
	err := r.db.GetContext(ctx, &count, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

// MarkRead sets the read flag and timestamp for a single notification
func (r *notificationRepository) MarkRead(ctx context.Context, id int64, readAt time.Time) error {
	query := `UPDATE notifications SET is_read = TRUE, read_at = $1 WHERE id = $2`

	_, err := r.db.ExecContext(ctx, query, readAt, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	return nil
}

// MarkAllRead marks every unread notification for a user and returns how many changed
func (r *notificationRepository) MarkAllRead(ctx context.Context, userID int64, readAt time.Time) (int64, error) {
	query := `UPDATE notifications SET is_read = TRUE, read_at = $1 WHERE user_id = $2 AND is_read = FALSE`

	res, err := r.db.ExecContext(ctx, query, readAt, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark all notifications read: %w", err)
	}

	updated, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count updated notifications: %w", err)
	}

	return updated, nil
}
