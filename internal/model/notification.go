package model

import (
	"errors"
	"time"
)

// Notification types
const (
	NotificationTypeSwapRequest = "swap_request"
	NotificationTypeMessage     = "message"
	NotificationTypeReview      = "review"
	NotificationTypeReport      = "report"
	NotificationTypeSystem      = "system"
)

// Related model names for notification deep links
const (
	RelatedSwapRequest = "SkillSwapRequest"
	RelatedMessage     = "Message"
	RelatedReview      = "Review"
	RelatedReport      = "Report"
	RelatedUser        = "User"
)

// Notification is an append-only notice tied to a user. Rows are written by
// the queue worker; only the read state is mutated afterwards, by the owner.
type Notification struct {
	ID           int64      `db:"id" json:"id"`
	UserID       int64      `db:"user_id" json:"-"`
	Type         string     `db:"type" json:"type"`
	Title        string     `db:"title" json:"title"`
	Body         string     `db:"body" json:"body"`
	RelatedModel *string    `db:"related_model" json:"relatedModel,omitempty"`
	RelatedID    *int64     `db:"related_id" json:"relatedId,omitempty"`
	IsRead       bool       `db:"is_read" json:"isRead"`
	ReadAt       *time.Time `db:"read_at" json:"readAt"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

var (
	// ErrNotificationNotFound is returned when a notification cannot be found
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrNotNotificationOwner is returned when a user tries to update a notification they do not own
	ErrNotNotificationOwner = errors.New("not authorized to update this notification")
)
