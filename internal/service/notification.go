package service

import (
	"context"
	"time"

	"skillswap_22520060/internal/model"
	"skillswap_22520060/internal/repository"
)

// NotificationService exposes the notification inbox. Rows are written by the
// queue worker; this service only reads them and flips read state.
type NotificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// ListForUser returns the user's notifications, newest first, together with
// the unread count.
func (s *NotificationService) ListForUser(ctx context.Context, userID int64) ([]model.Notification, int, error) {
	notifications, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return notifications, unread, nil
}

// MarkRead marks one notification as read. Only the owner may do so.
func (s *NotificationService) MarkRead(ctx context.Context, callerID, notificationID int64) (*model.Notification, error) {
	notification, err := s.repo.GetByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if notification.UserID != callerID {
		return nil, model.ErrNotNotificationOwner
	}

	if !notification.IsRead {
		now := time.Now()
		if err := s.repo.MarkRead(ctx, notification.ID, now); err != nil {
			return nil, err
		}
		notification.IsRead = true
		notification.ReadAt = &now
	}

	return notification, nil
}

// MarkAllRead marks every unread notification of the user as read and
// returns how many rows changed.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID, time.Now())
}
