package repository

import (
	"context"
	"time"

	"skillswap_22520060/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// ExistsByEmail checks whether another user (any user when excludeID is 0)
	// already owns the email.
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	Update(ctx context.Context, user *model.User) error
	SetBlocked(ctx context.Context, id int64, blocked bool) (*model.User, error)
	SetResetToken(ctx context.Context, id int64, tokenHash string, expires time.Time) error
	ClearResetToken(ctx context.Context, id int64) error
	// GetByResetTokenHash matches a stored, not-yet-expired reset token hash.
	GetByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*model.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHashed string) error
	SearchBySkill(ctx context.Context, keyword string) ([]model.User, error)
	ListAll(ctx context.Context) ([]model.User, error)
}

type SwapRequestRepository interface {
	Create(ctx context.Context, req *model.SwapRequest) error
	GetByID(ctx context.Context, id int64) (*model.SwapRequest, error)
	ExistsPending(ctx context.Context, fromUserID, toUserID int64, offeredSkill, wantedSkill string) (bool, error)
	// Update persists status, responded_at, completion flags, and completed_at.
	Update(ctx context.Context, req *model.SwapRequest) error
	// ConfirmCompletion atomically sets one side's confirmation flag on an
	// accepted request and flips the status to completed when the other
	// side has already confirmed. Returns the resulting status.
	ConfirmCompletion(ctx context.Context, requestID int64, fromSide bool) (string, error)
	ListForUser(ctx context.Context, userID int64) ([]model.SwapRequest, error)
}

type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
	GetByID(ctx context.Context, id int64) (*model.Message, error)
	// ListBySwapRequest returns messages oldest first.
	ListBySwapRequest(ctx context.Context, swapRequestID int64) ([]model.Message, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	GetByID(ctx context.Context, id int64) (*model.Review, error)
	ExistsForReviewer(ctx context.Context, reviewerID, swapRequestID int64) (bool, error)
	// ListByReviewedUser returns reviews newest first.
	ListByReviewedUser(ctx context.Context, userID int64) ([]model.Review, error)
}

type ReportRepository interface {
	Create(ctx context.Context, report *model.Report) error
	GetByID(ctx context.Context, id int64) (*model.Report, error)
	List(ctx context.Context, filter model.ReportFilter) ([]model.Report, error)
	Update(ctx context.Context, report *model.Report) error
}

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	GetByID(ctx context.Context, id int64) (*model.Notification, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int, error)
	MarkRead(ctx context.Context, id int64, readAt time.Time) error
	MarkAllRead(ctx context.Context, userID int64, readAt time.Time) (int64, error)
}
