package model

import (
	"errors"
	"fmt"
	"time"
)

// Swap request lifecycle states
const (
	SwapStatusPending   = "pending"
	SwapStatusAccepted  = "accepted"
	SwapStatusRejected  = "rejected"
	SwapStatusCompleted = "completed"
	SwapStatusCancelled = "cancelled"
)

// SwapRequest is a directed proposal to exchange a taught skill for a
// desired skill. Only the recipient can accept or reject it, and only while
// it is pending. Completion requires both participants to confirm.
type SwapRequest struct {
	ID           int64      `db:"id" json:"id"`
	FromUserID   int64      `db:"from_user_id" json:"fromUserId"`
	ToUserID     int64      `db:"to_user_id" json:"toUserId"`
	OfferedSkill string     `db:"offered_skill" json:"offeredSkill"`
	WantedSkill  string     `db:"wanted_skill" json:"wantedSkill"`
	Message      string     `db:"message" json:"message"`
	Status       string     `db:"status" json:"status"`
	RespondedAt  *time.Time `db:"responded_at" json:"respondedAt"`

	// Mutual completion confirmation, one flag per participant.
	FromCompleted bool       `db:"from_completed" json:"fromCompleted"`
	ToCompleted   bool       `db:"to_completed" json:"toCompleted"`
	CompletedAt   *time.Time `db:"completed_at" json:"completedAt"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	// Joined fields for display
	FromUser *UserSummary `json:"fromUser,omitempty"`
	ToUser   *UserSummary `json:"toUser,omitempty"`
}

// IsParticipant reports whether userID is the sender or the recipient.
func (r *SwapRequest) IsParticipant(userID int64) bool {
	return r.FromUserID == userID || r.ToUserID == userID
}

// OtherParticipant returns the participant that is not userID.
func (r *SwapRequest) OtherParticipant(userID int64) int64 {
	if r.FromUserID == userID {
		return r.ToUserID
	}
	return r.FromUserID
}

// SwapSummary is the request projection joined into messages and reviews.
type SwapSummary struct {
	ID           int64  `db:"id" json:"id"`
	OfferedSkill string `db:"offered_skill" json:"offeredSkill"`
	WantedSkill  string `db:"wanted_skill" json:"wantedSkill"`
	Status       string `db:"status" json:"status"`
}

// SendSwapRequest is the request body for creating a swap request
type SendSwapRequest struct {
	ToUser       int64  `json:"toUser"`
	OfferedSkill string `json:"offeredSkill"`
	WantedSkill  string `json:"wantedSkill"`
	Message      string `json:"message"`
}

// SwapStatusError reports an attempted transition out of a state that does
// not allow it; Status is the request's current status.
type SwapStatusError struct {
	Status string
}

func (e *SwapStatusError) Error() string {
	return fmt.Sprintf("request already %s", e.Status)
}

var (
	// ErrSwapNotFound is returned when a swap request cannot be found
	ErrSwapNotFound = errors.New("skill swap request not found")

	// ErrSelfSwapRequest is returned when a user targets themselves
	ErrSelfSwapRequest = errors.New("you cannot send a request to yourself")

	// ErrRecipientBlocked is returned when the recipient account is blocked
	ErrRecipientBlocked = errors.New("cannot send request to a blocked user")

	// ErrDuplicatePendingSwap is returned when an identical pending tuple exists
	ErrDuplicatePendingSwap = errors.New("a pending request with these skills already exists for this user")

	// ErrNotRecipient is returned when someone other than the recipient responds
	ErrNotRecipient = errors.New("only the recipient can respond to this request")

	// ErrNotSender is returned when someone other than the sender cancels
	ErrNotSender = errors.New("only the sender can cancel this request")

	// ErrNotParticipant is returned when the caller is not part of the request
	ErrNotParticipant = errors.New("you are not part of this skill swap request")

	// ErrSwapNotAccepted is returned when completion is attempted before acceptance
	ErrSwapNotAccepted = errors.New("request must be accepted before completion")

	// ErrAlreadyConfirmed is returned when a participant confirms completion twice
	ErrAlreadyConfirmed = errors.New("you have already confirmed completion")

	// ErrRecipientRequired is returned when the request body omits the recipient
	ErrRecipientRequired = errors.New("toUser is required")

	// ErrSkillsRequired is returned when either skill is empty or whitespace
	ErrSkillsRequired = errors.New("offeredSkill and wantedSkill are required")
)
