package model

import (
	"errors"
	"time"
)

// Message is a point-to-point message scoped to an accepted swap request.
// The receiver is always the other participant of the request.
type Message struct {
	ID            int64      `db:"id" json:"id"`
	SwapRequestID int64      `db:"swap_request_id" json:"swapRequestId"`
	SenderID      int64      `db:"sender_id" json:"senderId"`
	ReceiverID    int64      `db:"receiver_id" json:"receiverId"`
	Content       string     `db:"content" json:"content"`
	IsRead        bool       `db:"is_read" json:"isRead"`
	ReadAt        *time.Time `db:"read_at" json:"readAt"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`

	// Joined fields for display
	Sender      *UserSummary `json:"sender,omitempty"`
	Receiver    *UserSummary `json:"receiver,omitempty"`
	SwapRequest *SwapSummary `json:"swapRequest,omitempty"`
}

// SendMessageRequest is the request body for sending a message
type SendMessageRequest struct {
	SwapRequestID int64  `json:"swapRequestId"`
	Content       string `json:"content"`
}

var (
	// ErrMessagingNotAllowed gates messaging on the accepted state
	ErrMessagingNotAllowed = errors.New("messages are allowed only after the skill swap request is accepted")

	// ErrContentRequired is returned when the message content is empty or whitespace
	ErrContentRequired = errors.New("message content is required")

	// ErrSwapRequestIDRequired is returned when the request body omits the swap request
	ErrSwapRequestIDRequired = errors.New("swapRequestId is required")
)
