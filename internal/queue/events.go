package queue

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types for the notification stream
const (
	EventSwapRequestCreated   = "swap_request_created"
	EventSwapRequestAccepted  = "swap_request_accepted"
	EventSwapRequestRejected  = "swap_request_rejected"
	EventSwapRequestCompleted = "swap_request_completed"
	EventMessageSent          = "message_sent"
	EventReviewCreated        = "review_created"
	EventReportResolved       = "report_resolved"
)

// Stream names
const (
	StreamNotifications = "stream:notifications"
)

// Consumer group name for notification workers
const (
	ConsumerGroupNotifications = "notification_workers"
)

// NotificationEvent is published after a successful domain mutation. The
// worker turns each event into a notification row for RecipientID.
type NotificationEvent struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"` // Unix timestamp when event occurred

	ActorID     int64 `json:"actor_id"`     // Who triggered it
	RecipientID int64 `json:"recipient_id"` // Who gets notified

	// Swap request events
	SwapRequestID int64  `json:"swap_request_id,omitempty"`
	OfferedSkill  string `json:"offered_skill,omitempty"`
	WantedSkill   string `json:"wanted_skill,omitempty"`

	// Message / review / report events
	MessageID    int64  `json:"message_id,omitempty"`
	ReviewID     int64  `json:"review_id,omitempty"`
	ReportID     int64  `json:"report_id,omitempty"`
	ReportStatus string `json:"report_status,omitempty"`
	UserBlocked  bool   `json:"user_blocked,omitempty"`
}

// NewSwapRequestEvent creates an event for a swap-request lifecycle change.
// eventType is one of the EventSwapRequest* constants.
func NewSwapRequestEvent(eventType string, actorID, recipientID, requestID int64, offered, wanted string) NotificationEvent {
	return NotificationEvent{
		Type:          eventType,
		Timestamp:     time.Now().Unix(),
		ActorID:       actorID,
		RecipientID:   recipientID,
		SwapRequestID: requestID,
		OfferedSkill:  offered,
		WantedSkill:   wanted,
	}
}

// NewMessageSentEvent creates an event for a delivered message.
func NewMessageSentEvent(senderID, receiverID, messageID, requestID int64) NotificationEvent {
	return NotificationEvent{
		Type:          EventMessageSent,
		Timestamp:     time.Now().Unix(),
		ActorID:       senderID,
		RecipientID:   receiverID,
		MessageID:     messageID,
		SwapRequestID: requestID,
	}
}

// NewReviewCreatedEvent creates an event for a submitted review.
func NewReviewCreatedEvent(reviewerID, reviewedUserID, reviewID, requestID int64) NotificationEvent {
	return NotificationEvent{
		Type:          EventReviewCreated,
		Timestamp:     time.Now().Unix(),
		ActorID:       reviewerID,
		RecipientID:   reviewedUserID,
		ReviewID:      reviewID,
		SwapRequestID: requestID,
	}
}

// NewReportResolvedEvent creates an event for a moderated report; the
// reporter is informed of the outcome.
func NewReportResolvedEvent(adminID, reporterID, reportID int64, status string, blocked bool) NotificationEvent {
	return NotificationEvent{
		Type:         EventReportResolved,
		Timestamp:    time.Now().Unix(),
		ActorID:      adminID,
		RecipientID:  reporterID,
		ReportID:     reportID,
		ReportStatus: status,
		UserBlocked:  blocked,
	}
}

// ToMap converts the event to a map for Redis XADD.
// Redis Streams store field-value pairs, so we serialize to JSON in a "data" field.
func (e NotificationEvent) ToMap() (map[string]interface{}, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return map[string]interface{}{
		"type": e.Type,
		"data": string(data),
	}, nil
}

// ParseNotificationEvent parses a NotificationEvent from Redis stream message values.
func ParseNotificationEvent(values map[string]interface{}) (NotificationEvent, error) {
	data, ok := values["data"].(string)
	if !ok {
		return NotificationEvent{}, fmt.Errorf("missing or invalid 'data' field")
	}

	var event NotificationEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return NotificationEvent{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return event, nil
}
