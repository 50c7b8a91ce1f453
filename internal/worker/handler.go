package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"skillswap_22520060/internal/model"
	"skillswap_22520060/internal/queue"
)

// ActorProvider resolves the display name of the user who triggered an event.
// This abstracts the repository layer so workers don't depend on DB details.
type ActorProvider interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// NotificationCreator persists a notification row.
type NotificationCreator interface {
	Create(ctx context.Context, n *model.Notification) error
}

// Handler materializes notification rows from stream events.
type Handler struct {
	users         ActorProvider
	notifications NotificationCreator
}

// NewHandler creates a new event handler.
func NewHandler(users ActorProvider, notifications NotificationCreator) *Handler {
	return &Handler{
		users:         users,
		notifications: notifications,
	}
}

// HandleEvent routes an event to the appropriate handler based on type.
func (h *Handler) HandleEvent(ctx context.Context, event queue.NotificationEvent) error {
	startTime := time.Now()

	n, err := h.buildNotification(ctx, event)
	if err != nil {
		log.Printf("[Worker] HandleEvent FAILED: type=%s duration=%v err=%v",
			event.Type, time.Since(startTime), err)
		return err
	}

	if err := h.notifications.Create(ctx, n); err != nil {
		log.Printf("[Worker] HandleEvent FAILED: type=%s duration=%v err=%v",
			event.Type, time.Since(startTime), err)
		return fmt.Errorf("create notification: %w", err)
	}

	log.Printf("[Worker] HandleEvent OK: type=%s recipient=%d duration=%v",
		event.Type, event.RecipientID, time.Since(startTime))
	return nil
}

// buildNotification composes the row for an event. The actor's name is
// looked up for the body; a lookup failure falls back to a generic name
// rather than dropping the notification.
func (h *Handler) buildNotification(ctx context.Context, event queue.NotificationEvent) (*model.Notification, error) {
	actorName := "Someone"
	if actor, err := h.users.GetByID(ctx, event.ActorID); err == nil {
		actorName = actor.Name
	} else {
		log.Printf("[Worker] actor lookup failed: actor=%d err=%v", event.ActorID, err)
	}

	n := &model.Notification{UserID: event.RecipientID}

	switch event.Type {
	case queue.EventSwapRequestCreated:
		n.Type = model.NotificationTypeSwapRequest
		n.Title = "New skill swap request"
		n.Body = fmt.Sprintf("%s offers %s in exchange for %s", actorName, event.OfferedSkill, event.WantedSkill)
		n.RelatedModel = related(model.RelatedSwapRequest)
		n.RelatedID = &event.SwapRequestID

	case queue.EventSwapRequestAccepted:
		n.Type = model.NotificationTypeSwapRequest
		n.Title = "Swap request accepted"
		n.Body = fmt.Sprintf("%s accepted your skill swap request", actorName)
		n.RelatedModel = related(model.RelatedSwapRequest)
		n.RelatedID = &event.SwapRequestID

	case queue.EventSwapRequestRejected:
		n.Type = model.NotificationTypeSwapRequest
		n.Title = "Swap request rejected"
		n.Body = fmt.Sprintf("%s rejected your skill swap request", actorName)
		n.RelatedModel = related(model.RelatedSwapRequest)
		n.RelatedID = &event.SwapRequestID

	case queue.EventSwapRequestCompleted:
		n.Type = model.NotificationTypeSwapRequest
		n.Title = "Skill swap completed"
		n.Body = fmt.Sprintf("%s confirmed completion of your skill swap", actorName)
		n.RelatedModel = related(model.RelatedSwapRequest)
		n.RelatedID = &event.SwapRequestID

	case queue.EventMessageSent:
		n.Type = model.NotificationTypeMessage
		n.Title = "New message"
		n.Body = fmt.Sprintf("%s sent you a message", actorName)
		n.RelatedModel = related(model.RelatedMessage)
		n.RelatedID = &event.MessageID

	case queue.EventReviewCreated:
		n.Type = model.NotificationTypeReview
		n.Title = "New review"
		n.Body = fmt.Sprintf("%s left you a review", actorName)
		n.RelatedModel = related(model.RelatedReview)
		n.RelatedID = &event.ReviewID

	case queue.EventReportResolved:
		n.Type = model.NotificationTypeReport
		n.Title = "Report update"
		n.Body = fmt.Sprintf("Your report was marked %s", event.ReportStatus)
		if event.UserBlocked {
			n.Type = model.NotificationTypeSystem
			n.Body = "Your report was resolved and the reported user has been blocked"
		}
		n.RelatedModel = related(model.RelatedReport)
		n.RelatedID = &event.ReportID

	default:
		return nil, fmt.Errorf("unknown event type: %s", event.Type)
	}

	return n, nil
}

func related(name string) *string {
	return &name
}
