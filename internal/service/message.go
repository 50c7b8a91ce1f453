package service

import (
	"context"
	"log"
	"strings"

	"skillswap_22520060/internal/model"
	"skillswap_22520060/internal/queue"
	"skillswap_22520060/internal/repository"
)

// MessageService handles messaging between swap participants. Every message
// lives inside an accepted (or completed) swap request.
type MessageService struct {
	repo      repository.MessageRepository
	swapRepo  repository.SwapRequestRepository
	publisher queue.Publisher // nil disables event publishing
}

func NewMessageService(repo repository.MessageRepository, swapRepo repository.SwapRequestRepository, publisher queue.Publisher) *MessageService {
	return &MessageService{
		repo:      repo,
		swapRepo:  swapRepo,
		publisher: publisher,
	}
}

// Send delivers a message within a swap request. The receiver is inferred as
// the other participant.
func (s *MessageService) Send(ctx context.Context, senderID int64, req *model.SendMessageRequest) (*model.Message, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, model.ErrContentRequired
	}
	if req.SwapRequestID <= 0 {
		return nil, model.ErrSwapRequestIDRequired
	}

	request, err := s.messagingGate(ctx, req.SwapRequestID, senderID)
	if err != nil {
		return nil, err
	}

	msg := &model.Message{
		SwapRequestID: request.ID,
		SenderID:      senderID,
		ReceiverID:    request.OtherParticipant(senderID),
		Content:       content,
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}

	created, err := s.repo.GetByID(ctx, msg.ID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, queue.NewMessageSentEvent(senderID, created.ReceiverID, created.ID, request.ID))

	return created, nil
}

// ListBySwapRequest returns the conversation for a request, oldest first.
// Only participants may read it.
func (s *MessageService) ListBySwapRequest(ctx context.Context, callerID, swapRequestID int64) ([]model.Message, error) {
	if _, err := s.messagingGate(ctx, swapRequestID, callerID); err != nil {
		return nil, err
	}
	return s.repo.ListBySwapRequest(ctx, swapRequestID)
}

// messagingGate loads the request and enforces participation plus the
// accepted state. Completed requests keep their conversation readable and
// writable.
func (s *MessageService) messagingGate(ctx context.Context, swapRequestID, userID int64) (*model.SwapRequest, error) {
	request, err := s.swapRepo.GetByID(ctx, swapRequestID)
	if err != nil {
		return nil, err
	}
	if !request.IsParticipant(userID) {
		return nil, model.ErrNotParticipant
	}
	if request.Status != model.SwapStatusAccepted && request.Status != model.SwapStatusCompleted {
		return nil, model.ErrMessagingNotAllowed
	}
	return request, nil
}

func (s *MessageService) publish(ctx context.Context, event queue.NotificationEvent) {
	if s.publisher == nil {
		return
	}
	if _, err := s.publisher.Publish(ctx, queue.StreamNotifications, event); err != nil {
		log.Printf("[MessageService] event publish failed: type=%s err=%v", event.Type, err)
	}
}
