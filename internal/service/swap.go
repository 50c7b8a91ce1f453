package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"skillswap_22520060/internal/model"
	"skillswap_22520060/internal/queue"
	"skillswap_22520060/internal/repository"
)

// SwapService drives the swap request lifecycle:
// pending -> accepted -> completed, with rejected and cancelled as the
// terminal branches off pending.
type SwapService struct {
	repo      repository.SwapRequestRepository
	userRepo  repository.UserRepository
	publisher queue.Publisher // nil disables event publishing
}

func NewSwapService(repo repository.SwapRequestRepository, userRepo repository.UserRepository, publisher queue.Publisher) *SwapService {
	return &SwapService{
		repo:      repo,
		userRepo:  userRepo,
		publisher: publisher,
	}
}

// Send creates a pending swap request addressed to another user.
func (s *SwapService) Send(ctx context.Context, fromUserID int64, req *model.SendSwapRequest) (*model.SwapRequest, error) {
	offered := strings.TrimSpace(req.OfferedSkill)
	wanted := strings.TrimSpace(req.WantedSkill)

	if req.ToUser <= 0 {
		return nil, model.ErrRecipientRequired
	}
	if offered == "" || wanted == "" {
		return nil, model.ErrSkillsRequired
	}
	if req.ToUser == fromUserID {
		return nil, model.ErrSelfSwapRequest
	}

	recipient, err := s.userRepo.GetByID(ctx, req.ToUser)
	if err != nil {
		return nil, err
	}
	if recipient.IsBlocked {
		return nil, model.ErrRecipientBlocked
	}

	exists, err := s.repo.ExistsPending(ctx, fromUserID, req.ToUser, offered, wanted)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending requests: %w", err)
	}
	if exists {
		return nil, model.ErrDuplicatePendingSwap
	}

	request := &model.SwapRequest{
		FromUserID:   fromUserID,
		ToUserID:     req.ToUser,
		OfferedSkill: offered,
		WantedSkill:  wanted,
		Message:      strings.TrimSpace(req.Message),
		Status:       model.SwapStatusPending,
	}

	// The partial unique index on pending tuples backstops the pre-check.
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, err
	}

	created, err := s.repo.GetByID(ctx, request.ID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, queue.NewSwapRequestEvent(
		queue.EventSwapRequestCreated, fromUserID, created.ToUserID, created.ID, offered, wanted))

	return created, nil
}

// Respond accepts or rejects a pending request. Only the recipient may
// respond, and only while the request is pending.
func (s *SwapService) Respond(ctx context.Context, requestID, callerID int64, accept bool) (*model.SwapRequest, error) {
	request, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.ToUserID != callerID {
		return nil, model.ErrNotRecipient
	}
	if request.Status != model.SwapStatusPending {
		return nil, &model.SwapStatusError{Status: request.Status}
	}

	now := time.Now()
	request.RespondedAt = &now
	eventType := queue.EventSwapRequestRejected
	request.Status = model.SwapStatusRejected
	if accept {
		eventType = queue.EventSwapRequestAccepted
		request.Status = model.SwapStatusAccepted
	}

	if err := s.repo.Update(ctx, request); err != nil {
		return nil, err
	}

	s.publish(ctx, queue.NewSwapRequestEvent(
		eventType, callerID, request.FromUserID, request.ID, request.OfferedSkill, request.WantedSkill))

	return request, nil
}

// Complete records a participant's completion confirmation on an accepted
// request. The request becomes completed once both sides have confirmed.
func (s *SwapService) Complete(ctx context.Context, requestID, callerID int64) (*model.SwapRequest, error) {
	request, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !request.IsParticipant(callerID) {
		return nil, model.ErrNotParticipant
	}
	if request.Status != model.SwapStatusAccepted {
		if request.Status == model.SwapStatusCompleted {
			return nil, &model.SwapStatusError{Status: request.Status}
		}
		return nil, model.ErrSwapNotAccepted
	}

	fromSide := callerID == request.FromUserID
	if (fromSide && request.FromCompleted) || (!fromSide && request.ToCompleted) {
		return nil, model.ErrAlreadyConfirmed
	}

	// One atomic write per confirmation; concurrent confirmations from both
	// sides cannot overwrite each other's flag.
	status, err := s.repo.ConfirmCompletion(ctx, request.ID, fromSide)
	if err != nil {
		return nil, err
	}

	request, err = s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if status == model.SwapStatusCompleted {
		// Both sides hear about the completion, each attributed to the
		// other participant.
		other := request.OtherParticipant(callerID)
		s.publish(ctx, queue.NewSwapRequestEvent(
			queue.EventSwapRequestCompleted, callerID, other,
			request.ID, request.OfferedSkill, request.WantedSkill))
		s.publish(ctx, queue.NewSwapRequestEvent(
			queue.EventSwapRequestCompleted, other, callerID,
			request.ID, request.OfferedSkill, request.WantedSkill))
	}

	return request, nil
}

// Cancel withdraws a pending request. Only the sender may cancel.
func (s *SwapService) Cancel(ctx context.Context, requestID, callerID int64) (*model.SwapRequest, error) {
	request, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.FromUserID != callerID {
		return nil, model.ErrNotSender
	}
	if request.Status != model.SwapStatusPending {
		return nil, &model.SwapStatusError{Status: request.Status}
	}

	now := time.Now()
	request.Status = model.SwapStatusCancelled
	request.RespondedAt = &now

	if err := s.repo.Update(ctx, request); err != nil {
		return nil, err
	}

	return request, nil
}

// ListForUser returns every request the user participates in, newest first.
func (s *SwapService) ListForUser(ctx context.Context, userID int64) ([]model.SwapRequest, error) {
	return s.repo.ListForUser(ctx, userID)
}

// publish is best effort. Notifications are a side channel; a Redis outage
// must not fail the mutation that already committed.
func (s *SwapService) publish(ctx context.Context, event queue.NotificationEvent) {
	if s.publisher == nil {
		return
	}
	if _, err := s.publisher.Publish(ctx, queue.StreamNotifications, event); err != nil {
		log.Printf("[SwapService] event publish failed: type=%s err=%v", event.Type, err)
	}
}
