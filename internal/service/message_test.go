package service

import (
	"context"
	"errors"
	"testing"

	"skillswap_22520060/internal/model"
	"skillswap_22520060/internal/queue"
)

func TestMessageService_Send_Success(t *testing.T) {
	swapRepo := &mockSwapRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.SwapRequest, error) {
			return acceptedRequest(), nil
		},
	}
	var created *model.Message
	msgRepo := &mockMessageRepository{
		createFn: func(ctx context.Context, msg *model.Message) error {
			msg.ID = 3
			created = msg
			return nil
		},
		getByIDFn: func(ctx context.Context, id int64) (*model.Message, error) {
			return created, nil
		},
	}
	pub := &mockPublisher{}
	svc := NewMessageService(msgRepo, swapRepo, pub)

	msg, err := svc.Send(context.Background(), 1, &model.SendMessageRequest{
		SwapRequestID: 10,
		Content:       "  hello  ",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if msg.Content != "hello" {
		t.Errorf("content = %q, want trimmed %q", msg.Content, "hello")
	}
	if msg.ReceiverID != 2 {
		t.Errorf("receiver = %d, want the other participant 2", msg.ReceiverID)
	}
	if len(pub.events) != 1 || pub.events[0].Type != queue.EventMessageSent {
		t.Errorf("events = %v, want one message_sent", pub.events)
	}
}

func TestMessageService_Send_GatedOnAccepted(t *testing.T) {
	for _, status := range []string{
		model.SwapStatusPending,
		model.SwapStatusRejected,
		model.SwapStatusCancelled,
	} {
		swapRepo := &mockSwapRepository{
			getByIDFn: func(ctx context.Context, id int64) (*model.SwapRequest, error) {
				r := pendingRequest()
				r.Status = status
				return r, nil
			},
		}
		svc := NewMessageService(&mockMessageRepository{}, swapRepo, nil)

		// Both participants are refused alike
		for _, caller := range []int64{1, 2} {
			_, err := svc.Send(context.Background(), caller, &model.SendMessageRequest{
				SwapRequestID: 10, Content: "hi",
			})
			if !errors.Is(err, model.ErrMessagingNotAllowed) {
				t.Errorf("status %s caller %d: err = %v, want ErrMessagingNotAllowed", status, caller, err)
			}
		}
	}
}

func TestMessageService_Send_CompletedStillAllowed(t *testing.T) {
	swapRepo := &mockSwapRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.SwapRequest, error) {
			r := pendingRequest()
			r.Status = model.SwapStatusCompleted
			return r, nil
		},
	}
	svc := NewMessageService(&mockMessageRepository{}, swapRepo, nil)

	if _, err := svc.Send(context.Background(), 1, &model.SendMessageRequest{
		SwapRequestID: 10, Content: "thanks for the session",
	}); err != nil {
		t.Errorf("completed requests keep their conversation open, got: %v", err)
	}
}

func TestMessageService_Send_WhitespaceContent(t *testing.T) {
	// Content that trims to nothing is rejected as missing input, not as an
	// internal failure.
	svc := NewMessageService(&mockMessageRepository{}, &mockSwapRepository{}, nil)

	_, err := svc.Send(context.Background(), 1, &model.SendMessageRequest{
		SwapRequestID: 10,
		Content:       "   ",
	})
	if !errors.Is(err, model.ErrContentRequired) {
		t.Errorf("err = %v, want ErrContentRequired", err)
	}

	_, err = svc.Send(context.Background(), 1, &model.SendMessageRequest{Content: "hi"})
	if !errors.Is(err, model.ErrSwapRequestIDRequired) {
		t.Errorf("err = %v, want ErrSwapRequestIDRequired", err)
	}
}

func TestMessageService_Send_NonParticipant(t *testing.T) {
	swapRepo := &mockSwapRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.SwapRequest, error) {
			return acceptedRequest(), nil
		},
	}
	svc := NewMessageService(&mockMessageRepository{}, swapRepo, nil)

	_, err := svc.Send(context.Background(), 99, &model.SendMessageRequest{
		SwapRequestID: 10, Content: "hi",
	})
	if !errors.Is(err, model.ErrNotParticipant) {
		t.Errorf("err = %v, want ErrNotParticipant", err)
	}
}

func TestMessageService_List_OldestFirstPassThrough(t *testing.T) {
	swapRepo := &mockSwapRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.SwapRequest, error) {
			return acceptedRequest(), nil
		},
	}
	msgRepo := &mockMessageRepository{
		listBySwapRequestFn: func(ctx context.Context, swapRequestID int64) ([]model.Message, error) {
			return []model.Message{{ID: 1, Content: "hello"}}, nil
		},
	}
	svc := NewMessageService(msgRepo, swapRepo, nil)

	messages, err := svc.ListBySwapRequest(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(messages) != 1 || messages[0].Content != "hello" {
		t.Errorf("messages = %v, want exactly one %q", messages, "hello")
	}
}

func TestMessageService_List_UnknownRequest(t *testing.T) {
	svc := NewMessageService(&mockMessageRepository{}, &mockSwapRepository{}, nil)

	_, err := svc.ListBySwapRequest(context.Background(), 1, 404)
	if !errors.Is(err, model.ErrSwapNotFound) {
		t.Errorf("err = %v, want ErrSwapNotFound", err)
	}
}
