package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"skillswap_22520060/internal/httputil"
	"skillswap_22520060/internal/model"
	"skillswap_22520060/internal/service"
	"skillswap_22520060/internal/transport/http/middleware"
)

// MessageHandler exposes swap-scoped messaging.
type MessageHandler struct {
	messageService *service.MessageService
}

func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// Send delivers a message inside an accepted swap request
// POST /messages
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Missing authentication token")
		return
	}

	var req model.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.SwapRequestID <= 0 {
		httputil.WriteBadRequest(w, "swapRequestId is required")
		return
	}
	if req.Content == "" {
		httputil.WriteBadRequest(w, "Content is required")
		return
	}

	msg, err := h.messageService.Send(r.Context(), user.ID, &req)
	if err != nil {
		h.writeMessagingError(w, "Send", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Message sent successfully",
		"data":    msg,
	})
}

// List returns the conversation of a swap request, oldest first
// GET /messages/{swapRequestId}
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Missing authentication token")
		return
	}

	swapRequestID, err := strconv.ParseInt(chi.URLParam(r, "swapRequestId"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid swap request ID")
		return
	}

	messages, err := h.messageService.ListBySwapRequest(r.Context(), user.ID, swapRequestID)
	if err != nil {
		h.writeMessagingError(w, "List", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(messages),
		"messages": messages,
	})
}

func (h *MessageHandler) writeMessagingError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, model.ErrContentRequired):
		httputil.WriteBadRequest(w, "Content is required")
	case errors.Is(err, model.ErrSwapRequestIDRequired):
		httputil.WriteBadRequest(w, "swapRequestId is required")
	case errors.Is(err, model.ErrSwapNotFound):
		httputil.WriteNotFound(w, "Skill swap request not found")
	case errors.Is(err, model.ErrNotParticipant):
		httputil.WriteForbidden(w, "You are not part of this skill swap request")
	case errors.Is(err, model.ErrMessagingNotAllowed):
		httputil.WriteForbidden(w, "Messaging is allowed only after the request is accepted")
	default:
		log.Printf("[MessageHandler] %s failed: %v", op, err)
		httputil.WriteInternalError(w, "Failed to process message")
	}
}
