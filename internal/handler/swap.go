package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"skillswap_22520060/internal/httputil"
	"skillswap_22520060/internal/model"
	"skillswap_22520060/internal/service"
	"skillswap_22520060/internal/transport/http/middleware"
)

// SwapHandler exposes the swap request lifecycle.
type SwapHandler struct {
	swapService *service.SwapService
}

func NewSwapHandler(swapService *service.SwapService) *SwapHandler {
	return &SwapHandler{swapService: swapService}
}

// Send creates a pending swap request
// POST /swap-requests
func (h *SwapHandler) Send(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Missing authentication token")
		return
	}

	var req model.SendSwapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.ToUser <= 0 || req.OfferedSkill == "" || req.WantedSkill == "" {
		httputil.WriteBadRequest(w, "toUser, offeredSkill and wantedSkill are required")
		return
	}

	request, err := h.swapService.Send(r.Context(), user.ID, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrRecipientRequired):
			httputil.WriteBadRequest(w, "toUser is required")
		case errors.Is(err, model.ErrSkillsRequired):
			httputil.WriteBadRequest(w, "offeredSkill and wantedSkill are required")
		case errors.Is(err, model.ErrSelfSwapRequest):
			httputil.WriteBadRequest(w, "You cannot send a request to yourself")
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "Recipient not found")
		case errors.Is(err, model.ErrRecipientBlocked):
			httputil.WriteForbidden(w, "Cannot send a request to a blocked user")
		case errors.Is(err, model.ErrDuplicatePendingSwap):
			httputil.WriteConflict(w, "A pending request with these skills already exists for this user")
		default:
			log.Printf("[SwapHandler] Send failed: %v", err)
			httputil.WriteInternalError(w, "Failed to send swap request")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Skill swap request sent successfully",
		"request": request,
	})
}

// List returns the caller's swap requests, newest first
// GET /swap-requests
func (h *SwapHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Missing authentication token")
		return
	}

	requests, err := h.swapService.ListForUser(r.Context(), user.ID)
	if err != nil {
		log.Printf("[SwapHandler] List failed: %v", err)
		httputil.WriteInternalError(w, "Failed to list swap requests")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(requests),
		"requests": requests,
	})
}

// Accept is the recipient's positive response to a pending request
// PATCH /swap-requests/{id}/accept
func (h *SwapHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, true)
}

// Reject is the recipient's negative response to a pending request
// PATCH /swap-requests/{id}/reject
func (h *SwapHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, false)
}

func (h *SwapHandler) respond(w http.ResponseWriter, r *http.Request, accept bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Missing authentication token")
		return
	}

	requestID, err := requestIDParam(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid request ID")
		return
	}

	request, err := h.swapService.Respond(r.Context(), requestID, user.ID, accept)
	if err != nil {
		h.writeLifecycleError(w, "Respond", err)
		return
	}

	message := "Request rejected"
	if accept {
		message = "Request accepted"
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": message,
		"request": request,
	})
}

// Complete records the caller's completion confirmation
// PATCH /swap-requests/{id}/complete
func (h *SwapHandler) Complete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Missing authentication token")
		return
	}

	requestID, err := requestIDParam(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid request ID")
		return
	}

	request, err := h.swapService.Complete(r.Context(), requestID, user.ID)
	if err != nil {
		h.writeLifecycleError(w, "Complete", err)
		return
	}

	message := "Completion confirmed, waiting for the other participant"
	if request.Status == model.SwapStatusCompleted {
		message = "Skill swap completed"
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": message,
		"request": request,
	})
}

// Cancel withdraws a pending request
// PATCH /swap-requests/{id}/cancel
func (h *SwapHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Missing authentication token")
		return
	}

	requestID, err := requestIDParam(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid request ID")
		return
	}

	request, err := h.swapService.Cancel(r.Context(), requestID, user.ID)
	if err != nil {
		h.writeLifecycleError(w, "Cancel", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Request cancelled",
		"request": request,
	})
}

func (h *SwapHandler) writeLifecycleError(w http.ResponseWriter, op string, err error) {
	var statusErr *model.SwapStatusError
	switch {
	case errors.Is(err, model.ErrSwapNotFound):
		httputil.WriteNotFound(w, "Skill swap request not found")
	case errors.Is(err, model.ErrNotRecipient):
		httputil.WriteForbidden(w, "Only the recipient can respond to this request")
	case errors.Is(err, model.ErrNotSender):
		httputil.WriteForbidden(w, "Only the sender can cancel this request")
	case errors.Is(err, model.ErrNotParticipant):
		httputil.WriteForbidden(w, "You are not part of this skill swap request")
	case errors.Is(err, model.ErrSwapNotAccepted):
		httputil.WriteBadRequest(w, "Request must be accepted before completion")
	case errors.Is(err, model.ErrAlreadyConfirmed):
		httputil.WriteBadRequest(w, "You have already confirmed completion")
	case errors.As(err, &statusErr):
		httputil.WriteBadRequest(w, fmt.Sprintf("Request already %s", statusErr.Status))
	default:
		log.Printf("[SwapHandler] %s failed: %v", op, err)
		httputil.WriteInternalError(w, "Failed to update swap request")
	}
}

func requestIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
