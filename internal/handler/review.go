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

// ReviewHandler exposes post-swap reviews.
type ReviewHandler struct {
	reviewService *service.ReviewService
}

func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// Create submits a review for a completed swap
// POST /reviews
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Missing authentication token")
		return
	}

	var req model.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.SwapRequestID <= 0 || req.ReviewedUser <= 0 {
		httputil.WriteBadRequest(w, "swapRequestId and reviewedUser are required")
		return
	}

	review, err := h.reviewService.Create(r.Context(), user.ID, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidRating):
			httputil.WriteBadRequest(w, "Rating must be a number between 1 and 5")
		case errors.Is(err, model.ErrSwapNotFound):
			httputil.WriteNotFound(w, "Skill swap request not found")
		case errors.Is(err, model.ErrNotParticipant):
			httputil.WriteForbidden(w, "You are not part of this skill swap request")
		case errors.Is(err, model.ErrReviewNotAllowed):
			httputil.WriteForbidden(w, "Reviews are allowed only after the session is completed")
		case errors.Is(err, model.ErrWrongReviewedUser):
			httputil.WriteBadRequest(w, "You can only review the other participant of this swap request")
		case errors.Is(err, model.ErrDuplicateReview):
			httputil.WriteConflict(w, "You have already submitted a review for this swap request")
		default:
			log.Printf("[ReviewHandler] Create failed: %v", err)
			httputil.WriteInternalError(w, "Failed to create review")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Review submitted successfully",
		"review":  review,
	})
}

// ListByUser returns the reviews written about a user with the aggregate
// rating
// GET /reviews/user/{userId}
func (h *ReviewHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}

	result, err := h.reviewService.ListForUser(r.Context(), userID)
	if err != nil {
		log.Printf("[ReviewHandler] ListByUser failed: %v", err)
		httputil.WriteInternalError(w, "Failed to list reviews")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"totalReviews":  result.TotalReviews,
		"averageRating": result.AverageRating,
		"reviews":       result.Reviews,
	})
}
