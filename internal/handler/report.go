package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"skillswap_22520060/internal/httputil"
	"skillswap_22520060/internal/model"
	"skillswap_22520060/internal/service"
	"skillswap_22520060/internal/transport/http/middleware"
)

// ReportHandler exposes abuse reporting for regular users.
type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// FileUserReport records an abuse report against another user
// POST /reports/user
func (h *ReportHandler) FileUserReport(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Missing authentication token")
		return
	}

	var req model.FileReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.ReportedUser <= 0 || req.Reason == "" {
		httputil.WriteBadRequest(w, "reportedUser and reason are required")
		return
	}

	report, err := h.reportService.File(r.Context(), user.ID, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrReportedUserRequired):
			httputil.WriteBadRequest(w, "reportedUser is required")
		case errors.Is(err, model.ErrReasonRequired):
			httputil.WriteBadRequest(w, "Reason is required")
		case errors.Is(err, model.ErrSelfReport):
			httputil.WriteBadRequest(w, "You cannot report yourself")
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "Reported user not found")
		default:
			log.Printf("[ReportHandler] FileUserReport failed: %v", err)
			httputil.WriteInternalError(w, "Failed to file report")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Report submitted successfully",
		"report":  report,
	})
}
