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

// AdminHandler groups the moderation endpoints. Routes are mounted behind
// the AdminOnly middleware.
type AdminHandler struct {
	userService   *service.UserService
	reportService *service.ReportService
}

func NewAdminHandler(userService *service.UserService, reportService *service.ReportService) *AdminHandler {
	return &AdminHandler{
		userService:   userService,
		reportService: reportService,
	}
}

// ListUsers returns every account, newest first
// GET /admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListAll(r.Context())
	if err != nil {
		log.Printf("[AdminHandler] ListUsers failed: %v", err)
		httputil.WriteInternalError(w, "Failed to list users")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(users),
		"users": users,
	})
}

// BlockUser blocks a non-admin account
// PATCH /admin/users/{id}/block
func (h *AdminHandler) BlockUser(w http.ResponseWriter, r *http.Request) {
	h.setBlocked(w, r, true)
}

// UnblockUser lifts a block
// PATCH /admin/users/{id}/unblock
func (h *AdminHandler) UnblockUser(w http.ResponseWriter, r *http.Request) {
	h.setBlocked(w, r, false)
}

func (h *AdminHandler) setBlocked(w http.ResponseWriter, r *http.Request, blocked bool) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}

	user, err := h.userService.SetBlocked(r.Context(), userID, blocked)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		case errors.Is(err, model.ErrAdminNotBlockable):
			httputil.WriteForbidden(w, "Admin users cannot be blocked")
		default:
			log.Printf("[AdminHandler] setBlocked failed: %v", err)
			httputil.WriteInternalError(w, "Failed to update user")
		}
		return
	}

	message := "User unblocked successfully"
	if blocked {
		message = "User blocked successfully"
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": message,
		"user":    user,
	})
}

// ListReports returns reports for the moderation dashboard
// GET /admin/reports?status=&targetType=
func (h *AdminHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	filter := model.ReportFilter{
		Status:     r.URL.Query().Get("status"),
		TargetType: r.URL.Query().Get("targetType"),
	}

	reports, err := h.reportService.List(r.Context(), filter)
	if err != nil {
		log.Printf("[AdminHandler] ListReports failed: %v", err)
		httputil.WriteInternalError(w, "Failed to list reports")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(reports),
		"reports": reports,
	})
}

// ReportAction transitions a report and optionally blocks the reported user
// PATCH /admin/reports/{reportId}/action
func (h *AdminHandler) ReportAction(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.UserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Missing authentication token")
		return
	}

	reportID, err := strconv.ParseInt(chi.URLParam(r, "reportId"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid report ID")
		return
	}

	var req model.ReportActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	report, err := h.reportService.TakeAction(r.Context(), admin.ID, reportID, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidReportStatus):
			httputil.WriteBadRequest(w, "Status must be one of in_review, resolved, rejected")
		case errors.Is(err, model.ErrReportNotFound):
			httputil.WriteNotFound(w, "Report not found")
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "Reported user not found")
		case errors.Is(err, model.ErrAdminNotBlockable):
			httputil.WriteForbidden(w, "Admin users cannot be blocked")
		default:
			log.Printf("[AdminHandler] ReportAction failed: %v", err)
			httputil.WriteInternalError(w, "Failed to update report")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Report updated successfully",
		"report":  report,
	})
}
