package handler

import (
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

// NotificationHandler exposes the notification inbox.
type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List returns the caller's notifications, newest first
// GET /notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Missing authentication token")
		return
	}

	notifications, unread, err := h.notificationService.ListForUser(r.Context(), user.ID)
	if err != nil {
		log.Printf("[NotificationHandler] List failed: %v", err)
		httputil.WriteInternalError(w, "Failed to list notifications")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":         len(notifications),
		"unreadCount":   unread,
		"notifications": notifications,
	})
}

// MarkRead marks one owned notification as read
// PATCH /notifications/{id}/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Missing authentication token")
		return
	}

	notificationID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid notification ID")
		return
	}

	notification, err := h.notificationService.MarkRead(r.Context(), user.ID, notificationID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNotificationNotFound):
			httputil.WriteNotFound(w, "Notification not found")
		case errors.Is(err, model.ErrNotNotificationOwner):
			httputil.WriteForbidden(w, "Not authorized to update this notification")
		default:
			log.Printf("[NotificationHandler] MarkRead failed: %v", err)
			httputil.WriteInternalError(w, "Failed to update notification")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Notification marked as read",
		"notification": notification,
	})
}

// MarkAllRead marks every unread notification of the caller as read
// PATCH /notifications/read-all
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Missing authentication token")
		return
	}

	updated, err := h.notificationService.MarkAllRead(r.Context(), user.ID)
	if err != nil {
		log.Printf("[NotificationHandler] MarkAllRead failed: %v", err)
		httputil.WriteInternalError(w, "Failed to update notifications")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "All notifications marked as read",
		"updatedCount": updated,
	})
}
