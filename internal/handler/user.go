package handler

import (
	"log"
	"net/http"
	"strings"

	"skillswap_22520060/internal/httputil"
	"skillswap_22520060/internal/service"
)

// UserHandler exposes the public skill search.
type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Search finds unblocked users by skill keyword
// GET /users/search?keyword=
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimSpace(r.URL.Query().Get("keyword"))
	if keyword == "" {
		httputil.WriteBadRequest(w, "Query parameter 'keyword' is required")
		return
	}

	users, err := h.userService.Search(r.Context(), keyword)
	if err != nil {
		log.Printf("[UserHandler] Search failed: %v", err)
		httputil.WriteInternalError(w, "Failed to search users")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(users),
		"users": users,
	})
}
