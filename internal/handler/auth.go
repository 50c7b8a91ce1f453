package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"skillswap_22520060/internal/httputil"
	"skillswap_22520060/internal/model"
	"skillswap_22520060/internal/service"
	"skillswap_22520060/internal/transport/http/middleware"
)

// AuthHandler groups registration, login, password reset, and the profile
// endpoints.
type AuthHandler struct {
	userService *service.UserService
	authService *service.AuthService
}

func NewAuthHandler(userService *service.UserService, authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		authService: authService,
	}
}

// Register handles new account creation
// POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if req.Name == "" {
		httputil.WriteBadRequest(w, "Name is required")
		return
	}
	if req.Email == "" {
		httputil.WriteBadRequest(w, "Email is required")
		return
	}
	if req.Password == "" {
		httputil.WriteBadRequest(w, "Password is required")
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrEmailExists):
			httputil.WriteConflict(w, "User already exists")
		case errors.Is(err, model.ErrNameRequired):
			httputil.WriteBadRequest(w, "Name is required")
		case errors.Is(err, model.ErrEmailRequired):
			httputil.WriteBadRequest(w, "Email is required")
		case errors.Is(err, model.ErrPasswordRequired):
			httputil.WriteBadRequest(w, "Password is required")
		default:
			log.Printf("[AuthHandler] Register failed: %v", err)
			httputil.WriteInternalError(w, "Failed to register user")
		}
		return
	}

	token, err := h.authService.GenerateToken(user.ID)
	if err != nil {
		log.Printf("[AuthHandler] token generation failed: user=%d err=%v", user.ID, err)
		httputil.WriteInternalError(w, "Failed to generate token")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"token":   token,
		"user":    user,
	})
}

// Login handles email+password authentication
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		httputil.WriteBadRequest(w, "Email and password are required")
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUserBlocked):
			httputil.WriteForbidden(w, "Account is blocked")
		case errors.Is(err, model.ErrInvalidCredentials):
			httputil.WriteUnauthorized(w, "Invalid email or password")
		default:
			log.Printf("[AuthHandler] Login failed: %v", err)
			httputil.WriteInternalError(w, "Failed to login")
		}
		return
	}

	token, err := h.authService.GenerateToken(user.ID)
	if err != nil {
		log.Printf("[AuthHandler] token generation failed: user=%d err=%v", user.ID, err)
		httputil.WriteInternalError(w, "Failed to generate token")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// ForgotPassword dispatches a reset link. The response is identical whether
// or not the email is registered.
// POST /auth/forgot-password
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.Email == "" {
		httputil.WriteBadRequest(w, "Email is required")
		return
	}

	err := h.authService.ForgotPassword(r.Context(), req.Email)
	if err != nil && !errors.Is(err, model.ErrUserNotFound) && !errors.Is(err, model.ErrUserBlocked) {
		log.Printf("[AuthHandler] ForgotPassword failed: %v", err)
		httputil.WriteInternalError(w, "Failed to process password reset")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "If that email is registered, a password reset link has been sent",
	})
}

// ResetPassword consumes the raw token from the emailed link
// PUT /auth/reset-password/{token}
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.Password == "" {
		httputil.WriteBadRequest(w, "Password is required")
		return
	}

	if err := h.authService.ResetPassword(r.Context(), token, req.Password); err != nil {
		if errors.Is(err, model.ErrInvalidResetToken) {
			httputil.WriteBadRequest(w, "Invalid or expired reset token")
			return
		}
		log.Printf("[AuthHandler] ResetPassword failed: %v", err)
		httputil.WriteInternalError(w, "Failed to reset password")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Password has been reset successfully",
	})
}

// GetProfile returns the caller's own profile
// GET /auth/profile
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Missing authentication token")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user": user,
	})
}

// UpdateProfile applies a partial update to the caller's own profile
// PUT /auth/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Missing authentication token")
		return
	}

	var req model.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	updated, err := h.userService.UpdateProfile(r.Context(), user.ID, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrEmailExists):
			httputil.WriteConflict(w, "Email is already in use")
		case errors.Is(err, model.ErrPhotoTooLarge):
			httputil.WriteBadRequest(w, "Profile photo exceeds 5MB limit")
		case errors.Is(err, model.ErrInvalidPhoto):
			httputil.WriteBadRequest(w, "Profile photo must be an image data URI")
		case errors.Is(err, model.ErrPhotoStorageUnavailable):
			log.Printf("[AuthHandler] UpdateProfile: photo storage not configured")
			httputil.WriteInternalError(w, "Photo storage is not available")
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		default:
			log.Printf("[AuthHandler] UpdateProfile failed: %v", err)
			httputil.WriteInternalError(w, "Failed to update profile")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully",
		"user":    updated,
	})
}
