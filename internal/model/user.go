package model

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account. The password hash and the
// password-reset fields never leave the server ("-" hides them from JSON).
type User struct {
	ID             int64          `db:"id" json:"id"`
	Name           string         `db:"name" json:"name"`
	Email          string         `db:"email" json:"email"`
	PasswordHashed string         `db:"password_hashed" json:"-"`
	PhotoURL       *string        `db:"photo_url" json:"profilePhoto,omitempty"`
	PhotoKey       *string        `db:"photo_key" json:"-"`
	SkillsOffered  pq.StringArray `db:"skills_offered" json:"skillsOffered"`
	SkillsWanted   pq.StringArray `db:"skills_wanted" json:"skillsWanted"`
	Role           string         `db:"role" json:"role"`
	IsBlocked      bool           `db:"is_blocked" json:"isBlocked"`

	ResetTokenHash    *string    `db:"reset_token_hash" json:"-"`
	ResetTokenExpires *time.Time `db:"reset_token_expires" json:"-"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// UserSummary is the projection joined into swap requests, messages,
// reviews, and reports.
type UserSummary struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
	Role  string `db:"role" json:"role"`
}

// Summary returns the joined projection of the user.
func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// RegisterRequest represents the data needed to register a new account
type RegisterRequest struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Password      string   `json:"password"`
	SkillsOffered []string `json:"skillsOffered"`
	SkillsWanted  []string `json:"skillsWanted"`
}

// LoginRequest represents the data needed to log in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries a partial profile update. Nil pointers mean
// "field absent, keep the current value". ProfilePhoto stays raw JSON so an
// explicit null (clear the photo) can be told apart from an absent field.
type UpdateProfileRequest struct {
	Name          *string   `json:"name"`
	Email         *string   `json:"email"`
	Password      *string   `json:"password"`
	SkillsOffered *[]string `json:"skillsOffered"`
	SkillsWanted  *[]string `json:"skillsWanted"`

	ProfilePhoto json.RawMessage `json:"profilePhoto"`
}

// PhotoUpdate interprets the raw profilePhoto field.
// present=false means the field was absent. clear=true means explicit null.
func (r *UpdateProfileRequest) PhotoUpdate() (dataURI string, clear bool, present bool, err error) {
	if len(r.ProfilePhoto) == 0 {
		return "", false, false, nil
	}
	if string(r.ProfilePhoto) == "null" {
		return "", true, true, nil
	}
	var s string
	if err := json.Unmarshal(r.ProfilePhoto, &s); err != nil {
		return "", false, true, ErrInvalidPhoto
	}
	return s, false, true, nil
}

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailExists is returned when attempting to register a taken email
	ErrEmailExists = errors.New("user already exists")

	// ErrInvalidCredentials is returned when login credentials are incorrect
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserBlocked is returned when a blocked account tries to authenticate
	ErrUserBlocked = errors.New("account is blocked")

	// ErrAdminNotBlockable is returned when blocking a user with role admin
	ErrAdminNotBlockable = errors.New("admin users cannot be blocked")

	// ErrPhotoTooLarge is returned when a profile photo exceeds the size cap
	ErrPhotoTooLarge = errors.New("profile photo exceeds size limit")

	// ErrInvalidPhoto is returned when the profile photo is not a decodable image data URI
	ErrInvalidPhoto = errors.New("profile photo must be an image data URI")

	// ErrPhotoStorageUnavailable is returned when object storage is not configured
	ErrPhotoStorageUnavailable = errors.New("photo storage is not configured")

	// ErrInvalidResetToken is returned for a malformed, unknown, or expired reset token
	ErrInvalidResetToken = errors.New("invalid or expired reset token")

	// ErrMailSendFailed is returned when the reset email could not be dispatched
	ErrMailSendFailed = errors.New("failed to send reset email")

	// ErrNameRequired is returned when the name is empty or whitespace
	ErrNameRequired = errors.New("name is required")

	// ErrEmailRequired is returned when the email is empty or whitespace
	ErrEmailRequired = errors.New("email is required")

	// ErrPasswordRequired is returned when the password is empty
	ErrPasswordRequired = errors.New("password is required")
)

// ResetTokenLength is the length of the raw hex reset token (32 random bytes).
// Tokens of any other length are rejected before the hash lookup.
const ResetTokenLength = 64
