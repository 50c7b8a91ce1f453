package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"skillswap_22520060/internal/model"
)

// userRepository implements UserRepository using sqlx
type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, name, email, password_hashed, photo_url, photo_key,
       skills_offered, skills_wanted, role, is_blocked,
       reset_token_hash, reset_token_expires, created_at, updated_at`

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (name, email, password_hashed, skills_offered, skills_wanted, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, role, is_blocked, created_at, updated_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		u.Name,
		u.Email,
		u.PasswordHashed,
		u.SkillsOffered,
		u.SkillsWanted,
		model.RoleUser,
	)

	err := row.Scan(&u.ID, &u.Role, &u.IsBlocked, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "users_email_unique") {
			return model.ErrEmailExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &u, nil
}

// GetByEmail retrieves a user by their lowercased email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &u, nil
}

// ExistsByEmail checks if an email is already taken by another user
func (r *userRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = lower($1) AND id <> $2)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, email, excludeID)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return exists, nil
}

// Update persists profile fields changed by the user
func (r *userRepository) Update(ctx context.Context, u *model.User) error {
	query := `
		UPDATE users
		SET name = $1, email = $2, password_hashed = $3,
		    photo_url = $4, photo_key = $5,
		    skills_offered = $6, skills_wanted = $7,
		    updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		u.Name,
		u.Email,
		u.PasswordHashed,
		u.PhotoURL,
		u.PhotoKey,
		u.SkillsOffered,
		u.SkillsWanted,
		u.ID,
	).Scan(&u.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.ErrUserNotFound
		}
		if isUniqueViolation(err, "users_email_unique") {
			return model.ErrEmailExists
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// SetBlocked flips the block flag and returns the updated user
func (r *userRepository) SetBlocked(ctx context.Context, id int64, blocked bool) (*model.User, error) {
	query := `
		UPDATE users SET is_blocked = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + userColumns

	var u model.User
	err := r.db.GetContext(ctx, &u, query, blocked, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update block flag: %w", err)
	}

	return &u, nil
}

// SetResetToken stores the hash of a password-reset token plus its expiry
func (r *userRepository) SetResetToken(ctx context.Context, id int64, tokenHash string, expires time.Time) error {
	query := `
		UPDATE users SET reset_token_hash = $1, reset_token_expires = $2, updated_at = NOW()
		WHERE id = $3
	`

	_, err := r.db.ExecContext(ctx, query, tokenHash, expires, id)
	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}
	return nil
}

// ClearResetToken removes any stored reset token state
func (r *userRepository) ClearResetToken(ctx context.Context, id int64) error {
	query := `
		UPDATE users SET reset_token_hash = NULL, reset_token_expires = NULL, updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to clear reset token: %w", err)
	}
	return nil
}

// GetByResetTokenHash looks up a user by a stored, not-yet-expired token hash
func (r *userRepository) GetByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE reset_token_hash = $1 AND reset_token_expires > $2
	`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, tokenHash, now)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by reset token: %w", err)
	}

	return &u, nil
}

// UpdatePassword replaces the password hash and consumes the reset token
func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHashed string) error {
	query := `
		UPDATE users
		SET password_hashed = $1, reset_token_hash = NULL, reset_token_expires = NULL, updated_at = NOW()
		WHERE id = $2
	`

	_, err := r.db.ExecContext(ctx, query, passwordHashed, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// SearchBySkill matches the keyword as a case-insensitive substring against
// either skill list, restricted to non-blocked users. The keyword is escaped
// so LIKE wildcards in user input cannot widen the pattern.
func (r *userRepository) SearchBySkill(ctx context.Context, keyword string) ([]model.User, error) {
	pattern := "%" + escapeLikePattern(keyword) + "%"

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE is_blocked = FALSE
		  AND (
			EXISTS (SELECT 1 FROM unnest(skills_offered) AS s WHERE s ILIKE $1)
			OR EXISTS (SELECT 1 FROM unnest(skills_wanted) AS s WHERE s ILIKE $1)
		  )
		ORDER BY created_at DESC
	`

	users := []model.User{}
	err := r.db.SelectContext(ctx, &users, query, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	return users, nil
}

// ListAll returns every user, newest first
func (r *userRepository) ListAll(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	users := []model.User{}
	err := r.db.SelectContext(ctx, &users, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// escapeLikePattern neutralizes LIKE metacharacters in user input.
func escapeLikePattern(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
