package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"skillswap_22520060/internal/model"
	"skillswap_22520060/internal/repository"
)

// UserService handles business logic for accounts and profiles.
type UserService struct {
	repo   repository.UserRepository
	photos PhotoStore // nil when object storage is not configured
}

func NewUserService(repo repository.UserRepository, photos PhotoStore) *UserService {
	return &UserService{
		repo:   repo,
		photos: photos,
	}
}

// Register creates a new user account.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)

	if name == "" {
		return nil, model.ErrNameRequired
	}
	if email == "" {
		return nil, model.ErrEmailRequired
	}
	if req.Password == "" {
		return nil, model.ErrPasswordRequired
	}

	exists, err := s.repo.ExistsByEmail(ctx, email, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, model.ErrEmailExists
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:           name,
		Email:          email,
		PasswordHashed: hashed,
		SkillsOffered:  normalizeSkills(req.SkillsOffered),
		SkillsWanted:   normalizeSkills(req.SkillsWanted),
		Role:           model.RoleUser,
	}

	// The unique index on lower(email) backstops the pre-check; the repo
	// maps that violation back to model.ErrEmailExists.
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates a user with email and password.
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		// Don't reveal whether the email exists or not
		return nil, model.ErrInvalidCredentials
	}

	if user.IsBlocked {
		return nil, model.ErrUserBlocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return user, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile applies a partial update to the caller's own profile.
// Absent fields keep their current values.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *model.UpdateProfileRequest) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if name := strings.TrimSpace(*req.Name); name != "" {
			user.Name = name
		}
	}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email != "" && email != user.Email {
			exists, err := s.repo.ExistsByEmail(ctx, email, user.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			if exists {
				return nil, model.ErrEmailExists
			}
			user.Email = email
		}
	}

	if req.SkillsOffered != nil {
		user.SkillsOffered = normalizeSkills(*req.SkillsOffered)
	}
	if req.SkillsWanted != nil {
		user.SkillsWanted = normalizeSkills(*req.SkillsWanted)
	}

	if req.Password != nil && *req.Password != "" {
		hashed, err := hashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHashed = hashed
	}

	if err := s.applyPhotoUpdate(ctx, user, req); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// applyPhotoUpdate handles the three profilePhoto cases: absent (keep),
// explicit null (clear), data URI (replace).
func (s *UserService) applyPhotoUpdate(ctx context.Context, user *model.User, req *model.UpdateProfileRequest) error {
	dataURI, clear, present, err := req.PhotoUpdate()
	if err != nil {
		return err
	}
	if !present {
		return nil
	}

	oldKey := ""
	if user.PhotoKey != nil {
		oldKey = *user.PhotoKey
	}

	if clear {
		user.PhotoURL = nil
		user.PhotoKey = nil
		s.deleteOldPhoto(ctx, user.ID, oldKey)
		return nil
	}

	if s.photos == nil {
		return model.ErrPhotoStorageUnavailable
	}

	result, err := s.photos.UploadProfilePhoto(ctx, dataURI)
	if err != nil {
		return err
	}

	user.PhotoURL = &result.URL
	user.PhotoKey = &result.Key
	s.deleteOldPhoto(ctx, user.ID, oldKey)
	return nil
}

// deleteOldPhoto is best effort; a leaked object must not fail the update.
func (s *UserService) deleteOldPhoto(ctx context.Context, userID int64, key string) {
	if key == "" || s.photos == nil {
		return
	}
	if err := s.photos.DeleteObject(ctx, key); err != nil {
		log.Printf("[UserService] failed to delete old photo: user=%d key=%s err=%v", userID, key, err)
	}
}

// Search returns unblocked users whose offered or wanted skills match the
// keyword. A blank keyword matches everyone.
func (s *UserService) Search(ctx context.Context, keyword string) ([]model.User, error) {
	return s.repo.SearchBySkill(ctx, strings.TrimSpace(keyword))
}

// ListAll returns every account, for the admin overview.
func (s *UserService) ListAll(ctx context.Context) ([]model.User, error) {
	return s.repo.ListAll(ctx)
}

// SetBlocked toggles the block flag on an account. Admin accounts cannot be
// blocked.
func (s *UserService) SetBlocked(ctx context.Context, userID int64, blocked bool) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if blocked && user.Role == model.RoleAdmin {
		return nil, model.ErrAdminNotBlockable
	}
	return s.repo.SetBlocked(ctx, userID, blocked)
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizeSkills trims entries and drops blanks, preserving order.
func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		if trimmed := strings.TrimSpace(skill); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
