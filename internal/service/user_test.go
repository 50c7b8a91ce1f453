package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"skillswap_22520060/internal/model"
)

func TestUserService_Register_Success(t *testing.T) {
	mockRepo := &mockUserRepository{
		createFn: func(ctx context.Context, user *model.User) error {
			user.ID = 1
			user.CreatedAt = time.Now()
			user.UpdatedAt = time.Now()
			return nil
		},
	}
	svc := NewUserService(mockRepo, nil)

	req := &model.RegisterRequest{
		Name:          "Alice",
		Email:         "Alice@Example.COM",
		Password:      "securepassword123",
		SkillsOffered: []string{" Python ", ""},
		SkillsWanted:  []string{"Spanish"},
	}

	user, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if user.Email != "alice@example.com" {
		t.Errorf("email = %q, want lowercased %q", user.Email, "alice@example.com")
	}
	if user.Role != model.RoleUser {
		t.Errorf("role = %q, want %q", user.Role, model.RoleUser)
	}
	if len(user.SkillsOffered) != 1 || user.SkillsOffered[0] != "Python" {
		t.Errorf("skillsOffered = %v, want trimmed [Python]", user.SkillsOffered)
	}

	if user.PasswordHashed == req.Password {
		t.Error("password should be hashed, not stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(req.Password)); err != nil {
		t.Error("password hash should be valid bcrypt hash")
	}

	// The JSON projection must never contain the hash or reset fields
	raw, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("marshal user: %v", err)
	}
	var projection map[string]interface{}
	if err := json.Unmarshal(raw, &projection); err != nil {
		t.Fatalf("unmarshal projection: %v", err)
	}
	for _, hidden := range []string{"password_hashed", "passwordHashed", "reset_token_hash", "reset_token_expires"} {
		if _, ok := projection[hidden]; ok {
			t.Errorf("projection exposes %q", hidden)
		}
	}
}

func TestUserService_Register_EmailExists(t *testing.T) {
	mockRepo := &mockUserRepository{
		existsByEmailFn: func(ctx context.Context, email string, excludeID int64) (bool, error) {
			return true, nil
		},
	}
	svc := NewUserService(mockRepo, nil)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name:     "Bob",
		Email:    "taken@example.com",
		Password: "password123",
	})
	if !errors.Is(err, model.ErrEmailExists) {
		t.Errorf("err = %v, want ErrEmailExists", err)
	}
	if mockRepo.createCalls != 0 {
		t.Error("Create should not be called when the email is taken")
	}
}

func TestUserService_Register_WhitespaceFields(t *testing.T) {
	svc := NewUserService(&mockUserRepository{}, nil)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name:     "   ",
		Email:    "a@b.com",
		Password: "secret",
	})
	if !errors.Is(err, model.ErrNameRequired) {
		t.Errorf("err = %v, want ErrNameRequired", err)
	}

	_, err = svc.Register(context.Background(), &model.RegisterRequest{
		Name:     "Alice",
		Email:    "   ",
		Password: "secret",
	})
	if !errors.Is(err, model.ErrEmailRequired) {
		t.Errorf("err = %v, want ErrEmailRequired", err)
	}

	_, err = svc.Register(context.Background(), &model.RegisterRequest{
		Name:  "Alice",
		Email: "a@b.com",
	})
	if !errors.Is(err, model.ErrPasswordRequired) {
		t.Errorf("err = %v, want ErrPasswordRequired", err)
	}
}

func TestUserService_Login_Success(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	mockRepo := &mockUserRepository{
		getByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			if email != "alice@example.com" {
				t.Errorf("lookup email = %q, want lowercased", email)
			}
			return &model.User{ID: 1, Email: email, PasswordHashed: string(hashed)}, nil
		},
	}
	svc := NewUserService(mockRepo, nil)

	user, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    " ALICE@example.com ",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if user.ID != 1 {
		t.Errorf("user.ID = %d, want 1", user.ID)
	}
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.DefaultCost)
	mockRepo := &mockUserRepository{
		getByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: 1, PasswordHashed: string(hashed)}, nil
		},
	}
	svc := NewUserService(mockRepo, nil)

	_, err := svc.Login(context.Background(), &model.LoginRequest{Email: "a@b.c", Password: "wrong"})
	if !errors.Is(err, model.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestUserService_Login_UnknownEmailHidesExistence(t *testing.T) {
	svc := NewUserService(&mockUserRepository{}, nil)

	_, err := svc.Login(context.Background(), &model.LoginRequest{Email: "ghost@example.com", Password: "x"})
	if !errors.Is(err, model.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials (not a not-found error)", err)
	}
}

func TestUserService_Login_BlockedAccountNeverGetsIn(t *testing.T) {
	// Correct password, blocked account: must be Forbidden, not a token.
	hashed, _ := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.DefaultCost)
	mockRepo := &mockUserRepository{
		getByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: 1, PasswordHashed: string(hashed), IsBlocked: true}, nil
		},
	}
	svc := NewUserService(mockRepo, nil)

	_, err := svc.Login(context.Background(), &model.LoginRequest{Email: "a@b.c", Password: "correct"})
	if !errors.Is(err, model.ErrUserBlocked) {
		t.Errorf("err = %v, want ErrUserBlocked", err)
	}
}

func TestUserService_UpdateProfile_PartialUpdate(t *testing.T) {
	current := &model.User{
		ID:            1,
		Name:          "Alice",
		Email:         "alice@example.com",
		SkillsOffered: []string{"Python"},
		SkillsWanted:  []string{"Spanish"},
	}
	mockRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return current, nil
		},
	}
	svc := NewUserService(mockRepo, nil)

	newName := "Alice B"
	updated, err := svc.UpdateProfile(context.Background(), 1, &model.UpdateProfileRequest{
		Name: &newName,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if updated.Name != "Alice B" {
		t.Errorf("name = %q, want %q", updated.Name, "Alice B")
	}
	// Omitted fields keep their prior values
	if updated.Email != "alice@example.com" {
		t.Errorf("email changed unexpectedly: %q", updated.Email)
	}
	if len(updated.SkillsOffered) != 1 || updated.SkillsOffered[0] != "Python" {
		t.Errorf("skillsOffered changed unexpectedly: %v", updated.SkillsOffered)
	}
}

func TestUserService_UpdateProfile_EmailTaken(t *testing.T) {
	mockRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: 1, Email: "alice@example.com"}, nil
		},
		existsByEmailFn: func(ctx context.Context, email string, excludeID int64) (bool, error) {
			if excludeID != 1 {
				t.Errorf("excludeID = %d, want 1 (own row excluded)", excludeID)
			}
			return true, nil
		},
	}
	svc := NewUserService(mockRepo, nil)

	taken := "bob@example.com"
	_, err := svc.UpdateProfile(context.Background(), 1, &model.UpdateProfileRequest{Email: &taken})
	if !errors.Is(err, model.ErrEmailExists) {
		t.Errorf("err = %v, want ErrEmailExists", err)
	}
}

func TestUserService_UpdateProfile_PhotoNullClears(t *testing.T) {
	key := "avatars/old.jpg"
	url := "https://cdn.example.com/avatars/old.jpg"
	mockRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: 1, PhotoURL: &url, PhotoKey: &key}, nil
		},
	}
	store := &mockPhotoStore{}
	svc := NewUserService(mockRepo, store)

	updated, err := svc.UpdateProfile(context.Background(), 1, &model.UpdateProfileRequest{
		ProfilePhoto: json.RawMessage("null"),
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if updated.PhotoURL != nil || updated.PhotoKey != nil {
		t.Error("explicit null should clear the photo")
	}
	if len(store.deleted) != 1 || store.deleted[0] != "avatars/old.jpg" {
		t.Errorf("deleted = %v, want the old key", store.deleted)
	}
}

func TestUserService_UpdateProfile_PhotoAbsentKept(t *testing.T) {
	key := "avatars/old.jpg"
	url := "https://cdn.example.com/avatars/old.jpg"
	mockRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: 1, PhotoURL: &url, PhotoKey: &key}, nil
		},
	}
	svc := NewUserService(mockRepo, &mockPhotoStore{})

	updated, err := svc.UpdateProfile(context.Background(), 1, &model.UpdateProfileRequest{})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if updated.PhotoURL == nil || *updated.PhotoURL != url {
		t.Error("absent profilePhoto field must keep the current photo")
	}
}

func TestUserService_UpdateProfile_PhotoWithoutStorage(t *testing.T) {
	mockRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: 1}, nil
		},
	}
	svc := NewUserService(mockRepo, nil)

	_, err := svc.UpdateProfile(context.Background(), 1, &model.UpdateProfileRequest{
		ProfilePhoto: json.RawMessage(`"data:image/png;base64,aGk="`),
	})
	if !errors.Is(err, model.ErrPhotoStorageUnavailable) {
		t.Errorf("err = %v, want ErrPhotoStorageUnavailable", err)
	}
}

func TestUserService_SetBlocked_AdminRefused(t *testing.T) {
	mockRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Role: model.RoleAdmin}, nil
		},
	}
	svc := NewUserService(mockRepo, nil)

	_, err := svc.SetBlocked(context.Background(), 7, true)
	if !errors.Is(err, model.ErrAdminNotBlockable) {
		t.Errorf("err = %v, want ErrAdminNotBlockable", err)
	}
	if mockRepo.setBlockedCalls != 0 {
		t.Error("SetBlocked should not reach the store for an admin target")
	}
}

func TestUserService_SetBlocked_UnblockAdminAllowed(t *testing.T) {
	mockRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Role: model.RoleAdmin, IsBlocked: true}, nil
		},
	}
	svc := NewUserService(mockRepo, nil)

	user, err := svc.SetBlocked(context.Background(), 7, false)
	if err != nil {
		t.Fatalf("unblock should succeed regardless of role, got: %v", err)
	}
	if user.IsBlocked {
		t.Error("user should be unblocked")
	}
}
