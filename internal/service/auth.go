package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"skillswap_22520060/internal/config"
	"skillswap_22520060/internal/model"
	"skillswap_22520060/internal/repository"
)

// AuthService issues access tokens and runs the password-reset flow.
type AuthService struct {
	userRepo repository.UserRepository
	mailer   Mailer
	config   *config.Config
}

func NewAuthService(userRepo repository.UserRepository, mailer Mailer, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		mailer:   mailer,
		config:   cfg,
	}
}

// GenerateToken signs an access token for the user.
func (s *AuthService) GenerateToken(userID int64) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Duration(s.config.JWTExpiresIn) * time.Second).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// ForgotPassword stores a hashed single-use reset token and emails the raw
// token to the account. model.ErrUserNotFound is returned for unknown emails;
// the handler folds it into a generic response so the endpoint does not leak
// which emails are registered.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.IsBlocked {
		return model.ErrUserBlocked
	}

	rawToken, err := generateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	expires := time.Now().Add(time.Duration(s.config.ResetTokenTTL) * time.Minute)
	if err := s.userRepo.SetResetToken(ctx, user.ID, s.hashToken(rawToken), expires); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.config.ClientURL, rawToken)
	if err := s.mailer.SendPasswordReset(user.Email, user.Name, resetURL); err != nil {
		// Roll back so a token that was never delivered cannot linger.
		if clearErr := s.userRepo.ClearResetToken(ctx, user.ID); clearErr != nil {
			log.Printf("[AuthService] failed to clear reset token after mail error: user=%d err=%v", user.ID, clearErr)
		}
		log.Printf("[AuthService] reset email failed: user=%d err=%v", user.ID, err)
		return model.ErrMailSendFailed
	}

	return nil
}

// ResetPassword consumes a raw reset token and sets the new password.
func (s *AuthService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	if len(rawToken) != model.ResetTokenLength {
		return model.ErrInvalidResetToken
	}

	user, err := s.userRepo.GetByResetTokenHash(ctx, s.hashToken(rawToken), time.Now())
	if err != nil {
		return model.ErrInvalidResetToken
	}

	hashed, err := hashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if err := s.userRepo.ClearResetToken(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to clear reset token: %w", err)
	}

	return nil
}

func (s *AuthService) hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// generateResetToken returns 32 random bytes hex encoded (64 characters).
func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
