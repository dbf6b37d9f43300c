// File: services/user/user.go
package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"slotbook/models"
	"slotbook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenLifetime = 72 * time.Hour
	minPasswordLen = 8
)

func validEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// Register creates an account with the user role and signs it in.
func (s *DefaultUserService) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" {
		return nil, utils.ValidationError{Msg: "Name is required"}
	}
	if !validEmail(email) {
		return nil, utils.ValidationError{Msg: "Please provide a valid email"}
	}
	if len(input.Password) < minPasswordLen {
		return nil, utils.ValidationError{Msg: fmt.Sprintf("Password must be at least %d characters", minPasswordLen)}
	}

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return nil, utils.ConflictError{Msg: "Email is already registered"}
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.Clock.Now()
	account := &models.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Password:  string(hashed),
		Role:      models.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	resp, err := s.issueToken(ctx, account)
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Account registered", zap.String("userID", account.ID))
	return resp, nil
}

// Authenticate verifies credentials and issues a fresh token. The token's
// hash is stored so a logout can revoke it server side.
func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	account, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.ValidationError{Msg: "Invalid email or password"}
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)) != nil {
		return nil, utils.ValidationError{Msg: "Invalid email or password"}
	}
	return s.issueToken(ctx, account)
}

func (s *DefaultUserService) issueToken(ctx context.Context, account *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(account.ID, account.Email, account.Role, tokenLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	if err := s.Repo.UpdateTokenHash(ctx, account.ID, utils.HashToken(token)); err != nil {
		return nil, fmt.Errorf("failed to store token hash: %w", err)
	}
	return &AuthResponse{Token: token, User: account.Public()}, nil
}

// GetByID returns the public view of an account.
func (s *DefaultUserService) GetByID(ctx context.Context, userID string) (*models.PublicUser, error) {
	account, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFoundError{Msg: "User not found"}
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	public := account.Public()
	return &public, nil
}

// Logout clears the stored token hash, revoking the active token.
func (s *DefaultUserService) Logout(ctx context.Context, userID string) error {
	if err := s.Repo.UpdateTokenHash(ctx, userID, ""); err != nil {
		return fmt.Errorf("failed to clear token hash: %w", err)
	}
	return nil
}
