// File: services/user/interface.go
package user

import (
	"context"

	userRepo "slotbook/database/repository/user"
	"slotbook/models"
	"slotbook/utils"
)

// RegisterInput carries a new account's details.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse pairs the signed token with the account it belongs to.
type AuthResponse struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// UserService owns account registration and token-based authentication.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResponse, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResponse, error)
	GetByID(ctx context.Context, userID string) (*models.PublicUser, error)
	Logout(ctx context.Context, userID string) error
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo  userRepo.UserRepository
	Clock utils.Clock
}
