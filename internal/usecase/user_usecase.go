// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"tasknest/internal/domain/entity"

	"github.com/google/uuid"
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RegisterOutput is the result of a successful registration.
type RegisterOutput struct {
	User *entity.User
}

// LoginInput carries the submitted credentials.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginOutput is the token pair minted on a successful login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// RefreshInput carries the refresh token presented for rotation.
type RefreshInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshOutput is the replacement token pair. The presented refresh token is
// invalid from this point on.
type RefreshOutput struct {
	AccessToken  string
	RefreshToken string
}

// LogoutInput carries the refresh token to revoke.
type LogoutInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// UserUsecase defines the credential service: registration, login, and the
// refresh token lifecycle.
type UserUsecase interface {
	// Register creates a new identity. Duplicate emails are rejected.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// Login verifies credentials and mints a token pair. Unknown email and
	// wrong password produce the identical error.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Refresh rotates the presented refresh token for a new pair. Presenting
	// an already-rotated or revoked token revokes every session of the
	// identity before failing.
	Refresh(ctx context.Context, input *RefreshInput) (*RefreshOutput, error)

	// Logout revokes the presented refresh token.
	Logout(ctx context.Context, input *LogoutInput) error

	// GetProfile returns the identity behind an authenticated request.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
