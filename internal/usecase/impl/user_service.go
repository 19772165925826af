// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "tasknest/internal/delivery/context"
	"tasknest/internal/domain/entity"
	domainerrors "tasknest/internal/domain/errors"
	"tasknest/internal/domain/repository"
	"tasknest/internal/domain/service"
	"tasknest/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager        repository.TransactionManager
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	hasher           service.PasswordHasher
	tokenService     service.TokenService
	logger           *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	Logger           *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:        params.TxManager,
		userRepo:         params.UserRepo,
		refreshTokenRepo: params.RefreshTokenRepo,
		hasher:           params.Hasher,
		tokenService:     params.TokenService,
		logger:           params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new identity with a hashed secret.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrInternalError, "failed to hash password")
	}

	newUser := &entity.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, findErr := userRepo.FindByEmail(ctx, input.Email)
		if findErr == nil {
			return errors.Wrap(domainerrors.ErrUserAlreadyExists, "email already registered")
		}
		if !errors.Is(findErr, repository.ErrUserNotFound) {
			return domainerrors.NewDatabaseError(findErr, "failed to look up email")
		}

		if createErr := userRepo.Create(ctx, newUser); createErr != nil {
			// The unique index backstops a concurrent registration of the same email.
			if errors.Is(createErr, repository.ErrDuplicateEmail) {
				return errors.Wrap(domainerrors.ErrUserAlreadyExists, "email already registered")
			}

			return domainerrors.NewDatabaseError(createErr, "failed to create user")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.RegisterOutput{User: newUser}, nil
}

// Login verifies the submitted credentials and mints a token pair.
// Unknown email and wrong password are reported identically so the endpoint
// cannot be used to enumerate accounts.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting user login", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed: unknown email", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, domainerrors.NewDatabaseError(err, "failed to load user for login")
	}

	// bcrypt comparison is constant-time and CPU-bound; keep it outside any transaction.
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed: password mismatch", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	accessToken, refreshToken, err := srv.tokenService.IssuePair(user.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to generate tokens", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrInternalError, "failed to generate tokens")
	}

	session := &entity.RefreshToken{
		UserID:    user.ID,
		TokenHash: srv.tokenService.HashToken(refreshToken),
		Status:    entity.SessionStatusActive,
		ExpiresAt: time.Now().Add(srv.tokenService.RefreshTTL()),
	}
	if err := srv.refreshTokenRepo.Create(ctx, session); err != nil {
		srv.log(ctx).Error("Failed to record session", slog.Any("error", err))

		return nil, domainerrors.NewDatabaseError(err, "failed to record session")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// Refresh rotates the presented refresh token for a new token pair.
// Rotation is single-use: the conditional status flip in the session store is
// the compare-and-swap that decides the winner between concurrent refreshes.
func (srv *userService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.RefreshOutput, error) {
	srv.log(ctx).Info("Attempting to rotate refresh token")

	claims, err := srv.tokenService.Verify(input.RefreshToken, service.TokenKindRefresh)
	if err != nil {
		srv.log(ctx).Warn("Refresh rejected: token failed verification", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "invalid refresh token")
	}

	oldHash := srv.tokenService.HashToken(input.RefreshToken)

	newAccessToken, newRefreshToken, err := srv.tokenService.IssuePair(claims.UserID)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInternalError, "failed to generate tokens")
	}
	newHash := srv.tokenService.HashToken(newRefreshToken)

	var reuseDetected bool

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		refreshRepo := repoFactory.RefreshTokenRepo()
		now := time.Now()

		_, rotateErr := refreshRepo.MarkRotated(ctx, oldHash, now)
		if rotateErr != nil {
			if errors.Is(rotateErr, repository.ErrRefreshTokenReused) {
				// A rotated-out or revoked token came back: assume theft and
				// cut every session of the identity. The revocation must
				// commit, so the transaction callback succeeds.
				reuseDetected = true

				if revokeErr := refreshRepo.RevokeByUserID(ctx, claims.UserID); revokeErr != nil {
					return domainerrors.NewDatabaseError(revokeErr, "failed to revoke sessions after reuse")
				}

				return nil
			}
			if errors.Is(rotateErr, repository.ErrRefreshTokenNotFound) {
				return errors.Wrap(domainerrors.ErrUnauthorized, "refresh token not recognized")
			}

			return domainerrors.NewDatabaseError(rotateErr, "failed to rotate refresh token")
		}

		newSession := &entity.RefreshToken{
			UserID:    claims.UserID,
			TokenHash: newHash,
			Status:    entity.SessionStatusActive,
			ExpiresAt: now.Add(srv.tokenService.RefreshTTL()),
		}

		if createErr := refreshRepo.Create(ctx, newSession); createErr != nil {
			return domainerrors.NewDatabaseError(createErr, "failed to record rotated session")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Refresh failed", slog.Any("error", err))

		return nil, err
	}

	if reuseDetected {
		srv.log(ctx).Warn("Refresh token reuse detected; all sessions revoked",
			slog.Any("userID", claims.UserID))

		return nil, errors.Wrap(domainerrors.ErrReuseDetected, "refresh token already rotated or revoked")
	}

	srv.log(ctx).Debug("Refresh token rotated", slog.Any("userID", claims.UserID))

	return &usecase.RefreshOutput{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// Logout revokes the presented refresh token.
func (srv *userService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	srv.log(ctx).Info("Attempting to log out")

	if _, err := srv.tokenService.Verify(input.RefreshToken, service.TokenKindRefresh); err != nil {
		// Even an invalid token gets its hash revoked if a row exists.
		srv.log(ctx).Warn("Logout with invalid token", slog.Any("error", err))
	}

	tokenHash := srv.tokenService.HashToken(input.RefreshToken)

	if err := srv.refreshTokenRepo.RevokeByHash(ctx, tokenHash); err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			// Already revoked or never recorded; logout is a no-op then.
			srv.log(ctx).Debug("Logout for unknown session")

			return nil
		}

		return domainerrors.NewDatabaseError(err, "failed to revoke session")
	}

	srv.log(ctx).Info("Successfully logged out")

	return nil
}

// GetProfile returns the identity behind an authenticated request.
func (srv *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "user no longer exists")
		}

		return nil, domainerrors.NewDatabaseError(err, "failed to load profile")
	}

	return user, nil
}
