package impl

import (
	"context"
	"testing"
	"time"

	"tasknest/internal/domain/entity"
	domainerrors "tasknest/internal/domain/errors"
	"tasknest/internal/domain/repository"
	"tasknest/internal/domain/service"
	mockRepo "tasknest/internal/mocks/repository"
	mockSvc "tasknest/internal/mocks/service"
	"tasknest/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service          usecase.UserUsecase
	userRepo         *mockRepo.MockUserRepository
	refreshTokenRepo *mockRepo.MockRefreshTokenRepository
	hasher           *mockSvc.MockPasswordHasher
	tokenService     *mockSvc.MockTokenService
}

func createTestUserService(t *testing.T) userServiceFixtures {
	t.Helper()

	userRepo := &mockRepo.MockUserRepository{}
	refreshTokenRepo := &mockRepo.MockRefreshTokenRepository{}
	hasher := &mockSvc.MockPasswordHasher{}
	tokenService := &mockSvc.MockTokenService{}

	factory := &mockRepo.MockRepositoryFactory{}
	factory.On("UserRepo").Return(userRepo).Maybe()
	factory.On("RefreshTokenRepo").Return(refreshTokenRepo).Maybe()

	svc := NewUserService(UserServiceParams{
		TxManager:        &stubTxManager{factory: factory},
		UserRepo:         userRepo,
		RefreshTokenRepo: refreshTokenRepo,
		Hasher:           hasher,
		TokenService:     tokenService,
		Logger:           newDiscardLogger(),
	})

	return userServiceFixtures{
		service:          svc,
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		hasher:           hasher,
		tokenService:     tokenService,
	}
}

func TestUserService_Register_Success(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	input := &usecase.RegisterInput{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "Password123!",
	}

	fx.hasher.On("Hash", input.Password).Return("hashed_password", nil)
	fx.userRepo.On("FindByEmail", ctx, input.Email).Return(nil, repository.ErrUserNotFound)
	fx.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*entity.User)
			user.ID = uuid.New()
		}).
		Return(nil)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, input.Email, output.User.Email)
	assert.Equal(t, "hashed_password", output.User.PasswordHash)
	assert.NotEqual(t, uuid.Nil, output.User.ID)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	input := &usecase.RegisterInput{
		Name:     "Test User",
		Email:    "taken@example.com",
		Password: "Password123!",
	}

	fx.hasher.On("Hash", input.Password).Return("hashed_password", nil)
	fx.userRepo.On("FindByEmail", ctx, input.Email).
		Return(&entity.User{ID: uuid.New(), Email: input.Email}, nil)

	output, err := fx.service.Register(ctx, input)

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
	fx.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Login_Success(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Email: "test@example.com", PasswordHash: "stored_hash"}

	fx.userRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)
	fx.hasher.On("Check", "Password123!", "stored_hash").Return(true)
	fx.tokenService.On("IssuePair", user.ID).Return("access-token", "refresh-token", nil)
	fx.tokenService.On("HashToken", "refresh-token").Return("refresh-hash")
	fx.tokenService.On("RefreshTTL").Return(7 * 24 * time.Hour)
	fx.refreshTokenRepo.On("Create", ctx, mock.AnythingOfType("*entity.RefreshToken")).
		Run(func(args mock.Arguments) {
			session := args.Get(1).(*entity.RefreshToken)
			assert.Equal(t, user.ID, session.UserID)
			assert.Equal(t, "refresh-hash", session.TokenHash)
			assert.Equal(t, entity.SessionStatusActive, session.Status)
		}).
		Return(nil)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{Email: user.Email, Password: "Password123!"})

	require.NoError(t, err)
	assert.Equal(t, "access-token", output.AccessToken)
	assert.Equal(t, "refresh-token", output.RefreshToken)
	assert.Equal(t, user.ID, output.User.ID)
}

func TestUserService_Login_UnknownEmailAndWrongPasswordIndistinguishable(t *testing.T) {
	ctx := context.Background()

	// Unknown email.
	fx1 := createTestUserService(t)
	fx1.userRepo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, repository.ErrUserNotFound)

	_, errUnknown := fx1.service.Login(ctx, &usecase.LoginInput{Email: "nobody@example.com", Password: "whatever"})
	require.Error(t, errUnknown)
	assert.ErrorIs(t, errUnknown, domainerrors.ErrInvalidCredentials)

	// Wrong password.
	fx2 := createTestUserService(t)
	user := &entity.User{ID: uuid.New(), Email: "test@example.com", PasswordHash: "stored_hash"}
	fx2.userRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)
	fx2.hasher.On("Check", "wrong", "stored_hash").Return(false)

	_, errWrong := fx2.service.Login(ctx, &usecase.LoginInput{Email: user.Email, Password: "wrong"})
	require.Error(t, errWrong)
	assert.ErrorIs(t, errWrong, domainerrors.ErrInvalidCredentials)

	// Both paths surface the identical application error.
	var appErrUnknown, appErrWrong domainerrors.AppError
	require.True(t, errors.As(errUnknown, &appErrUnknown))
	require.True(t, errors.As(errWrong, &appErrWrong))
	assert.Equal(t, appErrUnknown.Message(), appErrWrong.Message())
	assert.Equal(t, appErrUnknown.ErrorCode(), appErrWrong.ErrorCode())
}

func TestUserService_Refresh_RotatesToken(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.tokenService.On("Verify", "old-refresh", service.TokenKindRefresh).
		Return(&service.Claims{UserID: userID, Kind: service.TokenKindRefresh}, nil)
	fx.tokenService.On("HashToken", "old-refresh").Return("old-hash")
	fx.tokenService.On("IssuePair", userID).Return("new-access", "new-refresh", nil)
	fx.tokenService.On("HashToken", "new-refresh").Return("new-hash")
	fx.tokenService.On("RefreshTTL").Return(7 * 24 * time.Hour)

	fx.refreshTokenRepo.On("MarkRotated", ctx, "old-hash", mock.AnythingOfType("time.Time")).
		Return(&entity.RefreshToken{UserID: userID, TokenHash: "old-hash", Status: entity.SessionStatusRotated}, nil)
	fx.refreshTokenRepo.On("Create", ctx, mock.AnythingOfType("*entity.RefreshToken")).
		Run(func(args mock.Arguments) {
			session := args.Get(1).(*entity.RefreshToken)
			assert.Equal(t, "new-hash", session.TokenHash)
			assert.Equal(t, userID, session.UserID)
		}).
		Return(nil)

	output, err := fx.service.Refresh(ctx, &usecase.RefreshInput{RefreshToken: "old-refresh"})

	require.NoError(t, err)
	assert.Equal(t, "new-access", output.AccessToken)
	assert.Equal(t, "new-refresh", output.RefreshToken)
}

func TestUserService_Refresh_ReuseRevokesAllSessions(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.tokenService.On("Verify", "stolen-refresh", service.TokenKindRefresh).
		Return(&service.Claims{UserID: userID, Kind: service.TokenKindRefresh}, nil)
	fx.tokenService.On("HashToken", "stolen-refresh").Return("stolen-hash")
	fx.tokenService.On("IssuePair", userID).Return("unused-access", "unused-refresh", nil)
	fx.tokenService.On("HashToken", "unused-refresh").Return("unused-hash")

	fx.refreshTokenRepo.On("MarkRotated", ctx, "stolen-hash", mock.AnythingOfType("time.Time")).
		Return(nil, repository.ErrRefreshTokenReused)
	fx.refreshTokenRepo.On("RevokeByUserID", ctx, userID).Return(nil)

	output, err := fx.service.Refresh(ctx, &usecase.RefreshInput{RefreshToken: "stolen-refresh"})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrReuseDetected)
	fx.refreshTokenRepo.AssertCalled(t, "RevokeByUserID", ctx, userID)
	fx.refreshTokenRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Refresh_UnknownTokenUnauthorized(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.tokenService.On("Verify", "ghost-refresh", service.TokenKindRefresh).
		Return(&service.Claims{UserID: userID, Kind: service.TokenKindRefresh}, nil)
	fx.tokenService.On("HashToken", "ghost-refresh").Return("ghost-hash")
	fx.tokenService.On("IssuePair", userID).Return("a", "r", nil)
	fx.tokenService.On("HashToken", "r").Return("r-hash")

	fx.refreshTokenRepo.On("MarkRotated", ctx, "ghost-hash", mock.AnythingOfType("time.Time")).
		Return(nil, repository.ErrRefreshTokenNotFound)

	output, err := fx.service.Refresh(ctx, &usecase.RefreshInput{RefreshToken: "ghost-refresh"})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
	fx.refreshTokenRepo.AssertNotCalled(t, "RevokeByUserID", mock.Anything, mock.Anything)
}

func TestUserService_Refresh_InvalidTokenUnauthorized(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.tokenService.On("Verify", "garbage", service.TokenKindRefresh).
		Return(nil, service.ErrInvalidToken)

	output, err := fx.service.Refresh(ctx, &usecase.RefreshInput{RefreshToken: "garbage"})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestUserService_Logout_RevokesSession(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.tokenService.On("Verify", "refresh-token", service.TokenKindRefresh).
		Return(&service.Claims{UserID: userID, Kind: service.TokenKindRefresh}, nil)
	fx.tokenService.On("HashToken", "refresh-token").Return("refresh-hash")
	fx.refreshTokenRepo.On("RevokeByHash", ctx, "refresh-hash").Return(nil)

	err := fx.service.Logout(ctx, &usecase.LogoutInput{RefreshToken: "refresh-token"})

	require.NoError(t, err)
	fx.refreshTokenRepo.AssertCalled(t, "RevokeByHash", ctx, "refresh-hash")
}

func TestUserService_Logout_UnknownSessionIsNoop(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.tokenService.On("Verify", "stale-token", service.TokenKindRefresh).
		Return(nil, service.ErrTokenExpired)
	fx.tokenService.On("HashToken", "stale-token").Return("stale-hash")
	fx.refreshTokenRepo.On("RevokeByHash", ctx, "stale-hash").
		Return(repository.ErrRefreshTokenNotFound)

	err := fx.service.Logout(ctx, &usecase.LogoutInput{RefreshToken: "stale-token"})

	assert.NoError(t, err)
}

func TestUserService_GetProfile(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Email: "me@example.com"}, nil)

	user, err := fx.service.GetProfile(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, "me@example.com", user.Email)
}

func TestUserService_GetProfile_Missing(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.On("FindByID", ctx, userID).Return(nil, repository.ErrUserNotFound)

	user, err := fx.service.GetProfile(ctx, userID)

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
