package impl

import (
	"context"
	"testing"

	"tasknest/internal/domain/entity"
	domainerrors "tasknest/internal/domain/errors"
	"tasknest/internal/domain/repository"
	mockRepo "tasknest/internal/mocks/repository"
	"tasknest/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestTodoService(t *testing.T) (usecase.TodoUsecase, *mockRepo.MockTodoRepository) {
	t.Helper()

	todoRepo := &mockRepo.MockTodoRepository{}

	return NewTodoService(todoRepo, newDiscardLogger()), todoRepo
}

func TestTodoService_Create_StampsOwnerFromCaller(t *testing.T) {
	svc, todoRepo := createTestTodoService(t)
	ctx := context.Background()
	userID := uuid.New()

	todoRepo.On("Create", ctx, mock.AnythingOfType("*entity.Todo")).
		Run(func(args mock.Arguments) {
			todo := args.Get(1).(*entity.Todo)
			assert.Equal(t, userID, todo.UserID)
			todo.ID = uuid.New()
		}).
		Return(nil)

	todo, err := svc.Create(ctx, userID, &usecase.CreateTodoInput{
		Name:        "Buy groceries",
		Description: "Milk and bread",
	})

	require.NoError(t, err)
	assert.Equal(t, userID, todo.UserID)
	assert.Equal(t, "Buy groceries", todo.Name)
	assert.NotEqual(t, uuid.Nil, todo.ID)
}

func TestTodoService_Create_RejectsEmptyFields(t *testing.T) {
	svc, todoRepo := createTestTodoService(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.Create(ctx, userID, &usecase.CreateTodoInput{Name: "", Description: "x"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = svc.Create(ctx, userID, &usecase.CreateTodoInput{Name: "x", Description: ""})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	todoRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTodoService_ListMine(t *testing.T) {
	svc, todoRepo := createTestTodoService(t)
	ctx := context.Background()
	userID := uuid.New()

	expected := []*entity.Todo{
		{ID: uuid.New(), UserID: userID, Name: "newest"},
		{ID: uuid.New(), UserID: userID, Name: "older"},
	}
	todoRepo.On("ListByOwner", ctx, userID).Return(expected, nil)

	todos, err := svc.ListMine(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, expected, todos)
}

func TestTodoService_Get_ForeignOwnerLooksLikeMissing(t *testing.T) {
	svc, todoRepo := createTestTodoService(t)
	ctx := context.Background()
	userID := uuid.New()
	todoID := uuid.New()

	// The repository reports the same miss whether the row is absent or owned
	// by somebody else; the service must not re-introduce a distinction.
	todoRepo.On("FindByIDAndOwner", ctx, todoID, userID).Return(nil, repository.ErrTodoNotFound)

	todo, err := svc.Get(ctx, userID, todoID)

	assert.Nil(t, todo)
	assert.ErrorIs(t, err, domainerrors.ErrTodoNotFound)
}

func TestTodoService_Update_PartialFields(t *testing.T) {
	svc, todoRepo := createTestTodoService(t)
	ctx := context.Background()
	userID := uuid.New()
	todoID := uuid.New()
	newName := "renamed"

	todoRepo.On("UpdateFields", ctx, todoID, userID, mock.MatchedBy(func(u repository.TodoFieldUpdates) bool {
		return u.Name != nil && *u.Name == newName && u.Description == nil
	})).Return(&entity.Todo{ID: todoID, UserID: userID, Name: newName, Description: "unchanged"}, nil)

	todo, err := svc.Update(ctx, userID, todoID, &usecase.UpdateTodoInput{Name: &newName})

	require.NoError(t, err)
	assert.Equal(t, newName, todo.Name)
	assert.Equal(t, "unchanged", todo.Description)
}

func TestTodoService_Update_RejectsEmptyName(t *testing.T) {
	svc, todoRepo := createTestTodoService(t)
	ctx := context.Background()
	empty := ""

	_, err := svc.Update(ctx, uuid.New(), uuid.New(), &usecase.UpdateTodoInput{Name: &empty})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	todoRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTodoService_Update_Missing(t *testing.T) {
	svc, todoRepo := createTestTodoService(t)
	ctx := context.Background()
	userID := uuid.New()
	todoID := uuid.New()
	name := "whatever"

	todoRepo.On("UpdateFields", ctx, todoID, userID, mock.Anything).
		Return(nil, repository.ErrTodoNotFound)

	todo, err := svc.Update(ctx, userID, todoID, &usecase.UpdateTodoInput{Name: &name})

	assert.Nil(t, todo)
	assert.ErrorIs(t, err, domainerrors.ErrTodoNotFound)
}

func TestTodoService_Delete(t *testing.T) {
	svc, todoRepo := createTestTodoService(t)
	ctx := context.Background()
	userID := uuid.New()
	todoID := uuid.New()

	todoRepo.On("Delete", ctx, todoID, userID).Return(nil)

	require.NoError(t, svc.Delete(ctx, userID, todoID))
	todoRepo.AssertCalled(t, "Delete", ctx, todoID, userID)
}

func TestTodoService_Delete_Missing(t *testing.T) {
	svc, todoRepo := createTestTodoService(t)
	ctx := context.Background()
	userID := uuid.New()
	todoID := uuid.New()

	todoRepo.On("Delete", ctx, todoID, userID).Return(repository.ErrTodoNotFound)

	err := svc.Delete(ctx, userID, todoID)

	assert.ErrorIs(t, err, domainerrors.ErrTodoNotFound)
}
