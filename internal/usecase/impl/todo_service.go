package impl

import (
	"context"
	"log/slog"

	deliverycontext "tasknest/internal/delivery/context"
	"tasknest/internal/domain/entity"
	domainerrors "tasknest/internal/domain/errors"
	"tasknest/internal/domain/repository"
	"tasknest/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// todoService implements the TodoUsecase interface. Ownership scoping lives in
// the repository; this layer adds validation and error mapping.
type todoService struct {
	todoRepo repository.TodoRepository
	logger   *slog.Logger
}

// NewTodoService is the constructor for todoService.
func NewTodoService(todoRepo repository.TodoRepository, logger *slog.Logger) usecase.TodoUsecase {
	return &todoService{
		todoRepo: todoRepo,
		logger:   logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *todoService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create stores a new todo owned by the user.
func (srv *todoService) Create(ctx context.Context, userID uuid.UUID, input *usecase.CreateTodoInput) (*entity.Todo, error) {
	if input.Name == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "todo name is required")
	}
	if input.Description == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "todo description is required")
	}

	todo := &entity.Todo{
		UserID:      userID, // owner comes from the authenticated context only
		Name:        input.Name,
		Description: input.Description,
	}

	if err := srv.todoRepo.Create(ctx, todo); err != nil {
		srv.log(ctx).Error("Failed to create todo", slog.Any("error", err), slog.Any("userID", userID))

		return nil, domainerrors.NewDatabaseError(err, "failed to create todo")
	}

	srv.log(ctx).Debug("Todo created", slog.Any("todoID", todo.ID), slog.Any("userID", userID))

	return todo, nil
}

// ListMine returns all todos owned by the user.
func (srv *todoService) ListMine(ctx context.Context, userID uuid.UUID) ([]*entity.Todo, error) {
	todos, err := srv.todoRepo.ListByOwner(ctx, userID)
	if err != nil {
		srv.log(ctx).Error("Failed to list todos", slog.Any("error", err), slog.Any("userID", userID))

		return nil, domainerrors.NewDatabaseError(err, "failed to list todos")
	}

	return todos, nil
}

// Get returns a single owned todo.
func (srv *todoService) Get(ctx context.Context, userID, todoID uuid.UUID) (*entity.Todo, error) {
	todo, err := srv.todoRepo.FindByIDAndOwner(ctx, todoID, userID)
	if err != nil {
		return nil, srv.mapTodoError(ctx, err, userID, todoID)
	}

	return todo, nil
}

// Update applies a partial update to an owned todo. Absent fields keep their
// prior values.
func (srv *todoService) Update(ctx context.Context, userID, todoID uuid.UUID, input *usecase.UpdateTodoInput) (*entity.Todo, error) {
	if input.Name != nil && *input.Name == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "todo name cannot be empty")
	}

	updates := repository.TodoFieldUpdates{
		Name:        input.Name,
		Description: input.Description,
	}

	todo, err := srv.todoRepo.UpdateFields(ctx, todoID, userID, updates)
	if err != nil {
		return nil, srv.mapTodoError(ctx, err, userID, todoID)
	}

	srv.log(ctx).Debug("Todo updated", slog.Any("todoID", todoID), slog.Any("userID", userID))

	return todo, nil
}

// Delete removes an owned todo.
func (srv *todoService) Delete(ctx context.Context, userID, todoID uuid.UUID) error {
	if err := srv.todoRepo.Delete(ctx, todoID, userID); err != nil {
		return srv.mapTodoError(ctx, err, userID, todoID)
	}

	srv.log(ctx).Debug("Todo deleted", slog.Any("todoID", todoID), slog.Any("userID", userID))

	return nil
}

// mapTodoError translates repository errors. An unknown id and a foreign
// owner collapse into the same not-found error on purpose.
func (srv *todoService) mapTodoError(ctx context.Context, err error, userID, todoID uuid.UUID) error {
	if errors.Is(err, repository.ErrTodoNotFound) {
		return errors.Wrap(domainerrors.ErrTodoNotFound, "todo not found for this user")
	}

	srv.log(ctx).Error("Todo persistence failure",
		slog.Any("error", err), slog.Any("todoID", todoID), slog.Any("userID", userID))

	return domainerrors.NewDatabaseError(err, "todo persistence failure")
}
