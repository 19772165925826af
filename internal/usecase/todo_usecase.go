package usecase

import (
	"context"

	"tasknest/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateTodoInput carries the fields of a new todo item.
type CreateTodoInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// UpdateTodoInput carries a partial update. Nil fields were absent from the
// request and keep their prior values.
type UpdateTodoInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description"`
}

// TodoUsecase defines the ownership-scoped operations over todo items.
// Every method takes the requester's identity; a todo that exists under a
// different owner behaves exactly like one that does not exist.
type TodoUsecase interface {
	// Create stores a new todo owned by the user. The owner comes from the
	// authenticated context, never from caller input.
	Create(ctx context.Context, userID uuid.UUID, input *CreateTodoInput) (*entity.Todo, error)

	// ListMine returns all todos owned by the user, in stable order.
	ListMine(ctx context.Context, userID uuid.UUID) ([]*entity.Todo, error)

	// Get returns a single owned todo.
	Get(ctx context.Context, userID, todoID uuid.UUID) (*entity.Todo, error)

	// Update applies a partial update to an owned todo.
	Update(ctx context.Context, userID, todoID uuid.UUID, input *UpdateTodoInput) (*entity.Todo, error)

	// Delete removes an owned todo. A second delete of the same id fails
	// with not-found.
	Delete(ctx context.Context, userID, todoID uuid.UUID) error
}
