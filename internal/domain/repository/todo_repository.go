package repository

import (
	"context"
	"errors"

	"tasknest/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrTodoNotFound is returned when no todo matches both the id and the owner.
// An id owned by someone else produces exactly this error.
var ErrTodoNotFound = errors.New("todo not found")

// TodoFieldUpdates carries the fields of a partial update. Nil means the
// field was absent from the request and keeps its prior value.
type TodoFieldUpdates struct {
	Name        *string
	Description *string
}

// TodoRepository defines ownership-scoped persistence for todo items.
// Every read and mutation is parameterized by the requesting user's id; no
// method can observe or touch another user's rows.
type TodoRepository interface {
	// Create persists a new todo stamped with its owner.
	Create(ctx context.Context, todo *entity.Todo) error

	// FindByIDAndOwner retrieves a todo matching both id and owner.
	FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Todo, error)

	// ListByOwner returns all todos of the owner, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Todo, error)

	// UpdateFields applies a partial update as a single ownership-filtered
	// statement and returns the updated row. Zero matched rows means
	// ErrTodoNotFound.
	UpdateFields(ctx context.Context, id, ownerID uuid.UUID, updates TodoFieldUpdates) (*entity.Todo, error)

	// Delete removes the todo in a single ownership-filtered statement.
	// Deleting an id that is absent or foreign yields ErrTodoNotFound.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}
