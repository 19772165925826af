package entity

import (
	"time"

	"github.com/google/uuid"
)

// Todo is an owned resource. The owning user is stamped at creation and is
// immutable; every query against todos is filtered by it.
type Todo struct {
	ID          uuid.UUID // The unique identifier for the todo item.
	UserID      uuid.UUID // The owning user. Set once at creation.
	Name        string    // Short title of the item.
	Description string    // Free-form detail text.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
