// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity every token and every owned resource is bound to.
// The record is immutable after registration apart from bookkeeping fields.
type User struct {
	ID           uuid.UUID // The unique identifier for the user.
	Name         string    // The user's display name.
	Email        string    // The login identifier; unique across all users.
	PasswordHash string    // The bcrypt hash of the user's password. Never the plaintext.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification.
}
