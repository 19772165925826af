// Package delivery defines the contract every transport frontend fulfills.
package delivery

import "context"

// Delivery is a serving surface of the application. Each implementation blocks
// in Serve until the listener fails or the process shuts down.
type Delivery interface {
	Serve(ctx context.Context) error
}
