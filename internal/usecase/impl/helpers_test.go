package impl

import (
	"context"
	"io"
	"log/slog"

	"tasknest/internal/domain/repository"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubTxManager runs the transactional callback against a fixed factory.
// Commit/rollback behavior is not simulated; the callback's error passes through.
type stubTxManager struct {
	factory repository.RepositoryFactory
}

func (s *stubTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(s.factory)
}
