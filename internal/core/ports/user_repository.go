package ports

import (
	"context"

	"sibcargo/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for users.
// Users are identified by their telegram id.
type UserRepository interface {
	// Add persists a new user.
	Add(ctx context.Context, aggregate *user.User) error

	// Update persists changes to an existing user.
	Update(ctx context.Context, aggregate *user.User) error

	// Get retrieves a user by telegram id.
	// Returns errs.ObjectNotFoundError when the user is unknown.
	Get(ctx context.Context, telegramID int64) (*user.User, error)
}
