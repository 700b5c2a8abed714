package ports

import (
	"context"

	"sibcargo/internal/core/domain/model/kernel"
	"sibcargo/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// by owner and lifecycle status.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByUser retrieves the newest orders of one user, newest first.
	// limit <= 0 means no limit.
	GetByUser(ctx context.Context, telegramID int64, limit int) ([]*order.Order, error)

	// GetAllInStatus retrieves all orders currently in the given status,
	// newest first. Used by manager tooling.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}
