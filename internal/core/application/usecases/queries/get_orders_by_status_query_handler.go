package queries

import (
	"context"
	"database/sql"

	"sibcargo/internal/core/domain/model/kernel"
	"sibcargo/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersByStatusQueryHandler reads all orders in one status from the
// database for the manager screens.
type GetOrdersByStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersByStatusQueryHandler creates a handler for status-filtered
// order queries. Requires a GORM database connection for query execution.
func NewGetOrdersByStatusQueryHandler(db *gorm.DB) GetOrdersByStatusQueryHandler {
	return GetOrdersByStatusQueryHandler{db: db}
}

// Handle executes the query and returns matching orders, newest first.
func (h GetOrdersByStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByStatusQuery,
) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			user_id,
			pickup_at,
			pickup_address,
			dropoff_address,
			weight_kg,
			distance_km,
			price_rub,
			status,
			comment,
			manager_comment,
			created_at
		FROM orders
		WHERE status = ?
		ORDER BY created_at DESC
	`, query.Status().Name()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderSummaries(rows)
}

func scanOrderSummaries(rows *sql.Rows) ([]OrderSummary, error) {
	summaries := make([]OrderSummary, 0)

	for rows.Next() {
		var summary OrderSummary
		var id uuid.UUID
		var statusName string

		if err := rows.Scan(
			&id,
			&summary.UserID,
			&summary.PickupAt,
			&summary.PickupAddress,
			&summary.DropoffAddress,
			&summary.WeightKg,
			&summary.DistanceKm,
			&summary.PriceRub,
			&statusName,
			&summary.Comment,
			&summary.ManagerComment,
			&summary.CreatedAt,
		); err != nil {
			return nil, err
		}

		orderID, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		summary.ID = orderID

		status, err := order.StatusFromName(statusName)
		if err != nil {
			return nil, err
		}
		summary.Status = status

		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
