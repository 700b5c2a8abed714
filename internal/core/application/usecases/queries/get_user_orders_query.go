// Package queries contains read-only operations in the CQRS architecture.
// Query handlers bypass the domain model and read projections straight from
// the database, so listing screens never pay aggregate reconstruction costs.
package queries

import (
	"errors"
	"fmt"
	"time"

	"sibcargo/internal/core/domain/model/kernel"
	"sibcargo/internal/core/domain/model/order"
	"sibcargo/internal/pkg/errs"
	"sibcargo/internal/pkg/guard"
)

var ErrGetUserOrdersQueryIsNotConstructed = errors.New(
	"GetUserOrdersQuery must be created via NewGetUserOrdersQuery constructor",
)

// DefaultUserOrdersLimit caps the order history screen in chat.
const DefaultUserOrdersLimit = 10

// GetUserOrdersQuery retrieves the newest orders of one user for the
// order history screen.
type GetUserOrdersQuery struct { //nolint:recvcheck //using for validation
	telegramID int64
	limit      int

	guard guard.ConstructorGuard
}

// NewGetUserOrdersQuery creates a query for a user's order history.
// limit <= 0 falls back to DefaultUserOrdersLimit.
func NewGetUserOrdersQuery(telegramID int64, limit int) (GetUserOrdersQuery, error) {
	q := GetUserOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if telegramID <= 0 {
		return GetUserOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("telegramID",
			fmt.Errorf("%d is not a valid telegram user id", telegramID))
	}
	q.telegramID = telegramID

	if limit <= 0 {
		limit = DefaultUserOrdersLimit
	}
	q.limit = limit

	return q, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetUserOrdersQueryIsNotConstructed if validation fails.
func (q GetUserOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUserOrdersQueryIsNotConstructed)
}

// TelegramID returns the owner's telegram id.
func (q GetUserOrdersQuery) TelegramID() int64 {
	return q.telegramID
}

// Limit returns the maximum number of orders to list.
func (q GetUserOrdersQuery) Limit() int {
	return q.limit
}

// OrderSummary is one row of an order listing: everything the history and
// manager screens render, nothing the domain needs.
type OrderSummary struct {
	ID             kernel.UUID
	UserID         int64
	PickupAt       time.Time
	PickupAddress  string
	DropoffAddress string
	WeightKg       float64
	DistanceKm     float64
	PriceRub       int64
	Status         order.Status
	Comment        string
	ManagerComment string
	CreatedAt      time.Time
}
