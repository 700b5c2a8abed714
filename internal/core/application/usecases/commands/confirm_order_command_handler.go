package commands

import (
	"context"

	"sibcargo/internal/core/domain/model/order"
)

// ConfirmOrderCommandHandler persists a confirmed intake draft as a Pending
// order. The owning user must already be registered; its existence is checked
// inside the same transaction as the insert.
type ConfirmOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewConfirmOrderCommandHandler creates a handler for order confirmation.
// Requires a UoWFactory since the handler touches both users and orders.
func NewConfirmOrderCommandHandler(uowFactory UoWFactory) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the confirmation command and returns the created order.
// On any failure nothing is persisted and the caller keeps its dialog state,
// so the user can simply confirm again.
func (h *ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.UserRepository().Get(ctx, cmd.UserID()); err != nil {
		return nil, err
	}

	created, err := order.NewOrder(
		cmd.OrderID(),
		cmd.UserID(),
		cmd.PickupAt(),
		cmd.Pickup(),
		cmd.Dropoff(),
		cmd.WeightKg(),
		cmd.DistanceKm(),
		cmd.PriceRub(),
	)
	if err != nil {
		return nil, err
	}

	if comment := cmd.Comment(); comment != "" {
		if err = created.Apply(order.Patch{Comment: &comment}); err != nil {
			return nil, err
		}
	}

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
