package commands

import (
	"errors"
	"fmt"
	"time"

	"sibcargo/internal/core/domain/model/kernel"
	"sibcargo/internal/core/domain/model/order"
	"sibcargo/internal/pkg/errs"
	"sibcargo/internal/pkg/guard"
)

var ErrConfirmOrderCommandIsNotConstructed = errors.New(
	"ConfirmOrderCommand must be created via NewConfirmOrderCommand constructor",
)

// ConfirmOrderCommand carries a completed intake draft to persistence.
// It is built only at the confirm transition, when every answer of the
// dialog has already passed its per-field validation.
type ConfirmOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	userID     int64
	pickupAt   time.Time
	pickup     order.Waypoint
	dropoff    order.Waypoint
	weightKg   float64
	distanceKm float64
	priceRub   int64
	comment    string

	guard guard.ConstructorGuard
}

// NewConfirmOrderCommand creates a command from a completed intake draft.
// Validation mirrors the Order aggregate so a command that constructs is a
// command that persists.
func NewConfirmOrderCommand(
	orderID kernel.UUID,
	userID int64,
	pickupAt time.Time,
	pickup order.Waypoint,
	dropoff order.Waypoint,
	weightKg float64,
	distanceKm float64,
	priceRub int64,
	comment string,
) (ConfirmOrderCommand, error) {
	cmd := ConfirmOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setUserID(userID),
		cmd.setPickupAt(pickupAt),
		cmd.setPickup(pickup),
		cmd.setDropoff(dropoff),
		cmd.setWeightKg(weightKg),
		cmd.setDistanceKm(distanceKm),
		cmd.setPriceRub(priceRub),
	); err != nil {
		return ConfirmOrderCommand{}, err
	}

	cmd.comment = comment
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrConfirmOrderCommandIsNotConstructed if validation fails.
func (c ConfirmOrderCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOrderCommandIsNotConstructed)
}

// OrderID returns the identifier assigned to the new order.
func (c ConfirmOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the telegram id of the ordering user.
func (c ConfirmOrderCommand) UserID() int64 {
	return c.userID
}

// PickupAt returns the requested pickup date and time.
func (c ConfirmOrderCommand) PickupAt() time.Time {
	return c.pickupAt
}

// Pickup returns the pickup waypoint.
func (c ConfirmOrderCommand) Pickup() order.Waypoint {
	return c.pickup
}

// Dropoff returns the drop-off waypoint.
func (c ConfirmOrderCommand) Dropoff() order.Waypoint {
	return c.dropoff
}

// WeightKg returns the cargo weight in kilograms.
func (c ConfirmOrderCommand) WeightKg() float64 {
	return c.weightKg
}

// DistanceKm returns the route distance in kilometres.
func (c ConfirmOrderCommand) DistanceKm() float64 {
	return c.distanceKm
}

// PriceRub returns the quoted price in whole roubles.
func (c ConfirmOrderCommand) PriceRub() int64 {
	return c.priceRub
}

// Comment returns the customer's free-text comment, possibly empty.
func (c ConfirmOrderCommand) Comment() string {
	return c.comment
}

func (c *ConfirmOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ConfirmOrderCommand) setUserID(userID int64) error {
	if userID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("userID",
			fmt.Errorf("%d is not a valid telegram user id", userID))
	}

	c.userID = userID
	return nil
}

func (c *ConfirmOrderCommand) setPickupAt(pickupAt time.Time) error {
	if pickupAt.IsZero() {
		return errs.NewValueIsRequiredError("pickupAt")
	}

	c.pickupAt = pickupAt
	return nil
}

func (c *ConfirmOrderCommand) setPickup(pickup order.Waypoint) error {
	if pickup.Address == "" {
		return errs.NewValueIsRequiredError("pickup address")
	}

	c.pickup = pickup
	return nil
}

func (c *ConfirmOrderCommand) setDropoff(dropoff order.Waypoint) error {
	if dropoff.Address == "" {
		return errs.NewValueIsRequiredError("dropoff address")
	}

	c.dropoff = dropoff
	return nil
}

func (c *ConfirmOrderCommand) setWeightKg(weightKg float64) error {
	if weightKg <= 0 || weightKg > order.MaxWeightKg {
		return errs.NewValueIsOutOfRangeError("weightKg", weightKg, 0, order.MaxWeightKg)
	}

	c.weightKg = weightKg
	return nil
}

func (c *ConfirmOrderCommand) setDistanceKm(distanceKm float64) error {
	if distanceKm < 0 {
		return errs.NewValueIsInvalidErrorWithCause("distanceKm",
			fmt.Errorf("%f is negative", distanceKm))
	}

	c.distanceKm = distanceKm
	return nil
}

func (c *ConfirmOrderCommand) setPriceRub(priceRub int64) error {
	if priceRub < 0 {
		return errs.NewValueIsInvalidErrorWithCause("priceRub",
			fmt.Errorf("%d is negative", priceRub))
	}

	c.priceRub = priceRub
	return nil
}
