package order

import (
	"errors"
	"fmt"
	"time"

	"sibcargo/internal/core/domain/model/kernel"
	"sibcargo/internal/pkg/errs"
)

// MaxWeightKg is the maximum cargo weight the system accepts.
const MaxWeightKg = 10000.0

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Waypoint is the pair of a free-text address and its optionally resolved
// coordinates. Coordinates stay nil when geocoding did not produce a result;
// pricing then falls back to the minimum distance.
type Waypoint struct {
	Address string
	Point   *kernel.GeoPoint
}

// Order represents a freight transportation order. It is the aggregate root
// created once at the intake confirm transition and mutated afterwards only by
// manager tooling through status transitions and explicit patches.
//
// Order invariants:
//   - Must have a valid unique identifier and an owning user id
//   - Pickup and drop-off addresses must be non-empty
//   - Weight must be positive and not exceed MaxWeightKg
//   - Status transitions follow the closed lifecycle graph
//   - Can only be created through NewOrder/RestoreOrder
type Order struct {
	id     kernel.UUID
	userID int64

	pickupAt time.Time
	pickup   Waypoint
	dropoff  Waypoint

	weightKg   float64
	distanceKm float64
	priceRub   int64

	status         Status
	comment        string
	managerComment string

	isConstructed bool
}

// NewOrder creates a Pending order from a completed intake draft.
// All parameters are validated; distance and price are recorded as computed by
// the intake flow (including its degraded-mode fallbacks) and are not
// recomputed here.
func NewOrder(
	id kernel.UUID,
	userID int64,
	pickupAt time.Time,
	pickup Waypoint,
	dropoff Waypoint,
	weightKg float64,
	distanceKm float64,
	priceRub int64,
) (*Order, error) {
	o := &Order{
		status:        StatusPending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setPickupAt(pickupAt),
		o.setPickup(pickup),
		o.setDropoff(dropoff),
		o.setWeightKg(weightKg),
		o.setDistanceKm(distanceKm),
		o.setPriceRub(priceRub),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence with an explicit status
// and comments. Used exclusively by repository implementations.
func RestoreOrder(
	id kernel.UUID,
	userID int64,
	pickupAt time.Time,
	pickup Waypoint,
	dropoff Waypoint,
	weightKg float64,
	distanceKm float64,
	priceRub int64,
	status Status,
	comment string,
	managerComment string,
) (*Order, error) {
	o, err := NewOrder(id, userID, pickupAt, pickup, dropoff, weightKg, distanceKm, priceRub)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	o.status = status
	o.comment = comment
	o.managerComment = managerComment
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// UserID returns the telegram id of the user owning the order.
func (o *Order) UserID() int64 {
	return o.userID
}

// PickupAt returns the requested pickup date and time.
func (o *Order) PickupAt() time.Time {
	return o.pickupAt
}

// Pickup returns the pickup waypoint.
func (o *Order) Pickup() Waypoint {
	return o.pickup
}

// Dropoff returns the drop-off waypoint.
func (o *Order) Dropoff() Waypoint {
	return o.dropoff
}

// WeightKg returns the cargo weight in kilograms.
func (o *Order) WeightKg() float64 {
	return o.weightKg
}

// DistanceKm returns the computed route distance in kilometres.
// May be the degraded fallback value when coordinates were unresolved.
func (o *Order) DistanceKm() float64 {
	return o.distanceKm
}

// PriceRub returns the quoted price in whole roubles.
func (o *Order) PriceRub() int64 {
	return o.priceRub
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Comment returns the customer's free-text comment.
func (o *Order) Comment() string {
	return o.comment
}

// ManagerComment returns the manager's free-text comment.
func (o *Order) ManagerComment() string {
	return o.managerComment
}

// ChangeStatus transitions the order to a new status, enforcing the lifecycle
// graph. An optional manager comment is recorded alongside the transition.
func (o *Order) ChangeStatus(target Status, managerComment string) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	if managerComment != "" {
		o.managerComment = managerComment
	}
	return nil
}

// Apply mutates the order field-by-field from an explicit partial-update
// patch. Absent (nil) fields are skipped; present fields are validated with
// the same rules as construction.
func (o *Order) Apply(patch Patch) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if patch.PickupAt != nil {
		if err := o.setPickupAt(*patch.PickupAt); err != nil {
			return err
		}
	}
	if patch.Pickup != nil {
		if err := o.setPickup(*patch.Pickup); err != nil {
			return err
		}
	}
	if patch.Dropoff != nil {
		if err := o.setDropoff(*patch.Dropoff); err != nil {
			return err
		}
	}
	if patch.WeightKg != nil {
		if err := o.setWeightKg(*patch.WeightKg); err != nil {
			return err
		}
	}
	if patch.DistanceKm != nil {
		if err := o.setDistanceKm(*patch.DistanceKm); err != nil {
			return err
		}
	}
	if patch.PriceRub != nil {
		if err := o.setPriceRub(*patch.PriceRub); err != nil {
			return err
		}
	}
	if patch.Comment != nil {
		o.comment = *patch.Comment
	}
	if patch.ManagerComment != nil {
		o.managerComment = *patch.ManagerComment
	}

	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID int64) error {
	if userID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("userID",
			fmt.Errorf("%d is not a valid telegram user id", userID))
	}
	o.userID = userID
	return nil
}

func (o *Order) setPickupAt(pickupAt time.Time) error {
	if pickupAt.IsZero() {
		return errs.NewValueIsRequiredError("pickupAt")
	}
	o.pickupAt = pickupAt
	return nil
}

func (o *Order) setPickup(pickup Waypoint) error {
	if err := validateWaypoint("pickup", pickup); err != nil {
		return err
	}
	o.pickup = pickup
	return nil
}

func (o *Order) setDropoff(dropoff Waypoint) error {
	if err := validateWaypoint("dropoff", dropoff); err != nil {
		return err
	}
	o.dropoff = dropoff
	return nil
}

func (o *Order) setWeightKg(weightKg float64) error {
	if weightKg <= 0 || weightKg > MaxWeightKg {
		return errs.NewValueIsOutOfRangeError("weightKg", weightKg, 0, MaxWeightKg)
	}
	o.weightKg = weightKg
	return nil
}

func (o *Order) setDistanceKm(distanceKm float64) error {
	if distanceKm < 0 {
		return errs.NewValueIsInvalidErrorWithCause("distanceKm",
			fmt.Errorf("%f is negative", distanceKm))
	}
	o.distanceKm = distanceKm
	return nil
}

func (o *Order) setPriceRub(priceRub int64) error {
	if priceRub < 0 {
		return errs.NewValueIsInvalidErrorWithCause("priceRub",
			fmt.Errorf("%d is negative", priceRub))
	}
	o.priceRub = priceRub
	return nil
}

func validateWaypoint(name string, w Waypoint) error {
	if w.Address == "" {
		return errs.NewValueIsRequiredError(name + " address")
	}
	if w.Point != nil {
		if err := w.Point.Validate(); err != nil {
			return err
		}
	}
	return nil
}
