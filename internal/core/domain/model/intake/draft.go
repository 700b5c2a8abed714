package intake

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"sibcargo/internal/core/domain/model/order"
)

// FallbackDistanceKm is charged when one or both addresses could not be
// resolved to coordinates and the real distance is unknown.
const FallbackDistanceKm = 5.0

// Input validation errors. The chat layer maps these to user-facing replies,
// so they classify the problem rather than describe it.
var (
	ErrDateInPast       = errors.New("pickup date is in the past")
	ErrTimeSlotInvalid  = errors.New("time slot is not offered")
	ErrDateNotSet       = errors.New("pickup date is not set yet")
	ErrWeightNotANumber = errors.New("weight is not a number")
	ErrWeightTooSmall   = errors.New("weight must be greater than zero")
	ErrWeightTooLarge   = errors.New("weight exceeds the maximum")
	ErrDraftIncomplete  = errors.New("draft is missing required fields")
)

// timeSlots are the pickup hours offered to the user, 08:00 through 19:00.
func timeSlots() []string {
	slots := make([]string, 0, 12)
	for h := 8; h <= 19; h++ {
		slots = append(slots, time.Date(0, 1, 1, h, 0, 0, 0, time.UTC).Format("15:04"))
	}
	return slots
}

// TimeSlots returns the pickup time slots in presentation order.
func TimeSlots() []string {
	return timeSlots()
}

// Draft accumulates the answers of one intake dialog. It is a plain
// accumulator with per-field validation; it becomes an order.Order only at
// the confirm transition.
type Draft struct {
	pickupDate time.Time
	pickupTime string

	pickup  order.Waypoint
	dropoff order.Waypoint

	weightKg   float64
	distanceKm float64
	priceRub   int64

	hasWeight bool
	hasPrice  bool
}

// NewDraft returns an empty draft.
func NewDraft() *Draft {
	return &Draft{}
}

// SetDate records the pickup date. Dates before today (relative to now) are
// rejected; today itself is allowed.
func (d *Draft) SetDate(date time.Time, now time.Time) error {
	if dayOf(date).Before(dayOf(now)) {
		return ErrDateInPast
	}
	d.pickupDate = dayOf(date)
	return nil
}

// SetTimeSlot records the pickup time slot. The slot must be one of the
// offered hours and the date must already be set.
func (d *Draft) SetTimeSlot(slot string) error {
	if d.pickupDate.IsZero() {
		return ErrDateNotSet
	}
	if !isOfferedSlot(slot) {
		return ErrTimeSlotInvalid
	}
	d.pickupTime = slot
	return nil
}

// SetPickup records the pickup waypoint as resolved by the address resolver.
func (d *Draft) SetPickup(w order.Waypoint) {
	d.pickup = w
}

// SetDropoff records the drop-off waypoint as resolved by the address resolver.
func (d *Draft) SetDropoff(w order.Waypoint) {
	d.dropoff = w
}

// SetWeightFromText parses and records the cargo weight from raw user input.
// A decimal comma is accepted as a decimal point.
func (d *Draft) SetWeightFromText(text string) error {
	weight, err := ParseWeight(text)
	if err != nil {
		return err
	}
	d.weightKg = weight
	d.hasWeight = true
	return nil
}

// SetQuote records the computed distance and price for the summary.
func (d *Draft) SetQuote(distanceKm float64, priceRub int64) {
	d.distanceKm = distanceKm
	d.priceRub = priceRub
	d.hasPrice = true
}

// PickupAt merges the recorded date and time slot into a single timestamp in
// the given location. Returns an error while either part is missing.
func (d *Draft) PickupAt(loc *time.Location) (time.Time, error) {
	if d.pickupDate.IsZero() || d.pickupTime == "" {
		return time.Time{}, ErrDraftIncomplete
	}
	slot, err := time.Parse("15:04", d.pickupTime)
	if err != nil {
		return time.Time{}, ErrTimeSlotInvalid
	}
	return time.Date(
		d.pickupDate.Year(), d.pickupDate.Month(), d.pickupDate.Day(),
		slot.Hour(), slot.Minute(), 0, 0, loc,
	), nil
}

// PickupDate returns the recorded pickup date, zero if unset.
func (d *Draft) PickupDate() time.Time {
	return d.pickupDate
}

// PickupTime returns the recorded time slot, empty if unset.
func (d *Draft) PickupTime() string {
	return d.pickupTime
}

// Pickup returns the recorded pickup waypoint.
func (d *Draft) Pickup() order.Waypoint {
	return d.pickup
}

// Dropoff returns the recorded drop-off waypoint.
func (d *Draft) Dropoff() order.Waypoint {
	return d.dropoff
}

// WeightKg returns the recorded weight, zero if unset.
func (d *Draft) WeightKg() float64 {
	return d.weightKg
}

// DistanceKm returns the recorded distance, zero if unset.
func (d *Draft) DistanceKm() float64 {
	return d.distanceKm
}

// PriceRub returns the recorded price, zero if unset.
func (d *Draft) PriceRub() int64 {
	return d.priceRub
}

// DistanceIsApproximate reports whether the fallback distance was charged
// because coordinates were unresolved.
func (d *Draft) DistanceIsApproximate() bool {
	return d.pickup.Point == nil || d.dropoff.Point == nil
}

// IsComplete reports whether every answer needed to build an order is present.
func (d *Draft) IsComplete() bool {
	return !d.pickupDate.IsZero() &&
		d.pickupTime != "" &&
		d.pickup.Address != "" &&
		d.dropoff.Address != "" &&
		d.hasWeight &&
		d.hasPrice
}

// ParseWeight parses a cargo weight from raw user text. A decimal comma is
// accepted; the value must be in (0, 10000] kilograms.
func ParseWeight(text string) (float64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	weight, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, ErrWeightNotANumber
	}
	if weight <= 0 {
		return 0, ErrWeightTooSmall
	}
	if weight > order.MaxWeightKg {
		return 0, ErrWeightTooLarge
	}
	return weight, nil
}

func isOfferedSlot(slot string) bool {
	for _, s := range timeSlots() {
		if s == slot {
			return true
		}
	}
	return false
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
