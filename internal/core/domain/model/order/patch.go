package order

import "time"

// Patch is an explicit partial update for an order. Nil fields are left
// untouched by Apply. Status is deliberately excluded: lifecycle changes go
// through ChangeStatus so the transition graph is always enforced.
type Patch struct {
	PickupAt       *time.Time
	Pickup         *Waypoint
	Dropoff        *Waypoint
	WeightKg       *float64
	DistanceKm     *float64
	PriceRub       *int64
	Comment        *string
	ManagerComment *string
}

// IsEmpty reports whether the patch carries no fields at all.
func (p Patch) IsEmpty() bool {
	return p.PickupAt == nil &&
		p.Pickup == nil &&
		p.Dropoff == nil &&
		p.WeightKg == nil &&
		p.DistanceKm == nil &&
		p.PriceRub == nil &&
		p.Comment == nil &&
		p.ManagerComment == nil
}
