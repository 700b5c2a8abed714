package services

import (
	"math"

	"sibcargo/internal/pkg/errs"
)

// Tariff is the linear pricing model for freight orders:
// price = base + distance * perKm + weight * perKg, rounded to whole roubles.
//
// The rates are fixed at construction; changing the tariff means building a
// new instance, so every quote within one process run is consistent.
type Tariff struct {
	basePriceRub  float64
	pricePerKmRub float64
	pricePerKgRub float64
}

// NewTariff creates a tariff from per-unit rates. All rates must be
// non-negative; a zero rate disables that component of the price.
func NewTariff(basePriceRub, pricePerKmRub, pricePerKgRub float64) (Tariff, error) {
	for _, rate := range []struct {
		name  string
		value float64
	}{
		{"basePriceRub", basePriceRub},
		{"pricePerKmRub", pricePerKmRub},
		{"pricePerKgRub", pricePerKgRub},
	} {
		if rate.value < 0 || math.IsNaN(rate.value) || math.IsInf(rate.value, 0) {
			return Tariff{}, errs.NewValueIsOutOfRangeError(rate.name, rate.value, 0, math.MaxFloat64)
		}
	}

	return Tariff{
		basePriceRub:  basePriceRub,
		pricePerKmRub: pricePerKmRub,
		pricePerKgRub: pricePerKgRub,
	}, nil
}

// Quote computes the price in whole roubles for the given route distance and
// cargo weight. Rounding is half away from zero, matching how the price is
// shown to the user.
func (t Tariff) Quote(distanceKm, weightKg float64) int64 {
	raw := t.basePriceRub + distanceKm*t.pricePerKmRub + weightKg*t.pricePerKgRub
	return int64(math.Round(raw))
}

// BasePriceRub returns the fixed component of the tariff.
func (t Tariff) BasePriceRub() float64 {
	return t.basePriceRub
}

// PricePerKmRub returns the per-kilometre rate.
func (t Tariff) PricePerKmRub() float64 {
	return t.pricePerKmRub
}

// PricePerKgRub returns the per-kilogram rate.
func (t Tariff) PricePerKgRub() float64 {
	return t.pricePerKgRub
}
