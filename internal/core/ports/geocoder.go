package ports

import (
	"context"

	"sibcargo/internal/core/domain/model/kernel"
)

// Geocoder resolves free-text address queries to coordinates and back.
// Implementations talk to an external geocoding provider; the address
// resolver service drives the retry ladder on top of this single-shot
// contract.
type Geocoder interface {
	// Geocode resolves one exact query string to coordinates.
	// found is false when the provider knows nothing for the query;
	// err is reserved for transport and provider failures.
	Geocode(ctx context.Context, query string) (point kernel.GeoPoint, found bool, err error)

	// ReverseGeocode resolves coordinates to a human-readable address.
	// found is false when the provider has no address for the point.
	ReverseGeocode(ctx context.Context, point kernel.GeoPoint) (address string, found bool, err error)
}
