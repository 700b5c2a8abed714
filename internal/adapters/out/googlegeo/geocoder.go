// Package googlegeo adapts the Google Maps Geocoding API to the core's
// Geocoder port.
package googlegeo

import (
	"context"
	"fmt"
	"time"

	"sibcargo/internal/core/domain/model/kernel"
	"sibcargo/internal/pkg/errs"

	"googlemaps.github.io/maps"
)

// requestTimeout bounds every provider call so a slow geocoder cannot stall
// the conversation.
const requestTimeout = 10 * time.Second

// Geocoder resolves addresses through the Google Maps Geocoding API.
// Results are requested in Russian; queries already carry the country suffix
// built by the address resolver.
type Geocoder struct {
	client *maps.Client
}

// NewGeocoder creates a geocoder backed by the Google Maps client.
func NewGeocoder(apiKey string) (*Geocoder, error) {
	if apiKey == "" {
		return nil, errs.NewValueIsRequiredError("apiKey")
	}

	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}

	return &Geocoder{client: client}, nil
}

// Geocode resolves one exact query string to coordinates.
func (g *Geocoder) Geocode(ctx context.Context, query string) (kernel.GeoPoint, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address:  query,
		Language: "ru",
		Region:   "ru",
	})
	if err != nil {
		return kernel.GeoPoint{}, false, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return kernel.GeoPoint{}, false, nil
	}

	location := results[0].Geometry.Location
	point, err := kernel.NewGeoPoint(location.Lat, location.Lng)
	if err != nil {
		return kernel.GeoPoint{}, false, fmt.Errorf("geocoding returned invalid coordinates: %w", err)
	}

	return point, true, nil
}

// ReverseGeocode resolves coordinates to a human-readable address.
func (g *Geocoder) ReverseGeocode(ctx context.Context, point kernel.GeoPoint) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	results, err := g.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{
			Lat: point.Latitude(),
			Lng: point.Longitude(),
		},
		Language: "ru",
	})
	if err != nil {
		return "", false, fmt.Errorf("reverse geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return "", false, nil
	}

	return results[0].FormattedAddress, true, nil
}
