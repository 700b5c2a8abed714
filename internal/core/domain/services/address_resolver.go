package services

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"sibcargo/internal/core/domain/model/kernel"
	"sibcargo/internal/core/ports"
	"sibcargo/internal/pkg/errs"
)

// knownCities are the cities the service operates in, lowercase. A raw
// address mentioning any of them is taken as already city-qualified.
func knownCities() []string {
	return []string{"новосибирск", "барнаул", "томск", "кемерово", "красноярск", "омск"}
}

// AddressResolver turns free-text addresses typed in chat into coordinates.
//
// Users rarely type addresses a geocoding provider accepts on the first try,
// so the resolver builds a ladder of query variants from the raw text (adding
// the default city, the country, street prefixes, and a city-last permutation)
// and walks it until the provider returns a hit. Provider errors on a single
// variant are absorbed and the ladder continues; only a fully exhausted ladder
// counts as "not found".
type AddressResolver struct {
	geocoder    ports.Geocoder
	defaultCity string
	logger      *slog.Logger
}

// NewAddressResolver creates a resolver over the given geocoder.
// defaultCity is appended to raw addresses that name no known city.
func NewAddressResolver(geocoder ports.Geocoder, defaultCity string, logger *slog.Logger) (*AddressResolver, error) {
	if geocoder == nil {
		return nil, errs.NewValueIsRequiredError("geocoder")
	}
	if defaultCity == "" {
		return nil, errs.NewValueIsRequiredError("defaultCity")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AddressResolver{
		geocoder:    geocoder,
		defaultCity: defaultCity,
		logger:      logger,
	}, nil
}

// Resolve geocodes a raw chat address. Returns nil when no variant produced a
// hit; an unresolved address is an expected outcome, not an error.
func (r *AddressResolver) Resolve(ctx context.Context, rawAddress string) *kernel.GeoPoint {
	for _, query := range r.QueryVariants(rawAddress) {
		point, found, err := r.geocoder.Geocode(ctx, query)
		if err != nil {
			r.logger.Warn("geocoding variant failed",
				slog.String("query", query), slog.Any("error", err))
			continue
		}
		if found {
			r.logger.Info("address resolved",
				slog.String("raw", rawAddress),
				slog.String("query", query),
				slog.String("point", point.String()))
			return &point
		}
	}

	r.logger.Warn("address not found in any variant", slog.String("raw", rawAddress))
	return nil
}

// ReverseResolve turns coordinates into a human-readable address.
// Returns the empty string when the provider has nothing for the point.
func (r *AddressResolver) ReverseResolve(ctx context.Context, point kernel.GeoPoint) string {
	address, found, err := r.geocoder.ReverseGeocode(ctx, point)
	if err != nil {
		r.logger.Warn("reverse geocoding failed",
			slog.String("point", point.String()), slog.Any("error", err))
		return ""
	}
	if !found {
		return ""
	}
	return address
}

// QueryVariants builds the geocoding ladder for a raw address, most specific
// first. The order matters: the first hit wins.
func (r *AddressResolver) QueryVariants(rawAddress string) []string {
	raw := strings.TrimSpace(rawAddress)
	lower := strings.ToLower(raw)

	city := containedCity(lower)
	base := raw
	if city == "" {
		base = raw + " " + r.defaultCity
	}

	variants := []string{
		base + ", Россия",
		base + " Россия",
		"улица " + base + ", Россия",
		"улица " + base + " Россия",
		"ул. " + base + ", Россия",
		"ул. " + base + " Россия",
	}

	// "Новосибирск Сухарная 101" also tries "Сухарная 101, Новосибирск, Россия".
	if city != "" && strings.HasPrefix(lower, city) {
		street := strings.TrimSpace(strings.Trim(strings.TrimSpace(raw[len(city):]), ","))
		if street != "" {
			cityTitle := capitalize(city)
			variants = append(variants,
				street+", "+cityTitle+", Россия",
				"улица "+street+", "+cityTitle+", Россия",
				"ул. "+street+", "+cityTitle+", Россия",
			)
		}
	}

	return variants
}

func containedCity(lowerAddress string) string {
	for _, city := range knownCities() {
		if strings.Contains(lowerAddress, city) {
			return city
		}
	}
	return ""
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
