package googlemaps

import (
	"math"

	"cstore-prefill/internal/models"
)

// SelectionKind says which tier picked the place surfaced for an address.
type SelectionKind int

const (
	// Primary: the geocoded place itself is a gas station or convenience store.
	Primary SelectionKind = iota
	// NearbyGasStation: a co-located fuel retailer replaced a non-fuel primary place.
	NearbyGasStation
	// PrimaryUnverified: nothing fuel-related found; the primary place is kept.
	PrimaryUnverified
)

func (k SelectionKind) String() string {
	switch k {
	case Primary:
		return "primary"
	case NearbyGasStation:
		return "nearby_gas_station"
	default:
		return "primary_unverified"
	}
}

// coLocatedTolerance is the max lat/lng delta, in degrees, for a nearby
// result to count as the same point.
const coLocatedTolerance = 1e-4

// Selection is the outcome of choosing among co-located places.
type Selection struct {
	Kind    SelectionKind
	PlaceID string
	Details *models.PlaceDetails
}

// Source maps the selection onto the record's dataSource tag.
func (s Selection) Source() models.PlaceSource {
	if s.Kind == NearbyGasStation {
		return models.PlaceSourceNearby
	}
	return models.PlaceSourcePrimary
}

// IsGasStation is only true for the two fuel tiers.
func (s Selection) IsGasStation() bool {
	return s.Kind != PrimaryUnverified
}

// NearbyPlace is one nearby search hit.
type NearbyPlace struct {
	PlaceID  string
	Name     string
	Types    []string
	Location models.LatLng
}

func (n NearbyPlace) isFuelRetailer() bool {
	d := models.PlaceDetails{Types: n.Types}
	return d.IsFuelRetailer()
}

func coLocated(a, b models.LatLng) bool {
	return math.Abs(a.Lat-b.Lat) < coLocatedTolerance && math.Abs(a.Lng-b.Lng) < coLocatedTolerance
}

// Select applies the three tiers in order. lookup fetches details for a
// nearby place id and returns nil when they are unavailable, in which case
// selection falls through to PrimaryUnverified.
func Select(
	primary *models.PlaceDetails,
	primaryID string,
	point models.LatLng,
	nearby []NearbyPlace,
	lookup func(placeID string) *models.PlaceDetails,
) Selection {
	if primary.IsFuelRetailer() {
		return Selection{Kind: Primary, PlaceID: primaryID, Details: primary}
	}

	for _, candidate := range nearby {
		if !candidate.isFuelRetailer() || !coLocated(candidate.Location, point) {
			continue
		}
		if details := lookup(candidate.PlaceID); details != nil {
			return Selection{Kind: NearbyGasStation, PlaceID: candidate.PlaceID, Details: details}
		}
		break
	}

	return Selection{Kind: PrimaryUnverified, PlaceID: primaryID, Details: primary}
}
