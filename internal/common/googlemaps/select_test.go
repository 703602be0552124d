package googlemaps

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cstore-prefill/internal/models"
)

var point = models.LatLng{Lat: 33.7901, Lng: -84.3862}

func noLookup(t *testing.T) func(string) *models.PlaceDetails {
	return func(id string) *models.PlaceDetails {
		t.Errorf("unexpected details lookup for %s", id)
		return nil
	}
}

func TestSelect(t *testing.T) {
	shell := &models.PlaceDetails{Name: "Shell", Types: []string{"gas_station", "point_of_interest"}}
	plaza := &models.PlaceDetails{Name: "Peachtree Plaza", Types: []string{"shopping_mall"}}
	diner := &models.PlaceDetails{Name: "Diner", Types: []string{"restaurant"}}

	tests := []struct {
		name     string
		primary  *models.PlaceDetails
		nearby   []NearbyPlace
		lookup   func(t *testing.T) func(string) *models.PlaceDetails
		wantKind SelectionKind
		wantID   string
		wantName string
		wantGas  bool
		wantSrc  models.PlaceSource
	}{
		{
			name:     "primary is a gas station",
			primary:  shell,
			lookup:   noLookup,
			wantKind: Primary,
			wantID:   "primary-id",
			wantName: "Shell",
			wantGas:  true,
			wantSrc:  models.PlaceSourcePrimary,
		},
		{
			name:    "co-located convenience store replaces the plaza",
			primary: plaza,
			nearby: []NearbyPlace{
				{PlaceID: "far", Types: []string{"gas_station"}, Location: models.LatLng{Lat: 33.8, Lng: -84.3862}},
				{PlaceID: "qt", Types: []string{"convenience_store"}, Location: models.LatLng{Lat: 33.79012, Lng: -84.38625}},
			},
			lookup: func(t *testing.T) func(string) *models.PlaceDetails {
				return func(id string) *models.PlaceDetails {
					assert.Equal(t, "qt", id)
					return &models.PlaceDetails{Name: "QuikTrip", Types: []string{"convenience_store"}}
				}
			},
			wantKind: NearbyGasStation,
			wantID:   "qt",
			wantName: "QuikTrip",
			wantGas:  true,
			wantSrc:  models.PlaceSourceNearby,
		},
		{
			name:    "nearby details unavailable falls back",
			primary: diner,
			nearby: []NearbyPlace{
				{PlaceID: "qt", Types: []string{"gas_station"}, Location: point},
			},
			lookup: func(t *testing.T) func(string) *models.PlaceDetails {
				return func(string) *models.PlaceDetails { return nil }
			},
			wantKind: PrimaryUnverified,
			wantID:   "primary-id",
			wantName: "Diner",
			wantGas:  false,
			wantSrc:  models.PlaceSourcePrimary,
		},
		{
			name:    "non-fuel neighbours are ignored",
			primary: diner,
			nearby: []NearbyPlace{
				{PlaceID: "bank", Types: []string{"bank"}, Location: point},
			},
			lookup:   noLookup,
			wantKind: PrimaryUnverified,
			wantID:   "primary-id",
			wantName: "Diner",
			wantSrc:  models.PlaceSourcePrimary,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := Select(tt.primary, "primary-id", point, tt.nearby, tt.lookup(t))
			assert.Equal(t, tt.wantKind, sel.Kind)
			assert.Equal(t, tt.wantID, sel.PlaceID)
			assert.Equal(t, tt.wantName, sel.Details.Name)
			assert.Equal(t, tt.wantGas, sel.IsGasStation())
			assert.Equal(t, tt.wantSrc, sel.Source())
		})
	}
}

func TestSelect_NoPrimaryDetails(t *testing.T) {
	sel := Select(nil, "primary-id", point, nil, noLookup(t))
	assert.Equal(t, PrimaryUnverified, sel.Kind)
	assert.Nil(t, sel.Details)
}
