package googlemaps

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"cstore-prefill/internal/common/config"
	"cstore-prefill/internal/common/logger"
	"cstore-prefill/internal/models"
)

func newTestClient(t *testing.T, baseURL, key string) *Client {
	return NewClient(config.GoogleMapsConfig{
		BaseURL:      baseURL,
		APIKey:       key,
		NearbyRadius: 25,
		Timeout:      2000,
	}, logger.NewZapAdapter(zaptest.NewLogger(t)))
}

func placesServer(t *testing.T, primaryTypes string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		switch r.URL.Path {
		case "/maps/api/geocode/json":
			assert.Equal(t, "1234 Peachtree Rd, Atlanta, GA", r.URL.Query().Get("address"))
			_, _ = w.Write([]byte(`{"status":"OK","results":[{"place_id":"primary","geometry":{"location":{"lat":33.79,"lng":-84.38}}}]}`))
		case "/maps/api/place/details/json":
			assert.Contains(t, r.URL.Query().Get("fields"), "opening_hours")
			switch r.URL.Query().Get("place_id") {
			case "primary":
				_, _ = w.Write([]byte(`{"status":"OK","result":{"name":"Peachtree Center","types":` + primaryTypes + `}}`))
			case "qt":
				_, _ = w.Write([]byte(`{"status":"OK","result":{"name":"QuikTrip","formatted_phone_number":"(404) 555-0100","types":["gas_station","convenience_store"],"opening_hours":{"open_now":true,"periods":[{"open":{"day":0,"time":"0000"}}]}}}`))
			default:
				_, _ = w.Write([]byte(`{"status":"NOT_FOUND"}`))
			}
		case "/maps/api/place/nearbysearch/json":
			assert.Equal(t, "33.79,-84.38", r.URL.Query().Get("location"))
			assert.Equal(t, "25", r.URL.Query().Get("radius"))
			_, _ = w.Write([]byte(`{"status":"OK","results":[
				{"place_id":"primary","name":"Peachtree Center","types":["point_of_interest"],"geometry":{"location":{"lat":33.79,"lng":-84.38}}},
				{"place_id":"qt","name":"QuikTrip","types":["gas_station"],"geometry":{"location":{"lat":33.79003,"lng":-84.38002}}}
			]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
}

func TestFetchPlace_NearbyGasStation(t *testing.T) {
	server := placesServer(t, `["shopping_mall"]`)
	defer server.Close()

	record, err := newTestClient(t, server.URL, "test-key").FetchPlace(t.Context(), "1234 Peachtree Rd, Atlanta, GA")
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, models.PlaceSourceNearby, record.DataSource)
	assert.True(t, record.IsGasStation)
	assert.Equal(t, "qt", record.PlaceID)
	assert.Equal(t, "QuikTrip", record.Business.Name)
	assert.Equal(t, models.LatLng{Lat: 33.79, Lng: -84.38}, record.Location)
	assert.Len(t, record.AllBusinessesNearby, 2)
	require.NotNil(t, record.Business.OpeningHours)
	assert.True(t, *record.Business.OpeningHours.OpenNow)
}

func TestFetchPlace_PrimaryGasStation(t *testing.T) {
	server := placesServer(t, `["gas_station"]`)
	defer server.Close()

	record, err := newTestClient(t, server.URL, "test-key").FetchPlace(t.Context(), "1234 Peachtree Rd, Atlanta, GA")
	require.NoError(t, err)
	assert.Equal(t, models.PlaceSourcePrimary, record.DataSource)
	assert.Equal(t, "primary", record.PlaceID)
	assert.True(t, record.IsGasStation)
}

func TestFetchPlace_NoAPIKey(t *testing.T) {
	record, err := newTestClient(t, "http://unused", "").FetchPlace(t.Context(), "anything")
	assert.NoError(t, err)
	assert.Nil(t, record)
}

func TestFetchPlace_ZeroResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	}))
	defer server.Close()

	record, err := newTestClient(t, server.URL, "test-key").FetchPlace(t.Context(), "nowhere")
	assert.NoError(t, err)
	assert.Nil(t, record)
}

func TestFetchPlace_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	record, err := newTestClient(t, server.URL, "test-key").FetchPlace(t.Context(), "1234 Peachtree Rd")
	assert.Error(t, err)
	assert.Nil(t, record)
}
