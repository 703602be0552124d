// Package googlemaps resolves the business operating at an address through
// the Google Geocoding and Places APIs.
package googlemaps

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"cstore-prefill/internal/common/config"
	httpclient "cstore-prefill/internal/common/http"
	"cstore-prefill/internal/common/logger"
	"cstore-prefill/internal/models"
)

const statusOK = "OK"

// detailFields is the field mask sent with every place details request.
var detailFields = strings.Join([]string{
	"name",
	"formatted_phone_number",
	"opening_hours",
	"types",
	"business_status",
	"rating",
	"user_ratings_total",
	"website",
	"editorial_summary",
}, ",")

type Client struct {
	apiKey     string
	baseURL    string
	radius     int
	httpClient *httpclient.Client
	logger     logger.Logger
}

func NewClient(cfg config.GoogleMapsConfig, log logger.Logger) *Client {
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		radius:     cfg.NearbyRadius,
		httpClient: httpclient.NewClient(config.GetDuration(cfg.Timeout)),
		logger:     log.WithFields(map[string]interface{}{"source": "google_maps"}),
	}
}

type geometry struct {
	Location models.LatLng `json:"location"`
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID  string   `json:"place_id"`
		Geometry geometry `json:"geometry"`
	} `json:"results"`
}

type detailsResponse struct {
	Status string              `json:"status"`
	Result models.PlaceDetails `json:"result"`
}

type nearbyResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID  string   `json:"place_id"`
		Name     string   `json:"name"`
		Types    []string `json:"types"`
		Geometry geometry `json:"geometry"`
	} `json:"results"`
}

// FetchPlace returns the business presence for an address. It returns
// (nil, nil) when no API key is configured or the address does not geocode.
func (c *Client) FetchPlace(ctx context.Context, address string) (*models.PlaceRecord, error) {
	if c.apiKey == "" {
		c.logger.Warn("google maps api key not configured", nil)
		return nil, nil
	}

	point, primaryID, ok, err := c.geocode(ctx, address)
	if err != nil || !ok {
		return nil, err
	}

	primary, err := c.details(ctx, primaryID)
	if err != nil {
		return nil, err
	}

	nearby, err := c.nearby(ctx, point)
	if err != nil {
		return nil, err
	}

	sel := Select(primary, primaryID, point, nearby, func(placeID string) *models.PlaceDetails {
		d, err := c.details(ctx, placeID)
		if err != nil {
			c.logger.Warn("nearby place details failed", map[string]interface{}{
				"placeId": placeID,
				"error":   err.Error(),
			})
			return nil
		}
		return d
	})

	c.logger.Debug("place selected", map[string]interface{}{
		"tier":    sel.Kind.String(),
		"placeId": sel.PlaceID,
	})

	all := make([]models.NearbyBusiness, 0, len(nearby))
	for _, n := range nearby {
		all = append(all, models.NearbyBusiness{Name: n.Name, Types: n.Types, PlaceID: n.PlaceID})
	}

	return &models.PlaceRecord{
		Location:            point,
		PlaceID:             sel.PlaceID,
		Business:            sel.Details,
		IsGasStation:        sel.IsGasStation(),
		DataSource:          sel.Source(),
		AllBusinessesNearby: all,
	}, nil
}

func (c *Client) geocode(ctx context.Context, address string) (models.LatLng, string, bool, error) {
	q := url.Values{}
	q.Set("address", address)
	q.Set("key", c.apiKey)

	var resp geocodeResponse
	if err := c.httpClient.GetJSON(ctx, c.baseURL+"/maps/api/geocode/json?"+q.Encode(), &resp); err != nil {
		return models.LatLng{}, "", false, fmt.Errorf("geocode: %w", err)
	}
	if resp.Status != statusOK || len(resp.Results) == 0 {
		c.logger.Info("address did not geocode", map[string]interface{}{"status": resp.Status})
		return models.LatLng{}, "", false, nil
	}

	first := resp.Results[0]
	return first.Geometry.Location, first.PlaceID, true, nil
}

// details returns nil without error when the provider has nothing for the id.
func (c *Client) details(ctx context.Context, placeID string) (*models.PlaceDetails, error) {
	if placeID == "" {
		return nil, nil
	}

	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", detailFields)
	q.Set("key", c.apiKey)

	var resp detailsResponse
	if err := c.httpClient.GetJSON(ctx, c.baseURL+"/maps/api/place/details/json?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("place details: %w", err)
	}
	if resp.Status != statusOK {
		return nil, nil
	}
	return &resp.Result, nil
}

func (c *Client) nearby(ctx context.Context, point models.LatLng) ([]NearbyPlace, error) {
	q := url.Values{}
	q.Set("location", strconv.FormatFloat(point.Lat, 'f', -1, 64)+","+strconv.FormatFloat(point.Lng, 'f', -1, 64))
	q.Set("radius", strconv.Itoa(c.radius))
	q.Set("key", c.apiKey)

	var resp nearbyResponse
	if err := c.httpClient.GetJSON(ctx, c.baseURL+"/maps/api/place/nearbysearch/json?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("nearby search: %w", err)
	}

	out := make([]NearbyPlace, 0, len(resp.Results))
	for _, r := range resp.Results {
		out = append(out, NearbyPlace{
			PlaceID:  r.PlaceID,
			Name:     r.Name,
			Types:    r.Types,
			Location: r.Geometry.Location,
		})
	}
	return out, nil
}
