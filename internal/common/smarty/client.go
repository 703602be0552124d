// Package smarty fetches parcel records from the Smarty US property enrichment API.
package smarty

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"cstore-prefill/internal/common/config"
	httpclient "cstore-prefill/internal/common/http"
	"cstore-prefill/internal/common/logger"
	"cstore-prefill/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid Smarty API credentials")
	ErrNotConfigured      = errors.New("smarty credentials not configured")
)

type Client struct {
	authID     string
	authToken  string
	baseURL    string
	httpClient *httpclient.Client
	logger     logger.Logger
}

func NewClient(cfg config.SmartyConfig, log logger.Logger) *Client {
	return &Client{
		authID:     cfg.AuthID,
		authToken:  cfg.AuthToken,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpclient.NewClient(config.GetDuration(cfg.Timeout)),
		logger:     log.WithFields(map[string]interface{}{"source": "smarty"}),
	}
}

// FetchParcel looks up the principal property record for a free-text address
// and attaches the financial dataset when the provider has one. A nil record
// with a nil error means the address did not resolve to a parcel.
func (c *Client) FetchParcel(ctx context.Context, address string) (*models.ParcelRecord, error) {
	if c.authID == "" || c.authToken == "" {
		return nil, ErrNotConfigured
	}

	q := url.Values{}
	q.Set("freeform", address)
	q.Set("auth-id", c.authID)
	q.Set("auth-token", c.authToken)
	q.Set("features", "financial")

	var principals []models.Principal
	err := c.httpClient.GetJSON(ctx, c.baseURL+"/lookup/search/property/principal?"+q.Encode(), &principals)
	if err != nil {
		var statusErr *httpclient.StatusError
		if errors.As(err, &statusErr) {
			switch statusErr.StatusCode {
			case http.StatusUnauthorized:
				return nil, ErrInvalidCredentials
			case http.StatusNotFound:
				c.logger.Info("no parcel for address", map[string]interface{}{"address": address})
				return nil, nil
			}
		}
		return nil, fmt.Errorf("smarty principal lookup: %w", err)
	}

	if len(principals) == 0 {
		c.logger.Info("no parcel for address", map[string]interface{}{"address": address})
		return nil, nil
	}

	principal := principals[0]
	if principal.Attributes == nil {
		principal.Attributes = models.Attributes{}
	}
	record := &models.ParcelRecord{
		Principal: principal,
		SmartyKey: principal.SmartyKey,
		Datasets:  map[string]models.Dataset{},
	}

	if record.SmartyKey != "" {
		if ds, ok := c.fetchFinancial(ctx, record.SmartyKey); ok {
			record.Datasets[models.DatasetFinancial] = ds
		}
	}

	return record, nil
}

// fetchFinancial never fails the parcel lookup; a missing dataset is logged and skipped.
func (c *Client) fetchFinancial(ctx context.Context, smartyKey string) (models.Dataset, bool) {
	q := url.Values{}
	q.Set("auth-id", c.authID)
	q.Set("auth-token", c.authToken)

	endpoint := fmt.Sprintf("%s/lookup/%s/property/financial?%s", c.baseURL, url.PathEscape(smartyKey), q.Encode())

	var raw json.RawMessage
	if err := c.httpClient.GetJSON(ctx, endpoint, &raw); err != nil {
		c.logger.Warn("financial dataset unavailable", map[string]interface{}{
			"smartyKey": smartyKey,
			"error":     err.Error(),
		})
		return models.Dataset{}, false
	}

	ds, err := decodeDataset(raw)
	if err != nil {
		c.logger.Warn("financial dataset unreadable", map[string]interface{}{
			"smartyKey": smartyKey,
			"error":     err.Error(),
		})
		return models.Dataset{}, false
	}
	return ds, ds.Attributes != nil
}

// decodeDataset accepts either a bare object or an array whose first element is used.
func decodeDataset(raw json.RawMessage) (models.Dataset, error) {
	var ds models.Dataset
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []models.Dataset
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return ds, err
		}
		if len(list) == 0 {
			return ds, nil
		}
		return list[0], nil
	}
	err := json.Unmarshal(trimmed, &ds)
	return ds, err
}
