package smarty

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"cstore-prefill/internal/common/config"
	"cstore-prefill/internal/common/logger"
	"cstore-prefill/internal/models"
)

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

func newTestClient(t *testing.T, baseURL string) *Client {
	return NewClient(config.SmartyConfig{
		BaseURL:   baseURL,
		AuthID:    "id-123",
		AuthToken: "token-456",
		Timeout:   2000,
	}, createTestLogger(t))
}

const principalBody = `[{
	"smarty_key": "1962995076",
	"data_set_name": "property",
	"matched_address": {"street": "1234 PEACHTREE RD NE", "city": "ATLANTA", "state": "GA", "zipcode": "30309"},
	"attributes": {"building_sqft": "2400", "deed_owner_full_name": "PEACH FUEL LLC", "year_built": 1998}
}]`

func TestFetchParcel_PrincipalAndFinancial(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "id-123", r.URL.Query().Get("auth-id"))
		assert.Equal(t, "token-456", r.URL.Query().Get("auth-token"))

		switch {
		case r.URL.Path == "/lookup/search/property/principal":
			assert.Equal(t, "1234 Peachtree Rd, Atlanta, GA", r.URL.Query().Get("freeform"))
			assert.Equal(t, "financial", r.URL.Query().Get("features"))
			_, _ = w.Write([]byte(principalBody))
		case r.URL.Path == "/lookup/1962995076/property/financial":
			_, _ = w.Write([]byte(`[{"smarty_key": "1962995076", "attributes": {"financial_history": [{"lender_name": "FIRST BANK"}]}}]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	record, err := newTestClient(t, server.URL).FetchParcel(t.Context(), "1234 Peachtree Rd, Atlanta, GA")
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, "1962995076", record.SmartyKey)
	assert.Equal(t, "1234 PEACHTREE RD NE", record.Principal.MatchedAddress.Street)
	assert.Equal(t, "PEACH FUEL LLC", record.Attrs().String("deed_owner_full_name"))

	sqft, ok := record.Attrs().Float("building_sqft")
	assert.True(t, ok)
	assert.Equal(t, 2400.0, sqft)
	assert.Equal(t, "1998", record.Attrs().String("year_built"))

	fin, ok := record.DatasetAttrs(models.DatasetFinancial)
	require.True(t, ok)
	history := fin.Objects("financial_history")
	require.Len(t, history, 1)
	assert.Equal(t, "FIRST BANK", history[0].String("lender_name"))
}

func TestFetchParcel_FinancialObjectBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/financial") {
			_, _ = w.Write([]byte(`{"attributes": {"financial_history": []}}`))
			return
		}
		_, _ = w.Write([]byte(principalBody))
	}))
	defer server.Close()

	record, err := newTestClient(t, server.URL).FetchParcel(t.Context(), "1234 Peachtree Rd")
	require.NoError(t, err)
	_, ok := record.DatasetAttrs(models.DatasetFinancial)
	assert.True(t, ok)
}

func TestFetchParcel_FinancialFailureIsNotFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/financial") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(principalBody))
	}))
	defer server.Close()

	record, err := newTestClient(t, server.URL).FetchParcel(t.Context(), "1234 Peachtree Rd")
	require.NoError(t, err)
	require.NotNil(t, record)
	_, ok := record.DatasetAttrs(models.DatasetFinancial)
	assert.False(t, ok)
}

func TestFetchParcel_NotFound(t *testing.T) {
	tests := []struct {
		name    string
		respond func(w http.ResponseWriter)
	}{
		{
			name: "empty result",
			respond: func(w http.ResponseWriter) {
				_, _ = w.Write([]byte(`[]`))
			},
		},
		{
			name: "status not found",
			respond: func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.respond(w)
			}))
			defer server.Close()

			record, err := newTestClient(t, server.URL).FetchParcel(t.Context(), "nowhere")
			assert.NoError(t, err)
			assert.Nil(t, record)
		})
	}
}

func TestFetchParcel_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: ErrInvalidCredentials},
		{name: "server error", status: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			record, err := newTestClient(t, server.URL).FetchParcel(t.Context(), "1234 Peachtree Rd")
			require.Error(t, err)
			assert.Nil(t, record)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestFetchParcel_MissingCredentials(t *testing.T) {
	client := NewClient(config.SmartyConfig{BaseURL: "http://unused"}, createTestLogger(t))
	_, err := client.FetchParcel(t.Context(), "1234 Peachtree Rd")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
