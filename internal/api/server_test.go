package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	apperrors "cstore-prefill/internal/common/errors"
	"cstore-prefill/internal/common/logger"
	"cstore-prefill/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

type fakeReconciler struct {
	result *models.ReconcileResult
	err    error
	calls  int
}

func (f *fakeReconciler) Reconcile(ctx context.Context, address string) (*models.ReconcileResult, error) {
	f.calls++
	return f.result, f.err
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// ==========================
// POST /api/prefill
// ==========================

func TestHandlePrefill(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		reconciler     *fakeReconciler
		expectedStatus int
		expectCall     bool
		validateOutput func(t *testing.T, body map[string]interface{})
	}{
		{
			name: "success",
			body: `{"address": "1234 Peachtree Rd, Atlanta, GA"}`,
			reconciler: &fakeReconciler{result: &models.ReconcileResult{
				Success:     true,
				Data:        models.FormData{"dba": "Peach Fuel"},
				Ownership:   models.UnknownOwnership(),
				Message:     "Auto-filled 1 fields from property data",
				FieldsCount: 1,
			}},
			expectedStatus: http.StatusOK,
			expectCall:     true,
			validateOutput: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, true, body["success"])
				assert.Equal(t, "Peach Fuel", body["data"].(map[string]interface{})["dba"])
				assert.EqualValues(t, 1, body["fieldsCount"])
				assert.Nil(t, body["registry"])
			},
		},
		{
			name: "address not found",
			body: `{"address": "nowhere"}`,
			reconciler: &fakeReconciler{result: &models.ReconcileResult{
				Data:      models.FormData{},
				Ownership: models.UnknownOwnership(),
				Message:   models.MessageAddressNotFound,
			}},
			expectedStatus: http.StatusOK,
			expectCall:     true,
			validateOutput: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, false, body["success"])
				assert.Equal(t, map[string]interface{}{}, body["data"])
				assert.Equal(t, "Address not found or invalid", body["message"])
			},
		},
		{
			name:           "missing address",
			body:           `{}`,
			reconciler:     &fakeReconciler{},
			expectedStatus: http.StatusBadRequest,
			validateOutput: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, false, body["success"])
				assert.Equal(t, "Address is required", body["message"])
			},
		},
		{
			name:           "blank address",
			body:           `{"address": "   "}`,
			reconciler:     &fakeReconciler{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "non-string address",
			body:           `{"address": 42}`,
			reconciler:     &fakeReconciler{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed body",
			body:           `{"address":`,
			reconciler:     &fakeReconciler{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "parcel provider failure",
			body:           `{"address": "1234 Peachtree Rd"}`,
			reconciler:     &fakeReconciler{err: apperrors.NewParcelProviderError(errors.New("status 502"))},
			expectedStatus: http.StatusOK,
			expectCall:     true,
			validateOutput: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, false, body["success"])
				assert.Equal(t, map[string]interface{}{}, body["data"])
				assert.Equal(t, "Error fetching property data: status 502", body["message"])
			},
		},
		{
			name:           "unexpected failure",
			body:           `{"address": "1234 Peachtree Rd"}`,
			reconciler:     &fakeReconciler{err: errors.New("boom")},
			expectedStatus: http.StatusInternalServerError,
			expectCall:     true,
			validateOutput: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "Internal server error", body["message"])
				assert.Equal(t, "boom", body["error"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := NewServer(tt.reconciler, createTestLogger(t))
			rec := doRequest(t, srv, http.MethodPost, "/api/prefill", tt.body)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			if tt.expectCall {
				assert.Equal(t, 1, tt.reconciler.calls)
			} else {
				assert.Zero(t, tt.reconciler.calls)
			}
			if tt.validateOutput != nil {
				tt.validateOutput(t, decodeBody(t, rec))
			}
		})
	}
}

func TestHandlePrefill_MethodNotAllowed(t *testing.T) {
	srv := NewServer(&fakeReconciler{}, createTestLogger(t))
	rec := doRequest(t, srv, http.MethodGet, "/api/prefill", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// ==========================
// Request IDs
// ==========================

func TestRequestID(t *testing.T) {
	srv := NewServer(&fakeReconciler{}, createTestLogger(t))

	rec := doRequest(t, srv, http.MethodGet, "/health", "")
	_, err := uuid.Parse(rec.Header().Get("X-Request-ID"))
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "caller-id")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "caller-id", rec.Header().Get("X-Request-ID"))
}

// ==========================
// Health & Readiness
// ==========================

func TestHandleHealth(t *testing.T) {
	srv := NewServer(&fakeReconciler{}, createTestLogger(t))
	rec := doRequest(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decodeBody(t, rec)["status"])
}

func TestHandleReady(t *testing.T) {
	tests := []struct {
		name           string
		checks         map[string]ReadinessCheck
		expectedStatus int
		expectedState  string
	}{
		{
			name:           "no dependencies",
			expectedStatus: http.StatusOK,
			expectedState:  "ready",
		},
		{
			name: "all dependencies up",
			checks: map[string]ReadinessCheck{
				"registry": func(ctx context.Context) error { return nil },
				"zeebe":    func(ctx context.Context) error { return nil },
			},
			expectedStatus: http.StatusOK,
			expectedState:  "ready",
		},
		{
			name: "registry down",
			checks: map[string]ReadinessCheck{
				"registry": func(ctx context.Context) error { return errors.New("connection refused") },
				"zeebe":    func(ctx context.Context) error { return nil },
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedState:  "not_ready",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []Option
			for name, check := range tt.checks {
				opts = append(opts, WithReadinessCheck(name, check))
			}
			srv := NewServer(&fakeReconciler{}, createTestLogger(t), opts...)

			rec := doRequest(t, srv, http.MethodGet, "/ready", "")
			assert.Equal(t, tt.expectedStatus, rec.Code)

			body := decodeBody(t, rec)
			assert.Equal(t, tt.expectedState, body["status"])
			checks := body["checks"].(map[string]interface{})
			assert.Len(t, checks, len(tt.checks))
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := NewServer(&fakeReconciler{}, createTestLogger(t))
	doRequest(t, srv, http.MethodGet, "/health", "")

	rec := doRequest(t, srv, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "prefill_api_requests_total")
}
