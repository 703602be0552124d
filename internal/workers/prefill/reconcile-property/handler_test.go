package reconcileproperty

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"cstore-prefill/internal/common/config"
	apperrors "cstore-prefill/internal/common/errors"
	"cstore-prefill/internal/common/logger"
	"cstore-prefill/internal/common/validation"
	"cstore-prefill/internal/models"
	"cstore-prefill/internal/reconcile"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Timeout:       5 * time.Second,
		MaxJobsActive: 1,
	}
}

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

type fakeReconciler struct {
	result  *models.ReconcileResult
	err     error
	address string
}

func (f *fakeReconciler) Reconcile(ctx context.Context, address string) (*models.ReconcileResult, error) {
	f.address = address
	return f.result, f.err
}

func successResult() *models.ReconcileResult {
	return &models.ReconcileResult{
		Success: true,
		Data:    models.FormData{"dba": "Peach Fuel"},
		Validation: &models.ValidationVerdict{
			IsValid:      true,
			Confidence:   models.ConfidenceHigh,
			PropertyType: models.PropertyGasStation,
			Warnings:     []string{},
			Info:         []string{},
		},
		Ownership:   models.UnknownOwnership(),
		Message:     "Auto-filled 1 fields from property data",
		FieldsCount: 1,
	}
}

// ==========================
// Execute
// ==========================

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name           string
		input          *Input
		reconciler     *fakeReconciler
		validateOutput func(t *testing.T, output *Output, err error)
	}{
		{
			name:       "success keeps request id",
			input:      &Input{Address: "1234 Peachtree Rd", RequestID: "req-1"},
			reconciler: &fakeReconciler{result: successResult()},
			validateOutput: func(t *testing.T, output *Output, err error) {
				require.NoError(t, err)
				assert.Equal(t, "req-1", output.RequestID)
				assert.True(t, output.Prefill.Success)
				assert.Equal(t, "Peach Fuel", output.Prefill.Data["dba"])
			},
		},
		{
			name:       "request id generated when absent",
			input:      &Input{Address: "1234 Peachtree Rd"},
			reconciler: &fakeReconciler{result: successResult()},
			validateOutput: func(t *testing.T, output *Output, err error) {
				require.NoError(t, err)
				_, parseErr := uuid.Parse(output.RequestID)
				assert.NoError(t, parseErr)
			},
		},
		{
			name:  "address not found is still a completed job",
			input: &Input{Address: "nowhere"},
			reconciler: &fakeReconciler{result: &models.ReconcileResult{
				Data:      models.FormData{},
				Ownership: models.UnknownOwnership(),
				Message:   models.MessageAddressNotFound,
			}},
			validateOutput: func(t *testing.T, output *Output, err error) {
				require.NoError(t, err)
				assert.False(t, output.Prefill.Success)
			},
		},
		{
			name:       "blank address",
			input:      &Input{Address: "  "},
			reconciler: &fakeReconciler{err: reconcile.ErrAddressRequired},
			validateOutput: func(t *testing.T, output *Output, err error) {
				assert.Nil(t, output)
				stdErr, ok := apperrors.AsStandardError(err)
				require.True(t, ok)
				assert.Equal(t, apperrors.ErrCodeAddressRequired, stdErr.Code)
			},
		},
		{
			name:       "parcel failure passes through for retry",
			input:      &Input{Address: "1234 Peachtree Rd"},
			reconciler: &fakeReconciler{err: apperrors.NewParcelProviderError(errors.New("502"))},
			validateOutput: func(t *testing.T, output *Output, err error) {
				stdErr, ok := apperrors.AsStandardError(err)
				require.True(t, ok)
				assert.Equal(t, apperrors.ErrCodeParcelProviderFailed, stdErr.Code)
				assert.True(t, stdErr.Retryable)
			},
		},
		{
			name:  "output contract violation",
			input: &Input{Address: "1234 Peachtree Rd"},
			reconciler: &fakeReconciler{result: func() *models.ReconcileResult {
				r := successResult()
				r.Validation.Confidence = "certain"
				return r
			}()},
			validateOutput: func(t *testing.T, output *Output, err error) {
				stdErr, ok := apperrors.AsStandardError(err)
				require.True(t, ok)
				assert.Equal(t, apperrors.ErrCodeOutputInvalid, stdErr.Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(createTestConfig(), tt.reconciler, nil, createTestLogger(t))
			output, err := handler.Execute(t.Context(), tt.input)
			tt.validateOutput(t, output, err)
			assert.Equal(t, tt.input.Address, tt.reconciler.address)
		})
	}
}

func TestInputSchema(t *testing.T) {
	assert.True(t, validation.ValidateInput(map[string]interface{}{"address": ""}, inputSchema).Valid)
	assert.True(t, validation.ValidateInput(map[string]interface{}{"address": "x", "requestId": "r"}, inputSchema).Valid)

	missing := validation.ValidateInput(map[string]interface{}{}, inputSchema)
	assert.False(t, missing.Valid)

	wrongType := validation.ValidateInput(map[string]interface{}{"address": 12}, inputSchema)
	assert.False(t, wrongType.Valid)
	assert.True(t, wrongType.HasErrors("address"))
}

func TestNewConfig_DefaultTimeout(t *testing.T) {
	cfg := NewConfig(config.WorkerConfig{Timeout: 0})
	assert.Equal(t, 45*time.Second, cfg.Timeout)

	cfg = NewConfig(config.WorkerConfig{Timeout: 1500})
	assert.Equal(t, 1500*time.Millisecond, cfg.Timeout)
}
