package bootstrap

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cstore-prefill/internal/common/config"
	"cstore-prefill/internal/common/logger"
	"cstore-prefill/internal/reconcile"
)

// ==========================
// NewEngine
// ==========================

func TestNewEngine_WithoutOptionalSources(t *testing.T) {
	cfg := &config.Config{
		Ownership: config.OwnershipConfig{MinMatchLength: 5},
	}

	engine, err := NewEngine(t.Context(), cfg, nil, logger.NewTestLogger(t))
	require.NoError(t, err)
	defer engine.Close()

	assert.NotNil(t, engine.Service)
	assert.Nil(t, engine.Registry)
	assert.Equal(t, 5, engine.Options.MinMatchLength)
	assert.Nil(t, engine.Matcher.Match(t.Context(), "1234 Peachtree Rd"))

	_, err = engine.Service.Reconcile(t.Context(), "  ")
	assert.ErrorIs(t, err, reconcile.ErrAddressRequired)
}

func TestEngine_CloseNil(t *testing.T) {
	var engine *Engine
	assert.NoError(t, engine.Close())
}

// ==========================
// RetryWithBackoff
// ==========================

func TestRetryWithBackoff(t *testing.T) {
	tests := []struct {
		name          string
		failures      int
		maxRetries    int
		expectedCalls int
		expectError   bool
	}{
		{name: "first attempt succeeds", failures: 0, maxRetries: 3, expectedCalls: 1},
		{name: "succeeds after retries", failures: 2, maxRetries: 3, expectedCalls: 3},
		{name: "gives up", failures: 5, maxRetries: 3, expectedCalls: 3, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := RetryWithBackoff(t.Context(), func() error {
				calls++
				if calls <= tt.failures {
					return errors.New("not yet")
				}
				return nil
			}, tt.maxRetries, time.Millisecond, logger.NewTestLogger(t), "test op")

			assert.Equal(t, tt.expectedCalls, calls)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "test op failed after 3 attempts")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRetryWithBackoff_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return errors.New("down")
	}, 5, time.Hour, logger.NewTestLogger(t), "test op")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
