package browser

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorType
	}{
		{errors.New("Timeout 15000ms exceeded"), ErrorTypeRetryable},
		{fmt.Errorf("goto: %w", context.DeadlineExceeded), ErrorTypeRetryable},
		{errors.New("net::ERR_CONNECTION_RESET"), ErrorTypeRetryable},
		{fmt.Errorf("x: %w", ErrElementNotFound), ErrorTypeTemporary},
		{errors.New("element is not attached to the DOM"), ErrorTypeTemporary},
		{errors.New("browser has been closed"), ErrorTypeCritical},
	}

	for _, tt := range tests {
		got := classifyError("click", tt.err)
		assert.Equal(t, tt.want, got.Type, tt.err.Error())
		assert.ErrorIs(t, got, tt.err)
	}

	assert.Nil(t, classifyError("click", nil))
}

func TestClassifyErrorKeepsActionError(t *testing.T) {
	inner := classifyError("click a", errors.New("timeout"))
	got := classifyError("open", fmt.Errorf("wrap: %w", inner))
	assert.Same(t, inner, got)
	assert.Equal(t, "click a: timeout", got.Error())
}

func TestRetry(t *testing.T) {
	ctx := context.Background()

	calls := 0
	err := Retry(ctx, 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("timeout")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	err = Retry(ctx, 5, time.Millisecond, func() error {
		calls++
		return errors.New("browser has been closed")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)

	calls = 0
	err = Retry(ctx, 2, time.Millisecond, func() error {
		calls++
		return errors.New("network error")
	})
	require.Error(t, err)
	assert.Equal(t, 2, calls)
	assert.Contains(t, err.Error(), "после 2 попыток")
}

func TestRetryStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Retry(ctx, 3, time.Hour, func() error {
		calls++
		cancel()
		return errors.New("timeout")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
