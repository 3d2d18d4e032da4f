package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

type ErrorType int

const (
	ErrorTypeTemporary ErrorType = iota
	ErrorTypeCritical
	ErrorTypeRetryable
)

func (e ErrorType) String() string {
	switch e {
	case ErrorTypeTemporary:
		return "temporary"
	case ErrorTypeCritical:
		return "critical"
	case ErrorTypeRetryable:
		return "retryable"
	default:
		return "unknown"
	}
}

type ActionError struct {
	Type    ErrorType
	Action  string
	Message string
	Err     error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Action, e.Message)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

func classifyError(action string, err error) *ActionError {
	if err == nil {
		return nil
	}

	var actionErr *ActionError
	if errors.As(err, &actionErr) {
		return actionErr
	}

	errStr := strings.ToLower(err.Error())
	typ := ErrorTypeCritical

	switch {
	case errors.Is(err, context.DeadlineExceeded),
		strings.Contains(errStr, "timeout"),
		strings.Contains(errStr, "network"),
		strings.Contains(errStr, "connection"),
		strings.Contains(errStr, "econnrefused"),
		strings.Contains(errStr, "etimedout"):
		typ = ErrorTypeRetryable
	case errors.Is(err, ErrElementNotFound),
		strings.Contains(errStr, "not found"),
		strings.Contains(errStr, "element"):
		typ = ErrorTypeTemporary
	}

	return &ActionError{
		Type:    typ,
		Action:  action,
		Message: err.Error(),
		Err:     err,
	}
}

// IsRetryable сообщает, есть ли смысл повторять действие после ошибки.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	return classifyError("", err).Type != ErrorTypeCritical
}

// Retry выполняет fn до attempts раз с паузой delay. Критическая ошибка прерывает повторы.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err
		if !IsRetryable(err) {
			return err
		}
	}

	return fmt.Errorf("после %d попыток: %w", attempts, lastErr)
}
