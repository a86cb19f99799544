package llm

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantType  ErrorType
		retryable bool
	}{
		{
			name:      "401 unauthorized",
			err:       errors.New("HTTP 401 Unauthorized"),
			wantType:  ErrorTypeAuth,
			retryable: false,
		},
		{
			name:      "invalid api key",
			err:       errors.New("invalid api key provided"),
			wantType:  ErrorTypeAuth,
			retryable: false,
		},
		{
			name:      "model not found",
			err:       errors.New("the model `gpt-nope` does not exist"),
			wantType:  ErrorTypeModel,
			retryable: false,
		},
		{
			name:      "deadline exceeded",
			err:       errors.New("context deadline exceeded"),
			wantType:  ErrorTypeTimeout,
			retryable: true,
		},
		{
			name:      "connection refused",
			err:       errors.New("dial tcp 127.0.0.1:8000: connection refused"),
			wantType:  ErrorTypeEndpoint,
			retryable: true,
		},
		{
			name:      "rate limited",
			err:       errors.New("HTTP 429: rate limit exceeded"),
			wantType:  ErrorTypeUnknown,
			retryable: true,
		},
		{
			name:      "server error",
			err:       errors.New("HTTP 503 Service Unavailable"),
			wantType:  ErrorTypeEndpoint,
			retryable: true,
		},
		{
			name:      "unknown",
			err:       errors.New("something odd"),
			wantType:  ErrorTypeUnknown,
			retryable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyError(tt.err)
			if got.Type != tt.wantType {
				t.Errorf("ClassifyError(%v).Type = %v, want %v", tt.err, got.Type, tt.wantType)
			}
			if got.Retryable != tt.retryable {
				t.Errorf("ClassifyError(%v).Retryable = %v, want %v", tt.err, got.Retryable, tt.retryable)
			}
		})
	}
}

func TestClassifyError_Nil(t *testing.T) {
	if got := ClassifyError(nil); got != nil {
		t.Errorf("ClassifyError(nil) = %v, want nil", got)
	}
}

func TestClassifyError_PreservesExistingError(t *testing.T) {
	orig := NewError(ErrorTypeAuth, "authentication failed", false, errors.New("HTTP 401"))
	wrapped := fmt.Errorf("complete: %w", orig)

	got := ClassifyError(wrapped)
	if got != orig {
		t.Errorf("ClassifyError should unwrap to the original *Error")
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	e := NewError(ErrorTypeEndpoint, "server error", true, cause)

	if !errors.Is(e, cause) {
		t.Error("errors.Is should find the cause through Unwrap")
	}
}

func TestGetErrorType(t *testing.T) {
	e := NewError(ErrorTypeTimeout, "request timeout", true, nil)
	if got := GetErrorType(fmt.Errorf("wrap: %w", e)); got != ErrorTypeTimeout {
		t.Errorf("GetErrorType = %v, want %v", got, ErrorTypeTimeout)
	}
	if got := GetErrorType(errors.New("plain")); got != ErrorTypeUnknown {
		t.Errorf("GetErrorType(plain) = %v, want %v", got, ErrorTypeUnknown)
	}
}
