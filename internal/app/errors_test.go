package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/molpadia/molpaclip/internal/auth"
	"github.com/molpadia/molpaclip/internal/validation"
)

func TestErrorKinds(t *testing.T) {
	fe := &validation.FieldError{Field: "title", Reason: "too short"}
	cause := errors.New("boom")

	tests := []struct {
		name         string
		err          *AppError
		expected     error
		expectedCode int
	}{
		{"malformed request", errMalformedRequest(), ErrMalformedRequest, 400},
		{"missing token", errMissingAuthToken(), ErrMissingAuthToken, 400},
		{"invalid token", errInvalidToken(msgCreateFailed, "token is expired", cause), ErrInvalidOrExpiredToken, 400},
		{"decode failure", errDecodeFailure(cause), ErrDecodeFailure, 400},
		{"empty field", errEmptyField(fe), ErrEmptyRequiredField, 400},
		{"invalid field", errInvalidField(fe), ErrFieldValidationFailure, 400},
		{"empty result set", errEmptyResultSet(), ErrEmptyResultSet, 400},
		{"identity not found", errIdentityNotFound(cause), ErrIdentityNotFound, 400},
		{"persistence", errPersistence(msgSaveFailed, cause), ErrPersistenceFailure, 500},
		{"timeout", errTimeout(context.DeadlineExceeded), ErrTimeout, 500},
	}
	for _, tt := range tests {
		if !errors.Is(tt.err, tt.expected) {
			t.Errorf("%s: expected kind %s, got %s", tt.name, tt.expected.(*AppError).Kind, tt.err.Kind)
		}
		if errors.Is(tt.err, ErrMalformedRequest) != (tt.expected == ErrMalformedRequest) {
			t.Errorf("%s: matched a foreign kind", tt.name)
		}
		if tt.err.Code != tt.expectedCode || tt.err.Envelope().Code != tt.expectedCode {
			t.Errorf("%s: expected code %d, got %d", tt.name, tt.expectedCode, tt.err.Code)
		}
	}

	wrapped := fmt.Errorf("create: %w", errEmptyResultSet())
	if !errors.Is(wrapped, ErrEmptyResultSet) {
		t.Error("kind lost through wrapping")
	}
}

func TestClassifyErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected error
	}{
		{"auth missing token", classifyAuthError(msgCreateFailed, auth.ErrMissingToken), ErrMissingAuthToken},
		{"auth invalid token", classifyAuthError(msgCreateFailed, auth.ErrInvalidToken), ErrInvalidOrExpiredToken},
		{"auth deadline", classifyAuthError(msgCreateFailed, context.DeadlineExceeded), ErrTimeout},
		{"auth canceled", classifyAuthError(msgCreateFailed, context.Canceled), ErrInvalidOrExpiredToken},
		{"storage deadline", classifyStorageError(msgSaveFailed, fmt.Errorf("save: %w", context.DeadlineExceeded)), ErrTimeout},
		{"storage failure", classifyStorageError(msgSaveFailed, errors.New("disk full")), ErrPersistenceFailure},
	}
	for _, tt := range tests {
		if !errors.Is(tt.err, tt.expected) {
			t.Errorf("%s: expected kind %s, got %s", tt.name, tt.expected.(*AppError).Kind, tt.err.Kind)
		}
	}
}
