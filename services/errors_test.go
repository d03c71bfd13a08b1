package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDomainError(t *testing.T) {
	baseErr := errors.New("base error")
	domainErr := NewDomainError(ErrorTypeNotFound, "resource not found", baseErr)

	assert.Equal(t, ErrorTypeNotFound, domainErr.Type)
	assert.Equal(t, "resource not found", domainErr.Message)
	assert.Equal(t, baseErr, domainErr.Err)
	assert.NotNil(t, domainErr.Details)
}

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *DomainError
		wantMsg string
	}{
		{
			name: "error with wrapped error",
			err: &DomainError{
				Type:    ErrorTypeNotFound,
				Message: "ingredient not found",
				Err:     errors.New("db error"),
			},
			wantMsg: "not_found: ingredient not found (db error)",
		},
		{
			name: "error without wrapped error",
			err: &DomainError{
				Type:    ErrorTypeValidation,
				Message: "invalid input",
				Err:     nil,
			},
			wantMsg: "validation: invalid input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	baseErr := errors.New("base error")
	domainErr := NewDomainError(ErrorTypeInternal, "internal error", baseErr)

	unwrapped := errors.Unwrap(domainErr)
	assert.Equal(t, baseErr, unwrapped)
}

func TestDomainError_Is(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{
			name:   "same error type",
			err:    NewDomainError(ErrorTypeNotFound, "not found", nil),
			target: ErrIngredientNotFound,
			want:   true,
		},
		{
			name:   "different error type",
			err:    NewDomainError(ErrorTypeValidation, "validation", nil),
			target: ErrIngredientNotFound,
			want:   false,
		},
		{
			name:   "not a domain error",
			err:    NewDomainError(ErrorTypeNotFound, "not found", nil),
			target: errors.New("regular error"),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.target))
		})
	}
}

func TestDomainError_WithDetail(t *testing.T) {
	err := NewDomainError(ErrorTypeValidation, "validation error", nil)

	err.WithDetail("field", "measurement").WithDetail("value", "pallets")

	assert.Equal(t, "measurement", err.Details["field"])
	assert.Equal(t, "pallets", err.Details["value"])
}

func TestNewUpstreamError(t *testing.T) {
	err := NewUpstreamError(401, "identity service rejected token")

	assert.Equal(t, ErrorTypeUpstream, err.Type)
	assert.Equal(t, "identity service rejected token", err.Message)

	status, ok := UpstreamStatus(err)
	require.True(t, ok)
	assert.Equal(t, 401, status)
}

func TestUpstreamStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantOK     bool
	}{
		{
			name:       "upstream error",
			err:        NewUpstreamError(500, "identity service error"),
			wantStatus: 500,
			wantOK:     true,
		},
		{
			name:       "wrapped upstream error",
			err:        fmt.Errorf("validating token: %w", NewUpstreamError(401, "rejected")),
			wantStatus: 401,
			wantOK:     true,
		},
		{
			name:   "non-upstream domain error",
			err:    ErrIngredientNotFound,
			wantOK: false,
		},
		{
			name:   "regular error",
			err:    errors.New("regular"),
			wantOK: false,
		},
		{
			name:   "nil error",
			err:    nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, ok := UpstreamStatus(tt.err)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantStatus, status)
			}
		})
	}
}

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"not found error", ErrIngredientNotFound, true},
		{"wrapped not found", fmt.Errorf("wrapped: %w", ErrProductNotFound), true},
		{"conflict error", ErrIngredientNameTaken, false},
		{"regular error", errors.New("regular"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNotFoundError(tt.err))
		})
	}
}

func TestIsUnauthorizedError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"missing token", ErrMissingToken, true},
		{"invalid token", ErrInvalidToken, true},
		{"forbidden error", ErrForbidden, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUnauthorizedError(tt.err))
		})
	}
}

func TestIsForbiddenError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"forbidden error", ErrForbidden, true},
		{"unauthorized error", ErrMissingToken, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsForbiddenError(tt.err))
		})
	}
}

func TestIsConflictError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"duplicate ingredient name", ErrIngredientNameTaken, true},
		{"duplicate product name", ErrProductNameTaken, true},
		{"referenced product type", ErrProductTypeReferenced, true},
		{"missing product type", ErrProductTypeMissing, true},
		{"not found error", ErrIngredientNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsConflictError(tt.err))
		})
	}
}

func TestIsUnavailableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unavailable error", WrapUnavailable("identity service unreachable", errors.New("dial tcp")), true},
		{"upstream error", NewUpstreamError(500, "identity error"), false},
		{"internal error", ErrInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUnavailableError(tt.err))
		})
	}
}

func TestIsUpstreamError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"upstream error", NewUpstreamError(401, "rejected"), true},
		{"unavailable error", WrapUnavailable("unreachable", nil), false},
		{"regular error", errors.New("regular"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUpstreamError(tt.err))
		})
	}
}

func TestIsInternalError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"internal error", ErrInternal, true},
		{"database error", ErrDatabaseError, true},
		{"not found error", ErrIngredientNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsInternalError(tt.err))
		})
	}
}

func TestGetErrorType(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"not found", ErrIngredientNotFound, ErrorTypeNotFound},
		{"conflict", ErrProductTypeNameTaken, ErrorTypeConflict},
		{"unauthorized", ErrMissingToken, ErrorTypeUnauthorized},
		{"upstream", NewUpstreamError(500, "identity error"), ErrorTypeUpstream},
		{"regular error", errors.New("regular"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetErrorType(tt.err))
		})
	}
}

func TestGetErrorDetails(t *testing.T) {
	err := NewDomainError(ErrorTypeValidation, "validation error", nil)
	err.WithDetail("field", "amount").WithDetail("reason", "must be a number")

	details := GetErrorDetails(err)
	require.NotNil(t, details)
	assert.Equal(t, "amount", details["field"])
	assert.Equal(t, "must be a number", details["reason"])

	regularErr := errors.New("regular error")
	assert.Nil(t, GetErrorDetails(regularErr))
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"domain error", ErrIngredientNotFound, "ingredient not found"},
		{"wrapped domain error", fmt.Errorf("outer: %w", ErrIngredientNotFound), "ingredient not found"},
		{"domain error with cause", WrapUnavailable("identity service unavailable", errors.New("dial tcp")), "identity service unavailable"},
		{"plain error", errors.New("plain failure"), "plain failure"},
		{"nil error", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage(tt.err))
		})
	}
}

func TestWrapInternal(t *testing.T) {
	baseErr := errors.New("database connection failed")
	wrapped := WrapInternal("failed to connect", baseErr)

	assert.True(t, IsInternalError(wrapped))
	assert.Equal(t, baseErr, errors.Unwrap(wrapped))
}

func TestWrapUnavailable(t *testing.T) {
	baseErr := errors.New("connection refused")
	wrapped := WrapUnavailable("identity service unreachable", baseErr)

	assert.True(t, IsUnavailableError(wrapped))
	assert.Equal(t, baseErr, errors.Unwrap(wrapped))
}

func TestAllErrorVariablesAreDefined(t *testing.T) {
	// Test that all predefined error variables are properly initialized
	errorVars := []error{
		// Not Found
		ErrIngredientNotFound,
		ErrProductNotFound,
		ErrProductTypeNotFound,

		// Conflict
		ErrIngredientNameTaken,
		ErrProductNameTaken,
		ErrProductTypeNameTaken,
		ErrProductTypeReferenced,
		ErrProductTypeMissing,

		// Authorization
		ErrMissingToken,
		ErrInvalidToken,

		// Permission
		ErrForbidden,

		// Internal
		ErrInternal,
		ErrDatabaseError,
	}

	for _, err := range errorVars {
		assert.NotNil(t, err, "error variable should not be nil")
		assert.NotEmpty(t, err.Error(), "error should have a message")
	}
}

func TestErrorTypeCheckersCoverage(t *testing.T) {
	// Ensure all error types have corresponding checker functions
	typeCheckers := map[ErrorType]func(error) bool{
		ErrorTypeNotFound:     IsNotFoundError,
		ErrorTypeValidation:   IsValidationError,
		ErrorTypeUnauthorized: IsUnauthorizedError,
		ErrorTypeForbidden:    IsForbiddenError,
		ErrorTypeConflict:     IsConflictError,
		ErrorTypeUnavailable:  IsUnavailableError,
		ErrorTypeUpstream:     IsUpstreamError,
		ErrorTypeInternal:     IsInternalError,
	}

	for errType, checker := range typeCheckers {
		t.Run(string(errType), func(t *testing.T) {
			err := NewDomainError(errType, "test error", nil)
			assert.True(t, checker(err), "checker should return true for %s", errType)
		})
	}
}
