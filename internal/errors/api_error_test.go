package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userCodes = CodeTable{
	"email":    {Missing: "MISSING_EMAIL", Invalid: "INVALID_EMAIL_FORMAT"},
	"fullName": {Missing: "MISSING_FULL_NAME", Invalid: "INVALID_FULL_NAME"},
	"role":     {Invalid: "INVALID_ROLE"},
}

func TestCodeTableFromValidation(t *testing.T) {
	tests := []struct {
		name     string
		errs     ValidationErrors
		wantCode string
	}{
		{
			name:     "required maps to missing code",
			errs:     ValidationErrors{{Field: "email", Message: "is required", Rule: "required"}},
			wantCode: "MISSING_EMAIL",
		},
		{
			name:     "other rule maps to invalid code",
			errs:     ValidationErrors{{Field: "email", Message: "must be a valid email address", Rule: "email_format"}},
			wantCode: "INVALID_EMAIL_FORMAT",
		},
		{
			name:     "first error wins",
			errs:     ValidationErrors{{Field: "fullName", Rule: "required"}, {Field: "email", Rule: "required"}},
			wantCode: "MISSING_FULL_NAME",
		},
		{
			name:     "no missing code falls back to invalid",
			errs:     ValidationErrors{{Field: "role", Rule: "required"}},
			wantCode: "INVALID_ROLE",
		},
		{
			name:     "unknown field",
			errs:     ValidationErrors{{Field: "other", Rule: "max"}},
			wantCode: "VALIDATION_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := userCodes.FromValidation(tt.errs)
			require.NotNil(t, apiErr)
			assert.Equal(t, http.StatusBadRequest, apiErr.Status)
			assert.Equal(t, tt.wantCode, apiErr.Code)
		})
	}

	assert.Nil(t, userCodes.FromValidation(nil))
}

func TestCodeTableForField(t *testing.T) {
	assert.Equal(t, "INVALID_EMAIL_FORMAT", userCodes.ForField("email").Code)
	assert.Equal(t, "INVALID_ROLE", userCodes.ForField("role").Code)
	assert.Equal(t, CodeInvalidJSON, userCodes.ForField("unknown").Code)
}

func TestAPIErrorChain(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("create user: %w", Internal(cause))

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, CodeInternal, apiErr.Code)
	assert.ErrorIs(t, err, cause)
	assert.True(t, HasCode(err, CodeInternal))
	assert.False(t, HasCode(cause, CodeInternal))

	wrapped := NotFound("USER_NOT_FOUND", "User not found").Wrap(cause)
	assert.Equal(t, "USER_NOT_FOUND: User not found: connection refused", wrapped.Error())
}
