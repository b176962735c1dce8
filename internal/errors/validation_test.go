package errors

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrors_Error(t *testing.T) {
	assert.Equal(t, "validation failed", ValidationErrors{}.Error())
	assert.Equal(t, "validation failed: email is required", Missing("email").Error())

	errs := append(Missing("email"), FieldError{Field: "role", Rule: "user_role", Message: "is wrong"})
	assert.Equal(t, "validation failed: email is required (and 1 more)", errs.Error())
}

func TestFromValidator(t *testing.T) {
	type request struct {
		Name  string `validate:"required"`
		Count int    `validate:"gte=1"`
	}

	err := validator.New().Struct(request{Count: 0})
	errs := FromValidator(err)
	require.Len(t, errs, 2)

	assert.Equal(t, FieldError{Field: "Name", Rule: "required", Message: "is required"}, errs[0])
	assert.Equal(t, "gte", errs[1].Rule)
	assert.Equal(t, "must be at least 1", errs[1].Message)

	assert.Nil(t, FromValidator(errors.New("boom")))
	assert.Nil(t, FromValidator(nil))
}

func TestCodeTable_FromMissing(t *testing.T) {
	codes := CodeTable{"userId": {Missing: "MISSING_USER_ID", Invalid: "INVALID_USER_ID"}}

	err := codes.FromValidation(Missing("userId"))
	assert.Equal(t, "MISSING_USER_ID", err.Code)
	assert.Equal(t, 400, err.Status)
}
