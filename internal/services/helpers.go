package services

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	apperrors "github.com/SAP-F-2025/interview-coach/internal/errors"
	"github.com/SAP-F-2025/interview-coach/internal/validator"
	"gorm.io/datatypes"
)

// validateRequest runs struct validation and reports the first failure with the field's code.
func validateRequest(v *validator.Validator, req any, codes apperrors.CodeTable) error {
	err := v.Validate(req)
	if err == nil {
		return nil
	}
	var validationErrs apperrors.ValidationErrors
	if errors.As(err, &validationErrs) {
		return codes.FromValidation(validationErrs)
	}
	return apperrors.BadRequest("VALIDATION_FAILED", err.Error())
}

// jsonColumn converts a request value into a column value. Absent or null yields nil.
func jsonColumn(raw json.RawMessage) datatypes.JSON {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil
	}
	return datatypes.JSON(trimmed)
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func uintPtr(v *int) *uint {
	if v == nil {
		return nil
	}
	u := uint(*v)
	return &u
}

func intPtr(v int) *int {
	return &v
}

func timePtr(t time.Time) *time.Time {
	return &t
}

// clock is replaced in tests.
type clock func() time.Time

func (c clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c()
}

func missingField(field string) apperrors.ValidationErrors {
	return apperrors.Missing(field)
}
