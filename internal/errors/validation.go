package errors

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldError is one failed rule on one request field, named by its JSON key.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (fe FieldError) Error() string {
	return fmt.Sprintf("%s %s", fe.Field, fe.Message)
}

// ValidationErrors lists field failures in struct field order.
type ValidationErrors []FieldError

func (ve ValidationErrors) Error() string {
	switch len(ve) {
	case 0:
		return "validation failed"
	case 1:
		return "validation failed: " + ve[0].Error()
	default:
		return fmt.Sprintf("validation failed: %s (and %d more)", ve[0].Error(), len(ve)-1)
	}
}

// Missing reports a required field that was not supplied.
func Missing(field string) ValidationErrors {
	return ValidationErrors{{Field: field, Rule: "required", Message: ruleMessage("required", "")}}
}

// FromValidator converts the validator's failures. Other errors yield nil.
func FromValidator(err error) ValidationErrors {
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return nil
	}

	result := make(ValidationErrors, 0, len(validatorErrs))
	for _, fieldErr := range validatorErrs {
		result = append(result, FieldError{
			Field:   fieldErr.Field(),
			Rule:    fieldErr.Tag(),
			Message: ruleMessage(fieldErr.Tag(), fieldErr.Param()),
		})
	}
	return result
}

func ruleMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + param
	case "gte":
		return "must be at least " + param
	case "email_format":
		return "must be a valid email address"
	case "notblank":
		return "must be a non-empty string"
	case "user_role":
		return `must be either "user" or "admin"`
	case "interview_status":
		return "must be one of: in_progress, completed, abandoned"
	case "score":
		return "must be an integer between 0 and 100"
	case "json_object":
		return "must be a JSON object"
	case "json_array":
		return "must be a JSON array"
	default:
		return fmt.Sprintf("failed the %q rule", rule)
	}
}
