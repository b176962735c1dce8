package validator

import (
	"encoding/json"
	"reflect"
	"regexp"
	"strings"

	apperrors "github.com/SAP-F-2025/interview-coach/internal/errors"
	"github.com/SAP-F-2025/interview-coach/internal/models"
	"github.com/go-playground/validator/v10"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validator wraps the struct validator with the service's custom tags
type Validator struct {
	structValidator *validator.Validate
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()

	// Register all custom validators once
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate validates s and reports failures as ValidationErrors in struct field order
func (v *Validator) Validate(s interface{}) error {
	err := v.ValidateStruct(s)
	if err == nil {
		return nil
	}
	if errs := apperrors.FromValidator(err); len(errs) > 0 {
		return errs
	}
	return err
}

// IsEmail reports whether s has the shape local@domain.tld
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("user_role", validateUserRole)
	validate.RegisterValidation("interview_status", validateInterviewStatus)
	validate.RegisterValidation("email_format", validateEmailFormat)
	validate.RegisterValidation("notblank", validateNotBlank)
	validate.RegisterValidation("score", validateScore)
	validate.RegisterValidation("json_object", validateJSONObject)
	validate.RegisterValidation("json_array", validateJSONArray)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Custom validation functions
func validateUserRole(fl validator.FieldLevel) bool {
	return models.UserRole(fl.Field().String()).IsValid()
}

func validateInterviewStatus(fl validator.FieldLevel) bool {
	return models.InterviewStatus(fl.Field().String()).IsValid()
}

func validateEmailFormat(fl validator.FieldLevel) bool {
	return IsEmail(strings.TrimSpace(fl.Field().String()))
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateScore(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		score := fl.Field().Int()
		return score >= models.MinScore && score <= models.MaxScore
	default:
		return false
	}
}

func validateJSONObject(fl validator.FieldLevel) bool {
	raw, ok := rawJSON(fl)
	if !ok {
		return false
	}
	if isJSONNull(raw) {
		return true
	}
	var obj map[string]json.RawMessage
	return json.Unmarshal(raw, &obj) == nil && obj != nil
}

func validateJSONArray(fl validator.FieldLevel) bool {
	raw, ok := rawJSON(fl)
	if !ok {
		return false
	}
	if isJSONNull(raw) {
		return true
	}
	var arr []json.RawMessage
	return json.Unmarshal(raw, &arr) == nil && arr != nil
}

func rawJSON(fl validator.FieldLevel) ([]byte, bool) {
	field := fl.Field()
	if field.Kind() != reflect.Slice || field.Type().Elem().Kind() != reflect.Uint8 {
		return nil, false
	}
	return field.Bytes(), true
}

func isJSONNull(raw []byte) bool {
	return strings.TrimSpace(string(raw)) == "null"
}
