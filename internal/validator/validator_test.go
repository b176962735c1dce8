package validator

import (
	"encoding/json"
	"testing"

	apperrors "github.com/SAP-F-2025/interview-coach/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email      string          `json:"email" validate:"required,email_format"`
	FullName   string          `json:"fullName" validate:"required,notblank"`
	Role       string          `json:"role,omitempty" validate:"omitempty,user_role"`
	Status     string          `json:"status,omitempty" validate:"omitempty,interview_status"`
	Score      *int            `json:"score,omitempty" validate:"omitempty,score"`
	ParsedData json.RawMessage `json:"parsedData,omitempty" validate:"omitempty,json_object"`
	Roles      json.RawMessage `json:"roles,omitempty" validate:"omitempty,json_array"`
}

func intPtr(v int) *int { return &v }

func TestValidatorCustomTags(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		req       sampleRequest
		wantField string
		wantRule  string
	}{
		{
			name: "valid request",
			req: sampleRequest{
				Email:      "jane@example.com",
				FullName:   "Jane",
				Role:       "admin",
				Status:     "completed",
				Score:      intPtr(100),
				ParsedData: json.RawMessage(`{"skills":["Go"]}`),
				Roles:      json.RawMessage(`["Backend Developer"]`),
			},
		},
		{
			name:      "missing email reported first",
			req:       sampleRequest{FullName: ""},
			wantField: "email",
			wantRule:  "required",
		},
		{
			name:      "bad email format",
			req:       sampleRequest{Email: "not-an-email", FullName: "Jane"},
			wantField: "email",
			wantRule:  "email_format",
		},
		{
			name:      "blank full name",
			req:       sampleRequest{Email: "jane@example.com", FullName: "   "},
			wantField: "fullName",
			wantRule:  "notblank",
		},
		{
			name:      "unknown role",
			req:       sampleRequest{Email: "jane@example.com", FullName: "Jane", Role: "owner"},
			wantField: "role",
			wantRule:  "user_role",
		},
		{
			name:      "unknown status",
			req:       sampleRequest{Email: "jane@example.com", FullName: "Jane", Status: "paused"},
			wantField: "status",
			wantRule:  "interview_status",
		},
		{
			name:      "score above range",
			req:       sampleRequest{Email: "jane@example.com", FullName: "Jane", Score: intPtr(101)},
			wantField: "score",
			wantRule:  "score",
		},
		{
			name:      "parsed data must be an object",
			req:       sampleRequest{Email: "jane@example.com", FullName: "Jane", ParsedData: json.RawMessage(`["x"]`)},
			wantField: "parsedData",
			wantRule:  "json_object",
		},
		{
			name:      "roles must be an array",
			req:       sampleRequest{Email: "jane@example.com", FullName: "Jane", Roles: json.RawMessage(`"x"`)},
			wantField: "roles",
			wantRule:  "json_array",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			errs, ok := err.(apperrors.ValidationErrors)
			require.True(t, ok)
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.wantField, errs[0].Field)
			assert.Equal(t, tt.wantRule, errs[0].Rule)
		})
	}
}

func TestScoreBoundaries(t *testing.T) {
	v := New()
	for _, score := range []int{0, 100} {
		req := sampleRequest{Email: "a@b.co", FullName: "A", Score: intPtr(score)}
		assert.NoError(t, v.Validate(req))
	}
	req := sampleRequest{Email: "a@b.co", FullName: "A", Score: intPtr(-1)}
	assert.Error(t, v.Validate(req))
}

func TestJSONNullAccepted(t *testing.T) {
	v := New()
	req := sampleRequest{Email: "a@b.co", FullName: "A", ParsedData: json.RawMessage(`null`), Roles: json.RawMessage(`null`)}
	assert.NoError(t, v.Validate(req))
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("john.smith@example.com"))
	assert.False(t, IsEmail("not-an-email"))
	assert.False(t, IsEmail("a b@example.com"))
	assert.False(t, IsEmail("a@example"))
}
