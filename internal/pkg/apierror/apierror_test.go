package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldErrors_UnmarshalJSON(t *testing.T) {
	var body struct {
		Errors FieldErrors `json:"errors"`
	}
	raw := `{"errors":{"email":"Email already exists","employee_id":["taken","too short"],"count":3}}`

	require.NoError(t, json.Unmarshal([]byte(raw), &body))

	assert.Equal(t, []string{"Email already exists"}, body.Errors["email"])
	assert.Equal(t, []string{"taken", "too short"}, body.Errors["employee_id"])
	assert.Equal(t, []string{"3"}, body.Errors["count"])
}

func TestResponse_DefaultsMessage(t *testing.T) {
	err := Response(500, "", nil)
	assert.Equal(t, MsgGeneric, err.Message)
	assert.Equal(t, 500, err.Status)
	assert.NotNil(t, err.Errors)
	assert.Equal(t, "api error [500]: An error occurred", err.Error())
}

func TestNetworkAndLocal(t *testing.T) {
	n := Network()
	assert.Equal(t, 0, n.Status)
	assert.Equal(t, MsgNetwork, n.Error())
	assert.True(t, n.IsNetwork())

	l := Local(errors.New("bad request body"))
	assert.Equal(t, 0, l.Status)
	assert.Equal(t, "bad request body", l.Message)
	assert.False(t, l.IsNetwork())

	assert.Equal(t, MsgUnexpected, Local(nil).Message)
}

func TestFrom(t *testing.T) {
	assert.Nil(t, From(nil))

	apiErr := Response(400, "Validation error", FieldErrors{"email": {"bad"}})
	wrapped := fmt.Errorf("create employee: %w", apiErr)
	assert.Same(t, apiErr, From(wrapped))

	verrs := validator.ValidationErrors{
		{Field: "name", Message: "Department name is required"},
	}
	got := From(verrs)
	assert.Equal(t, MsgValidation, got.Message)
	assert.Equal(t, "Department name is required", got.FieldError("name"))
	assert.Equal(t, 0, got.Status)

	assert.Equal(t, "boom", From(errors.New("boom")).Message)
}

func TestSummary(t *testing.T) {
	err := Response(400, "Validation error", FieldErrors{
		NonFieldErrors: {"Attendance for this date already exists"},
		"date":         {"invalid"},
	})
	assert.Equal(t, "Attendance for this date already exists", err.Summary())

	err = Response(404, "Not found", nil)
	assert.Equal(t, "Not found", err.Summary())

	var nilErr *Error
	assert.Equal(t, "", nilErr.Summary())
	assert.Equal(t, "", nilErr.FieldError("x"))
}

func TestAllMessagesAndUnmatched(t *testing.T) {
	err := Response(400, "Validation error", FieldErrors{
		"email":        {"Email already exists"},
		"employee_id":  {"taken"},
		"unknown":      {"a", "b"},
		NonFieldErrors: {"general"},
	})

	assert.Equal(t, []string{
		"email: Email already exists",
		"employee_id: taken",
		"non_field_errors: general",
		"unknown: a",
		"unknown: b",
	}, err.AllMessages())

	assert.Equal(t, []string{"unknown: a", "unknown: b"}, err.Unmatched("email", "employee_id"))
	assert.Nil(t, Response(400, "", nil).Unmatched("email"))
}

func TestBannerFor(t *testing.T) {
	err := Response(400, "Validation error", FieldErrors{"email": {"Email already exists"}})
	assert.Equal(t, "", err.BannerFor("email", "full_name"))
	assert.Equal(t, "Validation error", err.BannerFor("name"))

	err = Response(400, "Validation error", FieldErrors{
		NonFieldErrors: {"Duplicate record"},
		"date":         {"bad"},
	})
	assert.Equal(t, "Duplicate record", err.BannerFor("date"))

	assert.Equal(t, MsgNetwork, Network().BannerFor("name"))
}

func TestLocal_Unwrap(t *testing.T) {
	sentinel := errors.New("invalid id")
	err := Local(fmt.Errorf("delete 0: %w", sentinel))
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, "delete 0: invalid id", err.Message)
}
