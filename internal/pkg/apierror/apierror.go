// Package apierror holds the single failure shape every upstream call is
// normalized to before it reaches a page controller.
package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/validator"
)

const (
	MsgGeneric    = "An error occurred"
	MsgNetwork    = "Network error. Please check your connection."
	MsgUnexpected = "An unexpected error occurred"
	MsgValidation = "Validation failed"

	// NonFieldErrors is the key the API uses for errors not tied to an input.
	NonFieldErrors = "non_field_errors"
)

// Error is the normalized failure. Status is the HTTP status when the server
// answered, otherwise 0.
type Error struct {
	Message string      `json:"message"`
	Errors  FieldErrors `json:"errors"`
	Status  int         `json:"status"`

	cause error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("api error [%d]: %s", e.Status, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// FieldErrors maps a field to its messages. The API sends either a string or
// a list of strings per field; both decode here.
type FieldErrors map[string][]string

func (f *FieldErrors) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(FieldErrors, len(raw))
	for field, value := range raw {
		var single string
		if err := json.Unmarshal(value, &single); err == nil {
			out[field] = []string{single}
			continue
		}
		var many []any
		if err := json.Unmarshal(value, &many); err == nil {
			msgs := make([]string, 0, len(many))
			for _, m := range many {
				msgs = append(msgs, fmt.Sprint(m))
			}
			out[field] = msgs
			continue
		}
		out[field] = []string{string(value)}
	}
	*f = out
	return nil
}

// Response builds the error for a non-2xx answer. The body is the decoded
// error payload, possibly empty.
func Response(status int, message string, fields FieldErrors) *Error {
	if message == "" {
		message = MsgGeneric
	}
	if fields == nil {
		fields = FieldErrors{}
	}
	return &Error{Message: message, Errors: fields, Status: status}
}

// Network builds the error for a request that got no response.
func Network() *Error {
	return &Error{Message: MsgNetwork, Errors: FieldErrors{}}
}

// Local builds the error for a failure before the request was sent.
func Local(err error) *Error {
	msg := MsgUnexpected
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &Error{Message: msg, Errors: FieldErrors{}, cause: err}
}

// Validation converts client-side validation errors to the normalized shape.
func Validation(errs validator.ValidationErrors) *Error {
	fields := make(FieldErrors, len(errs))
	for _, e := range errs {
		fields[e.Field] = append(fields[e.Field], e.Message)
	}
	return &Error{Message: MsgValidation, Errors: fields}
}

// From returns err as an *Error, treating anything else as a local failure.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return Validation(validationErrs)
	}
	return Local(err)
}

// FieldError returns the first message for field, or "".
func (e *Error) FieldError(field string) string {
	if e == nil {
		return ""
	}
	if msgs := e.Errors[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Summary is the banner text: the first non-field error if any, else the message.
func (e *Error) Summary() string {
	if e == nil {
		return ""
	}
	if msg := e.FieldError(NonFieldErrors); msg != "" {
		return msg
	}
	if e.Message == "" {
		return MsgGeneric
	}
	return e.Message
}

// AllMessages flattens the field errors into "field: message" lines, sorted by field.
func (e *Error) AllMessages() []string {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var out []string
	for _, field := range fields {
		for _, msg := range e.Errors[field] {
			out = append(out, field+": "+msg)
		}
	}
	return out
}

// Unmatched returns "field: message" lines for fields that are not among
// rendered and are not non-field errors. Those cannot be shown next to an
// input and belong in the banner.
func (e *Error) Unmatched(rendered ...string) []string {
	if e == nil {
		return nil
	}
	skip := map[string]struct{}{NonFieldErrors: {}}
	for _, field := range rendered {
		skip[field] = struct{}{}
	}

	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		if _, ok := skip[field]; !ok {
			fields = append(fields, field)
		}
	}
	sort.Strings(fields)

	var out []string
	for _, field := range fields {
		for _, msg := range e.Errors[field] {
			out = append(out, field+": "+msg)
		}
	}
	return out
}

// IsNetwork reports whether the request never got a response.
func (e *Error) IsNetwork() bool {
	return e != nil && e.Status == 0 && e.Message == MsgNetwork
}

// BannerFor returns the banner text for a form that renders inline errors for
// the given fields. Non-field errors always show; otherwise the summary shows
// only when no rendered field carries an error.
func (e *Error) BannerFor(rendered ...string) string {
	if e == nil {
		return ""
	}
	if msg := e.FieldError(NonFieldErrors); msg != "" {
		return msg
	}
	for _, field := range rendered {
		if e.FieldError(field) != "" {
			return ""
		}
	}
	return e.Summary()
}
