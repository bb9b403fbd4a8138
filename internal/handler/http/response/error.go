package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-web-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-web-go/internal/domain/department"
	"github.com/cmlabs-hris/hrms-web-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/apierror"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/listing"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, "", validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, department.ErrInvalidID),
		errors.Is(err, employee.ErrInvalidID),
		errors.Is(err, attendance.ErrInvalidID):
		BadRequest(w, "Invalid id", nil)
		return
	case errors.Is(err, attendance.ErrNoEmployeeSelected):
		BadRequest(w, "Please select an employee", nil)
		return
	case errors.Is(err, listing.ErrNoDeleteTarget):
		BadRequest(w, "Nothing selected for deletion", nil)
		return
	case errors.Is(err, jwt.ErrCSRFMismatch):
		Forbidden(w, "Invalid CSRF token")
		return
	}

	var apiErr *apierror.Error
	if errors.As(err, &apiErr) {
		writeAPIError(w, apiErr)
		return
	}

	slog.Error("Unhandled error", "error", err)
	InternalServerError(w, "An unexpected error occurred")
}

func writeAPIError(w http.ResponseWriter, apiErr *apierror.Error) {
	status := StatusFor(apiErr)
	details := Details(apiErr)
	switch status {
	case http.StatusUnprocessableEntity:
		ValidationError(w, apiErr.Summary(), details)
	case http.StatusNotFound:
		NotFound(w, apiErr.Summary())
	case http.StatusBadGateway:
		BadGateway(w, apiErr.Summary())
	case http.StatusInternalServerError:
		InternalServerError(w, apiErr.Summary())
	default:
		writeJSON(w, status, Response{
			Success: false,
			Error: &ErrorDetail{
				Code:    CodeFor(status),
				Message: apiErr.Summary(),
				Details: details,
			},
		})
	}
}

// StatusFor picks the status this app answers with for a normalized error.
// Upstream validation failures become 422; an unreachable or failing
// upstream is a 502.
func StatusFor(apiErr *apierror.Error) int {
	switch {
	case apiErr == nil:
		return http.StatusOK
	case apiErr.IsNetwork():
		return http.StatusBadGateway
	case apiErr.Status == 0 && len(apiErr.Errors) > 0:
		return http.StatusUnprocessableEntity
	case apiErr.Status == 0:
		return http.StatusInternalServerError
	case apiErr.Status == http.StatusBadRequest, apiErr.Status == http.StatusConflict, apiErr.Status == http.StatusUnprocessableEntity:
		return http.StatusUnprocessableEntity
	case apiErr.Status >= 500:
		return http.StatusBadGateway
	default:
		return apiErr.Status
	}
}

// Details flattens field errors to their first message.
func Details(apiErr *apierror.Error) map[string]string {
	if apiErr == nil || len(apiErr.Errors) == 0 {
		return nil
	}
	details := make(map[string]string, len(apiErr.Errors))
	for field := range apiErr.Errors {
		details[field] = apiErr.FieldError(field)
	}
	return details
}

// CodeFor is the envelope error code for status.
func CodeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	case http.StatusBadGateway:
		return "BAD_GATEWAY"
	default:
		if status >= 500 {
			return "INTERNAL_SERVER_ERROR"
		}
		return "REQUEST_FAILED"
	}
}
