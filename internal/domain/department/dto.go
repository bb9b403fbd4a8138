package department

import (
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/validator"
)

const FieldName = "name"

// FormFields are the create-form inputs rendered with inline errors.
var FormFields = []string{FieldName}

type DepartmentFilter struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

func (f *DepartmentFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}
	f.PageSize = pagination.ClampPageSize(f.PageSize)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateDepartmentRequest struct {
	Name string `json:"name"`
}

// Rules is the client-side validation applied before a create is sent.
func Rules() validator.Rules {
	return validator.Rules{
		FieldName: {validator.DepartmentName},
	}
}

// DefaultForm is the empty create form.
func DefaultForm() map[string]string {
	return map[string]string{FieldName: ""}
}

// NewCreateDepartmentRequest builds the request body from submitted form values.
func NewCreateDepartmentRequest(values map[string]string) (CreateDepartmentRequest, error) {
	if errs := validator.ValidateForm(values, Rules()); errs != nil {
		return CreateDepartmentRequest{}, errs
	}
	return CreateDepartmentRequest{Name: values[FieldName]}, nil
}

type ListDepartmentResponse = pagination.Page[Department]
