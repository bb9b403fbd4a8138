package employee

import (
	"strconv"
	"strings"

	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/validator"
)

const (
	FieldEmployeeID = "employee_id"
	FieldFullName   = "full_name"
	FieldEmail      = "email"
	FieldDepartment = "department"
)

// FormFields are the create-form inputs rendered with inline errors.
var FormFields = []string{FieldEmployeeID, FieldFullName, FieldEmail, FieldDepartment}

type EmployeeFilter struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

func (f *EmployeeFilter) Validate() error {
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

type CreateEmployeeRequest struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department int64  `json:"department"`
}

// Rules is the client-side validation applied before a create is sent.
func Rules() validator.Rules {
	return validator.Rules{
		FieldEmployeeID: {validator.EmployeeID},
		FieldFullName:   {validator.FullName},
		FieldEmail:      {validator.Email},
		FieldDepartment: {validator.Department},
	}
}

func DefaultForm() map[string]string {
	return map[string]string{
		FieldEmployeeID: "",
		FieldFullName:   "",
		FieldEmail:      "",
		FieldDepartment: "",
	}
}

// NewCreateEmployeeRequest validates the form and coerces the department
// selection to its numeric id.
func NewCreateEmployeeRequest(values map[string]string) (CreateEmployeeRequest, error) {
	if errs := validator.ValidateForm(values, Rules()); errs != nil {
		return CreateEmployeeRequest{}, errs
	}

	departmentID, err := strconv.ParseInt(strings.TrimSpace(values[FieldDepartment]), 10, 64)
	if err != nil || departmentID <= 0 {
		return CreateEmployeeRequest{}, validator.ValidationErrors{{
			Field:   FieldDepartment,
			Message: "Please select a department",
		}}
	}

	return CreateEmployeeRequest{
		EmployeeID: values[FieldEmployeeID],
		FullName:   values[FieldFullName],
		Email:      values[FieldEmail],
		Department: departmentID,
	}, nil
}

type ListEmployeeResponse = pagination.Page[Employee]
