package employee

import (
	"context"

	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/listing"
)

// DepartmentOption is one entry of the department selector on the create form.
type DepartmentOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// EmployeeService drives the employees screen of one session.
type EmployeeService interface {
	listing.Screen[Employee]

	// Open loads the department options and the requested page concurrently.
	Open(ctx context.Context, page int) error

	// LoadDepartments refreshes the department selector options.
	LoadDepartments(ctx context.Context) error

	DepartmentOptions() []DepartmentOption

	// GetEmployee loads one employee for the read-only detail view.
	GetEmployee(ctx context.Context, id int64) (Employee, error)
}
