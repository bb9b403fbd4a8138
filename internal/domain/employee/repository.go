package employee

import "context"

// EmployeeRepository is the upstream API surface for employees.
type EmployeeRepository interface {
	List(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)
	GetByID(ctx context.Context, id int64) (Employee, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (Employee, error)
	Delete(ctx context.Context, id int64) error
}
