package department

import "context"

// DepartmentRepository is the upstream API surface for departments.
type DepartmentRepository interface {
	List(ctx context.Context, filter DepartmentFilter) (ListDepartmentResponse, error)
	Create(ctx context.Context, req CreateDepartmentRequest) (Department, error)
	Delete(ctx context.Context, id int64) error
}
