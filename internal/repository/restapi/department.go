package restapi

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hrms-web-go/internal/domain/department"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/apierror"
)

type departmentRepositoryImpl struct {
	client *Client
}

func NewDepartmentRepository(client *Client) department.DepartmentRepository {
	return &departmentRepositoryImpl{client: client}
}

// List implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) List(ctx context.Context, filter department.DepartmentFilter) (department.ListDepartmentResponse, error) {
	var page department.ListDepartmentResponse
	if err := r.client.get(ctx, "/departments/", pageQuery(filter.Page, filter.PageSize), &page); err != nil {
		return department.ListDepartmentResponse{}, err
	}
	return page, nil
}

// Create implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Create(ctx context.Context, req department.CreateDepartmentRequest) (department.Department, error) {
	var created department.Department
	if err := r.client.post(ctx, "/departments/", req, &created); err != nil {
		return department.Department{}, err
	}
	return created, nil
}

// Delete implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apierror.Local(fmt.Errorf("delete department %d: %w", id, department.ErrInvalidID))
	}
	return r.client.delete(ctx, "/departments/"+idPath(id)+"/")
}
