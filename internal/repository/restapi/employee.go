package restapi

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hrms-web-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/apierror"
)

type employeeRepositoryImpl struct {
	client *Client
}

func NewEmployeeRepository(client *Client) employee.EmployeeRepository {
	return &employeeRepositoryImpl{client: client}
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	var page employee.ListEmployeeResponse
	if err := r.client.get(ctx, "/employees/", pageQuery(filter.Page, filter.PageSize), &page); err != nil {
		return employee.ListEmployeeResponse{}, err
	}
	return page, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	if id <= 0 {
		return employee.Employee{}, apierror.Local(fmt.Errorf("get employee %d: %w", id, employee.ErrInvalidID))
	}
	var emp employee.Employee
	if err := r.client.get(ctx, "/employees/"+idPath(id)+"/", nil, &emp); err != nil {
		return employee.Employee{}, err
	}
	return emp, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	var created employee.Employee
	if err := r.client.post(ctx, "/employees/", req, &created); err != nil {
		return employee.Employee{}, err
	}
	return created, nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apierror.Local(fmt.Errorf("delete employee %d: %w", id, employee.ErrInvalidID))
	}
	return r.client.delete(ctx, "/employees/"+idPath(id)+"/")
}
