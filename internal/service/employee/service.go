package employee

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"github.com/cmlabs-hris/hrms-web-go/internal/domain/department"
	"github.com/cmlabs-hris/hrms-web-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/apierror"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/listing"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/sse"
	"golang.org/x/sync/errgroup"
)

const Screen = "employees"

type EmployeeServiceImpl struct {
	*listing.Controller[employee.Employee]

	employeeRepo   employee.EmployeeRepository
	departmentRepo department.DepartmentRepository
	events         sse.Publisher
	sessionID      string

	mu          sync.RWMutex
	departments []employee.DepartmentOption
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	departmentRepo department.DepartmentRepository,
	events sse.Publisher,
	sessionID string,
	pageSize int,
) employee.EmployeeService {
	s := &EmployeeServiceImpl{
		employeeRepo:   employeeRepo,
		departmentRepo: departmentRepo,
		events:         events,
		sessionID:      sessionID,
	}
	s.Controller = listing.New(listing.Options[employee.Employee]{
		List:        s.list,
		Create:      s.create,
		Delete:      s.delete,
		IDOf:        func(e employee.Employee) int64 { return e.ID },
		PageSize:    pageSize,
		Rules:       employee.Rules(),
		DefaultForm: employee.DefaultForm,
	})
	return s
}

// Open loads the department options and the page at the same time. A failed
// options load is logged and leaves the selector empty; only the list error
// is returned.
func (s *EmployeeServiceImpl) Open(ctx context.Context, page int) error {
	var g errgroup.Group

	g.Go(func() error {
		if err := s.LoadDepartments(ctx); err != nil {
			slog.WarnContext(ctx, "Failed to fetch departments", "session_id", s.sessionID, "error", err)
		}
		return nil
	})

	g.Go(func() error {
		return s.Fetch(ctx, page)
	})

	return g.Wait()
}

func (s *EmployeeServiceImpl) LoadDepartments(ctx context.Context) error {
	res, err := s.departmentRepo.List(ctx, department.DepartmentFilter{Page: 1, PageSize: pagination.MaxPageSize})
	if err != nil {
		return err
	}

	options := make([]employee.DepartmentOption, 0, len(res.Results))
	for _, d := range res.Results {
		options = append(options, employee.DepartmentOption{
			Value: strconv.FormatInt(d.ID, 10),
			Label: d.Name,
		})
	}

	s.mu.Lock()
	s.departments = options
	s.mu.Unlock()
	return nil
}

func (s *EmployeeServiceImpl) DepartmentOptions() []employee.DepartmentOption {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.departments)
}

func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id int64) (employee.Employee, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.Employee{}, apierror.From(err)
	}
	return emp, nil
}

func (s *EmployeeServiceImpl) list(ctx context.Context, q listing.Query) (employee.ListEmployeeResponse, error) {
	filter := employee.EmployeeFilter{Page: q.Page, PageSize: q.PageSize}
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}
	return s.employeeRepo.List(ctx, filter)
}

func (s *EmployeeServiceImpl) create(ctx context.Context, values map[string]string) error {
	req, err := employee.NewCreateEmployeeRequest(values)
	if err != nil {
		return err
	}
	created, err := s.employeeRepo.Create(ctx, req)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "Created employee", "employee_id", created.EmployeeID, "department", created.Department)
	s.publish("created", created.ID)
	return nil
}

func (s *EmployeeServiceImpl) delete(ctx context.Context, id int64) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish("deleted", id)
	return nil
}

func (s *EmployeeServiceImpl) publish(action string, id int64) {
	if s.events == nil {
		return
	}
	s.events.Publish(s.sessionID, sse.Event{
		Event: sse.EventRefresh,
		Data:  sse.RefreshData{Screen: Screen, Action: action, ID: id},
	})
}
