package department

import (
	"context"

	"github.com/cmlabs-hris/hrms-web-go/internal/domain/department"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/listing"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/sse"
)

const Screen = "departments"

type DepartmentServiceImpl struct {
	*listing.Controller[department.Department]

	departmentRepo department.DepartmentRepository
	events         sse.Publisher
	sessionID      string
}

func NewDepartmentService(
	departmentRepo department.DepartmentRepository,
	events sse.Publisher,
	sessionID string,
	pageSize int,
) department.DepartmentService {
	s := &DepartmentServiceImpl{
		departmentRepo: departmentRepo,
		events:         events,
		sessionID:      sessionID,
	}
	s.Controller = listing.New(listing.Options[department.Department]{
		List:        s.list,
		Create:      s.create,
		Delete:      s.delete,
		IDOf:        func(d department.Department) int64 { return d.ID },
		PageSize:    pageSize,
		Rules:       department.Rules(),
		DefaultForm: department.DefaultForm,
	})
	return s
}

func (s *DepartmentServiceImpl) list(ctx context.Context, q listing.Query) (department.ListDepartmentResponse, error) {
	filter := department.DepartmentFilter{Page: q.Page, PageSize: q.PageSize}
	if err := filter.Validate(); err != nil {
		return department.ListDepartmentResponse{}, err
	}
	return s.departmentRepo.List(ctx, filter)
}

func (s *DepartmentServiceImpl) create(ctx context.Context, values map[string]string) error {
	req, err := department.NewCreateDepartmentRequest(values)
	if err != nil {
		return err
	}
	created, err := s.departmentRepo.Create(ctx, req)
	if err != nil {
		return err
	}
	s.publish("created", created.ID)
	return nil
}

func (s *DepartmentServiceImpl) delete(ctx context.Context, id int64) error {
	if err := s.departmentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish("deleted", id)
	return nil
}

func (s *DepartmentServiceImpl) publish(action string, id int64) {
	if s.events == nil {
		return
	}
	s.events.Publish(s.sessionID, sse.Event{
		Event: sse.EventRefresh,
		Data:  sse.RefreshData{Screen: Screen, Action: action, ID: id},
	})
}
