package attendance

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/cmlabs-hris/hrms-web-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-web-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/listing"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/sse"
	"github.com/shopspring/decimal"
)

const Screen = "attendance"

type AttendanceServiceImpl struct {
	*listing.Controller[attendance.Record]

	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	events         sse.Publisher
	sessionID      string

	mu        sync.RWMutex
	employees []employee.Option
	selected  string
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	events sse.Publisher,
	sessionID string,
	pageSize int,
) attendance.AttendanceService {
	s := &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		events:         events,
		sessionID:      sessionID,
	}
	s.Controller = listing.New(listing.Options[attendance.Record]{
		List:         s.list,
		Create:       s.create,
		Delete:       s.delete,
		IDOf:         func(r attendance.Record) int64 { return r.ID },
		PageSize:     pageSize,
		Rules:        attendance.Rules(),
		DefaultForm:  attendance.DefaultForm,
		CheckFilters: attendance.CheckFilters,
		Ready:        func() bool { return s.Selected() != "" },
	})
	return s
}

func (s *AttendanceServiceImpl) Open(ctx context.Context, q attendance.ViewQuery) error {
	if err := s.LoadEmployees(ctx); err != nil {
		slog.WarnContext(ctx, "Failed to fetch employees", "session_id", s.sessionID, "error", err)
	}

	code := s.SelectFromQuery(q.EmployeeID)
	if code == "" {
		s.Reset()
		return nil
	}

	filters := map[string]string{
		attendance.FieldStartDate: q.StartDate,
		attendance.FieldEndDate:   q.EndDate,
	}
	if q.Page > 1 || sameFilters(filters, s.Snapshot().Filters) {
		// Invalid dates are reported on the snapshot; the last valid filters stay applied.
		_ = s.SetFilters(filters)
		return s.Fetch(ctx, q.Page)
	}

	if q.StartDate == "" && q.EndDate == "" {
		return s.ClearFilters(ctx)
	}
	if err := s.SetFilters(filters); err != nil {
		return s.Fetch(ctx, q.Page)
	}
	return s.ApplyFilters(ctx)
}

func sameFilters(a, b map[string]string) bool {
	for _, key := range []string{attendance.FieldStartDate, attendance.FieldEndDate} {
		if a[key] != b[key] {
			return false
		}
	}
	return true
}

func (s *AttendanceServiceImpl) LoadEmployees(ctx context.Context) error {
	res, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{Page: 1, PageSize: attendance.EmployeeOptionsPageSize})
	if err != nil {
		return err
	}

	options := make([]employee.Option, 0, len(res.Results))
	for _, e := range res.Results {
		options = append(options, e.Option())
	}

	s.mu.Lock()
	s.employees = options
	s.mu.Unlock()
	return nil
}

func (s *AttendanceServiceImpl) EmployeeOptions() []employee.Option {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.employees)
}

func (s *AttendanceServiceImpl) SelectFromQuery(code string) string {
	s.mu.RLock()
	known := false
	for _, opt := range s.employees {
		if opt.Value == code {
			known = true
			break
		}
	}
	s.mu.RUnlock()

	if !known {
		code = ""
	}
	s.setSelected(code)
	return code
}

func (s *AttendanceServiceImpl) Select(ctx context.Context, code string) error {
	s.setSelected(code)
	if code == "" {
		s.Reset()
		return nil
	}
	return s.Fetch(ctx, 1)
}

// setSelected records code and, when it differs from the current selection,
// drops the previous employee's rows and pending delete. The controller lock
// is never taken while s.mu is held.
func (s *AttendanceServiceImpl) setSelected(code string) {
	s.mu.Lock()
	changed := s.selected != code
	s.selected = code
	s.mu.Unlock()

	if changed {
		s.Reset()
	}
}

func (s *AttendanceServiceImpl) Selected() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

func (s *AttendanceServiceImpl) SelectedLabel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, opt := range s.employees {
		if opt.Value == s.selected {
			return opt.Label
		}
	}
	return ""
}

func (s *AttendanceServiceImpl) Stats() attendance.Stats {
	snap := s.Snapshot()
	stats := attendance.Stats{Total: snap.Page.Count}
	for _, r := range snap.Rows {
		switch r.Status {
		case attendance.StatusPresent:
			stats.Present++
		case attendance.StatusAbsent:
			stats.Absent++
		}
	}
	if n := len(snap.Rows); n > 0 {
		stats.Rate = decimal.NewFromInt(int64(stats.Present)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(n))).
			StringFixed(1)
	}
	return stats
}

func (s *AttendanceServiceImpl) list(ctx context.Context, q listing.Query) (attendance.ListAttendanceResponse, error) {
	filter := attendance.NewAttendanceFilter(q.Page, q.PageSize, q.Filters)
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	return s.attendanceRepo.List(ctx, s.Selected(), filter)
}

func (s *AttendanceServiceImpl) create(ctx context.Context, values map[string]string) error {
	code := s.Selected()
	if code == "" {
		return attendance.ErrNoEmployeeSelected
	}
	req, err := attendance.NewCreateAttendanceRequest(values)
	if err != nil {
		return err
	}
	created, err := s.attendanceRepo.Create(ctx, code, req)
	if err != nil {
		return err
	}
	s.publish("created", created.ID)
	return nil
}

func (s *AttendanceServiceImpl) delete(ctx context.Context, id int64) error {
	if err := s.attendanceRepo.Delete(ctx, s.Selected(), id); err != nil {
		return err
	}
	s.publish("deleted", id)
	return nil
}

func (s *AttendanceServiceImpl) publish(action string, id int64) {
	if s.events == nil {
		return
	}
	s.events.Publish(s.sessionID, sse.Event{
		Event: sse.EventRefresh,
		Data:  sse.RefreshData{Screen: Screen, Action: action, ID: id},
	})
}
