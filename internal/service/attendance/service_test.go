package attendance

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-web-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-web-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-web-go/internal/repository/restapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	mu      sync.Mutex
	rows    map[string][]attendance.Record
	lists   []string
	filters []attendance.AttendanceFilter
	deletes []string
}

func (f *fakeAttendanceRepo) List(_ context.Context, code string, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, code)
	f.filters = append(f.filters, filter)
	rows := f.rows[code]
	return attendance.ListAttendanceResponse{Count: len(rows), Results: rows}, nil
}

func (f *fakeAttendanceRepo) Create(_ context.Context, code string, req attendance.CreateAttendanceRequest) (attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := attendance.Record{ID: int64(len(f.rows[code]) + 100), EmployeeID: code, Date: req.Date, Status: req.Status}
	f.rows[code] = append(f.rows[code], r)
	return r, nil
}

func (f *fakeAttendanceRepo) Delete(_ context.Context, code string, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, code)
	return nil
}

type fakeEmployeeRepo struct {
	rows  []employee.Employee
	sizes []int
}

func (f *fakeEmployeeRepo) List(_ context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	f.sizes = append(f.sizes, filter.PageSize)
	return employee.ListEmployeeResponse{Count: len(f.rows), Results: f.rows}, nil
}

func (f *fakeEmployeeRepo) GetByID(context.Context, int64) (employee.Employee, error) {
	return employee.Employee{}, nil
}

func (f *fakeEmployeeRepo) Create(context.Context, employee.CreateEmployeeRequest) (employee.Employee, error) {
	return employee.Employee{}, nil
}

func (f *fakeEmployeeRepo) Delete(context.Context, int64) error { return nil }

func staff() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{rows: []employee.Employee{
		{ID: 1, EmployeeID: "EMP001", FullName: "Jane Doe"},
		{ID: 2, EmployeeID: "EMP002", FullName: "John Roe"},
	}}
}

func TestOpen_NoSelectionSkipsAPI(t *testing.T) {
	records := &fakeAttendanceRepo{rows: map[string][]attendance.Record{}}
	svc := NewAttendanceService(records, staff(), nil, "s", 10)

	require.NoError(t, svc.Open(context.Background(), attendance.ViewQuery{Page: 1}))
	require.NoError(t, svc.Fetch(context.Background(), 1))

	s := svc.Snapshot()
	assert.Empty(t, s.Rows)
	assert.Equal(t, 0, s.Page.Count)
	assert.Empty(t, records.lists)
	assert.Equal(t, "", svc.Selected())
}

func TestOpen_SelectionFromQuery(t *testing.T) {
	records := &fakeAttendanceRepo{rows: map[string][]attendance.Record{
		"EMP002": {{ID: 1, EmployeeID: "EMP002", Status: attendance.StatusPresent}},
	}}
	employees := staff()
	svc := NewAttendanceService(records, employees, nil, "s", 10)

	require.NoError(t, svc.Open(context.Background(), attendance.ViewQuery{EmployeeID: "EMP002", Page: 1}))

	assert.Equal(t, "EMP002", svc.Selected())
	assert.Equal(t, "John Roe (EMP002)", svc.SelectedLabel())
	assert.Equal(t, []string{"EMP002"}, records.lists)
	assert.Equal(t, []int{attendance.EmployeeOptionsPageSize}, employees.sizes)
	assert.Len(t, svc.Snapshot().Rows, 1)
}

func TestOpen_UnknownCodeIgnored(t *testing.T) {
	records := &fakeAttendanceRepo{rows: map[string][]attendance.Record{}}
	svc := NewAttendanceService(records, staff(), nil, "s", 10)

	require.NoError(t, svc.Open(context.Background(), attendance.ViewQuery{EmployeeID: "EMP999", Page: 1}))

	assert.Equal(t, "", svc.Selected())
	assert.Empty(t, records.lists)
}

func TestSelect_ChangesAndClears(t *testing.T) {
	records := &fakeAttendanceRepo{rows: map[string][]attendance.Record{
		"EMP001": {{ID: 1, Status: attendance.StatusPresent}, {ID: 2, Status: attendance.StatusAbsent}},
	}}
	svc := NewAttendanceService(records, staff(), nil, "s", 10)
	ctx := context.Background()
	require.NoError(t, svc.LoadEmployees(ctx))

	require.NoError(t, svc.Select(ctx, "EMP001"))
	assert.Equal(t, 2, svc.Snapshot().Page.Count)
	svc.RequestDelete(1)

	require.NoError(t, svc.Select(ctx, ""))
	s := svc.Snapshot()
	assert.Empty(t, s.Rows)
	assert.Equal(t, 0, s.Page.Count)
	assert.Nil(t, s.PendingDelete)
	assert.Equal(t, []string{"EMP001"}, records.lists)
}

func TestOpen_InvalidDateRangeKeepsPreviousFilters(t *testing.T) {
	records := &fakeAttendanceRepo{rows: map[string][]attendance.Record{}}
	svc := NewAttendanceService(records, staff(), nil, "s", 10)
	ctx := context.Background()

	require.NoError(t, svc.Open(ctx, attendance.ViewQuery{EmployeeID: "EMP001", Page: 1, StartDate: "2024-01-01"}))
	require.NoError(t, svc.Open(ctx, attendance.ViewQuery{EmployeeID: "EMP001", Page: 1, StartDate: "2024-02-01", EndDate: "2024-01-01"}))

	require.Len(t, records.filters, 2)
	require.NotNil(t, records.filters[1].StartDate)
	assert.Equal(t, "2024-01-01", *records.filters[1].StartDate)
	assert.Nil(t, records.filters[1].EndDate)
	assert.Equal(t, "End date must be on or after start date", svc.Snapshot().FilterError.FieldError("end_date"))
}

func TestOpen_FilterChangesApplyFromFirstPage(t *testing.T) {
	rows := make([]attendance.Record, 15)
	for i := range rows {
		rows[i] = attendance.Record{ID: int64(i + 1), EmployeeID: "EMP001", Status: attendance.StatusPresent}
	}
	records := &fakeAttendanceRepo{rows: map[string][]attendance.Record{"EMP001": rows}}
	svc := NewAttendanceService(records, staff(), nil, "s", 10)
	ctx := context.Background()

	require.NoError(t, svc.Open(ctx, attendance.ViewQuery{EmployeeID: "EMP001", Page: 2}))
	require.NoError(t, svc.Open(ctx, attendance.ViewQuery{EmployeeID: "EMP001", Page: 1, StartDate: "2024-03-01"}))
	require.NoError(t, svc.Open(ctx, attendance.ViewQuery{EmployeeID: "EMP001", Page: 2, StartDate: "2024-03-01"}))
	require.NoError(t, svc.Open(ctx, attendance.ViewQuery{EmployeeID: "EMP001", Page: 1}))

	require.Len(t, records.filters, 4)
	assert.Equal(t, 2, records.filters[0].Page)
	assert.Nil(t, records.filters[0].StartDate)

	assert.Equal(t, 1, records.filters[1].Page)
	require.NotNil(t, records.filters[1].StartDate)
	assert.Equal(t, "2024-03-01", *records.filters[1].StartDate)

	assert.Equal(t, 2, records.filters[2].Page)
	require.NotNil(t, records.filters[2].StartDate)

	assert.Equal(t, 1, records.filters[3].Page)
	assert.Nil(t, records.filters[3].StartDate)
	assert.False(t, svc.Snapshot().HasFilters())
}

func TestStats_PageLocal(t *testing.T) {
	records := &fakeAttendanceRepo{rows: map[string][]attendance.Record{
		"EMP001": {
			{ID: 1, Status: attendance.StatusPresent},
			{ID: 2, Status: attendance.StatusPresent},
			{ID: 3, Status: attendance.StatusAbsent},
		},
	}}
	svc := NewAttendanceService(records, staff(), nil, "s", 10)
	require.NoError(t, svc.Open(context.Background(), attendance.ViewQuery{EmployeeID: "EMP001", Page: 1}))

	assert.Equal(t, attendance.Stats{Total: 3, Present: 2, Absent: 1, Rate: "66.7"}, svc.Stats())

	require.NoError(t, svc.Select(context.Background(), ""))
	assert.Equal(t, attendance.Stats{}, svc.Stats())
}

func TestCreate_UsesSelectedEmployee(t *testing.T) {
	records := &fakeAttendanceRepo{rows: map[string][]attendance.Record{}}
	svc := NewAttendanceService(records, staff(), nil, "s", 10)
	ctx := context.Background()
	require.NoError(t, svc.Open(ctx, attendance.ViewQuery{EmployeeID: "EMP001", Page: 1}))

	require.NoError(t, svc.Create(ctx, map[string]string{"date": "2024-03-01", "status": "ABSENT"}))

	rows := records.rows["EMP001"]
	require.Len(t, rows, 1)
	assert.Equal(t, attendance.StatusAbsent, rows[0].Status)
	form := svc.Snapshot().Form
	assert.Equal(t, time.Now().Format("2006-01-02"), form["date"])
	assert.Equal(t, "PRESENT", form["status"])
}

func TestCreate_InvalidStatus(t *testing.T) {
	records := &fakeAttendanceRepo{rows: map[string][]attendance.Record{}}
	svc := NewAttendanceService(records, staff(), nil, "s", 10)
	ctx := context.Background()
	require.NoError(t, svc.Open(ctx, attendance.ViewQuery{EmployeeID: "EMP001", Page: 1}))

	err := svc.Create(ctx, map[string]string{"date": "", "status": "LATE"})

	require.Error(t, err)
	formErr := svc.Snapshot().FormError
	assert.Equal(t, "Date is required", formErr.FieldError("date"))
	assert.Equal(t, "Please select a valid status", formErr.FieldError("status"))
	assert.Empty(t, records.rows["EMP001"])
}

// The delete goes through the real API client so the request line is checked.
func TestDelete_IssuesScopedRequestAndRefetchesSamePage(t *testing.T) {
	var mu sync.Mutex
	var requests []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests = append(requests, r.Method+" "+r.URL.Path+"?"+r.URL.RawQuery)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case strings.HasSuffix(r.URL.Path, "/attendance/"):
			_ = json.NewEncoder(w).Encode(map[string]any{
				"count":   25,
				"results": []map[string]any{{"id": 7, "employee_id": "EMP001", "date": "2024-03-01", "status": "PRESENT"}},
			})
		default:
			_ = json.NewEncoder(w).Encode(map[string]any{
				"count":   1,
				"results": []map[string]any{{"id": 1, "employee_id": "EMP001", "full_name": "Jane Doe"}},
			})
		}
	}))
	defer srv.Close()

	client := restapi.NewClient(srv.URL, 5*time.Second, slog.New(slog.DiscardHandler))
	svc := NewAttendanceService(restapi.NewAttendanceRepository(client), restapi.NewEmployeeRepository(client), nil, "s", 10)
	ctx := context.Background()

	require.NoError(t, svc.Open(ctx, attendance.ViewQuery{EmployeeID: "EMP001", Page: 3}))
	svc.RequestDelete(7)
	require.NoError(t, svc.Delete(ctx))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"GET /employees/?page=1&page_size=100",
		"GET /employees/EMP001/attendance/?page=3&page_size=10",
		"DELETE /employees/EMP001/attendance/7/?",
		"GET /employees/EMP001/attendance/?page=3&page_size=10",
	}, requests)
	assert.Equal(t, 3, svc.Snapshot().Page.Page)
}
