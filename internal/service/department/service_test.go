package department

import (
	"context"
	"sync"
	"testing"

	"github.com/cmlabs-hris/hrms-web-go/internal/domain/department"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/apierror"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDepartmentRepo struct {
	mu        sync.Mutex
	rows      []department.Department
	listCalls []department.DepartmentFilter
	created   []department.CreateDepartmentRequest
	deleteErr error
	nextID    int64
}

func (f *fakeDepartmentRepo) List(_ context.Context, filter department.DepartmentFilter) (department.ListDepartmentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, filter)

	start := (filter.Page - 1) * filter.PageSize
	end := min(start+filter.PageSize, len(f.rows))
	var results []department.Department
	if start < len(f.rows) {
		results = append(results, f.rows[start:end]...)
	}
	return department.ListDepartmentResponse{Count: len(f.rows), Results: results}, nil
}

func (f *fakeDepartmentRepo) Create(_ context.Context, req department.CreateDepartmentRequest) (department.Department, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, req)
	f.nextID++
	d := department.Department{ID: f.nextID, Name: req.Name}
	f.rows = append(f.rows, d)
	return d, nil
}

func (f *fakeDepartmentRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, d := range f.rows {
		if d.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return apierror.Response(404, "Not found", nil)
}

func seeded(n int) *fakeDepartmentRepo {
	repo := &fakeDepartmentRepo{}
	for i := 1; i <= n; i++ {
		repo.rows = append(repo.rows, department.Department{ID: int64(i), Name: "Dept"})
	}
	repo.nextID = int64(n)
	return repo
}

func TestCreate_ClosesDialogResetsAndRefreshesCurrentPage(t *testing.T) {
	repo := seeded(15)
	hub := sse.NewHub()
	events, cleanup := hub.Subscribe("session-1")
	defer cleanup()
	svc := NewDepartmentService(repo, hub, "session-1", 10)
	ctx := context.Background()

	require.NoError(t, svc.Fetch(ctx, 2))
	svc.OpenCreate()
	require.NoError(t, svc.Create(ctx, map[string]string{"name": "Engineering"}))

	s := svc.Snapshot()
	assert.False(t, s.ModalOpen)
	assert.Equal(t, "", s.Form["name"])
	assert.Equal(t, []department.CreateDepartmentRequest{{Name: "Engineering"}}, repo.created)
	require.Len(t, repo.listCalls, 2)
	assert.Equal(t, 2, repo.listCalls[1].Page)
	assert.Equal(t, 16, s.Page.Count)
	assert.Equal(t, "Engineering", s.Rows[len(s.Rows)-1].Name)

	ev := <-events
	assert.Equal(t, sse.EventRefresh, ev.Event)
	assert.Equal(t, sse.RefreshData{Screen: Screen, Action: "created", ID: 16}, ev.Data)
}

func TestCreate_InvalidNameNeverCallsAPI(t *testing.T) {
	repo := seeded(0)
	svc := NewDepartmentService(repo, nil, "s", 10)

	err := svc.Create(context.Background(), map[string]string{"name": " "})

	require.Error(t, err)
	assert.Empty(t, repo.created)
	assert.Equal(t, "Department name is required", svc.Snapshot().FormError.FieldError("name"))
}

func TestDelete_FailureKeepsConfirmation(t *testing.T) {
	repo := seeded(3)
	repo.deleteErr = apierror.Response(400, "Cannot delete department with employees", nil)
	svc := NewDepartmentService(repo, nil, "s", 10)
	ctx := context.Background()
	require.NoError(t, svc.Fetch(ctx, 1))

	svc.RequestDelete(2)
	err := svc.Delete(ctx)

	require.Error(t, err)
	s := svc.Snapshot()
	require.NotNil(t, s.PendingDelete)
	assert.Equal(t, int64(2), s.PendingDelete.ID)
	assert.Equal(t, "Cannot delete department with employees", s.DeleteError.Summary())
	assert.Len(t, s.Rows, 3)
}

func TestDelete_LastRowOfPageKeepsPage(t *testing.T) {
	repo := seeded(11)
	svc := NewDepartmentService(repo, nil, "s", 10)
	ctx := context.Background()
	require.NoError(t, svc.Fetch(ctx, 2))

	svc.RequestDelete(11)
	require.NoError(t, svc.Delete(ctx))

	s := svc.Snapshot()
	assert.Equal(t, 2, s.Page.Page)
	assert.Empty(t, s.Rows)
	assert.Equal(t, 10, s.Page.Count)
	assert.False(t, s.Pager.Visible)
}
