package attendance

import "context"

// AttendanceRepository is the upstream API surface for attendance. Every call
// is scoped to one employee by external code.
type AttendanceRepository interface {
	List(ctx context.Context, employeeCode string, filter AttendanceFilter) (ListAttendanceResponse, error)
	Create(ctx context.Context, employeeCode string, req CreateAttendanceRequest) (Record, error)
	Delete(ctx context.Context, employeeCode string, id int64) error
}
