package restapi

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cmlabs-hris/hrms-web-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/apierror"
)

type attendanceRepositoryImpl struct {
	client *Client
}

func NewAttendanceRepository(client *Client) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{client: client}
}

func attendancePath(employeeCode string) string {
	return "/employees/" + url.PathEscape(employeeCode) + "/attendance/"
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, employeeCode string, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if employeeCode == "" {
		return attendance.ListAttendanceResponse{}, apierror.Local(attendance.ErrNoEmployeeSelected)
	}

	q := pageQuery(filter.Page, filter.PageSize)
	if filter.StartDate != nil && *filter.StartDate != "" {
		q.Set("start_date", *filter.StartDate)
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		q.Set("end_date", *filter.EndDate)
	}

	var page attendance.ListAttendanceResponse
	if err := r.client.get(ctx, attendancePath(employeeCode), q, &page); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	return page, nil
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, employeeCode string, req attendance.CreateAttendanceRequest) (attendance.Record, error) {
	if employeeCode == "" {
		return attendance.Record{}, apierror.Local(attendance.ErrNoEmployeeSelected)
	}
	var created attendance.Record
	if err := r.client.post(ctx, attendancePath(employeeCode), req, &created); err != nil {
		return attendance.Record{}, err
	}
	return created, nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Delete(ctx context.Context, employeeCode string, id int64) error {
	if employeeCode == "" {
		return apierror.Local(attendance.ErrNoEmployeeSelected)
	}
	if id <= 0 {
		return apierror.Local(fmt.Errorf("delete attendance %d: %w", id, attendance.ErrInvalidID))
	}
	return r.client.delete(ctx, attendancePath(employeeCode)+idPath(id)+"/")
}
