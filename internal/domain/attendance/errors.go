package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidID          = errors.New("invalid attendance id")
	ErrNoEmployeeSelected = errors.New("no employee selected")
)
