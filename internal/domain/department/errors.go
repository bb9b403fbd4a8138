package department

import "errors"

var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrInvalidID          = errors.New("invalid department id")
)
