package attendance

import (
	"time"

	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/validator"
)

const (
	FieldDate      = "date"
	FieldStatus    = "status"
	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"

	// EmployeeOptionsPageSize is how many employees the selector loads.
	EmployeeOptionsPageSize = 100
)

// FormFields are the create-form inputs rendered with inline errors.
var FormFields = []string{FieldDate, FieldStatus}

type AttendanceFilter struct {
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}
	f.PageSize = pagination.ClampPageSize(f.PageSize)

	errs = append(errs, validator.DateRange(FieldStartDate, deref(f.StartDate), FieldEndDate, deref(f.EndDate))...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// NewAttendanceFilter builds a filter from list query values; blank dates are omitted.
func NewAttendanceFilter(page, pageSize int, filters map[string]string) AttendanceFilter {
	f := AttendanceFilter{Page: page, PageSize: pageSize}
	if v := filters[FieldStartDate]; v != "" {
		f.StartDate = &v
	}
	if v := filters[FieldEndDate]; v != "" {
		f.EndDate = &v
	}
	return f
}

// CheckFilters validates the date filters of the attendance list.
func CheckFilters(filters map[string]string) validator.ValidationErrors {
	return validator.DateRange(FieldStartDate, filters[FieldStartDate], FieldEndDate, filters[FieldEndDate])
}

type CreateAttendanceRequest struct {
	Date   string `json:"date"`
	Status Status `json:"status"`
}

func Rules() validator.Rules {
	return validator.Rules{
		FieldDate:   {validator.Date("Date")},
		FieldStatus: {validator.Status},
	}
}

// DefaultForm marks today as present.
func DefaultForm() map[string]string {
	return map[string]string{
		FieldDate:   time.Now().Format("2006-01-02"),
		FieldStatus: string(StatusPresent),
	}
}

func NewCreateAttendanceRequest(values map[string]string) (CreateAttendanceRequest, error) {
	if errs := validator.ValidateForm(values, Rules()); errs != nil {
		return CreateAttendanceRequest{}, errs
	}
	return CreateAttendanceRequest{
		Date:   values[FieldDate],
		Status: Status(values[FieldStatus]),
	}, nil
}

type ListAttendanceResponse = pagination.Page[Record]

// Stats are figures over the rows of the displayed page only, plus the
// total count across all pages.
type Stats struct {
	Total   int    `json:"total"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
	Rate    string `json:"rate"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
