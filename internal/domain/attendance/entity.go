package attendance

import (
	"time"

	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/validator"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusAbsent  Status = "ABSENT"
)

func (s Status) Label() string {
	switch s {
	case StatusPresent:
		return "Present"
	case StatusAbsent:
		return "Absent"
	default:
		return string(s)
	}
}

// StatusOption is one entry of the status selector.
type StatusOption struct {
	Value Status `json:"value"`
	Label string `json:"label"`
}

var StatusOptions = []StatusOption{
	{Value: StatusPresent, Label: StatusPresent.Label()},
	{Value: StatusAbsent, Label: StatusAbsent.Label()},
}

// Record is one attendance entry. Date is a calendar date (YYYY-MM-DD);
// the API may also send a full timestamp.
type Record struct {
	ID            int64     `json:"id"`
	Employee      int64     `json:"employee"`
	EmployeeID    string    `json:"employee_id"`
	EmployeeName  string    `json:"employee_name"`
	EmployeeEmail string    `json:"employee_email"`
	Date          string    `json:"date"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// DisplayDate renders Date as "Jan 2, 2006", falling back to the raw value.
func (r Record) DisplayDate() string {
	if t, ok := validator.ParseDate(r.Date); ok {
		return t.Format("Jan 2, 2006")
	}
	return r.Date
}
