package attendance

import (
	"context"

	"github.com/cmlabs-hris/hrms-web-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/listing"
)

// ViewQuery is the attendance screen intent carried in the URL.
type ViewQuery struct {
	EmployeeID string
	Page       int
	StartDate  string
	EndDate    string
}

// AttendanceService drives the attendance screen of one session. Records are
// only fetched once an employee is selected.
type AttendanceService interface {
	listing.Screen[Record]

	// Open loads the employee selector, derives the selection from q and
	// fetches the requested page. Changed date filters are applied from page
	// 1 unless q asks for a later page.
	Open(ctx context.Context, q ViewQuery) error

	// LoadEmployees refreshes the employee selector options.
	LoadEmployees(ctx context.Context) error
	EmployeeOptions() []employee.Option

	// SelectFromQuery preselects code when it matches a loaded employee.
	// Unknown codes clear the selection. It returns the effective selection.
	SelectFromQuery(code string) string

	// Select changes the selection. An empty code empties the list locally
	// without calling the API; any other code fetches page 1.
	Select(ctx context.Context, code string) error

	Selected() string
	SelectedLabel() string

	// Stats are computed over the displayed page.
	Stats() Stats
}
