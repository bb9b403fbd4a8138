package department

import (
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/listing"
)

// DepartmentService drives the departments screen of one session.
type DepartmentService interface {
	listing.Screen[Department]
}
