package employee

import (
	"strings"
	"time"
)

type Employee struct {
	ID             int64     `json:"id"`
	EmployeeID     string    `json:"employee_id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Department     int64     `json:"department"`
	DepartmentName string    `json:"department_name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Initials is the avatar text: the first letter of up to two name parts.
func (e Employee) Initials() string {
	var out []rune
	for _, part := range strings.Fields(e.FullName) {
		r := []rune(part)
		out = append(out, r[0])
		if len(out) == 2 {
			break
		}
	}
	return strings.ToUpper(string(out))
}

// Option is one entry of an employee selector, keyed by the external code.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func (e Employee) Option() Option {
	return Option{Value: e.EmployeeID, Label: e.FullName + " (" + e.EmployeeID + ")"}
}
