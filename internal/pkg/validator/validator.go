package validator

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// Rule checks a single form value. It returns an empty string when the value
// is valid, otherwise the message to show next to the input.
type Rule func(value string) string

// Rules maps a form field to the ordered rules applied to it.
type Rules map[string][]Rule

// ValidateForm applies each field's rules in order and keeps the first failing
// message per field. Every declared field is evaluated. It returns nil when no
// field failed; errors are sorted by field name.
func ValidateForm(values map[string]string, rules Rules) ValidationErrors {
	var errs ValidationErrors
	for field, fieldRules := range rules {
		value := values[field]
		for _, rule := range fieldRules {
			if msg := rule(value); msg != "" {
				errs = append(errs, ValidationError{Field: field, Message: msg})
				break
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}

	sort.Slice(errs, func(i, j int) bool {
		return errs[i].Field < errs[j].Field
	})
	return errs
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// IsValidDateTime checks if a string is a valid ISO8601 timestamp.
// Accepts formats like: "2024-01-15T10:30:00Z" or "2024-01-15T10:30:00+07:00"
func IsValidDateTime(dateTimeStr string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, dateTimeStr)
	if err == nil {
		return t, true
	}

	t, err = time.Parse(time.RFC3339Nano, dateTimeStr)
	if err == nil {
		return t, true
	}

	return time.Time{}, false
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// ==================== RULES ====================

// Email requires a value shaped like local@domain.tld.
func Email(value string) string {
	if IsEmpty(value) {
		return "Email is required"
	}
	if !IsValidEmail(strings.TrimSpace(value)) {
		return "Please enter a valid email address"
	}
	return ""
}

// Required returns a rule reporting "<fieldName> is required" for blank values.
func Required(fieldName string) Rule {
	return func(value string) string {
		if IsEmpty(value) {
			return fieldName + " is required"
		}
		return ""
	}
}

// Department requires a selection from the department options.
func Department(value string) string {
	if value == "" {
		return "Please select a department"
	}
	return ""
}

// Employee requires a selection from the employee options.
func Employee(value string) string {
	if value == "" {
		return "Please select an employee"
	}
	return ""
}

func minLength(value string, n int, label string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return label + " is required"
	}
	if len([]rune(trimmed)) < n {
		return label + " must be at least " + Itoa(n) + " characters"
	}
	return ""
}

func EmployeeID(value string) string {
	return minLength(value, 2, "Employee ID")
}

func FullName(value string) string {
	return minLength(value, 2, "Full name")
}

func DepartmentName(value string) string {
	return minLength(value, 2, "Department name")
}

// Date returns a rule requiring a calendar date (YYYY-MM-DD or RFC 3339).
func Date(fieldName string) Rule {
	return func(value string) string {
		if value == "" {
			return fieldName + " is required"
		}
		if _, ok := ParseDate(value); !ok {
			return "Please enter a valid " + strings.ToLower(fieldName)
		}
		return ""
	}
}

// Status accepts exactly PRESENT or ABSENT.
func Status(value string) string {
	if !IsInSlice(value, []string{"PRESENT", "ABSENT"}) {
		return "Please select a valid status"
	}
	return ""
}

// ParseDate accepts a plain calendar date or a full timestamp.
func ParseDate(value string) (time.Time, bool) {
	if t, ok := IsValidDate(value); ok {
		return t, true
	}
	return IsValidDateTime(value)
}

// DateRange validates optional start/end filter dates. Blank dates are allowed;
// a present date must parse, and end must not precede start.
func DateRange(startField, start, endField, end string) ValidationErrors {
	var errs ValidationErrors
	var from, to time.Time
	var fromOK, toOK bool

	if start != "" {
		if from, fromOK = IsValidDate(start); !fromOK {
			errs = append(errs, ValidationError{Field: startField, Message: "Please enter a valid start date"})
		}
	}
	if end != "" {
		if to, toOK = IsValidDate(end); !toOK {
			errs = append(errs, ValidationError{Field: endField, Message: "Please enter a valid end date"})
		}
	}
	if fromOK && toOK && to.Before(from) {
		errs = append(errs, ValidationError{Field: endField, Message: "End date must be on or after start date"})
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Itoa converts an integer to a string.
func Itoa(i int) string {
	return strconv.Itoa(i)
}
