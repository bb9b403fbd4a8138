package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.com", "test@example.com", "user.name+1@domain.co"}
	invalid := []string{"not-an-email", "test@", "@example.com", "test@domain", "a b@c.com", "a@@b.com", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31", "2024-02-29"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", "2023-02-29", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestEmail(t *testing.T) {
	assert.Equal(t, "", Email("a@b.com"))
	assert.Equal(t, "", Email("  a@b.com  "))
	assert.Equal(t, "Please enter a valid email address", Email("not-an-email"))
	assert.Equal(t, "Email is required", Email(""))
	assert.Equal(t, "Email is required", Email("   "))
}

func TestEmployeeID(t *testing.T) {
	assert.Equal(t, "Employee ID must be at least 2 characters", EmployeeID("E"))
	assert.Equal(t, "Employee ID must be at least 2 characters", EmployeeID(" E "))
	assert.Equal(t, "Employee ID is required", EmployeeID(""))
	assert.Equal(t, "", EmployeeID("EMP001"))
}

func TestNameRules(t *testing.T) {
	assert.Equal(t, "Full name is required", FullName(" "))
	assert.Equal(t, "Full name must be at least 2 characters", FullName("J"))
	assert.Equal(t, "", FullName("Jo"))

	assert.Equal(t, "Department name is required", DepartmentName(""))
	assert.Equal(t, "Department name must be at least 2 characters", DepartmentName("H"))
	assert.Equal(t, "", DepartmentName("Engineering"))
}

func TestSelectionRules(t *testing.T) {
	assert.Equal(t, "Please select a department", Department(""))
	assert.Equal(t, "", Department("3"))
	assert.Equal(t, "Please select an employee", Employee(""))
	assert.Equal(t, "", Employee("EMP001"))
	assert.Equal(t, "Name is required", Required("Name")("  "))
	assert.Equal(t, "", Required("Name")("x"))
}

func TestDate(t *testing.T) {
	rule := Date("Date")
	assert.Equal(t, "Date is required", rule(""))
	assert.Equal(t, "Please enter a valid date", rule("yesterday"))
	assert.Equal(t, "Please enter a valid date", rule("2024-02-30"))
	assert.Equal(t, "", rule("2024-02-29"))
	assert.Equal(t, "", rule("2024-01-15T10:30:00Z"))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "", Status("PRESENT"))
	assert.Equal(t, "", Status("ABSENT"))
	assert.Equal(t, "Please select a valid status", Status("present"))
	assert.Equal(t, "Please select a valid status", Status(""))
	assert.Equal(t, "Please select a valid status", Status("LATE"))
}

func TestValidateForm_NoErrors(t *testing.T) {
	errs := ValidateForm(map[string]string{"name": "Engineering"}, Rules{
		"name": {DepartmentName},
	})
	assert.Nil(t, errs)
}

func TestValidateForm_StopsAtFirstFailingRule(t *testing.T) {
	calls := 0
	counting := func(value string) string {
		calls++
		return "should not run"
	}

	errs := ValidateForm(map[string]string{"full_name": ""}, Rules{
		"full_name": {Required("Full name"), counting},
	})

	assert.Len(t, errs, 1)
	assert.Equal(t, "Full name is required", errs.ToMap()["full_name"])
	assert.Equal(t, 0, calls)
}

func TestValidateForm_EvaluatesEveryField(t *testing.T) {
	values := map[string]string{
		"employee_id": "E",
		"full_name":   "",
		"email":       "not-an-email",
		"department":  "",
	}
	rules := Rules{
		"employee_id": {EmployeeID},
		"full_name":   {FullName},
		"email":       {Email},
		"department":  {Department},
	}

	errs := ValidateForm(values, rules)

	assert.Equal(t, map[string]string{
		"department":  "Please select a department",
		"email":       "Please enter a valid email address",
		"employee_id": "Employee ID must be at least 2 characters",
		"full_name":   "Full name is required",
	}, errs.ToMap())
	assert.Equal(t, "department", errs[0].Field)
	assert.Equal(t, "full_name", errs[3].Field)
}

func TestValidateForm_Idempotent(t *testing.T) {
	values := map[string]string{"date": "bad", "status": "LATE"}
	rules := Rules{
		"date":   {Date("Date")},
		"status": {Status},
	}

	first := ValidateForm(values, rules)
	second := ValidateForm(values, rules)

	assert.Equal(t, first, second)
}

func TestDateRange(t *testing.T) {
	assert.Nil(t, DateRange("start_date", "", "end_date", ""))
	assert.Nil(t, DateRange("start_date", "2024-01-01", "end_date", "2024-01-31"))
	assert.Nil(t, DateRange("start_date", "2024-01-01", "end_date", "2024-01-01"))

	errs := DateRange("start_date", "2024-02-01", "end_date", "2024-01-01")
	assert.Equal(t, map[string]string{"end_date": "End date must be on or after start date"}, errs.ToMap())

	errs = DateRange("start_date", "nope", "end_date", "")
	assert.Equal(t, map[string]string{"start_date": "Please enter a valid start date"}, errs.ToMap())
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Errorf("IsInSlice('a') = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Errorf("IsInSlice('d') = true, want false")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "name", Message: "required"},
	}
	got := errs.Error()
	want := "email: invalid; name: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}
