package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-web-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-web-go/internal/domain/department"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWrite_Departments(t *testing.T) {
	sheet := Departments([]department.Department{
		{ID: 1, Name: "Engineering"},
		{ID: 2, Name: "HR"},
	}, 3)

	buf, err := Write(sheet)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Departments"}, f.GetSheetList())
	rows, err := f.GetRows("Departments")
	require.NoError(t, err)
	assert.Equal(t, "Departments (page 3)", rows[0][0])
	assert.Equal(t, []string{"ID", "Name", "Created"}, rows[2])
	require.Len(t, rows, 5)
	assert.Equal(t, "1", rows[3][0])
	assert.Equal(t, "Engineering", rows[3][1])
	assert.Equal(t, "HR", rows[4][1])
}

func TestAttendanceSheet(t *testing.T) {
	sheet := Attendance([]attendance.Record{
		{Date: "2024-03-01", Status: attendance.StatusAbsent, EmployeeID: "EMP001", EmployeeName: "Jane Doe"},
	}, "Jane Doe (EMP001)", 1)

	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "Absent", sheet.Rows[0][1])
	assert.Equal(t, "Attendance for Jane Doe (EMP001) (page 1)", sheet.Title)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "employees_20240315.xlsx", Filename("employees", time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)))
}
