// Package export renders the rows of a list page as an .xlsx workbook.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-web-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-web-go/internal/domain/department"
	"github.com/cmlabs-hris/hrms-web-go/internal/domain/employee"
	"github.com/xuri/excelize/v2"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Column struct {
	Header string
	Width  float64
}

// Sheet is one worksheet: a bold header row followed by Rows.
type Sheet struct {
	Name    string
	Title   string
	Columns []Column
	Rows    [][]any
}

// Write renders the sheet into a workbook.
func Write(sheet Sheet) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheet.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if sheet.Name != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, fmt.Errorf("failed to delete default sheet: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	row := 1
	if sheet.Title != "" {
		if err := f.SetCellValue(sheet.Name, cell(1, row), sheet.Title); err != nil {
			return nil, err
		}
		row += 2
	}

	for i, col := range sheet.Columns {
		name, _ := excelize.ColumnNumberToName(i + 1)
		if col.Width > 0 {
			if err := f.SetColWidth(sheet.Name, name, name, col.Width); err != nil {
				return nil, err
			}
		}
		if err := f.SetCellValue(sheet.Name, cell(i+1, row), col.Header); err != nil {
			return nil, err
		}
	}
	if len(sheet.Columns) > 0 {
		if err := f.SetCellStyle(sheet.Name, cell(1, row), cell(len(sheet.Columns), row), headerStyle); err != nil {
			return nil, err
		}
	}

	for _, values := range sheet.Rows {
		row++
		for i, v := range values {
			if err := f.SetCellValue(sheet.Name, cell(i+1, row), v); err != nil {
				return nil, err
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

// Filename is "<prefix>_<YYYYMMDD>.xlsx".
func Filename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", prefix, now.Format("20060102"))
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

func Departments(rows []department.Department, page int) Sheet {
	s := Sheet{
		Name:  "Departments",
		Title: fmt.Sprintf("Departments (page %d)", page),
		Columns: []Column{
			{Header: "ID", Width: 8},
			{Header: "Name", Width: 30},
			{Header: "Created", Width: 20},
		},
	}
	for _, d := range rows {
		s.Rows = append(s.Rows, []any{d.ID, d.Name, formatTime(d.CreatedAt)})
	}
	return s
}

func Employees(rows []employee.Employee, page int) Sheet {
	s := Sheet{
		Name:  "Employees",
		Title: fmt.Sprintf("Employees (page %d)", page),
		Columns: []Column{
			{Header: "Employee ID", Width: 14},
			{Header: "Full Name", Width: 28},
			{Header: "Email", Width: 32},
			{Header: "Department", Width: 24},
			{Header: "Created", Width: 20},
		},
	}
	for _, e := range rows {
		s.Rows = append(s.Rows, []any{e.EmployeeID, e.FullName, e.Email, e.DepartmentName, formatTime(e.CreatedAt)})
	}
	return s
}

func Attendance(rows []attendance.Record, employeeLabel string, page int) Sheet {
	s := Sheet{
		Name:  "Attendance",
		Title: fmt.Sprintf("Attendance for %s (page %d)", employeeLabel, page),
		Columns: []Column{
			{Header: "Date", Width: 14},
			{Header: "Status", Width: 12},
			{Header: "Employee ID", Width: 14},
			{Header: "Employee", Width: 28},
			{Header: "Email", Width: 32},
		},
	}
	for _, r := range rows {
		s.Rows = append(s.Rows, []any{r.Date, r.Status.Label(), r.EmployeeID, r.EmployeeName, r.EmployeeEmail})
	}
	return s
}
