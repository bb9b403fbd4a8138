package http

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cmlabs-hris/hrms-web-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-web-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-web-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrms-web-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-web-go/internal/handler/http/view"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/apierror"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/export"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/listing"
)

const paramEmployeeID = "employee_id"

type AttendanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Select(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	renderer *view.Renderer
}

func NewAttendanceHandler(renderer *view.Renderer) AttendanceHandler {
	return &attendanceHandlerImpl{renderer: renderer}
}

type attendancePage struct {
	view.Base
	List          listing.Snapshot[attendance.Record] `json:"list"`
	Employees     []employee.Option                   `json:"employees"`
	Selected      string                              `json:"selected"`
	SelectedLabel string                              `json:"selected_label"`
	Stats         attendance.Stats                    `json:"stats"`
	StatusOptions []attendance.StatusOption           `json:"status_options"`
	StartDate     string                              `json:"start_date"`
	EndDate       string                              `json:"end_date"`
}

func (h *attendanceHandlerImpl) service(r *http.Request) attendance.AttendanceService {
	return middleware.Workspace(r.Context()).Attendance
}

func viewQuery(r *http.Request) attendance.ViewQuery {
	q := r.URL.Query()
	return attendance.ViewQuery{
		EmployeeID: q.Get(paramEmployeeID),
		Page:       getIntQueryParam(r, "page", 1),
		StartDate:  q.Get(attendance.FieldStartDate),
		EndDate:    q.Get(attendance.FieldEndDate),
	}
}

// List implements AttendanceHandler. The selection is derived from the URL on
// every page view.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	svc := h.service(r)

	logFetchError(r, attendancePath, svc.Open(r.Context(), viewQuery(r)))
	if svc.Selected() != "" {
		syncDialogs[attendance.Record](svc, r.URL.Query())
	} else {
		svc.CloseCreate()
		svc.CancelDelete()
	}

	h.render(w, r, svc, http.StatusOK, nil, "")
}

// Select implements AttendanceHandler. Browsers are redirected so the URL
// carries the selection; an empty choice removes the parameter.
func (h *attendanceHandlerImpl) Select(w http.ResponseWriter, r *http.Request) {
	code := r.PostFormValue(paramEmployeeID)

	if !wantsJSON(r) {
		location := attendancePath
		if code != "" {
			location += "?" + url.Values{paramEmployeeID: {code}}.Encode()
		}
		response.Redirect(w, r, location)
		return
	}

	svc := h.service(r)
	if err := svc.LoadEmployees(r.Context()); err != nil {
		slog.WarnContext(r.Context(), "Failed to fetch employees", "error", err)
	}
	logFetchError(r, attendancePath, svc.Select(r.Context(), svc.SelectFromQuery(code)))
	h.render(w, r, svc, http.StatusOK, nil, "")
}

// Create implements AttendanceHandler
func (h *attendanceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	svc := h.service(r)
	q := viewQuery(r)
	if !h.ensureSelected(w, r, svc, q) {
		return
	}

	if err := svc.Create(r.Context(), formValues(r, attendance.FormFields)); err != nil {
		apiErr := apierror.From(err)
		svc.CancelDelete()
		logFetchError(r, attendancePath, svc.Open(r.Context(), q))
		h.render(w, r, svc, response.StatusFor(apiErr), apiErr, "")
		return
	}

	slog.InfoContext(r.Context(), "Created attendance record", "employee_id", svc.Selected())
	h.finish(w, r, svc, http.StatusCreated, "Attendance record created successfully")
}

// Delete implements AttendanceHandler
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.HandleError(w, attendance.ErrInvalidID)
		return
	}
	svc := h.service(r)
	q := viewQuery(r)
	if !h.ensureSelected(w, r, svc, q) {
		return
	}

	svc.RequestDelete(id)
	if err := svc.Delete(r.Context()); err != nil {
		apiErr := apierror.From(err)
		svc.CloseCreate()
		logFetchError(r, attendancePath, svc.Open(r.Context(), q))
		h.render(w, r, svc, response.StatusFor(apiErr), apiErr, "")
		return
	}

	slog.InfoContext(r.Context(), "Deleted attendance record", "employee_id", svc.Selected(), "id", id)
	h.finish(w, r, svc, http.StatusOK, "Attendance record deleted successfully")
}

// Export implements AttendanceHandler
func (h *attendanceHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	svc := h.service(r)

	logFetchError(r, attendancePath, svc.Open(r.Context(), viewQuery(r)))
	if svc.Selected() == "" {
		response.HandleError(w, attendance.ErrNoEmployeeSelected)
		return
	}
	snap := svc.Snapshot()
	if snap.Error != nil {
		response.HandleError(w, snap.Error)
		return
	}

	buf, err := export.Write(export.Attendance(snap.Rows, svc.SelectedLabel(), snap.Page.Page))
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to build attendance export", "error", err)
		response.InternalServerError(w, "Failed to build export")
		return
	}
	response.File(w, export.ContentType, export.Filename("attendance_"+svc.Selected(), time.Now()), buf)
}

// ensureSelected makes the workspace selection match the URL before a
// mutation. It answers the request itself when no employee is selected.
func (h *attendanceHandlerImpl) ensureSelected(w http.ResponseWriter, r *http.Request, svc attendance.AttendanceService, q attendance.ViewQuery) bool {
	if q.EmployeeID == "" || svc.Selected() != q.EmployeeID {
		logFetchError(r, attendancePath, svc.Open(r.Context(), q))
	}
	if svc.Selected() == "" {
		response.HandleError(w, attendance.ErrNoEmployeeSelected)
		return false
	}
	return true
}

func (h *attendanceHandlerImpl) page(r *http.Request, svc attendance.AttendanceService) attendancePage {
	q := r.URL.Query()
	return attendancePage{
		Base:          newBase(r, "Attendance", attendancePath),
		List:          svc.Snapshot(),
		Employees:     svc.EmployeeOptions(),
		Selected:      svc.Selected(),
		SelectedLabel: svc.SelectedLabel(),
		Stats:         svc.Stats(),
		StatusOptions: attendance.StatusOptions,
		StartDate:     q.Get(attendance.FieldStartDate),
		EndDate:       q.Get(attendance.FieldEndDate),
	}
}

func (h *attendanceHandlerImpl) render(w http.ResponseWriter, r *http.Request, svc attendance.AttendanceService, statusCode int, failure *apierror.Error, message string) {
	data := h.page(r, svc)
	respond(w, r, h.renderer, statusCode, view.PageAttendance, data, data.List.Page, failure, message)
}

func (h *attendanceHandlerImpl) finish(w http.ResponseWriter, r *http.Request, svc attendance.AttendanceService, statusCode int, message string) {
	data := h.page(r, svc)
	redirectOrRespond(w, r, h.renderer, statusCode, view.PageAttendance, data, data.List.Page, data.Links.Current(), message)
}
