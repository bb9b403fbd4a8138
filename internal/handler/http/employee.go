package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hrms-web-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-web-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrms-web-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-web-go/internal/handler/http/view"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/apierror"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/export"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/listing"
)

type EmployeeHandler interface {
	ListEmployees(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	DeleteEmployee(w http.ResponseWriter, r *http.Request)
	ExportEmployees(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	renderer *view.Renderer
}

func NewEmployeeHandler(renderer *view.Renderer) EmployeeHandler {
	return &employeeHandlerImpl{renderer: renderer}
}

type employeesPage struct {
	view.Base
	List        listing.Snapshot[employee.Employee] `json:"list"`
	Departments []employee.DepartmentOption         `json:"departments"`
	Detail      *employee.Employee                  `json:"detail,omitempty"`
	DetailError *apierror.Error                     `json:"detail_error,omitempty"`
}

func (h *employeeHandlerImpl) service(r *http.Request) employee.EmployeeService {
	return middleware.Workspace(r.Context()).Employees
}

// ListEmployees implements EmployeeHandler
func (h *employeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	svc := h.service(r)

	logFetchError(r, employeesPath, svc.Open(r.Context(), getIntQueryParam(r, "page", 1)))
	syncDialogs[employee.Employee](svc, r.URL.Query())

	h.render(w, r, svc, http.StatusOK, nil)
}

// GetEmployee implements EmployeeHandler - the read-only detail dialog over the list
func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.HandleError(w, employee.ErrInvalidID)
		return
	}
	svc := h.service(r)

	logFetchError(r, employeesPath, svc.Open(r.Context(), getIntQueryParam(r, "page", 1)))
	svc.CloseCreate()
	svc.CancelDelete()

	data := h.page(r, svc)
	statusCode := http.StatusOK
	emp, err := svc.GetEmployee(r.Context(), id)
	if err != nil {
		data.DetailError = apierror.From(err)
		statusCode = response.StatusFor(data.DetailError)
		slog.WarnContext(r.Context(), "Failed to load employee", "id", id, "error", err)
	} else {
		data.Detail = &emp
	}

	if wantsJSON(r) && data.DetailError == nil {
		response.Success(w, emp)
		return
	}
	respond(w, r, h.renderer, statusCode, view.PageEmployees, data, data.List.Page, data.DetailError, "")
}

// CreateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	svc := h.service(r)
	values := formValues(r, employee.FormFields)

	if err := svc.Create(r.Context(), values); err != nil {
		apiErr := apierror.From(err)
		svc.CancelDelete()
		logFetchError(r, employeesPath, svc.Open(r.Context(), getIntQueryParam(r, "page", 1)))
		h.render(w, r, svc, response.StatusFor(apiErr), apiErr)
		return
	}

	data := h.page(r, svc)
	redirectOrRespond(w, r, h.renderer, http.StatusCreated, view.PageEmployees, data, data.List.Page, data.Links.Current(), "Employee created successfully")
}

// DeleteEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.HandleError(w, employee.ErrInvalidID)
		return
	}
	svc := h.service(r)

	svc.RequestDelete(id)
	if err := svc.Delete(r.Context()); err != nil {
		apiErr := apierror.From(err)
		svc.CloseCreate()
		logFetchError(r, employeesPath, svc.Open(r.Context(), getIntQueryParam(r, "page", 1)))
		h.render(w, r, svc, response.StatusFor(apiErr), apiErr)
		return
	}

	slog.InfoContext(r.Context(), "Deleted employee", "id", id)
	data := h.page(r, svc)
	redirectOrRespond(w, r, h.renderer, http.StatusOK, view.PageEmployees, data, data.List.Page, data.Links.Current(), "Employee deleted successfully")
}

// ExportEmployees implements EmployeeHandler
func (h *employeeHandlerImpl) ExportEmployees(w http.ResponseWriter, r *http.Request) {
	svc := h.service(r)

	logFetchError(r, employeesPath, svc.Fetch(r.Context(), getIntQueryParam(r, "page", 1)))
	snap := svc.Snapshot()
	if snap.Error != nil {
		response.HandleError(w, snap.Error)
		return
	}

	buf, err := export.Write(export.Employees(snap.Rows, snap.Page.Page))
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to build employees export", "error", err)
		response.InternalServerError(w, "Failed to build export")
		return
	}
	response.File(w, export.ContentType, export.Filename("employees", time.Now()), buf)
}

func (h *employeeHandlerImpl) page(r *http.Request, svc employee.EmployeeService) employeesPage {
	return employeesPage{
		Base:        newBase(r, "Employees", employeesPath),
		List:        svc.Snapshot(),
		Departments: svc.DepartmentOptions(),
	}
}

func (h *employeeHandlerImpl) render(w http.ResponseWriter, r *http.Request, svc employee.EmployeeService, statusCode int, failure *apierror.Error) {
	data := h.page(r, svc)
	respond(w, r, h.renderer, statusCode, view.PageEmployees, data, data.List.Page, failure, "")
}
