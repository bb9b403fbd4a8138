package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hrms-web-go/internal/domain/department"
	"github.com/cmlabs-hris/hrms-web-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrms-web-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-web-go/internal/handler/http/view"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/apierror"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/export"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/listing"
)

type DepartmentHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type departmentHandlerImpl struct {
	renderer *view.Renderer
}

func NewDepartmentHandler(renderer *view.Renderer) DepartmentHandler {
	return &departmentHandlerImpl{renderer: renderer}
}

type departmentsPage struct {
	view.Base
	List listing.Snapshot[department.Department] `json:"list"`
}

func (h *departmentHandlerImpl) service(r *http.Request) department.DepartmentService {
	return middleware.Workspace(r.Context()).Departments
}

// List implements DepartmentHandler
func (h *departmentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	svc := h.service(r)

	logFetchError(r, departmentsPath, svc.Fetch(r.Context(), getIntQueryParam(r, "page", 1)))
	syncDialogs[department.Department](svc, r.URL.Query())

	h.render(w, r, svc, http.StatusOK, nil, "")
}

// Create implements DepartmentHandler
func (h *departmentHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	svc := h.service(r)
	values := formValues(r, department.FormFields)

	if err := svc.Create(r.Context(), values); err != nil {
		apiErr := apierror.From(err)
		svc.CancelDelete()
		logFetchError(r, departmentsPath, svc.Fetch(r.Context(), getIntQueryParam(r, "page", 1)))
		h.render(w, r, svc, response.StatusFor(apiErr), apiErr, "")
		return
	}

	slog.InfoContext(r.Context(), "Created department", "name", values[department.FieldName])
	h.finish(w, r, svc, http.StatusCreated, "Department created successfully")
}

// Delete implements DepartmentHandler
func (h *departmentHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.HandleError(w, department.ErrInvalidID)
		return
	}
	svc := h.service(r)

	svc.RequestDelete(id)
	if err := svc.Delete(r.Context()); err != nil {
		apiErr := apierror.From(err)
		svc.CloseCreate()
		logFetchError(r, departmentsPath, svc.Fetch(r.Context(), getIntQueryParam(r, "page", 1)))
		h.render(w, r, svc, response.StatusFor(apiErr), apiErr, "")
		return
	}

	slog.InfoContext(r.Context(), "Deleted department", "id", id)
	h.finish(w, r, svc, http.StatusOK, "Department deleted successfully")
}

// Export implements DepartmentHandler
func (h *departmentHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	svc := h.service(r)
	page := getIntQueryParam(r, "page", 1)

	logFetchError(r, departmentsPath, svc.Fetch(r.Context(), page))
	snap := svc.Snapshot()
	if snap.Error != nil {
		response.HandleError(w, snap.Error)
		return
	}

	buf, err := export.Write(export.Departments(snap.Rows, snap.Page.Page))
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to build departments export", "error", err)
		response.InternalServerError(w, "Failed to build export")
		return
	}
	response.File(w, export.ContentType, export.Filename("departments", time.Now()), buf)
}

func (h *departmentHandlerImpl) page(r *http.Request, svc department.DepartmentService) departmentsPage {
	return departmentsPage{
		Base: newBase(r, "Departments", departmentsPath),
		List: svc.Snapshot(),
	}
}

func (h *departmentHandlerImpl) render(w http.ResponseWriter, r *http.Request, svc department.DepartmentService, statusCode int, failure *apierror.Error, message string) {
	data := h.page(r, svc)
	respond(w, r, h.renderer, statusCode, view.PageDepartments, data, data.List.Page, failure, message)
}

func (h *departmentHandlerImpl) finish(w http.ResponseWriter, r *http.Request, svc department.DepartmentService, statusCode int, message string) {
	data := h.page(r, svc)
	redirectOrRespond(w, r, h.renderer, statusCode, view.PageDepartments, data, data.List.Page, data.Links.Current(), message)
}
