package http

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/hrms-web-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrms-web-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-web-go/internal/handler/http/view"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/apierror"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/listing"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/pagination"
	"github.com/go-chi/chi/v5"
)

const (
	departmentsPath = "/departments"
	employeesPath   = "/employees"
	attendancePath  = "/attendance"
)

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

// pathID parses the {id} route parameter; only positive ids are valid.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// formValues reads the submitted fields as typed.
func formValues(r *http.Request, fields []string) map[string]string {
	values := make(map[string]string, len(fields))
	for _, field := range fields {
		values[field] = r.PostFormValue(field)
	}
	return values
}

func newBase(r *http.Request, title, screenPath string) view.Base {
	return view.Base{
		Title:     title,
		Active:    strings.TrimPrefix(screenPath, "/"),
		CSRFToken: middleware.CSRFToken(r.Context()),
		Links:     view.NewLinks(screenPath, r.URL.Query()),
	}
}

// syncDialogs opens or closes the create form and the delete confirmation so
// they match the URL of a page view.
func syncDialogs[T any](s listing.Screen[T], q url.Values) {
	if q.Get(view.ParamModal) == "create" {
		s.OpenCreate()
	} else {
		s.CloseCreate()
	}

	if id, err := strconv.ParseInt(q.Get(view.ParamConfirmDelete), 10, 64); err == nil && id > 0 {
		s.RequestDelete(id)
	} else {
		s.CancelDelete()
	}
}

// logFetchError logs a failed list load. The error itself is already on the
// snapshot and rendered as a banner.
func logFetchError(r *http.Request, screen string, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, listing.ErrStale) {
		slog.DebugContext(r.Context(), "Discarded stale list response", "screen", screen)
		return
	}
	slog.WarnContext(r.Context(), "Failed to load list", "screen", screen, "error", err)
}

// respond writes a screen as HTML, or as the JSON envelope when the client
// asks for JSON.
func respond(
	w http.ResponseWriter,
	r *http.Request,
	renderer *view.Renderer,
	statusCode int,
	page string,
	data interface{},
	state pagination.State,
	failure *apierror.Error,
	message string,
) {
	if !wantsJSON(r) {
		response.HTML(w, r, renderer, statusCode, page, data)
		return
	}

	switch {
	case failure != nil:
		response.ErrorWithData(w, statusCode, response.CodeFor(statusCode), failure.Summary(), response.Details(failure), data)
	case statusCode == http.StatusCreated:
		response.Created(w, message, data)
	case message != "":
		response.SuccessWithMessage(w, message, data)
	default:
		response.SuccessWithMeta(w, data, response.MetaFrom(state))
	}
}

// redirectOrRespond finishes a successful mutation: browsers follow a 303 to
// the screen, JSON clients get the refreshed page.
func redirectOrRespond(
	w http.ResponseWriter,
	r *http.Request,
	renderer *view.Renderer,
	statusCode int,
	page string,
	data interface{},
	state pagination.State,
	location, message string,
) {
	if wantsJSON(r) {
		respond(w, r, renderer, statusCode, page, data, state, nil, message)
		return
	}
	response.Redirect(w, r, location)
}
