package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-web-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrms-web-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-web-go/internal/handler/http/view"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/session"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	logger *slog.Logger,
	allowedOrigins []string,
	JWTService jwt.Service,
	sessions *session.Store,
	renderer *view.Renderer,
	departmentHandler DepartmentHandler,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	eventHandler EventHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.CSRFHeader, chiMiddleware.RequestIDHeader},
		ExposedHeaders:   []string{"Link", chiMiddleware.RequestIDHeader},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("deflate", "gzip"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if wantsJSON(r) {
			response.NotFound(w, "Page not found")
			return
		}
		response.HTML(w, r, renderer, http.StatusNotFound, view.PageError, errorPage{
			Base:    view.Base{Title: "Page not found"},
			Message: "The page you requested does not exist.",
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, departmentsPath, http.StatusFound)
	})

	// Every screen belongs to a session
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verify(JWTService.JWTAuth(), middleware.TokenFromSessionCookie))
		r.Use(middleware.Session(JWTService, sessions))
		r.Use(middleware.CSRF(JWTService))

		r.Get("/events", eventHandler.Stream)

		r.Route(departmentsPath, func(r chi.Router) {
			r.Get("/", departmentHandler.List)
			r.Post("/", departmentHandler.Create)
			r.Get("/export", departmentHandler.Export)
			r.Post("/{id}/delete", departmentHandler.Delete)
		})

		r.Route(employeesPath, func(r chi.Router) {
			r.Get("/", employeeHandler.ListEmployees)
			r.Post("/", employeeHandler.CreateEmployee)
			r.Get("/export", employeeHandler.ExportEmployees)
			r.Get("/{id}", employeeHandler.GetEmployee)
			r.Post("/{id}/delete", employeeHandler.DeleteEmployee)
		})

		r.Route(attendancePath, func(r chi.Router) {
			r.Get("/", attendanceHandler.List)
			r.Post("/", attendanceHandler.Create)
			r.Post("/select", attendanceHandler.Select)
			r.Get("/export", attendanceHandler.Export)
			r.Post("/{id}/delete", attendanceHandler.Delete)
		})
	})

	return r
}

type errorPage struct {
	view.Base
	Message string
}
