package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hrms-web-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hrms-web-go/internal/handler/http"
	"github.com/cmlabs-hris/hrms-web-go/internal/handler/http/view"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/session"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hrms-web-go/internal/repository/restapi"
	attendanceService "github.com/cmlabs-hris/hrms-web-go/internal/service/attendance"
	departmentService "github.com/cmlabs-hris/hrms-web-go/internal/service/department"
	employeeService "github.com/cmlabs-hris/hrms-web-go/internal/service/employee"
	"github.com/go-chi/httplog/v3"
)

const (
	appName    = "hrms-web"
	appVersion = "v1.0.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(!cfg.IsDevelopment())
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.Level(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", appName),
		slog.String("version", appVersion),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	apiClient := restapi.NewClient(cfg.API.BaseURL, cfg.API.Timeout, logger)
	departmentRepo := restapi.NewDepartmentRepository(apiClient)
	employeeRepo := restapi.NewEmployeeRepository(apiClient)
	attendanceRepo := restapi.NewAttendanceRepository(apiClient)

	hub := sse.NewHub()
	sessions := session.NewStore(cfg.Session.TTL, func(sessionID string) *session.Workspace {
		return &session.Workspace{
			Departments: departmentService.NewDepartmentService(departmentRepo, hub, sessionID, cfg.App.PageSize),
			Employees:   employeeService.NewEmployeeService(employeeRepo, departmentRepo, hub, sessionID, cfg.App.PageSize),
			Attendance:  attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, hub, sessionID, cfg.App.PageSize),
		}
	}, hub.Close)

	scheduler := cron.NewScheduler(ctx)
	cron.NewSessionJobs(sessions).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	JWTService := jwt.NewJWTService(cfg.Session.SecretKey, cfg.Session.TTL, !cfg.IsDevelopment())

	renderer, err := view.NewRenderer()
	if err != nil {
		logger.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	router := appHTTP.NewRouter(
		logger,
		cfg.CORS.AllowedOrigins,
		JWTService,
		sessions,
		renderer,
		appHTTP.NewDepartmentHandler(renderer),
		appHTTP.NewEmployeeHandler(renderer),
		appHTTP.NewAttendanceHandler(renderer),
		appHTTP.NewEventHandler(hub),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Event streams end when ctx is cancelled.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		logger.Info("Server running", "addr", srv.Addr, "api_base_url", cfg.API.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
}
