package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrops-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrops-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	gate user.Gate,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	scheduleHandler ScheduleHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  opts.LogLevel,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Get("/auth/me", authHandler.Me)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.ListEmployees)
				r.Get("/{id}", employeeHandler.GetEmployee)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(gate, user.PermissionEmployeesManage))
					r.Post("/", employeeHandler.CreateEmployee)
					r.Put("/{id}", employeeHandler.UpdateEmployee)
					r.Patch("/{id}", employeeHandler.UpdateEmployee)
					r.Delete("/{id}", employeeHandler.DeleteEmployee)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.List)
				r.Post("/", attendanceHandler.Create)
				r.Get("/{id}", attendanceHandler.Get)
				r.Put("/{id}", attendanceHandler.Update)
				r.Patch("/{id}", attendanceHandler.Update)
				r.With(middleware.RequirePermission(gate, user.PermissionAttendanceManage)).
					Delete("/{id}", attendanceHandler.Delete)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", leaveHandler.Create)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(gate, user.PermissionLeaveManage))
					r.Get("/", leaveHandler.List)
					r.Put("/{id}", leaveHandler.Update)
					r.Patch("/{id}", leaveHandler.Update)
					r.Delete("/{id}", leaveHandler.Delete)
				})
			})

			r.Route("/schedule", func(r chi.Router) {
				r.With(middleware.RequirePermission(gate, user.PermissionScheduleViewEdit, user.PermissionScheduleManage)).
					Get("/", scheduleHandler.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(gate, user.PermissionScheduleManage))
					r.Post("/", scheduleHandler.Create)
					r.Put("/{id}", scheduleHandler.Update)
					r.Patch("/{id}", scheduleHandler.Update)
					r.Delete("/{id}", scheduleHandler.Delete)
				})
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r
}
