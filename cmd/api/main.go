package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hrops-backend-go/internal/config"
	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/user"
	appHTTP "github.com/cmlabs-hris/hrops-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrops-backend-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/hrops-backend-go/internal/service/access"
	attendanceService "github.com/cmlabs-hris/hrops-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/hrops-backend-go/internal/service/auth"
	employeeService "github.com/cmlabs-hris/hrops-backend-go/internal/service/employee"
	"github.com/cmlabs-hris/hrops-backend-go/internal/service/identity"
	leaveService "github.com/cmlabs-hris/hrops-backend-go/internal/service/leave"
	scheduleService "github.com/cmlabs-hris/hrops-backend-go/internal/service/schedule"
	"github.com/go-chi/httplog/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(!cfg.IsProduction())
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrops"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	var rolePolicy map[user.Role][]user.Permission
	if cfg.App.RolePolicyFile != "" {
		rolePolicy, err = config.LoadRolePolicy(cfg.App.RolePolicyFile)
		if err != nil {
			slog.Error("Error loading role policy", "path", cfg.App.RolePolicyFile, "error", err)
			os.Exit(1)
		}
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	txManager := postgresql.NewTxManager(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)

	gate := user.NewPolicyGate(rolePolicy)
	resolver := identity.NewResolver(employeeRepo)
	policy := access.NewPolicy(gate, resolver, identity.NewLinkageResolver(employeeRepo))

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authService := serviceAuth.NewAuthService(JWTService, gate, resolver)
	employeeSvc := employeeService.NewEmployeeService(txManager, employeeRepo, policy)
	attendanceSvc := attendanceService.NewAttendanceService(txManager, attendanceRepo, employeeRepo, policy)
	leaveSvc := leaveService.NewLeaveService(txManager, leaveRepo, employeeRepo, policy)
	scheduleSvc := scheduleService.NewScheduleService(txManager, scheduleRepo, employeeRepo, policy)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Logger:         logger,
			LogLevel:       cfg.SlogLevel(),
			AllowedOrigins: cfg.CORS.AllowedOrigins,
		},
		JWTService,
		gate,
		appHTTP.NewAuthHandler(authService),
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewLeaveHandler(leaveSvc),
		appHTTP.NewScheduleHandler(scheduleSvc),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	}()

	slog.Info("Server running", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
}
