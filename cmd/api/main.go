package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/cmrl-attendance/attendance-backend-go/internal/config"
	appHTTP "github.com/cmrl-attendance/attendance-backend-go/internal/handler/http"
	"github.com/cmrl-attendance/attendance-backend-go/internal/pkg/database"
	"github.com/cmrl-attendance/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmrl-attendance/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmrl-attendance/attendance-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmrl-attendance/attendance-backend-go/internal/service/auth"
	employeeService "github.com/cmrl-attendance/attendance-backend-go/internal/service/employee"
	reportService "github.com/cmrl-attendance/attendance-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	eventRepo := postgresql.NewEventRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	adminRepo := postgresql.NewAdminRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	attendanceSvc := attendanceService.NewAttendanceService(eventRepo, employeeRepo)
	reportSvc := reportService.NewReportService(eventRepo)
	authSvc := serviceAuth.NewAuthService(employeeRepo, adminRepo, eventRepo, jwtService)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, eventRepo)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:            cfg.App.Env,
			RequestTimeout: cfg.App.RequestTimeout,
			AllowedOrigins: allowedOrigins(),
		},
		jwtService,
		appHTTP.NewAuthHandler(authSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewReportHandler(reportSvc),
		appHTTP.NewEmployeeHandler(employeeSvc),
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

func allowedOrigins() []string {
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		return strings.Split(v, ",")
	}
	return []string{"http://localhost:3000"}
}
