package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/kurniatex/payroll-backend-go/internal/config"
	appHTTP "github.com/kurniatex/payroll-backend-go/internal/handler/http"
	"github.com/kurniatex/payroll-backend-go/internal/pkg/database"
	"github.com/kurniatex/payroll-backend-go/internal/repository/postgresql"
	attendanceService "github.com/kurniatex/payroll-backend-go/internal/service/attendance"
	employeeService "github.com/kurniatex/payroll-backend-go/internal/service/employee"
	"github.com/kurniatex/payroll-backend-go/internal/service/master"
	payrollService "github.com/kurniatex/payroll-backend-go/internal/service/payroll"
	productionService "github.com/kurniatex/payroll-backend-go/internal/service/production"
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

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	outputRepo := postgresql.NewOutputRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	gradeRepo := postgresql.NewGradeRepository(db)

	calculator := payrollService.NewBreakdownCalculator(cfg.Payroll)

	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, cfg.Batch)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, employeeRepo, cfg.Batch)
	outputSvc := productionService.NewOutputService(db, outputRepo, employeeRepo, cfg.Batch)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, attendanceRepo, employeeRepo, calculator, cfg.Batch)
	syncer := payrollService.NewMonthlySyncer(payrollRepo, attendanceRepo, employeeRepo, outputRepo, calculator, cfg.Payroll, cfg.Batch, logger)
	masterSvc := master.NewMasterService(gradeRepo)

	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	productionHandler := appHTTP.NewProductionHandler(outputSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc, syncer)
	masterHandler := appHTTP.NewMasterHandler(masterSvc)

	router := appHTTP.NewRouter(
		cfg,
		employeeHandler,
		attendanceHandler,
		productionHandler,
		payrollHandler,
		masterHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
