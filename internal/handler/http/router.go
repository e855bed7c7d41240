package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/kurniatex/payroll-backend-go/internal/config"
)

func NewRouter(
	cfg *config.Config,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	productionHandler ProductionHandler,
	payrollHandler PayrollHandler,
	masterHandler MasterHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-kurniatex"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employeeHandler.List)
			r.Post("/", employeeHandler.Create)
			r.Post("/bulk-delete", employeeHandler.BulkDelete)
			r.Post("/import", employeeHandler.Import)
			r.Get("/export", employeeHandler.Export)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", employeeHandler.Get)
				r.Put("/", employeeHandler.Update)
				r.Delete("/", employeeHandler.Delete)
			})
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", attendanceHandler.List)
			r.Post("/", attendanceHandler.Create)
			r.Post("/bulk-delete", attendanceHandler.BulkDelete)
			r.Post("/import", attendanceHandler.Import)
			r.Get("/export", attendanceHandler.Export)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", attendanceHandler.Get)
				r.Put("/", attendanceHandler.Update)
				r.Delete("/", attendanceHandler.Delete)
			})
		})

		r.Route("/production", func(r chi.Router) {
			r.Get("/", productionHandler.List)
			r.Post("/", productionHandler.Create)
			r.Post("/import", productionHandler.Import)
			r.Get("/export", productionHandler.Export)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", productionHandler.Get)
				r.Put("/", productionHandler.Update)
				r.Delete("/", productionHandler.Delete)
			})
		})

		r.Route("/salary-rates", func(r chi.Router) {
			r.Get("/", payrollHandler.ListMasterRates)
			r.Post("/", payrollHandler.UpsertMasterRate)
			r.Post("/import", payrollHandler.ImportMasterRates)
			r.Delete("/{id}", payrollHandler.DeleteMasterRate)
		})

		r.Route("/month-divisors", func(r chi.Router) {
			r.Get("/", payrollHandler.ListMonthDivisors)
			r.Post("/", payrollHandler.UpsertMonthDivisor)
			r.Delete("/{id}", payrollHandler.DeleteMonthDivisor)
		})

		r.Route("/salary-records", func(r chi.Router) {
			r.Get("/", payrollHandler.ListSalaryRecords)
			r.Get("/export", payrollHandler.ExportSalaryRecords)
			r.Post("/sync", payrollHandler.Sync)
			r.Get("/{id}/breakdown", payrollHandler.GetBreakdown)
		})

		r.Route("/grades", func(r chi.Router) {
			r.Get("/", masterHandler.ListGrades)
			r.Post("/", masterHandler.CreateGrade)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", masterHandler.GetGrade)
				r.Put("/", masterHandler.UpdateGrade)
				r.Delete("/", masterHandler.DeleteGrade)
			})
		})
	})

	return r
}
