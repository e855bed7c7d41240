package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kurniatex/payroll-backend-go/internal/config"
	"github.com/kurniatex/payroll-backend-go/internal/domain/attendance"
	"github.com/kurniatex/payroll-backend-go/internal/domain/employee"
	"github.com/kurniatex/payroll-backend-go/internal/domain/payroll"
	"github.com/kurniatex/payroll-backend-go/internal/domain/production"
	"github.com/kurniatex/payroll-backend-go/internal/pkg/batch"
	"github.com/kurniatex/payroll-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

// MonthlySyncerImpl recomputes a month's salary records. It prefers the
// server-side stored procedure; when the procedure is not installed it runs
// the same formulas client-side, writing records through the batch queue so
// partial failures do not abort the whole month.
type MonthlySyncerImpl struct {
	payrollRepo    payroll.PayrollRepository
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	outputRepo     production.OutputRepository
	calc           *BreakdownCalculator
	payrollCfg     config.PayrollConfig
	batchCfg       config.BatchConfig
	logger         *slog.Logger
}

func NewMonthlySyncer(
	payrollRepo payroll.PayrollRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	outputRepo production.OutputRepository,
	calc *BreakdownCalculator,
	payrollCfg config.PayrollConfig,
	batchCfg config.BatchConfig,
	logger *slog.Logger,
) payroll.MonthlySyncer {
	return &MonthlySyncerImpl{
		payrollRepo:    payrollRepo,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		outputRepo:     outputRepo,
		calc:           calc,
		payrollCfg:     payrollCfg,
		batchCfg:       batchCfg,
		logger:         logger,
	}
}

// SyncMonth implements payroll.MonthlySyncer.
func (s *MonthlySyncerImpl) SyncMonth(ctx context.Context, month string) (payroll.SyncResult, error) {
	monthTime, err := time.Parse("2006-01", month)
	if err != nil {
		return payroll.SyncResult{}, fmt.Errorf("invalid month %q: %w", month, err)
	}

	processed, err := s.payrollRepo.CallMonthlySync(ctx, s.payrollCfg.SyncProcedure, monthTime)
	if err == nil {
		return payroll.SyncResult{
			Month:     month,
			Method:    payroll.SyncMethodProcedure,
			Processed: processed,
		}, nil
	}

	// Only a missing procedure justifies the slow path. Anything else is a
	// real failure the caller should see.
	if database.Classify(err) != database.KindUndefinedFunction {
		return payroll.SyncResult{}, fmt.Errorf("monthly sync procedure failed: %w", err)
	}

	s.logger.Warn("sync procedure not installed, computing client-side",
		slog.String("procedure", s.payrollCfg.SyncProcedure),
		slog.String("month", month),
	)

	return s.syncClient(ctx, month, monthTime)
}

// syncRow ties a computed salary record to a label for batch failure
// reporting.
type syncRow struct {
	record payroll.SalaryRecord
}

func (r syncRow) Describe() string {
	return r.record.EmployeeCode + " " + r.record.Date.Format("2006-01-02")
}

func (s *MonthlySyncerImpl) syncClient(ctx context.Context, month string, monthTime time.Time) (payroll.SyncResult, error) {
	atts, err := s.attendanceRepo.ListMonth(ctx, monthTime)
	if err != nil {
		return payroll.SyncResult{}, err
	}
	if len(atts) == 0 {
		return payroll.SyncResult{Month: month, Method: payroll.SyncMethodClient}, nil
	}

	outputs, err := s.outputRepo.ListMonth(ctx, monthTime)
	if err != nil {
		return payroll.SyncResult{}, err
	}

	employees, err := s.loadEmployees(ctx, atts)
	if err != nil {
		return payroll.SyncResult{}, err
	}

	divisor := s.payrollCfg.DefaultMonthDivisor
	div, err := s.payrollRepo.GetMonthDivisor(ctx, month)
	switch {
	case err == nil:
		divisor = div.Divisor
	case errors.Is(err, payroll.ErrDivisorNotFound):
		// Keep the configured default.
	default:
		return payroll.SyncResult{}, fmt.Errorf("load month divisor: %w", err)
	}

	counts := aggregateCounts(atts)
	produced := aggregateOutputs(outputs)
	rates := map[string]payroll.MasterRate{}

	var records []syncRow
	for _, a := range atts {
		if a.Code != attendance.CodePresent {
			continue
		}

		emp, ok := employees[a.EmployeeCode]
		if !ok {
			continue
		}

		rate, ok := rates[emp.Grade]
		if !ok {
			rate, err = s.payrollRepo.GetMasterRate(ctx, emp.Grade, month)
			if errors.Is(err, payroll.ErrMasterRateNotFound) {
				// Missing rate computes as zeros, same as the audit view.
				rate = payroll.MasterRate{}
			} else if err != nil {
				return payroll.SyncResult{}, fmt.Errorf("load master rate for grade %s: %w", emp.Grade, err)
			}
			rates[emp.Grade] = rate
		}

		records = append(records, syncRow{record: s.computeRecord(a, emp, rate, divisor, counts[a.EmployeeCode], produced[dayKey(a.EmployeeCode, a.Date)])})
	}

	processed, failures := batch.Run(ctx, records, func(ctx context.Context, items []syncRow) error {
		rows := make([]payroll.SalaryRecord, len(items))
		for i, it := range items {
			rows[i] = it.record
		}
		return s.payrollRepo.UpsertSalaryRecords(ctx, rows)
	}, nil, batch.Options{
		InitialSize: s.batchCfg.ImportInitialSize,
		MaxSize:     s.batchCfg.ImportMaxSize,
	})

	return payroll.SyncResult{
		Month:     month,
		Method:    payroll.SyncMethodClient,
		Processed: processed,
		Failed:    len(records) - processed,
		Errors:    failures,
	}, nil
}

// computeRecord derives one employee-day salary row. Piece-rate workers earn
// that day's production value as base pay; everyone else earns the monthly
// base prorated by the divisor.
func (s *MonthlySyncerImpl) computeRecord(
	a attendance.Attendance,
	emp employee.Employee,
	rate payroll.MasterRate,
	divisor int,
	counts attendance.ExceptionCounts,
	producedAmount decimal.Decimal,
) payroll.SalaryRecord {
	pieceRate := emp.Scheme == employee.SchemePieceRate

	var basePay decimal.Decimal
	if pieceRate {
		basePay = producedAmount
	} else {
		basePay = rate.BasePay.Div(decimal.NewFromInt(int64(divisor)))
	}

	overtimePay := decimal.NewFromFloat(a.OvertimeHours).Mul(rate.OvertimeRate)

	record := payroll.SalaryRecord{
		EmployeeCode: a.EmployeeCode,
		Date:         a.Date,
		Scheme:       string(emp.Scheme),
		BasePay:      basePay,
		OvertimePay:  overtimePay,
	}

	b := s.calc.Compute(BreakdownInput{
		Record:          record,
		Rate:            rate,
		Divisor:         divisor,
		Counts:          counts,
		PieceRate:       pieceRate,
		CompanyTransfer: counts.TransferDays > 0,
	})

	record.MealDaily = b.Meal.Daily
	record.AttendanceDaily = b.Attendance.Daily
	record.BonusDaily = b.Bonus.Daily
	record.Total = b.Total

	return record
}

func (s *MonthlySyncerImpl) loadEmployees(ctx context.Context, atts []attendance.Attendance) (map[string]employee.Employee, error) {
	seen := map[string]bool{}
	var codes []string
	for _, a := range atts {
		if !seen[a.EmployeeCode] {
			seen[a.EmployeeCode] = true
			codes = append(codes, a.EmployeeCode)
		}
	}

	employees, err := s.employeeRepo.GetByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}

	byCode := make(map[string]employee.Employee, len(employees))
	for _, e := range employees {
		byCode[e.Code] = e
	}

	return byCode, nil
}

// aggregateCounts folds a month of attendance rows into per-employee
// exception counts, matching what CountExceptions reports per employee.
func aggregateCounts(atts []attendance.Attendance) map[string]attendance.ExceptionCounts {
	counts := map[string]attendance.ExceptionCounts{}
	for _, a := range atts {
		c := counts[a.EmployeeCode]
		switch a.Code {
		case attendance.CodeSick:
			c.Sick++
		case attendance.CodePermission:
			c.Permission++
		case attendance.CodeUnexcused:
			c.Unexcused++
		case attendance.CodeCompanyHoliday:
			c.CompanyHoliday++
		case attendance.CodePersonalHoliday:
			c.PersonalHoliday++
		}
		if a.CompanyTransfer {
			c.TransferDays++
		}
		counts[a.EmployeeCode] = c
	}
	return counts
}

func dayKey(code string, date time.Time) string {
	return code + "|" + date.Format("2006-01-02")
}

// aggregateOutputs sums each employee-day's production value.
func aggregateOutputs(outputs []production.Output) map[string]decimal.Decimal {
	sums := map[string]decimal.Decimal{}
	for _, o := range outputs {
		key := dayKey(o.EmployeeCode, o.Date)
		sums[key] = sums[key].Add(o.Amount)
	}
	return sums
}
