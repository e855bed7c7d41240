package payroll

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kurniatex/payroll-backend-go/internal/config"
	"github.com/kurniatex/payroll-backend-go/internal/domain/attendance"
	"github.com/kurniatex/payroll-backend-go/internal/domain/employee"
	"github.com/kurniatex/payroll-backend-go/internal/domain/payroll"
	"github.com/kurniatex/payroll-backend-go/internal/domain/production"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayrollRepo struct {
	payroll.PayrollRepository

	syncProcessed int
	syncErr       error
	divisorErr    error
	rates         map[string]payroll.MasterRate
	rateErr       error
	upserted      []payroll.SalaryRecord
	upsertErr     error
}

func (f *fakePayrollRepo) CallMonthlySync(ctx context.Context, procedure string, month time.Time) (int, error) {
	if f.syncErr != nil {
		return 0, f.syncErr
	}
	return f.syncProcessed, nil
}

func (f *fakePayrollRepo) GetMonthDivisor(ctx context.Context, month string) (payroll.MonthDivisor, error) {
	if f.divisorErr != nil {
		return payroll.MonthDivisor{}, f.divisorErr
	}
	return payroll.MonthDivisor{}, payroll.ErrDivisorNotFound
}

func (f *fakePayrollRepo) GetMasterRate(ctx context.Context, grade, month string) (payroll.MasterRate, error) {
	if f.rateErr != nil {
		return payroll.MasterRate{}, f.rateErr
	}
	rate, ok := f.rates[grade]
	if !ok {
		return payroll.MasterRate{}, payroll.ErrMasterRateNotFound
	}
	return rate, nil
}

func (f *fakePayrollRepo) UpsertSalaryRecords(ctx context.Context, records []payroll.SalaryRecord) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = append(f.upserted, records...)
	return nil
}

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	rows []attendance.Attendance
}

func (f *fakeAttendanceRepo) ListMonth(ctx context.Context, month time.Time) ([]attendance.Attendance, error) {
	return f.rows, nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) GetByCodes(ctx context.Context, codes []string) ([]employee.Employee, error) {
	return f.employees, nil
}

type fakeOutputRepo struct {
	production.OutputRepository
	rows []production.Output
}

func (f *fakeOutputRepo) ListMonth(ctx context.Context, month time.Time) ([]production.Output, error) {
	return f.rows, nil
}

func testSyncer(pr *fakePayrollRepo, ar *fakeAttendanceRepo, er *fakeEmployeeRepo, or *fakeOutputRepo) payroll.MonthlySyncer {
	payrollCfg := config.PayrollConfig{
		PenaltyPerViolation:                 10000,
		DefaultMonthDivisor:                 26,
		BonusCompanyHolidayDivisorPieceRate: 8,
		BonusCompanyHolidayDivisor:          2,
		BonusPartialDivisorPieceRate:        4,
		AuditTolerance:                      100,
		SyncProcedure:                       "sync_gaji_bulanan",
	}
	return NewMonthlySyncer(
		pr, ar, er, or,
		NewBreakdownCalculator(payrollCfg),
		payrollCfg,
		config.BatchConfig{ImportInitialSize: 10, ImportMaxSize: 50},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func TestSyncMonth_UsesProcedureWhenAvailable(t *testing.T) {
	pr := &fakePayrollRepo{syncProcessed: 42}
	syncer := testSyncer(pr, &fakeAttendanceRepo{}, &fakeEmployeeRepo{}, &fakeOutputRepo{})

	result, err := syncer.SyncMonth(context.Background(), "2025-10")
	require.NoError(t, err)

	assert.Equal(t, payroll.SyncMethodProcedure, result.Method)
	assert.Equal(t, 42, result.Processed)
	assert.Empty(t, pr.upserted)
}

func TestSyncMonth_RejectsInvalidMonth(t *testing.T) {
	syncer := testSyncer(&fakePayrollRepo{}, &fakeAttendanceRepo{}, &fakeEmployeeRepo{}, &fakeOutputRepo{})

	_, err := syncer.SyncMonth(context.Background(), "october-2025")
	assert.Error(t, err)
}

func TestSyncMonth_SurfacesProcedureFailure(t *testing.T) {
	pr := &fakePayrollRepo{syncErr: errors.New("connection reset")}
	syncer := testSyncer(pr, &fakeAttendanceRepo{}, &fakeEmployeeRepo{}, &fakeOutputRepo{})

	_, err := syncer.SyncMonth(context.Background(), "2025-10")
	assert.Error(t, err)
	assert.Empty(t, pr.upserted)
}

func TestSyncMonth_FallsBackWhenProcedureMissing(t *testing.T) {
	oct1 := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	oct2 := time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC)

	pr := &fakePayrollRepo{
		syncErr: &pgconn.PgError{Code: "42883"},
		rates: map[string]payroll.MasterRate{
			"A": {
				BasePay:       decimal.NewFromInt(2600000),
				MealAllowance: decimal.NewFromInt(1000000),
				Bonus:         decimal.NewFromInt(520000),
				OvertimeRate:  decimal.NewFromInt(20000),
			},
		},
	}
	ar := &fakeAttendanceRepo{rows: []attendance.Attendance{
		{EmployeeCode: "KT-001", Date: oct1, Code: attendance.CodePresent, OvertimeHours: 2},
		{EmployeeCode: "KT-001", Date: oct2, Code: attendance.CodeSick},
		{EmployeeCode: "KT-002", Date: oct1, Code: attendance.CodePresent},
	}}
	er := &fakeEmployeeRepo{employees: []employee.Employee{
		{Code: "KT-001", Grade: "A", Scheme: employee.SchemeDaily},
		{Code: "KT-002", Grade: "B", Scheme: employee.SchemePieceRate},
	}}
	or := &fakeOutputRepo{rows: []production.Output{
		{EmployeeCode: "KT-002", Date: oct1, Amount: decimal.NewFromInt(150000)},
	}}

	syncer := testSyncer(pr, ar, er, or)

	result, err := syncer.SyncMonth(context.Background(), "2025-10")
	require.NoError(t, err)

	assert.Equal(t, payroll.SyncMethodClient, result.Method)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 0, result.Failed)
	require.Len(t, pr.upserted, 2)

	byCode := map[string]payroll.SalaryRecord{}
	for _, r := range pr.upserted {
		byCode[r.EmployeeCode] = r
	}

	// Daily wage worker: monthly base prorated by the default divisor,
	// overtime from its rate, bonus forfeited by the sick day.
	daily := byCode["KT-001"]
	assertDecimal(t, "100000", daily.BasePay)
	assertDecimal(t, "40000", daily.OvertimePay)
	assertDecimal(t, "0", daily.BonusDaily)

	// Piece-rate worker: that day's production value is the base pay.
	piece := byCode["KT-002"]
	assertDecimal(t, "150000", piece.BasePay)
	assert.Equal(t, string(employee.SchemePieceRate), piece.Scheme)
}

func TestSyncMonth_ClientPathEmptyMonth(t *testing.T) {
	pr := &fakePayrollRepo{syncErr: &pgconn.PgError{Code: "42883"}}
	syncer := testSyncer(pr, &fakeAttendanceRepo{}, &fakeEmployeeRepo{}, &fakeOutputRepo{})

	result, err := syncer.SyncMonth(context.Background(), "2025-10")
	require.NoError(t, err)

	assert.Equal(t, payroll.SyncMethodClient, result.Method)
	assert.Equal(t, 0, result.Processed)
	assert.Empty(t, pr.upserted)
}

func TestSyncMonth_ClientPathSurfacesDivisorLookupFailure(t *testing.T) {
	oct1 := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

	pr := &fakePayrollRepo{
		syncErr:    &pgconn.PgError{Code: "42883"},
		divisorErr: errors.New("connection reset"),
	}
	ar := &fakeAttendanceRepo{rows: []attendance.Attendance{
		{EmployeeCode: "KT-001", Date: oct1, Code: attendance.CodePresent},
	}}
	er := &fakeEmployeeRepo{employees: []employee.Employee{
		{Code: "KT-001", Grade: "A", Scheme: employee.SchemeDaily},
	}}

	syncer := testSyncer(pr, ar, er, &fakeOutputRepo{})

	// A missing divisor row falls back to the default, but an outage must
	// not recompute the whole month at the default divisor.
	_, err := syncer.SyncMonth(context.Background(), "2025-10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "month divisor")
	assert.Empty(t, pr.upserted)
}

func TestSyncMonth_ClientPathSurfacesRateLookupFailure(t *testing.T) {
	oct1 := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

	pr := &fakePayrollRepo{
		syncErr: &pgconn.PgError{Code: "42883"},
		rateErr: errors.New("connection reset"),
	}
	ar := &fakeAttendanceRepo{rows: []attendance.Attendance{
		{EmployeeCode: "KT-001", Date: oct1, Code: attendance.CodePresent},
	}}
	er := &fakeEmployeeRepo{employees: []employee.Employee{
		{Code: "KT-001", Grade: "A", Scheme: employee.SchemeDaily},
	}}

	syncer := testSyncer(pr, ar, er, &fakeOutputRepo{})

	_, err := syncer.SyncMonth(context.Background(), "2025-10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "master rate")
	assert.Empty(t, pr.upserted)
}
