package payroll

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kurniatex/payroll-backend-go/internal/config"
	"github.com/kurniatex/payroll-backend-go/internal/domain/attendance"
	"github.com/kurniatex/payroll-backend-go/internal/domain/employee"
	"github.com/kurniatex/payroll-backend-go/internal/domain/payroll"
	"github.com/kurniatex/payroll-backend-go/internal/pkg/batch"
	"github.com/kurniatex/payroll-backend-go/internal/pkg/excel"
	"github.com/kurniatex/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	payrollRepo    payroll.PayrollRepository
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	calc           *BreakdownCalculator
	batchCfg       config.BatchConfig
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	calc *BreakdownCalculator,
	batchCfg config.BatchConfig,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		payrollRepo:    payrollRepo,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		calc:           calc,
		batchCfg:       batchCfg,
	}
}

// ========== MASTER RATES ==========

func (s *PayrollServiceImpl) UpsertMasterRate(ctx context.Context, req payroll.UpsertMasterRateRequest) (payroll.MasterRateResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.MasterRateResponse{}, err
	}

	rate, err := s.payrollRepo.UpsertMasterRate(ctx, payroll.MasterRate{
		Grade:               req.Grade,
		Month:               req.Month,
		BasePay:             req.BasePay,
		MealAllowance:       req.MealAllowance,
		AttendanceAllowance: req.AttendanceAllowance,
		Bonus:               req.Bonus,
		OvertimeRate:        req.OvertimeRate,
	})
	if err != nil {
		return payroll.MasterRateResponse{}, err
	}

	return masterRateToResponse(rate), nil
}

func (s *PayrollServiceImpl) ListMasterRates(ctx context.Context, filter payroll.MasterRateFilter) (payroll.ListMasterRateResponse, error) {
	normalizePage(&filter.Page, &filter.Limit)

	rates, total, err := s.payrollRepo.ListMasterRates(ctx, filter)
	if err != nil {
		return payroll.ListMasterRateResponse{}, err
	}

	resp := payroll.ListMasterRateResponse{
		Data:       make([]payroll.MasterRateResponse, 0, len(rates)),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	for _, r := range rates {
		resp.Data = append(resp.Data, masterRateToResponse(r))
	}

	return resp, nil
}

func (s *PayrollServiceImpl) DeleteMasterRate(ctx context.Context, id string) error {
	return s.payrollRepo.DeleteMasterRate(ctx, id)
}

// masterRateImportRow ties a parsed spreadsheet row back to its 1-based row
// number so batch failures can be reported against the sheet.
type masterRateImportRow struct {
	row  int
	rate payroll.MasterRate
}

func (r masterRateImportRow) Describe() string {
	return fmt.Sprintf("row %d", r.row)
}

// ImportMasterRatesXLSX parses a workbook whose columns are grade, month,
// base pay, meal allowance, attendance allowance, bonus, overtime rate. The
// month cell accepts "YYYY-MM" or any supported date format.
func (s *PayrollServiceImpl) ImportMasterRatesXLSX(ctx context.Context, data []byte) (excel.ImportSummary, error) {
	rows, err := excel.ParseWorkbook(bytes.NewReader(data))
	if err != nil {
		return excel.ImportSummary{}, err
	}
	if len(rows) <= 1 {
		return excel.ImportSummary{}, nil
	}

	summary := excel.ImportSummary{Processed: len(rows) - 1}
	var imports []masterRateImportRow

	for i, cells := range rows[1:] {
		rowNum := i + 2
		rate, err := parseMasterRateRow(cells)
		if err != nil {
			summary.Errors = append(summary.Errors, excel.RowError{Row: rowNum, Reason: err.Error()})
			continue
		}
		imports = append(imports, masterRateImportRow{row: rowNum, rate: rate})
	}

	imported, failures := batch.Run(ctx, imports, func(ctx context.Context, items []masterRateImportRow) error {
		rates := make([]payroll.MasterRate, len(items))
		for i, it := range items {
			rates[i] = it.rate
		}
		return s.payrollRepo.UpsertMasterRates(ctx, rates)
	}, nil, batch.Options{
		InitialSize: s.batchCfg.ImportInitialSize,
		MaxSize:     s.batchCfg.ImportMaxSize,
	})

	for _, f := range failures {
		summary.Errors = append(summary.Errors, excel.ImportRowError(f))
	}
	summary.Imported = imported
	summary.Failed = summary.Processed - summary.Imported

	return summary, nil
}

func parseMasterRateRow(cells []string) (payroll.MasterRate, error) {
	if len(cells) < 7 {
		return payroll.MasterRate{}, fmt.Errorf("expected 7 columns, got %d", len(cells))
	}

	grade := strings.TrimSpace(cells[0])
	if grade == "" {
		return payroll.MasterRate{}, fmt.Errorf("grade is required")
	}

	month := strings.TrimSpace(cells[1])
	if _, ok := validator.IsValidMonth(month); !ok {
		// Fall back to the date formats exports and users produce.
		parsed, err := excel.ParseDate(month)
		if err != nil {
			return payroll.MasterRate{}, fmt.Errorf("invalid month %q", month)
		}
		month = parsed.Format("2006-01")
	}

	rate := payroll.MasterRate{Grade: grade, Month: month}
	for i, target := range []*decimal.Decimal{
		&rate.BasePay, &rate.MealAllowance, &rate.AttendanceAllowance, &rate.Bonus, &rate.OvertimeRate,
	} {
		cell := strings.TrimSpace(cells[i+2])
		if cell == "" {
			*target = decimal.Zero
			continue
		}
		value, err := decimal.NewFromString(cell)
		if err != nil {
			return payroll.MasterRate{}, fmt.Errorf("invalid amount %q", cell)
		}
		if value.IsNegative() {
			return payroll.MasterRate{}, fmt.Errorf("negative amount %q", cell)
		}
		*target = value
	}

	return rate, nil
}

// ========== MONTH DIVISORS ==========

func (s *PayrollServiceImpl) UpsertMonthDivisor(ctx context.Context, req payroll.UpsertMonthDivisorRequest) (payroll.MonthDivisorResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.MonthDivisorResponse{}, err
	}

	div, err := s.payrollRepo.UpsertMonthDivisor(ctx, payroll.MonthDivisor{
		Month:   req.Month,
		Divisor: req.Divisor,
	})
	if err != nil {
		return payroll.MonthDivisorResponse{}, err
	}

	return payroll.MonthDivisorResponse{ID: div.ID, Month: div.Month, Divisor: div.Divisor}, nil
}

func (s *PayrollServiceImpl) ListMonthDivisors(ctx context.Context) ([]payroll.MonthDivisorResponse, error) {
	divisors, err := s.payrollRepo.ListMonthDivisors(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]payroll.MonthDivisorResponse, 0, len(divisors))
	for _, d := range divisors {
		resp = append(resp, payroll.MonthDivisorResponse{ID: d.ID, Month: d.Month, Divisor: d.Divisor})
	}

	return resp, nil
}

func (s *PayrollServiceImpl) DeleteMonthDivisor(ctx context.Context, id string) error {
	return s.payrollRepo.DeleteMonthDivisor(ctx, id)
}

// ========== SALARY RECORDS ==========

func (s *PayrollServiceImpl) ListSalaryRecords(ctx context.Context, filter payroll.SalaryRecordFilter) (payroll.ListSalaryRecordResponse, error) {
	normalizePage(&filter.Page, &filter.Limit)

	records, total, err := s.payrollRepo.ListSalaryRecords(ctx, filter)
	if err != nil {
		return payroll.ListSalaryRecordResponse{}, err
	}

	resp := payroll.ListSalaryRecordResponse{
		Data:       make([]payroll.SalaryRecordResponse, 0, len(records)),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	for _, r := range records {
		resp.Data = append(resp.Data, salaryRecordToResponse(r))
	}

	return resp, nil
}

// exportPageSize bounds one export; the UI warns before exporting more.
const exportPageSize = 10000

func (s *PayrollServiceImpl) ExportSalaryRecordsXLSX(ctx context.Context, filter payroll.SalaryRecordFilter) ([]byte, error) {
	filter.Page = 1
	filter.Limit = exportPageSize

	records, _, err := s.payrollRepo.ListSalaryRecords(ctx, filter)
	if err != nil {
		return nil, err
	}

	headers := []string{"Kode", "Nama", "Tanggal", "Skema", "Gaji Pokok", "Lembur", "Uang Makan", "Uang Hadir", "Bonus", "Total"}
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		name := ""
		if r.EmployeeName != nil {
			name = *r.EmployeeName
		}
		rows = append(rows, []interface{}{
			r.EmployeeCode,
			name,
			r.Date.Format("2006-01-02"),
			r.Scheme,
			r.BasePay.InexactFloat64(),
			r.OvertimePay.InexactFloat64(),
			r.MealDaily.InexactFloat64(),
			r.AttendanceDaily.InexactFloat64(),
			r.BonusDaily.InexactFloat64(),
			r.Total.InexactFloat64(),
		})
	}

	return excel.BuildWorkbook("Gaji", headers, rows)
}

// ========== BREAKDOWN ==========

// GetBreakdown recomputes the audit breakdown for one stored salary record.
// Missing master data degrades to zeroed components instead of failing the
// whole view.
func (s *PayrollServiceImpl) GetBreakdown(ctx context.Context, recordID string) (payroll.Breakdown, error) {
	record, err := s.payrollRepo.GetSalaryRecordByID(ctx, recordID)
	if err != nil {
		return payroll.Breakdown{}, err
	}

	month := record.Date.Format("2006-01")

	var rate payroll.MasterRate
	if record.Grade != nil {
		rate, err = s.payrollRepo.GetMasterRate(ctx, *record.Grade, month)
		if err != nil && !errors.Is(err, payroll.ErrMasterRateNotFound) {
			return payroll.Breakdown{}, err
		}
	}

	divisor := 0
	div, err := s.payrollRepo.GetMonthDivisor(ctx, month)
	if err == nil {
		divisor = div.Divisor
	} else if !errors.Is(err, payroll.ErrDivisorNotFound) {
		return payroll.Breakdown{}, err
	}

	counts, err := s.attendanceRepo.CountExceptions(ctx, record.EmployeeCode, record.Date)
	if err != nil {
		return payroll.Breakdown{}, err
	}

	return s.calc.Compute(BreakdownInput{
		Record:          record,
		Rate:            rate,
		Divisor:         divisor,
		Counts:          counts,
		PieceRate:       record.Scheme == string(employee.SchemePieceRate),
		CompanyTransfer: counts.TransferDays > 0,
	}), nil
}

// ========== HELPERS ==========

func normalizePage(page, limit *int) {
	if *page < 1 {
		*page = 1
	}
	if *limit < 1 {
		*limit = 20
	}
	if *limit > 100 {
		*limit = 100
	}
}

func masterRateToResponse(m payroll.MasterRate) payroll.MasterRateResponse {
	return payroll.MasterRateResponse{
		ID:                  m.ID,
		Grade:               m.Grade,
		Month:               m.Month,
		BasePay:             m.BasePay,
		MealAllowance:       m.MealAllowance,
		AttendanceAllowance: m.AttendanceAllowance,
		Bonus:               m.Bonus,
		OvertimeRate:        m.OvertimeRate,
	}
}

func salaryRecordToResponse(r payroll.SalaryRecord) payroll.SalaryRecordResponse {
	return payroll.SalaryRecordResponse{
		ID:              r.ID,
		EmployeeCode:    r.EmployeeCode,
		EmployeeName:    r.EmployeeName,
		Grade:           r.Grade,
		Date:            r.Date.Format("2006-01-02"),
		Scheme:          r.Scheme,
		BasePay:         r.BasePay,
		OvertimePay:     r.OvertimePay,
		MealDaily:       r.MealDaily,
		AttendanceDaily: r.AttendanceDaily,
		BonusDaily:      r.BonusDaily,
		Total:           r.Total,
	}
}
