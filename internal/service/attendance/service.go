package attendance

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/kurniatex/payroll-backend-go/internal/config"
	"github.com/kurniatex/payroll-backend-go/internal/domain/attendance"
	"github.com/kurniatex/payroll-backend-go/internal/domain/employee"
	"github.com/kurniatex/payroll-backend-go/internal/pkg/batch"
	"github.com/kurniatex/payroll-backend-go/internal/pkg/database"
	"github.com/kurniatex/payroll-backend-go/internal/pkg/excel"
	"github.com/kurniatex/payroll-backend-go/internal/pkg/validator"
	"github.com/kurniatex/payroll-backend-go/internal/repository/postgresql"
)

type AttendanceServiceImpl struct {
	db             *database.DB
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	batchCfg       config.BatchConfig
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	batchCfg config.BatchConfig,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:             db,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		batchCfg:       batchCfg,
	}
}

func (s *AttendanceServiceImpl) Create(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := s.employeeRepo.GetByCode(ctx, req.EmployeeCode); err != nil {
		return attendance.AttendanceResponse{}, attendance.ErrEmployeeUnknown
	}

	date, _ := validator.IsValidDate(req.Date)
	created, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
		EmployeeCode:    req.EmployeeCode,
		Date:            date,
		Code:            attendance.Code(req.Code),
		OvertimeHours:   req.OvertimeHours,
		CompanyTransfer: req.CompanyTransfer,
		Note:            req.Note,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendanceToResponse(created), nil
}

func (s *AttendanceServiceImpl) Get(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	att, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendanceToResponse(att), nil
}

func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	records, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	resp := attendance.ListAttendanceResponse{
		Data:       make([]attendance.AttendanceResponse, 0, len(records)),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	for _, a := range records {
		resp.Data = append(resp.Data, attendanceToResponse(a))
	}

	return resp, nil
}

func (s *AttendanceServiceImpl) Update(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var updated attendance.Attendance
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.attendanceRepo.Update(txCtx, req); err != nil {
			return err
		}

		var err error
		updated, err = s.attendanceRepo.GetByID(txCtx, req.ID)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendanceToResponse(updated), nil
}

func (s *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	return s.attendanceRepo.Delete(ctx, id)
}

type deleteItem string

func (d deleteItem) Describe() string {
	return string(d)
}

// BulkDelete removes attendance rows through the adaptive batch queue and
// reports per-row failures instead of aborting the whole request.
func (s *AttendanceServiceImpl) BulkDelete(ctx context.Context, req attendance.BulkDeleteRequest) attendance.BulkDeleteResponse {
	items := make([]deleteItem, len(req.IDs))
	for i, id := range req.IDs {
		items[i] = deleteItem(id)
	}

	deleted, failures := batch.Run(ctx, items, func(ctx context.Context, chunk []deleteItem) error {
		ids := make([]string, len(chunk))
		for i, item := range chunk {
			ids[i] = string(item)
		}
		return s.attendanceRepo.DeleteByIDs(ctx, ids)
	}, nil, batch.Options{
		InitialSize: s.batchCfg.DeleteInitialSize,
		MaxSize:     s.batchCfg.DeleteMaxSize,
	})

	return attendance.BulkDeleteResponse{
		Deleted: deleted,
		Failed:  len(req.IDs) - deleted,
		Errors:  failures,
	}
}

// attendanceImportRow ties a parsed spreadsheet row to its sheet row number.
type attendanceImportRow struct {
	row int
	att attendance.Attendance
}

func (r attendanceImportRow) Describe() string {
	return fmt.Sprintf("row %d", r.row)
}

// ImportXLSX upserts attendance from a workbook whose columns are employee
// code, date, code, overtime hours, transfer flag, note. Rows referencing
// unknown employees are rejected before anything is written.
func (s *AttendanceServiceImpl) ImportXLSX(ctx context.Context, data []byte) (excel.ImportSummary, error) {
	rows, err := excel.ParseWorkbook(bytes.NewReader(data))
	if err != nil {
		return excel.ImportSummary{}, err
	}
	if len(rows) <= 1 {
		return excel.ImportSummary{}, nil
	}

	summary := excel.ImportSummary{Processed: len(rows) - 1}
	var imports []attendanceImportRow

	for i, cells := range rows[1:] {
		rowNum := i + 2
		att, err := parseAttendanceRow(cells)
		if err != nil {
			summary.Errors = append(summary.Errors, excel.RowError{Row: rowNum, Reason: err.Error()})
			continue
		}
		imports = append(imports, attendanceImportRow{row: rowNum, att: att})
	}

	imports, rejected := s.rejectUnknownEmployees(ctx, imports)
	summary.Errors = append(summary.Errors, rejected...)

	imported, failures := batch.Run(ctx, imports, func(ctx context.Context, items []attendanceImportRow) error {
		records := make([]attendance.Attendance, len(items))
		for i, it := range items {
			records[i] = it.att
		}
		return s.attendanceRepo.Upsert(ctx, records)
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

// rejectUnknownEmployees splits the import set by one lookup of every code
// it references, so bad codes surface as row errors rather than constraint
// violations mid-batch.
func (s *AttendanceServiceImpl) rejectUnknownEmployees(ctx context.Context, imports []attendanceImportRow) ([]attendanceImportRow, []excel.RowError) {
	seen := map[string]bool{}
	var codes []string
	for _, it := range imports {
		if !seen[it.att.EmployeeCode] {
			seen[it.att.EmployeeCode] = true
			codes = append(codes, it.att.EmployeeCode)
		}
	}
	if len(codes) == 0 {
		return imports, nil
	}

	employees, err := s.employeeRepo.GetByCodes(ctx, codes)
	if err != nil {
		// Let the batch stage surface the failure per row.
		return imports, nil
	}

	known := map[string]bool{}
	for _, e := range employees {
		known[e.Code] = true
	}

	var kept []attendanceImportRow
	var rejected []excel.RowError
	for _, it := range imports {
		if !known[it.att.EmployeeCode] {
			rejected = append(rejected, excel.RowError{
				Row:    it.row,
				Reason: fmt.Sprintf("unknown employee code %q", it.att.EmployeeCode),
			})
			continue
		}
		kept = append(kept, it)
	}

	return kept, rejected
}

func parseAttendanceRow(cells []string) (attendance.Attendance, error) {
	if len(cells) < 3 {
		return attendance.Attendance{}, fmt.Errorf("expected at least 3 columns, got %d", len(cells))
	}

	code := strings.ToUpper(strings.TrimSpace(cells[0]))
	if code == "" {
		return attendance.Attendance{}, fmt.Errorf("employee code is required")
	}

	date, err := excel.ParseDate(strings.TrimSpace(cells[1]))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("invalid date %q", cells[1])
	}

	attCode := attendance.Code(strings.ToUpper(strings.TrimSpace(cells[2])))
	if !attCode.IsValid() {
		return attendance.Attendance{}, fmt.Errorf("invalid attendance code %q", cells[2])
	}

	att := attendance.Attendance{
		EmployeeCode: code,
		Date:         date,
		Code:         attCode,
	}

	if len(cells) > 3 {
		if cell := strings.TrimSpace(cells[3]); cell != "" {
			hours, err := strconv.ParseFloat(cell, 64)
			if err != nil || hours < 0 || hours > 24 {
				return attendance.Attendance{}, fmt.Errorf("invalid overtime hours %q", cell)
			}
			att.OvertimeHours = hours
		}
	}
	if len(cells) > 4 {
		switch strings.ToLower(strings.TrimSpace(cells[4])) {
		case "", "0", "false", "tidak":
		case "1", "true", "ya":
			att.CompanyTransfer = true
		default:
			return attendance.Attendance{}, fmt.Errorf("invalid transfer flag %q", cells[4])
		}
	}
	if len(cells) > 5 {
		if note := strings.TrimSpace(cells[5]); note != "" {
			att.Note = &note
		}
	}

	return att, nil
}

func (s *AttendanceServiceImpl) ExportXLSX(ctx context.Context, filter attendance.AttendanceFilter) ([]byte, error) {
	filter.Page = 1
	filter.Limit = 10000

	records, _, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	headers := []string{"Kode", "Nama", "Tanggal", "Status", "Lembur (Jam)", "Pindahan", "Catatan"}
	rows := make([][]interface{}, 0, len(records))
	for _, a := range records {
		name, note := "", ""
		if a.EmployeeName != nil {
			name = *a.EmployeeName
		}
		if a.Note != nil {
			note = *a.Note
		}
		transfer := ""
		if a.CompanyTransfer {
			transfer = "ya"
		}
		rows = append(rows, []interface{}{
			a.EmployeeCode,
			name,
			a.Date.Format("2006-01-02"),
			string(a.Code),
			a.OvertimeHours,
			transfer,
			note,
		})
	}

	return excel.BuildWorkbook("Absensi", headers, rows)
}

func attendanceToResponse(a attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:              a.ID,
		EmployeeCode:    a.EmployeeCode,
		EmployeeName:    a.EmployeeName,
		Date:            a.Date.Format("2006-01-02"),
		Code:            string(a.Code),
		OvertimeHours:   a.OvertimeHours,
		CompanyTransfer: a.CompanyTransfer,
		Note:            a.Note,
	}
}
