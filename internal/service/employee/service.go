package employee

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/kurniatex/payroll-backend-go/internal/config"
	"github.com/kurniatex/payroll-backend-go/internal/domain/employee"
	"github.com/kurniatex/payroll-backend-go/internal/pkg/batch"
	"github.com/kurniatex/payroll-backend-go/internal/pkg/database"
	"github.com/kurniatex/payroll-backend-go/internal/pkg/excel"
	"github.com/kurniatex/payroll-backend-go/internal/pkg/validator"
	"github.com/kurniatex/payroll-backend-go/internal/repository/postgresql"
)

type EmployeeServiceImpl struct {
	db           *database.DB
	employeeRepo employee.EmployeeRepository
	batchCfg     config.BatchConfig
}

func NewEmployeeService(
	db *database.DB,
	employeeRepo employee.EmployeeRepository,
	batchCfg config.BatchConfig,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:           db,
		employeeRepo: employeeRepo,
		batchCfg:     batchCfg,
	}
}

func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp := employee.Employee{
		Code:    strings.ToUpper(strings.TrimSpace(req.Code)),
		Name:    strings.TrimSpace(req.Name),
		NIK:     req.NIK,
		Grade:   req.Grade,
		Scheme:  employee.Scheme(req.Scheme),
		Section: req.Section,
		Active:  true,
	}
	if req.JoinDate != nil {
		joinDate, _ := validator.IsValidDate(*req.JoinDate)
		emp.JoinDate = &joinDate
	}

	created, err := s.employeeRepo.Create(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employeeToResponse(created), nil
}

func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employeeToResponse(emp), nil
}

func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	resp := employee.ListEmployeeResponse{
		Data:       make([]employee.EmployeeResponse, 0, len(employees)),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	for _, e := range employees {
		resp.Data = append(resp.Data, employeeToResponse(e))
	}

	return resp, nil
}

func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var updated employee.Employee
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.employeeRepo.Update(txCtx, req); err != nil {
			return err
		}

		var err error
		updated, err = s.employeeRepo.GetByID(txCtx, req.ID)
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employeeToResponse(updated), nil
}

func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	return s.employeeRepo.Delete(ctx, id)
}

// deleteItem names an employee ID in batch failure entries.
type deleteItem string

func (d deleteItem) Describe() string {
	return string(d)
}

// BulkDelete removes employees through the adaptive batch queue so one
// undeletable row (say, one still referenced by salary records) does not
// abort the rest.
func (s *EmployeeServiceImpl) BulkDelete(ctx context.Context, ids []string) employee.BulkDeleteResponse {
	items := make([]deleteItem, len(ids))
	for i, id := range ids {
		items[i] = deleteItem(id)
	}

	deleted, failures := batch.Run(ctx, items, func(ctx context.Context, chunk []deleteItem) error {
		batchIDs := make([]string, len(chunk))
		for i, item := range chunk {
			batchIDs[i] = string(item)
		}
		return s.employeeRepo.DeleteByIDs(ctx, batchIDs)
	}, nil, batch.Options{
		InitialSize: s.batchCfg.DeleteInitialSize,
		MaxSize:     s.batchCfg.DeleteMaxSize,
	})

	return employee.BulkDeleteResponse{
		Deleted: deleted,
		Failed:  len(ids) - deleted,
		Errors:  failures,
	}
}

// employeeImportRow ties a parsed spreadsheet row to its sheet row number.
type employeeImportRow struct {
	row int
	emp employee.Employee
}

func (r employeeImportRow) Describe() string {
	return fmt.Sprintf("row %d", r.row)
}

// ImportXLSX upserts employees from a workbook whose columns are code, name,
// NIK, grade, scheme, section, join date.
func (s *EmployeeServiceImpl) ImportXLSX(ctx context.Context, data []byte) (excel.ImportSummary, error) {
	rows, err := excel.ParseWorkbook(bytes.NewReader(data))
	if err != nil {
		return excel.ImportSummary{}, err
	}
	if len(rows) <= 1 {
		return excel.ImportSummary{}, nil
	}

	summary := excel.ImportSummary{Processed: len(rows) - 1}
	var imports []employeeImportRow

	for i, cells := range rows[1:] {
		rowNum := i + 2
		emp, err := parseEmployeeRow(cells)
		if err != nil {
			summary.Errors = append(summary.Errors, excel.RowError{Row: rowNum, Reason: err.Error()})
			continue
		}
		imports = append(imports, employeeImportRow{row: rowNum, emp: emp})
	}

	imported, failures := batch.Run(ctx, imports, func(ctx context.Context, items []employeeImportRow) error {
		employees := make([]employee.Employee, len(items))
		for i, it := range items {
			employees[i] = it.emp
		}
		return s.employeeRepo.Upsert(ctx, employees)
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

func parseEmployeeRow(cells []string) (employee.Employee, error) {
	if len(cells) < 5 {
		return employee.Employee{}, fmt.Errorf("expected at least 5 columns, got %d", len(cells))
	}

	code := strings.ToUpper(strings.TrimSpace(cells[0]))
	if code == "" {
		return employee.Employee{}, fmt.Errorf("code is required")
	}

	name := strings.TrimSpace(cells[1])
	if name == "" {
		return employee.Employee{}, fmt.Errorf("name is required")
	}

	emp := employee.Employee{
		Code:   code,
		Name:   name,
		Grade:  strings.TrimSpace(cells[3]),
		Active: true,
	}

	if nik := strings.TrimSpace(cells[2]); nik != "" {
		if !validator.IsValidNIK(nik) {
			return employee.Employee{}, fmt.Errorf("invalid NIK %q", nik)
		}
		emp.NIK = &nik
	}

	scheme := employee.Scheme(strings.ToLower(strings.TrimSpace(cells[4])))
	if !scheme.IsValid() {
		return employee.Employee{}, fmt.Errorf("invalid scheme %q", cells[4])
	}
	emp.Scheme = scheme

	if len(cells) > 5 {
		if section := strings.TrimSpace(cells[5]); section != "" {
			emp.Section = &section
		}
	}
	if len(cells) > 6 {
		if cell := strings.TrimSpace(cells[6]); cell != "" {
			joinDate, err := excel.ParseDate(cell)
			if err != nil {
				return employee.Employee{}, fmt.Errorf("invalid join date %q", cell)
			}
			emp.JoinDate = &joinDate
		}
	}

	return emp, nil
}

func (s *EmployeeServiceImpl) ExportXLSX(ctx context.Context, filter employee.EmployeeFilter) ([]byte, error) {
	filter.Page = 1
	filter.Limit = 10000

	employees, _, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	headers := []string{"Kode", "Nama", "NIK", "Grade", "Skema", "Bagian", "Tanggal Masuk", "Aktif"}
	rows := make([][]interface{}, 0, len(employees))
	for _, e := range employees {
		nik, section, joinDate := "", "", ""
		if e.NIK != nil {
			nik = *e.NIK
		}
		if e.Section != nil {
			section = *e.Section
		}
		if e.JoinDate != nil {
			joinDate = e.JoinDate.Format("2006-01-02")
		}
		rows = append(rows, []interface{}{
			e.Code, e.Name, nik, e.Grade, string(e.Scheme), section, joinDate, e.Active,
		})
	}

	return excel.BuildWorkbook("Karyawan", headers, rows)
}

func employeeToResponse(e employee.Employee) employee.EmployeeResponse {
	resp := employee.EmployeeResponse{
		ID:      e.ID,
		Code:    e.Code,
		Name:    e.Name,
		NIK:     e.NIK,
		Grade:   e.Grade,
		Scheme:  string(e.Scheme),
		Section: e.Section,
		Active:  e.Active,
	}
	if e.JoinDate != nil {
		joinDate := e.JoinDate.Format("2006-01-02")
		resp.JoinDate = &joinDate
	}
	return resp
}
