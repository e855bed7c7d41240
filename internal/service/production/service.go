package production

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/kurniatex/payroll-backend-go/internal/config"
	"github.com/kurniatex/payroll-backend-go/internal/domain/employee"
	"github.com/kurniatex/payroll-backend-go/internal/domain/production"
	"github.com/kurniatex/payroll-backend-go/internal/pkg/batch"
	"github.com/kurniatex/payroll-backend-go/internal/pkg/database"
	"github.com/kurniatex/payroll-backend-go/internal/pkg/excel"
	"github.com/kurniatex/payroll-backend-go/internal/pkg/validator"
	"github.com/kurniatex/payroll-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
)

type OutputServiceImpl struct {
	db           *database.DB
	outputRepo   production.OutputRepository
	employeeRepo employee.EmployeeRepository
	batchCfg     config.BatchConfig
}

func NewOutputService(
	db *database.DB,
	outputRepo production.OutputRepository,
	employeeRepo employee.EmployeeRepository,
	batchCfg config.BatchConfig,
) production.OutputService {
	return &OutputServiceImpl{
		db:           db,
		outputRepo:   outputRepo,
		employeeRepo: employeeRepo,
		batchCfg:     batchCfg,
	}
}

func (s *OutputServiceImpl) Create(ctx context.Context, req production.CreateOutputRequest) (production.OutputResponse, error) {
	if err := req.Validate(); err != nil {
		return production.OutputResponse{}, err
	}

	if _, err := s.employeeRepo.GetByCode(ctx, req.EmployeeCode); err != nil {
		return production.OutputResponse{}, production.ErrEmployeeUnknown
	}

	date, _ := validator.IsValidDate(req.Date)
	created, err := s.outputRepo.Create(ctx, production.Output{
		EmployeeCode: req.EmployeeCode,
		Date:         date,
		Item:         strings.TrimSpace(req.Item),
		Quantity:     req.Quantity,
		Rate:         req.Rate,
	})
	if err != nil {
		return production.OutputResponse{}, err
	}

	return outputToResponse(created), nil
}

func (s *OutputServiceImpl) Get(ctx context.Context, id string) (production.OutputResponse, error) {
	out, err := s.outputRepo.GetByID(ctx, id)
	if err != nil {
		return production.OutputResponse{}, err
	}

	return outputToResponse(out), nil
}

func (s *OutputServiceImpl) List(ctx context.Context, filter production.OutputFilter) (production.ListOutputResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	outputs, total, err := s.outputRepo.List(ctx, filter)
	if err != nil {
		return production.ListOutputResponse{}, err
	}

	resp := production.ListOutputResponse{
		Data:       make([]production.OutputResponse, 0, len(outputs)),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	for _, o := range outputs {
		resp.Data = append(resp.Data, outputToResponse(o))
	}

	return resp, nil
}

func (s *OutputServiceImpl) Update(ctx context.Context, req production.UpdateOutputRequest) (production.OutputResponse, error) {
	if err := req.Validate(); err != nil {
		return production.OutputResponse{}, err
	}

	// The repository recomputes the amount in a second statement, so the
	// update and the reload share one transaction.
	var updated production.Output
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.outputRepo.Update(txCtx, req); err != nil {
			return err
		}

		var err error
		updated, err = s.outputRepo.GetByID(txCtx, req.ID)
		return err
	})
	if err != nil {
		return production.OutputResponse{}, err
	}

	return outputToResponse(updated), nil
}

func (s *OutputServiceImpl) Delete(ctx context.Context, id string) error {
	return s.outputRepo.Delete(ctx, id)
}

// outputImportRow ties a parsed spreadsheet row to its sheet row number.
type outputImportRow struct {
	row int
	out production.Output
}

func (r outputImportRow) Describe() string {
	return fmt.Sprintf("row %d", r.row)
}

// ImportXLSX upserts production output from a workbook whose columns are
// employee code, date, item, quantity, rate.
func (s *OutputServiceImpl) ImportXLSX(ctx context.Context, data []byte) (excel.ImportSummary, error) {
	rows, err := excel.ParseWorkbook(bytes.NewReader(data))
	if err != nil {
		return excel.ImportSummary{}, err
	}
	if len(rows) <= 1 {
		return excel.ImportSummary{}, nil
	}

	summary := excel.ImportSummary{Processed: len(rows) - 1}
	var imports []outputImportRow

	for i, cells := range rows[1:] {
		rowNum := i + 2
		out, err := parseOutputRow(cells)
		if err != nil {
			summary.Errors = append(summary.Errors, excel.RowError{Row: rowNum, Reason: err.Error()})
			continue
		}
		imports = append(imports, outputImportRow{row: rowNum, out: out})
	}

	imported, failures := batch.Run(ctx, imports, func(ctx context.Context, items []outputImportRow) error {
		outputs := make([]production.Output, len(items))
		for i, it := range items {
			outputs[i] = it.out
		}
		return s.outputRepo.Upsert(ctx, outputs)
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

func parseOutputRow(cells []string) (production.Output, error) {
	if len(cells) < 5 {
		return production.Output{}, fmt.Errorf("expected 5 columns, got %d", len(cells))
	}

	code := strings.ToUpper(strings.TrimSpace(cells[0]))
	if code == "" {
		return production.Output{}, fmt.Errorf("employee code is required")
	}

	date, err := excel.ParseDate(strings.TrimSpace(cells[1]))
	if err != nil {
		return production.Output{}, fmt.Errorf("invalid date %q", cells[1])
	}

	item := strings.TrimSpace(cells[2])
	if item == "" {
		return production.Output{}, fmt.Errorf("item is required")
	}

	quantity, err := decimal.NewFromString(strings.TrimSpace(cells[3]))
	if err != nil || quantity.IsNegative() || quantity.IsZero() {
		return production.Output{}, fmt.Errorf("invalid quantity %q", cells[3])
	}

	rate, err := decimal.NewFromString(strings.TrimSpace(cells[4]))
	if err != nil || rate.IsNegative() {
		return production.Output{}, fmt.Errorf("invalid rate %q", cells[4])
	}

	return production.Output{
		EmployeeCode: code,
		Date:         date,
		Item:         item,
		Quantity:     quantity,
		Rate:         rate,
	}, nil
}

func (s *OutputServiceImpl) ExportXLSX(ctx context.Context, filter production.OutputFilter) ([]byte, error) {
	filter.Page = 1
	filter.Limit = 10000

	outputs, _, err := s.outputRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	headers := []string{"Kode", "Nama", "Tanggal", "Barang", "Jumlah", "Tarif", "Nilai"}
	rows := make([][]interface{}, 0, len(outputs))
	for _, o := range outputs {
		name := ""
		if o.EmployeeName != nil {
			name = *o.EmployeeName
		}
		rows = append(rows, []interface{}{
			o.EmployeeCode,
			name,
			o.Date.Format("2006-01-02"),
			o.Item,
			o.Quantity.InexactFloat64(),
			o.Rate.InexactFloat64(),
			o.Amount.InexactFloat64(),
		})
	}

	return excel.BuildWorkbook("Produksi", headers, rows)
}

func outputToResponse(o production.Output) production.OutputResponse {
	return production.OutputResponse{
		ID:           o.ID,
		EmployeeCode: o.EmployeeCode,
		EmployeeName: o.EmployeeName,
		Date:         o.Date.Format("2006-01-02"),
		Item:         o.Item,
		Quantity:     o.Quantity,
		Rate:         o.Rate,
		Amount:       o.Amount,
	}
}
