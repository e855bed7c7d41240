package payroll

import (
	"context"

	"github.com/kurniatex/payroll-backend-go/internal/pkg/excel"
)

// PayrollService defines business logic for salary master data, stored
// salary records, the audit breakdown, and the monthly sync.
type PayrollService interface {
	// Master rates
	UpsertMasterRate(ctx context.Context, req UpsertMasterRateRequest) (MasterRateResponse, error)
	ListMasterRates(ctx context.Context, filter MasterRateFilter) (ListMasterRateResponse, error)
	DeleteMasterRate(ctx context.Context, id string) error
	ImportMasterRatesXLSX(ctx context.Context, data []byte) (excel.ImportSummary, error)

	// Month divisors
	UpsertMonthDivisor(ctx context.Context, req UpsertMonthDivisorRequest) (MonthDivisorResponse, error)
	ListMonthDivisors(ctx context.Context) ([]MonthDivisorResponse, error)
	DeleteMonthDivisor(ctx context.Context, id string) error

	// Salary records
	ListSalaryRecords(ctx context.Context, filter SalaryRecordFilter) (ListSalaryRecordResponse, error)
	ExportSalaryRecordsXLSX(ctx context.Context, filter SalaryRecordFilter) ([]byte, error)

	// GetBreakdown recomputes the audit breakdown for one stored record.
	GetBreakdown(ctx context.Context, recordID string) (Breakdown, error)
}

// MonthlySyncer recomputes a month's salary records. The default
// implementation calls the server-side stored procedure and falls back to a
// slower client-driven batch recomputation when the procedure is missing.
type MonthlySyncer interface {
	SyncMonth(ctx context.Context, month string) (SyncResult, error)
}
