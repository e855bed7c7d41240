package payroll

import (
	"context"
	"time"
)

// PayrollRepository defines data access methods for salary master rates,
// month divisors, and stored salary records.
type PayrollRepository interface {
	// Master rates
	UpsertMasterRate(ctx context.Context, rate MasterRate) (MasterRate, error)
	GetMasterRate(ctx context.Context, grade, month string) (MasterRate, error)
	ListMasterRates(ctx context.Context, filter MasterRateFilter) ([]MasterRate, int64, error)
	DeleteMasterRate(ctx context.Context, id string) error
	UpsertMasterRates(ctx context.Context, rates []MasterRate) error

	// Month divisors
	UpsertMonthDivisor(ctx context.Context, div MonthDivisor) (MonthDivisor, error)
	GetMonthDivisor(ctx context.Context, month string) (MonthDivisor, error)
	ListMonthDivisors(ctx context.Context) ([]MonthDivisor, error)
	DeleteMonthDivisor(ctx context.Context, id string) error

	// Salary records
	GetSalaryRecordByID(ctx context.Context, id string) (SalaryRecord, error)
	ListSalaryRecords(ctx context.Context, filter SalaryRecordFilter) ([]SalaryRecord, int64, error)
	UpsertSalaryRecords(ctx context.Context, records []SalaryRecord) error
	DeleteSalaryRecordsByIDs(ctx context.Context, ids []string) error

	// CallMonthlySync invokes the server-owned stored procedure that
	// recomputes a month's salary records. The caller inspects the error's
	// kind to decide whether to fall back to the client-side computation.
	CallMonthlySync(ctx context.Context, procedure string, month time.Time) (int, error)
}
