package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// MasterRate holds the monthly figures for one grade and month. Every rupiah
// amount is monthly; daily amounts are derived through the month divisor.
type MasterRate struct {
	ID                  string
	Grade               string
	Month               string // "YYYY-MM"
	BasePay             decimal.Decimal
	MealAllowance       decimal.Decimal
	AttendanceAllowance decimal.Decimal
	Bonus               decimal.Decimal
	OvertimeRate        decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MonthDivisor is the configured working-days divisor for a month. Months
// without a row fall back to the configured default (26).
type MonthDivisor struct {
	ID      string
	Month   string // "YYYY-MM"
	Divisor int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SalaryRecord is one stored employee-day salary row. The stored total is
// authoritative; it is written by the server-side procedure or the client
// fallback sync, never by the audit breakdown.
type SalaryRecord struct {
	ID              string
	EmployeeCode    string
	Date            time.Time
	Scheme          string
	BasePay         decimal.Decimal
	OvertimePay     decimal.Decimal
	MealDaily       decimal.Decimal
	AttendanceDaily decimal.Decimal
	BonusDaily      decimal.Decimal
	Total           decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
	Grade        *string
}

// BonusState is the outcome of the priority-ordered bonus evaluation.
type BonusState string

const (
	// BonusForfeited - transfer event, any violation, or a personal
	// holiday this month zeroes the bonus.
	BonusForfeited BonusState = "forfeited"
	// BonusReduced - a company holiday this month divides the bonus.
	BonusReduced BonusState = "reduced"
	// BonusPartial - piece-rate workers without holidays get a quarter.
	BonusPartial BonusState = "partial"
	// BonusFull - the monthly bonus applies as-is.
	BonusFull BonusState = "full"
)

// ComponentBreakdown is the derivation of one allowance component.
type ComponentBreakdown struct {
	MonthlyBase decimal.Decimal `json:"monthly_base"`
	Deduction   decimal.Decimal `json:"deduction"`
	NetMonthly  decimal.Decimal `json:"net_monthly"`
	Daily       decimal.Decimal `json:"daily"`
}

// Breakdown reproduces, for human audit, how one employee-day total derives
// from the monthly master rate. It is a diagnostic estimate: the stored
// total remains authoritative and the breakdown may be stale when master
// rates or divisor config changed after the last sync.
type Breakdown struct {
	EmployeeCode string `json:"employee_code"`
	Date         string `json:"date"`
	MonthDivisor int    `json:"month_divisor"`

	Meal       ComponentBreakdown `json:"meal"`
	Attendance ComponentBreakdown `json:"attendance"`
	Bonus      ComponentBreakdown `json:"bonus"`
	BonusState BonusState         `json:"bonus_state"`

	BasePay     decimal.Decimal `json:"base_pay"`
	OvertimePay decimal.Decimal `json:"overtime_pay"`
	Total       decimal.Decimal `json:"total"`

	StoredTotal decimal.Decimal `json:"stored_total"`
	Stale       bool            `json:"stale"`
}

// SyncMethod records which implementation performed a monthly sync.
type SyncMethod string

const (
	SyncMethodProcedure SyncMethod = "procedure"
	SyncMethodClient    SyncMethod = "client"
)

// SyncResult reports the outcome of a monthly salary sync. Partial failure
// is expected on the client path: processed rows are committed even when
// others fail.
type SyncResult struct {
	Month     string     `json:"month"`
	Method    SyncMethod `json:"method"`
	Processed int        `json:"processed"`
	Failed    int        `json:"failed"`
	Errors    []string   `json:"errors,omitempty"`
}
