package payroll

import (
	"github.com/kurniatex/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type UpsertMasterRateRequest struct {
	Grade               string          `json:"grade"`
	Month               string          `json:"month"`
	BasePay             decimal.Decimal `json:"base_pay"`
	MealAllowance       decimal.Decimal `json:"meal_allowance"`
	AttendanceAllowance decimal.Decimal `json:"attendance_allowance"`
	Bonus               decimal.Decimal `json:"bonus"`
	OvertimeRate        decimal.Decimal `json:"overtime_rate"`
}

func (r *UpsertMasterRateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Grade) {
		errs = append(errs, validator.ValidationError{
			Field:   "grade",
			Message: "grade is required",
		})
	}
	if _, ok := validator.IsValidMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}
	for field, amount := range map[string]decimal.Decimal{
		"base_pay":             r.BasePay,
		"meal_allowance":       r.MealAllowance,
		"attendance_allowance": r.AttendanceAllowance,
		"bonus":                r.Bonus,
		"overtime_rate":        r.OvertimeRate,
	} {
		if amount.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must not be negative",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MasterRateFilter struct {
	Month *string
	Grade *string
	Page  int
	Limit int
}

type MasterRateResponse struct {
	ID                  string          `json:"id"`
	Grade               string          `json:"grade"`
	Month               string          `json:"month"`
	BasePay             decimal.Decimal `json:"base_pay"`
	MealAllowance       decimal.Decimal `json:"meal_allowance"`
	AttendanceAllowance decimal.Decimal `json:"attendance_allowance"`
	Bonus               decimal.Decimal `json:"bonus"`
	OvertimeRate        decimal.Decimal `json:"overtime_rate"`
}

type ListMasterRateResponse struct {
	Data       []MasterRateResponse `json:"data"`
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
}

type UpsertMonthDivisorRequest struct {
	Month   string `json:"month"`
	Divisor int    `json:"divisor"`
}

func (r *UpsertMonthDivisorRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}
	if r.Divisor < 1 || r.Divisor > 31 {
		errs = append(errs, validator.ValidationError{
			Field:   "divisor",
			Message: "divisor must be between 1 and 31",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MonthDivisorResponse struct {
	ID      string `json:"id"`
	Month   string `json:"month"`
	Divisor int    `json:"divisor"`
}

type SalaryRecordFilter struct {
	Month        *string
	EmployeeCode *string
	Search       *string
	Scheme       *string
	Page         int
	Limit        int
}

type SalaryRecordResponse struct {
	ID              string          `json:"id"`
	EmployeeCode    string          `json:"employee_code"`
	EmployeeName    *string         `json:"employee_name,omitempty"`
	Grade           *string         `json:"grade,omitempty"`
	Date            string          `json:"date"`
	Scheme          string          `json:"scheme"`
	BasePay         decimal.Decimal `json:"base_pay"`
	OvertimePay     decimal.Decimal `json:"overtime_pay"`
	MealDaily       decimal.Decimal `json:"meal_daily"`
	AttendanceDaily decimal.Decimal `json:"attendance_daily"`
	BonusDaily      decimal.Decimal `json:"bonus_daily"`
	Total           decimal.Decimal `json:"total"`
}

type ListSalaryRecordResponse struct {
	Data       []SalaryRecordResponse `json:"data"`
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
}

type SyncRequest struct {
	Month string `json:"month"`
}

func (r *SyncRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
