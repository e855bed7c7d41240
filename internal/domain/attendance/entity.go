package attendance

import (
	"time"
)

// Code is an attendance/exception code for one employee-day.
type Code string

const (
	// CodePresent - normal working day.
	CodePresent Code = "H"
	// CodeSick - sakit.
	CodeSick Code = "S"
	// CodePermission - izin.
	CodePermission Code = "I"
	// CodeUnexcused - alpha.
	CodeUnexcused Code = "A"
	// CodeCompanyHoliday - libur perusahaan (LP).
	CodeCompanyHoliday Code = "LP"
	// CodePersonalHoliday - libur sendiri (LS).
	CodePersonalHoliday Code = "LS"
)

func (c Code) IsValid() bool {
	switch c {
	case CodePresent, CodeSick, CodePermission, CodeUnexcused, CodeCompanyHoliday, CodePersonalHoliday:
		return true
	}
	return false
}

// IsViolation reports whether the code counts toward the flat allowance
// penalty.
func (c Code) IsViolation() bool {
	return c == CodeSick || c == CodePermission || c == CodeUnexcused
}

type Attendance struct {
	ID              string
	EmployeeCode    string
	Date            time.Time
	Code            Code
	OvertimeHours   float64
	CompanyTransfer bool
	Note            *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
}

// ExceptionCounts aggregates one employee's exception codes over a month.
// The payroll breakdown derives allowance deductions and the bonus state
// from these counts.
type ExceptionCounts struct {
	Sick            int
	Permission      int
	Unexcused       int
	CompanyHoliday  int
	PersonalHoliday int
	TransferDays    int
}

// Violations is the count driving the flat per-occurrence penalty.
func (c ExceptionCounts) Violations() int {
	return c.Sick + c.Permission + c.Unexcused
}

// ReducedDays is the count driving the pro-rata allowance reduction.
func (c ExceptionCounts) ReducedDays() int {
	return c.CompanyHoliday + c.PersonalHoliday + c.TransferDays
}
