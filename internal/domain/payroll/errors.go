package payroll

import "errors"

var (
	ErrMasterRateNotFound   = errors.New("salary master rate not found")
	ErrMasterRateExists     = errors.New("salary master rate for this grade and month already exists")
	ErrDivisorNotFound      = errors.New("month divisor not found")
	ErrSalaryRecordNotFound = errors.New("salary record not found")
	ErrSyncUnavailable      = errors.New("monthly sync is unavailable")
)
