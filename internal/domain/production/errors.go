package production

import "errors"

var (
	ErrOutputNotFound  = errors.New("production output not found")
	ErrDuplicateOutput = errors.New("production output for this employee, date and item already exists")
	ErrEmployeeUnknown = errors.New("production output references an unknown employee code")
)
