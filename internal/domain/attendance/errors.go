package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrDuplicateDay       = errors.New("attendance for this employee and date already exists")
	ErrInvalidCode        = errors.New("invalid attendance code")
	ErrEmployeeUnknown    = errors.New("attendance references an unknown employee code")
)
