package response

import (
	"errors"
	"net/http"

	"github.com/kurniatex/payroll-backend-go/internal/domain/attendance"
	"github.com/kurniatex/payroll-backend-go/internal/domain/employee"
	"github.com/kurniatex/payroll-backend-go/internal/domain/master/grade"
	"github.com/kurniatex/payroll-backend-go/internal/domain/payroll"
	"github.com/kurniatex/payroll-backend-go/internal/domain/production"
	"github.com/kurniatex/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrNIKExists):
		Conflict(w, "NIK already registered")
	case errors.Is(err, employee.ErrInvalidScheme):
		BadRequest(w, "Invalid pay scheme", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrDuplicateDay):
		Conflict(w, "Attendance for this employee and date already exists")
	case errors.Is(err, attendance.ErrInvalidCode):
		BadRequest(w, "Invalid attendance code", nil)
	case errors.Is(err, attendance.ErrEmployeeUnknown):
		BadRequest(w, "Unknown employee code", nil)

	// Production domain errors
	case errors.Is(err, production.ErrOutputNotFound):
		NotFound(w, "Production output not found")
	case errors.Is(err, production.ErrDuplicateOutput):
		Conflict(w, "Production output for this employee, date and item already exists")
	case errors.Is(err, production.ErrEmployeeUnknown):
		BadRequest(w, "Unknown employee code", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrMasterRateNotFound):
		NotFound(w, "Salary master rate not found")
	case errors.Is(err, payroll.ErrMasterRateExists):
		Conflict(w, "Salary master rate for this grade and month already exists")
	case errors.Is(err, payroll.ErrDivisorNotFound):
		NotFound(w, "Month divisor not found")
	case errors.Is(err, payroll.ErrSalaryRecordNotFound):
		NotFound(w, "Salary record not found")
	case errors.Is(err, payroll.ErrSyncUnavailable):
		ServiceUnavailable(w, "Monthly sync is unavailable")

	// Grade master errors
	case errors.Is(err, grade.ErrGradeNotFound):
		NotFound(w, "Grade not found")
	case errors.Is(err, grade.ErrGradeNameExists):
		Conflict(w, "Grade with this name already exists")
	case errors.Is(err, grade.ErrGradeInUse):
		Conflict(w, "Grade is referenced by salary master rates")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
