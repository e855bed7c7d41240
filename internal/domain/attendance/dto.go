package attendance

import (
	"github.com/kurniatex/payroll-backend-go/internal/pkg/validator"
)

type CreateAttendanceRequest struct {
	EmployeeCode    string  `json:"employee_code"`
	Date            string  `json:"date"`
	Code            string  `json:"code"`
	OvertimeHours   float64 `json:"overtime_hours"`
	CompanyTransfer bool    `json:"company_transfer"`
	Note            *string `json:"note,omitempty"`
}

func (r *CreateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if !Code(r.Code).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code must be one of H, S, I, A, LP, LS",
		})
	}
	if r.OvertimeHours < 0 || r.OvertimeHours > 24 {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime_hours",
			Message: "overtime_hours must be between 0 and 24",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateAttendanceRequest struct {
	ID              string   `json:"id"`
	Code            *string  `json:"code,omitempty"`
	OvertimeHours   *float64 `json:"overtime_hours,omitempty"`
	CompanyTransfer *bool    `json:"company_transfer,omitempty"`
	Note            *string  `json:"note,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Code != nil && !Code(*r.Code).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code must be one of H, S, I, A, LP, LS",
		})
	}
	if r.OvertimeHours != nil && (*r.OvertimeHours < 0 || *r.OvertimeHours > 24) {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime_hours",
			Message: "overtime_hours must be between 0 and 24",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceFilter struct {
	// Month filters by "YYYY-MM"; Date by exact day.
	Month        *string
	Date         *string
	EmployeeCode *string
	Search       *string
	Code         *string
	Page         int
	Limit        int
}

type AttendanceResponse struct {
	ID              string  `json:"id"`
	EmployeeCode    string  `json:"employee_code"`
	EmployeeName    *string `json:"employee_name,omitempty"`
	Date            string  `json:"date"`
	Code            string  `json:"code"`
	OvertimeHours   float64 `json:"overtime_hours"`
	CompanyTransfer bool    `json:"company_transfer"`
	Note            *string `json:"note,omitempty"`
}

type ListAttendanceResponse struct {
	Data       []AttendanceResponse `json:"data"`
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

func (r *BulkDeleteRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.IDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "ids",
			Message: "at least one id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// BulkDeleteResponse reports partial success: deleted count plus one entry
// per row that could not be removed.
type BulkDeleteResponse struct {
	Deleted int      `json:"deleted"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}
