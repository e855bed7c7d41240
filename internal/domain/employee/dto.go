package employee

import (
	"github.com/kurniatex/payroll-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	NIK      *string `json:"nik,omitempty"`
	Grade    string  `json:"grade"`
	Scheme   string  `json:"scheme"`
	Section  *string `json:"section,omitempty"`
	JoinDate *string `json:"join_date,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code is required",
		})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 150 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 150 characters",
		})
	}
	if validator.IsEmpty(r.Grade) {
		errs = append(errs, validator.ValidationError{
			Field:   "grade",
			Message: "grade is required",
		})
	}
	if !Scheme(r.Scheme).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "scheme",
			Message: "scheme must be one of harian, borongan, admin",
		})
	}
	if r.NIK != nil && !validator.IsValidNIK(*r.NIK) {
		errs = append(errs, validator.ValidationError{
			Field:   "nik",
			Message: "nik must be 16 digits",
		})
	}
	if r.JoinDate != nil {
		if _, ok := validator.IsValidDate(*r.JoinDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "join_date",
				Message: "join_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEmployeeRequest struct {
	ID       string  `json:"id"`
	Name     *string `json:"name,omitempty"`
	NIK      *string `json:"nik,omitempty"`
	Grade    *string `json:"grade,omitempty"`
	Scheme   *string `json:"scheme,omitempty"`
	Section  *string `json:"section,omitempty"`
	JoinDate *string `json:"join_date,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Scheme != nil && !Scheme(*r.Scheme).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "scheme",
			Message: "scheme must be one of harian, borongan, admin",
		})
	}
	if r.NIK != nil && !validator.IsValidNIK(*r.NIK) {
		errs = append(errs, validator.ValidationError{
			Field:   "nik",
			Message: "nik must be 16 digits",
		})
	}
	if r.JoinDate != nil {
		if _, ok := validator.IsValidDate(*r.JoinDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "join_date",
				Message: "join_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeFilter struct {
	Search *string
	Grade  *string
	Scheme *string
	Active *bool
	Page   int
	Limit  int
}

type EmployeeResponse struct {
	ID       string  `json:"id"`
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	NIK      *string `json:"nik,omitempty"`
	Grade    string  `json:"grade"`
	Scheme   string  `json:"scheme"`
	Section  *string `json:"section,omitempty"`
	JoinDate *string `json:"join_date,omitempty"`
	Active   bool    `json:"active"`
}

type ListEmployeeResponse struct {
	Data       []EmployeeResponse `json:"data"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}

// BulkDeleteResponse reports partial success: deleted count plus one entry
// per row that could not be removed.
type BulkDeleteResponse struct {
	Deleted int      `json:"deleted"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}
