package production

import (
	"github.com/kurniatex/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateOutputRequest struct {
	EmployeeCode string          `json:"employee_code"`
	Date         string          `json:"date"`
	Item         string          `json:"item"`
	Quantity     decimal.Decimal `json:"quantity"`
	Rate         decimal.Decimal `json:"rate"`
}

func (r *CreateOutputRequest) Validate() error {
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
	if validator.IsEmpty(r.Item) {
		errs = append(errs, validator.ValidationError{
			Field:   "item",
			Message: "item is required",
		})
	}
	if r.Quantity.IsNegative() || r.Quantity.IsZero() {
		errs = append(errs, validator.ValidationError{
			Field:   "quantity",
			Message: "quantity must be positive",
		})
	}
	if r.Rate.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "rate",
			Message: "rate must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateOutputRequest struct {
	ID       string           `json:"id"`
	Item     *string          `json:"item,omitempty"`
	Quantity *decimal.Decimal `json:"quantity,omitempty"`
	Rate     *decimal.Decimal `json:"rate,omitempty"`
}

func (r *UpdateOutputRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Quantity != nil && (r.Quantity.IsNegative() || r.Quantity.IsZero()) {
		errs = append(errs, validator.ValidationError{
			Field:   "quantity",
			Message: "quantity must be positive",
		})
	}
	if r.Rate != nil && r.Rate.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "rate",
			Message: "rate must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type OutputFilter struct {
	Month        *string
	Date         *string
	EmployeeCode *string
	Item         *string
	Page         int
	Limit        int
}

type OutputResponse struct {
	ID           string          `json:"id"`
	EmployeeCode string          `json:"employee_code"`
	EmployeeName *string         `json:"employee_name,omitempty"`
	Date         string          `json:"date"`
	Item         string          `json:"item"`
	Quantity     decimal.Decimal `json:"quantity"`
	Rate         decimal.Decimal `json:"rate"`
	Amount       decimal.Decimal `json:"amount"`
}

type ListOutputResponse struct {
	Data       []OutputResponse `json:"data"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
}
