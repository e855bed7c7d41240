package production

import (
	"time"

	"github.com/shopspring/decimal"
)

// Output is one piece-rate production entry: what a borongan worker produced
// on a given day and the rate it pays.
type Output struct {
	ID           string
	EmployeeCode string
	Date         time.Time
	Item         string
	Quantity     decimal.Decimal
	Rate         decimal.Decimal
	Amount       decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
}
