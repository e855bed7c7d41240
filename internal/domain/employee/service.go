package employee

import (
	"context"

	"github.com/kurniatex/payroll-backend-go/internal/pkg/excel"
)

// EmployeeService defines business logic for the employee master screens.
type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Get(ctx context.Context, id string) (EmployeeResponse, error)
	List(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error

	// BulkDelete removes many employees through the batch queue; the
	// response reports how many were deleted and which rows failed.
	BulkDelete(ctx context.Context, ids []string) BulkDeleteResponse

	// ImportXLSX parses a workbook and upserts rows keyed by employee code.
	ImportXLSX(ctx context.Context, data []byte) (excel.ImportSummary, error)

	// ExportXLSX builds a workbook from the filtered employee list.
	ExportXLSX(ctx context.Context, filter EmployeeFilter) ([]byte, error)
}
